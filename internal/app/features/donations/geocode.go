// internal/app/features/donations/geocode.go
package donations

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/makanenak/makanenak/internal/app/system/authz"
	"github.com/makanenak/makanenak/internal/app/system/timeouts"
)

// ServeReverseGeocode handles GET /api/geocode/reverse?lat=&lng=. It backs
// the "use my location" button on the donation form: the browser supplies
// coordinates, the response fills the pickup address field. Best-effort;
// an unresolvable coordinate returns found=false, never an error page.
func (h *Handler) ServeReverseGeocode(w http.ResponseWriter, r *http.Request) {
	if _, _, _, ok := authz.UserCtx(r); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if errLat != nil || errLng != nil {
		http.Error(w, "lat and lng are required", http.StatusBadRequest)
		return
	}

	var address string
	var found bool
	if h.Geocoder != nil {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
		defer cancel()
		address, found = h.Geocoder.Reverse(ctx, lat, lng)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"address": address,
		"found":   found,
	})
}
