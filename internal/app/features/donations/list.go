// internal/app/features/donations/list.go
package donations

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"

	"github.com/makanenak/makanenak/internal/app/system/authz"
	"github.com/makanenak/makanenak/internal/app/system/timeouts"
	"github.com/makanenak/makanenak/internal/app/system/viewdata"
	"github.com/makanenak/makanenak/internal/domain/models"
)

type listPageData struct {
	viewdata.BaseVM
	Donations []models.FoodDonation
}

// ServeList handles GET /donations: the donor's own listings.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	_, _, donorID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login?return=%2Fdonations", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := h.Donations.ListByDonor(ctx, donorID, 0)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list donor donations", err, "A server error occurred.", "/dashboard")
		return
	}

	templates.Render(w, r, "donation_list", listPageData{
		BaseVM:    viewdata.NewBaseVM(r, "Donasi Saya", "/dashboard"),
		Donations: rows,
	})
}

// ServeMyDonationsAPI handles GET /api/my-donations.
func (h *Handler) ServeMyDonationsAPI(w http.ResponseWriter, r *http.Request) {
	_, _, donorID, ok := authz.UserCtx(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := h.Donations.ListByDonor(ctx, donorID, 0)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list donor donations", err, "A server error occurred.", "/dashboard")
		return
	}
	if rows == nil {
		rows = []models.FoodDonation{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rows)
}
