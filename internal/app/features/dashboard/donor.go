// internal/app/features/dashboard/donor.go
package dashboard

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"

	donationstore "github.com/makanenak/makanenak/internal/app/store/donations"
	requeststore "github.com/makanenak/makanenak/internal/app/store/requests"
	"github.com/makanenak/makanenak/internal/app/system/authz"
	"github.com/makanenak/makanenak/internal/app/system/timeouts"
	"github.com/makanenak/makanenak/internal/app/system/viewdata"
	"github.com/makanenak/makanenak/internal/domain/models"
)

// recentLimit caps the recent-donations panel.
const recentLimit = 5

type donorPageData struct {
	viewdata.BaseVM
	Counts          donationstore.StatusCounts
	PendingRequests int64
	Recent          []models.FoodDonation
	Incoming        []requeststore.WithDonation
	Notifications   []models.Notification
	DefaultLat      float64
	DefaultLng      float64
}

// ServeDonor renders the donor dashboard: status counts, recent
// listings, incoming requests, and unread notifications.
func (h *Handler) ServeDonor(w http.ResponseWriter, r *http.Request) {
	_, _, donorID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := donorPageData{
		BaseVM:     viewdata.NewBaseVM(r, "Dashboard Donatur", "/"),
		DefaultLat: models.DefaultLat,
		DefaultLng: models.DefaultLng,
	}

	counts, err := h.Donations.CountsByStatus(ctx, donorID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "donor status counts", err, "A server error occurred.", "/")
		return
	}
	data.Counts = counts

	recent, err := h.Donations.ListByDonor(ctx, donorID, recentLimit)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "donor recent donations", err, "A server error occurred.", "/")
		return
	}
	data.Recent = recent

	// All of the donor's donation ids feed the incoming-request queries.
	all, err := h.Donations.ListByDonor(ctx, donorID, 0)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "donor donations", err, "A server error occurred.", "/")
		return
	}
	ids := make([]primitive.ObjectID, 0, len(all))
	for _, d := range all {
		ids = append(ids, d.ID)
	}

	pending, err := h.Requests.CountPendingForDonations(ctx, ids)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "pending request count", err, "A server error occurred.", "/")
		return
	}
	data.PendingRequests = pending

	incoming, err := h.Requests.ListForDonor(ctx, ids)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "incoming requests", err, "A server error occurred.", "/")
		return
	}
	data.Incoming = incoming

	notifs, err := h.Notifications.ListUnread(ctx, donorID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "unread notifications", err, "A server error occurred.", "/")
		return
	}
	data.Notifications = notifs

	templates.Render(w, r, "dashboard_donor", data)
}
