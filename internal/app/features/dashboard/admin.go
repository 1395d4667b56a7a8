// internal/app/features/dashboard/admin.go
package dashboard

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"

	donationstore "github.com/makanenak/makanenak/internal/app/store/donations"
	"github.com/makanenak/makanenak/internal/app/system/timeouts"
	"github.com/makanenak/makanenak/internal/app/system/viewdata"
	"github.com/makanenak/makanenak/internal/domain/models"
)

type adminPageData struct {
	viewdata.BaseVM
	TotalUsers      int64
	Counts          donationstore.StatusCounts
	PendingRequests int64
	Donors          []models.User
	Recipients      []models.User
}

// ServeAdmin renders the admin panel: platform totals and the user
// roster by role.
func (h *Handler) ServeAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.Count(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count users", err, "A server error occurred.", "/")
		return
	}
	counts, err := h.Donations.CountsByStatusAll(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count donations", err, "A server error occurred.", "/")
		return
	}
	pending, err := h.Requests.CountPending(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count pending requests", err, "A server error occurred.", "/")
		return
	}

	donors, err := h.Users.ListByRole(ctx, models.RoleDonor)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list donors", err, "A server error occurred.", "/")
		return
	}
	recipients, err := h.Users.ListByRole(ctx, models.RoleRecipient)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list recipients", err, "A server error occurred.", "/")
		return
	}

	templates.Render(w, r, "dashboard_admin", adminPageData{
		BaseVM:          viewdata.NewBaseVM(r, "Panel Admin", "/"),
		TotalUsers:      users,
		Counts:          counts,
		PendingRequests: pending,
		Donors:          donors,
		Recipients:      recipients,
	})
}
