// internal/app/features/dashboard/recipient.go
package dashboard

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"

	requeststore "github.com/makanenak/makanenak/internal/app/store/requests"
	"github.com/makanenak/makanenak/internal/app/system/authz"
	"github.com/makanenak/makanenak/internal/app/system/timeouts"
	"github.com/makanenak/makanenak/internal/app/system/viewdata"
	"github.com/makanenak/makanenak/internal/domain/models"
)

type recipientPageData struct {
	viewdata.BaseVM
	Requests      []requeststore.WithDonation
	Notifications []models.Notification
}

// ServeRecipient renders the recipient dashboard: request history plus
// unread notifications.
func (h *Handler) ServeRecipient(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := h.Requests.ListForRecipient(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "recipient requests", err, "A server error occurred.", "/")
		return
	}

	notifs, err := h.Notifications.ListUnread(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "unread notifications", err, "A server error occurred.", "/")
		return
	}

	templates.Render(w, r, "dashboard_recipient", recipientPageData{
		BaseVM:        viewdata.NewBaseVM(r, "Dashboard Penerima", "/"),
		Requests:      rows,
		Notifications: notifs,
	})
}
