// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/makanenak/makanenak/internal/app/features/errors"
	donationstore "github.com/makanenak/makanenak/internal/app/store/donations"
	notificationstore "github.com/makanenak/makanenak/internal/app/store/notifications"
	requeststore "github.com/makanenak/makanenak/internal/app/store/requests"
	userstore "github.com/makanenak/makanenak/internal/app/store/users"
	"github.com/makanenak/makanenak/internal/app/system/authz"
	"github.com/makanenak/makanenak/internal/app/system/timeouts"
)

type Handler struct {
	DB            *mongo.Database
	Log           *zap.Logger
	ErrLog        *uierrors.ErrorLogger
	Users         *userstore.Store
	Donations     *donationstore.Store
	Requests      *requeststore.Store
	Notifications *notificationstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	h := &Handler{
		DB:     db,
		Log:    logger,
		ErrLog: errLog,
	}
	if db != nil {
		h.Users = userstore.New(db)
		h.Donations = donationstore.New(db)
		h.Requests = requeststore.New(db)
		h.Notifications = notificationstore.New(db)
	}
	return h
}

// ServeDashboard dispatches to the role-specific view.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	role, _, _, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	switch strings.ToLower(strings.TrimSpace(role)) {
	case "donor":
		h.ServeDonor(w, r)
	case "recipient":
		h.ServeRecipient(w, r)
	case "admin":
		h.ServeAdmin(w, r)
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// HandleMarkNotificationsRead handles POST /dashboard/notifications/read:
// clears the caller's unread flags and returns to the dashboard.
func (h *Handler) HandleMarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Notifications.MarkAllRead(ctx, userID); err != nil {
		h.Log.Warn("mark notifications read failed",
			zap.String("user_id", userID.Hex()),
			zap.Error(err))
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
