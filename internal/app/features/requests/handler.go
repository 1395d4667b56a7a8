// internal/app/features/requests/handler.go
package requests

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/makanenak/makanenak/internal/app/features/errors"
	donationstore "github.com/makanenak/makanenak/internal/app/store/donations"
	notificationstore "github.com/makanenak/makanenak/internal/app/store/notifications"
	requeststore "github.com/makanenak/makanenak/internal/app/store/requests"
	"github.com/makanenak/makanenak/internal/app/system/authz"
	"github.com/makanenak/makanenak/internal/app/system/timeouts"
	"github.com/makanenak/makanenak/internal/app/system/viewdata"
	"github.com/makanenak/makanenak/internal/domain/models"
)

// Handler serves pickup requests: signed-in users create them against
// donations and review their own history.
type Handler struct {
	DB            *mongo.Database
	Log           *zap.Logger
	ErrLog        *uierrors.ErrorLogger
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
		h.Donations = donationstore.New(db)
		h.Requests = requeststore.New(db)
		h.Notifications = notificationstore.New(db)
	}
	return h
}

// HandleCreate handles POST /donations/{id}/request. Inserts a pending
// request and notifies the donor. Any signed-in user may request, the
// donation keeps its status, and repeat clicks insert repeat rows;
// nothing deduplicates them.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, name, recipientID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login?return=%2F", http.StatusSeeOther)
		return
	}

	donationID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad donation id", err, "Donasi tidak ditemukan.", "/")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	donation, err := h.Donations.GetByID(ctx, donationID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			h.ErrLog.LogNotFound(w, r, "donation not found", err, "Donasi tidak ditemukan.", "/")
			return
		}
		h.ErrLog.LogServerError(w, r, "load donation", err, "A server error occurred.", "/")
		return
	}

	req, err := h.Requests.Create(ctx, donationID, recipientID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "insert request", err, "A server error occurred.", "/")
		return
	}

	msg := fmt.Sprintf("%s meminta donasi %q Anda.", name, donation.FoodName)
	if err := h.Notifications.Create(ctx, donation.DonorID, msg); err != nil {
		// The request itself succeeded; a lost notification is logged only.
		h.Log.Warn("donor notification insert failed",
			zap.String("donation_id", donationID.Hex()),
			zap.Error(err))
	}

	h.Log.Info("donation requested",
		zap.String("request_id", req.ID.Hex()),
		zap.String("donation_id", donationID.Hex()),
		zap.String("recipient_id", recipientID.Hex()),
	)

	http.Redirect(w, r, "/requests", http.StatusSeeOther)
}

type listPageData struct {
	viewdata.BaseVM
	Incoming bool
	Requests []requeststore.WithDonation
}

// ServeList handles GET /requests. Recipients see their own request
// history; donors see the incoming requests on their donations.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login?return=%2Frequests", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if role == models.RoleDonor {
		h.serveIncoming(ctx, w, r, userID)
		return
	}

	rows, err := h.Requests.ListForRecipient(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list recipient requests", err, "A server error occurred.", "/")
		return
	}

	templates.Render(w, r, "request_list", listPageData{
		BaseVM:   viewdata.NewBaseVM(r, "Permintaan Saya", "/"),
		Requests: rows,
	})
}

// serveIncoming renders requests other users made against the donor's
// donations.
func (h *Handler) serveIncoming(ctx context.Context, w http.ResponseWriter, r *http.Request, donorID primitive.ObjectID) {
	mine, err := h.Donations.ListByDonor(ctx, donorID, 0)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list donor donations", err, "A server error occurred.", "/dashboard")
		return
	}

	ids := make([]primitive.ObjectID, 0, len(mine))
	for _, d := range mine {
		ids = append(ids, d.ID)
	}

	rows, err := h.Requests.ListForDonor(ctx, ids)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list incoming requests", err, "A server error occurred.", "/dashboard")
		return
	}

	templates.Render(w, r, "request_list", listPageData{
		BaseVM:   viewdata.NewBaseVM(r, "Permintaan Masuk", "/dashboard"),
		Incoming: true,
		Requests: rows,
	})
}
