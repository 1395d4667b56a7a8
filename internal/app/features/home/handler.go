// internal/app/features/home/handler.go
package home

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/makanenak/makanenak/internal/app/features/errors"
	donationstore "github.com/makanenak/makanenak/internal/app/store/donations"
	"github.com/makanenak/makanenak/internal/app/system/timeouts"
	"github.com/makanenak/makanenak/internal/app/system/viewdata"
	"github.com/makanenak/makanenak/internal/domain/models"
)

type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	ErrLog    *uierrors.ErrorLogger
	Donations *donationstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	h := &Handler{
		DB:     db,
		Log:    logger,
		ErrLog: errLog,
	}
	if db != nil {
		h.Donations = donationstore.New(db)
	}
	return h
}

type homePageData struct {
	viewdata.BaseVM
	DefaultLat float64
	DefaultLng float64
}

// ServeHome handles GET /. The map itself is populated client-side from
// /api/donations/available.
func (h *Handler) ServeHome(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "home", homePageData{
		BaseVM:     viewdata.NewBaseVM(r, "Peta Donasi", "/"),
		DefaultLat: models.DefaultLat,
		DefaultLng: models.DefaultLng,
	})
}

// ServeAvailableDonations handles GET /api/donations/available.
// Returns all available donations joined with donor contact fields.
func (h *Handler) ServeAvailableDonations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := h.Donations.ListAvailableWithDonor(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list available donations", err, "A server error occurred.", "/")
		return
	}
	if rows == nil {
		rows = []donationstore.WithDonor{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rows)
}
