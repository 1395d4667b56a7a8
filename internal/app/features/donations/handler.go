// internal/app/features/donations/handler.go
package donations

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/makanenak/makanenak/internal/app/features/errors"
	donationstore "github.com/makanenak/makanenak/internal/app/store/donations"
	"github.com/makanenak/makanenak/internal/app/system/imagestore"
)

// Geocoder resolves a pickup address to coordinates, reporting whether
// a real match was found (false means the default city center), and
// resolves a coordinate back to a display address for the
// "use my location" helper.
type Geocoder interface {
	Lookup(ctx context.Context, address string) (lat, lng float64, found bool)
	Reverse(ctx context.Context, lat, lng float64) (address string, found bool)
}

// Handler serves donation listing and management for donors.
type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	ErrLog    *uierrors.ErrorLogger
	Donations *donationstore.Store
	Images    imagestore.Store
	Geocoder  Geocoder
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, images imagestore.Store, geocoder Geocoder, logger *zap.Logger) *Handler {
	h := &Handler{
		DB:       db,
		Log:      logger,
		ErrLog:   errLog,
		Images:   images,
		Geocoder: geocoder,
	}
	if db != nil {
		h.Donations = donationstore.New(db)
	}
	return h
}

// maxUploadBytes caps donation photo uploads at 5 MB.
const maxUploadBytes = 5 << 20

var errUnsupportedImage = errors.New("unsupported image type")

func allowedImageType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/webp", "image/gif":
		return true
	}
	return false
}
