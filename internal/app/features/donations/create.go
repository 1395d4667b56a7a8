// internal/app/features/donations/create.go
package donations

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	"github.com/makanenak/makanenak/internal/app/system/authz"
	"github.com/makanenak/makanenak/internal/app/system/htmlsanitize"
	"github.com/makanenak/makanenak/internal/app/system/imagestore"
	"github.com/makanenak/makanenak/internal/app/system/timeouts"
	"github.com/makanenak/makanenak/internal/app/system/viewdata"
	"github.com/makanenak/makanenak/internal/domain/models"
)

type donationFormData struct {
	viewdata.BaseVM
	Error    string
	Form     formValues
	MaxBytes int64
}

type formValues struct {
	FoodName        string
	Description     string
	Quantity        string
	Category        string
	ExpiryDate      string
	PickupAddress   string
	PickupTimeStart string
	PickupTimeEnd   string
	ContactInfo     string
}

// ServeNew handles GET /donations/new.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "donation_new", donationFormData{
		BaseVM:   viewdata.NewBaseVM(r, "Bagikan Makanan", "/dashboard"),
		MaxBytes: maxUploadBytes,
	})
}

// HandleCreate handles POST /donations. The photo is uploaded before
// the row is inserted; if the insert then fails the object stays in
// storage unreferenced.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, _, donorID, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/login?return=%2Fdonations%2Fnew", http.StatusSeeOther)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse multipart form failed", err, "Invalid form data.", "/donations/new")
		return
	}

	form := formValues{
		FoodName:        strings.TrimSpace(r.FormValue("food_name")),
		Description:     strings.TrimSpace(r.FormValue("description")),
		Quantity:        strings.TrimSpace(r.FormValue("quantity")),
		Category:        strings.TrimSpace(r.FormValue("category")),
		ExpiryDate:      strings.TrimSpace(r.FormValue("expiry_date")),
		PickupAddress:   strings.TrimSpace(r.FormValue("pickup_address")),
		PickupTimeStart: strings.TrimSpace(r.FormValue("pickup_time_start")),
		PickupTimeEnd:   strings.TrimSpace(r.FormValue("pickup_time_end")),
		ContactInfo:     strings.TrimSpace(r.FormValue("contact_info")),
	}

	if form.FoodName == "" || form.Quantity == "" || form.ExpiryDate == "" {
		h.renderFormWithError(w, r, "Nama makanan, jumlah, dan tanggal kedaluwarsa wajib diisi.", form)
		return
	}

	expiry, err := time.Parse("2006-01-02", form.ExpiryDate)
	if err != nil {
		h.renderFormWithError(w, r, "Tanggal kedaluwarsa tidak valid.", form)
		return
	}
	// The date parses to midnight, so anything up to and including today
	// is rejected.
	if !expiry.After(time.Now()) {
		h.renderFormWithError(w, r, "Tanggal kedaluwarsa harus di masa depan.", form)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	imageURL, err := h.uploadImage(ctx, r)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "upload donation image", err, "Gagal mengunggah foto.", "/donations/new")
		return
	}

	// A failed or empty geocode falls back to the default city center
	// so the listing is never rejected for a bad address.
	var lat, lng float64
	var found bool
	if h.Geocoder != nil {
		lat, lng, found = h.Geocoder.Lookup(ctx, form.PickupAddress)
	} else {
		lat, lng = models.DefaultLat, models.DefaultLng
	}
	if !found {
		h.Log.Debug("geocode fallback to default center",
			zap.String("address", form.PickupAddress))
	}

	created, err := h.Donations.Create(ctx, models.FoodDonation{
		DonorID:         donorID,
		FoodName:        form.FoodName,
		Description:     htmlsanitize.Sanitize(form.Description),
		Quantity:        form.Quantity,
		Category:        form.Category,
		ExpiryDate:      expiry,
		PickupAddress:   form.PickupAddress,
		PickupTimeStart: form.PickupTimeStart,
		PickupTimeEnd:   form.PickupTimeEnd,
		ContactInfo:     form.ContactInfo,
		ImageURL:        imageURL,
		Latitude:        &lat,
		Longitude:       &lng,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "insert donation", err, "A server error occurred.", "/donations/new")
		return
	}

	h.Log.Info("donation created",
		zap.String("donation_id", created.ID.Hex()),
		zap.String("donor_id", donorID.Hex()),
		zap.Bool("geocoded", found),
	)

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// uploadImage stores the optional photo field and returns its public
// URL, or "" when no file was attached.
func (h *Handler) uploadImage(ctx context.Context, r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedImageType(contentType) {
		return "", errUnsupportedImage
	}

	key := imagestore.BuildObjectKey(header.Filename)
	return h.Images.Upload(ctx, key, contentType, file)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg string, form formValues) {
	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "donation_new", donationFormData{
		BaseVM:   viewdata.NewBaseVM(r, "Bagikan Makanan", "/dashboard"),
		Error:    msg,
		Form:     form,
		MaxBytes: maxUploadBytes,
	})
}
