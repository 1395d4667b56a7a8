package donations_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"go.uber.org/zap"

	"github.com/makanenak/makanenak/internal/app/features/donations"
	uierrors "github.com/makanenak/makanenak/internal/app/features/errors"
	"github.com/makanenak/makanenak/internal/testutil"
)

// recordingImageStore counts uploads so tests can prove a rejected form
// never touched storage.
type recordingImageStore struct {
	uploads int
}

func (s *recordingImageStore) Upload(_ context.Context, key, _ string, _ io.Reader) (string, error) {
	s.uploads++
	return "https://img.test/" + key, nil
}

// failingImageStore rejects every upload so tests can prove a storage
// failure aborts the submission.
type failingImageStore struct {
	uploads int
}

func (s *failingImageStore) Upload(_ context.Context, _, _ string, _ io.Reader) (string, error) {
	s.uploads++
	return "", errors.New("storage offline")
}

type fixedGeocoder struct {
	lat, lng float64
	found    bool
	calls    int
}

func (g *fixedGeocoder) Lookup(_ context.Context, _ string) (float64, float64, bool) {
	g.calls++
	return g.lat, g.lng, g.found
}

func (g *fixedGeocoder) Reverse(_ context.Context, _, _ float64) (string, bool) {
	return "Jalan Contoh No. 1", g.found
}

func newTestHandler(t *testing.T, images *recordingImageStore, geo *fixedGeocoder) *donations.Handler {
	t.Helper()
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	// nil DB: only paths that stop before the insert are exercised.
	return donations.NewHandler(nil, errLog, images, geo, logger)
}

func callRecovering(fn func()) {
	defer func() { _ = recover() }()
	fn()
}

func multipartRequest(t *testing.T, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/donations", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func multipartRequestWithImage(t *testing.T, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="image"; filename="foto.jpg"`)
	hdr.Set("Content-Type", "image/jpeg")
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create image part: %v", err)
	}
	if _, err := part.Write([]byte("jpegdata")); err != nil {
		t.Fatalf("write image part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/donations", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandleCreate_AnonymousRedirected(t *testing.T) {
	images := &recordingImageStore{}
	h := newTestHandler(t, images, &fixedGeocoder{})

	req := multipartRequest(t, map[string]string{"food_name": "Nasi", "quantity": "2"})
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/login?return=%2Fdonations%2Fnew")
	if images.uploads != 0 {
		t.Errorf("expected no uploads, got %d", images.uploads)
	}
}

func TestHandleCreate_MissingFoodName_NoUpload(t *testing.T) {
	images := &recordingImageStore{}
	geo := &fixedGeocoder{}
	h := newTestHandler(t, images, geo)

	req := multipartRequest(t, map[string]string{"food_name": "", "quantity": "2 porsi"})
	req = testutil.WithUser(req, testutil.DonorUser())
	rec := testutil.NewRecorder()
	callRecovering(func() { h.HandleCreate(rec.ResponseRecorder, req) })

	rec.AssertStatus(t, http.StatusUnprocessableEntity)
	if images.uploads != 0 {
		t.Errorf("validation failure must not upload, got %d uploads", images.uploads)
	}
	if geo.calls != 0 {
		t.Errorf("validation failure must not geocode, got %d calls", geo.calls)
	}
}

func TestHandleCreate_BadExpiryDate(t *testing.T) {
	images := &recordingImageStore{}
	h := newTestHandler(t, images, &fixedGeocoder{})

	req := multipartRequest(t, map[string]string{
		"food_name":   "Nasi Kotak",
		"quantity":    "2 porsi",
		"expiry_date": "31-12-2026",
	})
	req = testutil.WithUser(req, testutil.DonorUser())
	rec := testutil.NewRecorder()
	callRecovering(func() { h.HandleCreate(rec.ResponseRecorder, req) })

	rec.AssertStatus(t, http.StatusUnprocessableEntity)
	if images.uploads != 0 {
		t.Errorf("expected no uploads, got %d", images.uploads)
	}
}

func TestHandleCreate_PastExpiryDate_NoUpload(t *testing.T) {
	images := &recordingImageStore{}
	geo := &fixedGeocoder{}
	h := newTestHandler(t, images, geo)

	req := multipartRequest(t, map[string]string{
		"food_name":   "Roti Tawar",
		"quantity":    "1 bungkus",
		"expiry_date": "2020-01-01",
	})
	req = testutil.WithUser(req, testutil.DonorUser())
	rec := testutil.NewRecorder()
	callRecovering(func() { h.HandleCreate(rec.ResponseRecorder, req) })

	rec.AssertStatus(t, http.StatusUnprocessableEntity)
	if images.uploads != 0 {
		t.Errorf("past expiry must not upload, got %d uploads", images.uploads)
	}
	if geo.calls != 0 {
		t.Errorf("past expiry must not geocode, got %d calls", geo.calls)
	}
}

func TestHandleCreate_UploadFailureAborts(t *testing.T) {
	images := &failingImageStore{}
	geo := &fixedGeocoder{found: true}
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	// nil DB: if the handler reached the insert it would panic and the
	// 500 written on the upload error would never appear.
	h := donations.NewHandler(nil, errLog, images, geo, logger)

	req := multipartRequestWithImage(t, map[string]string{
		"food_name":   "Sayur Asem",
		"quantity":    "3 porsi",
		"expiry_date": "2999-12-31",
	})
	req = testutil.WithUser(req, testutil.DonorUser())
	rec := testutil.NewRecorder()
	callRecovering(func() { h.HandleCreate(rec.ResponseRecorder, req) })

	rec.AssertStatus(t, http.StatusInternalServerError)
	if images.uploads != 1 {
		t.Errorf("expected one upload attempt, got %d", images.uploads)
	}
}

func TestServeMyDonationsAPI_AnonymousUnauthorized(t *testing.T) {
	h := newTestHandler(t, &recordingImageStore{}, &fixedGeocoder{})

	req := httptest.NewRequest(http.MethodGet, "/api/my-donations", nil)
	rec := testutil.NewRecorder()
	h.ServeMyDonationsAPI(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestServeReverseGeocode(t *testing.T) {
	h := newTestHandler(t, &recordingImageStore{}, &fixedGeocoder{found: true})

	req := httptest.NewRequest(http.MethodGet, "/api/geocode/reverse?lat=-6.21&lng=106.82", nil)
	req = testutil.WithUser(req, testutil.DonorUser())
	rec := testutil.NewRecorder()
	h.ServeReverseGeocode(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Jalan Contoh No. 1")
}

func TestServeReverseGeocode_MissingCoords(t *testing.T) {
	h := newTestHandler(t, &recordingImageStore{}, &fixedGeocoder{})

	req := httptest.NewRequest(http.MethodGet, "/api/geocode/reverse", nil)
	req = testutil.WithUser(req, testutil.DonorUser())
	rec := testutil.NewRecorder()
	h.ServeReverseGeocode(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}
