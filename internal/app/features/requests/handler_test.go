package requests_test

import (
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	uierrors "github.com/makanenak/makanenak/internal/app/features/errors"
	"github.com/makanenak/makanenak/internal/app/features/requests"
	donationstore "github.com/makanenak/makanenak/internal/app/store/donations"
	requeststore "github.com/makanenak/makanenak/internal/app/store/requests"
	"github.com/makanenak/makanenak/internal/domain/models"
	"github.com/makanenak/makanenak/internal/testutil"
)

func newTestHandler(t *testing.T) *requests.Handler {
	t.Helper()
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	// nil DB: only paths that stop before database work are exercised.
	return requests.NewHandler(nil, errLog, logger)
}

func callRecovering(fn func()) {
	defer func() { _ = recover() }()
	fn()
}

func TestHandleCreate_AnonymousRedirected(t *testing.T) {
	h := newTestHandler(t)

	req := testutil.NewRequest(http.MethodPost, "/donations/abc/request")
	rec := testutil.NewRecorder()
	h.HandleCreate(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/login?return=%2F")
}

func TestHandleCreate_AnyRoleAllowed(t *testing.T) {
	h := newTestHandler(t)

	// A donor reaches the id parse (400 on the bad id) instead of being
	// turned away by a role gate.
	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/donations/not-an-id/request", testutil.DonorUser())
	req = testutil.WithChiURLParam(req, "id", "not-an-id")
	rec := testutil.NewRecorder()
	callRecovering(func() { h.HandleCreate(rec.ResponseRecorder, req) })

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestHandleCreate_DuplicateRequestsInsertTwice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := requests.NewHandler(db, uierrors.NewErrorLogger(logger), logger)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	donorID := primitive.NewObjectID()
	donation := fixtures.CreateDonation(ctx, donorID, "Nasi Uduk", models.StatusAvailable)
	recipient := testutil.RecipientUser()

	for i := 0; i < 2; i++ {
		req := testutil.NewAuthenticatedRequest(http.MethodPost, "/donations/"+donation.ID.Hex()+"/request", recipient)
		req = testutil.WithChiURLParam(req, "id", donation.ID.Hex())
		rec := testutil.NewRecorder()
		h.HandleCreate(rec.ResponseRecorder, req)
		rec.AssertRedirect(t, "/requests")
	}

	recipientID, err := primitive.ObjectIDFromHex(recipient.ID)
	if err != nil {
		t.Fatalf("recipient id: %v", err)
	}
	rows, err := requeststore.New(db).ListForRecipient(ctx, recipientID)
	if err != nil {
		t.Fatalf("ListForRecipient failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 request rows, got %d", len(rows))
	}

	got, err := donationstore.New(db).GetByID(ctx, donation.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != models.StatusAvailable {
		t.Errorf("requesting must not change the donation status, got %q", got.Status)
	}
}

func TestServeList_AnonymousRedirected(t *testing.T) {
	h := newTestHandler(t)

	req := testutil.NewRequest(http.MethodGet, "/requests")
	rec := testutil.NewRecorder()
	h.ServeList(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/login?return=%2Frequests")
}

func TestHandleCreate_BadDonationID(t *testing.T) {
	h := newTestHandler(t)

	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/donations/not-an-id/request", testutil.RecipientUser())
	req = testutil.WithChiURLParam(req, "id", "not-an-id")
	rec := testutil.NewRecorder()
	callRecovering(func() { h.HandleCreate(rec.ResponseRecorder, req) })

	rec.AssertStatus(t, http.StatusBadRequest)
}
