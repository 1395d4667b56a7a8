package dashboard_test

import (
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/makanenak/makanenak/internal/app/features/dashboard"
	uierrors "github.com/makanenak/makanenak/internal/app/features/errors"
	"github.com/makanenak/makanenak/internal/testutil"
)

func newTestHandler(t *testing.T) *dashboard.Handler {
	t.Helper()
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	return dashboard.NewHandler(nil, errLog, logger)
}

func TestServeDashboard_AnonymousRedirected(t *testing.T) {
	h := newTestHandler(t)

	req := testutil.NewRequest(http.MethodGet, "/dashboard")
	rec := testutil.NewRecorder()
	h.ServeDashboard(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/")
}

func TestServeDashboard_UnknownRoleRedirected(t *testing.T) {
	h := newTestHandler(t)

	user := testutil.TestUser{ID: testutil.DonorUser().ID, Name: "X", Role: "visitor"}
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/dashboard", user)
	rec := testutil.NewRecorder()
	h.ServeDashboard(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/")
}
