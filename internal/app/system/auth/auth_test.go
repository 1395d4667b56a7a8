package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/makanenak/makanenak/internal/app/system/auth"
	"go.uber.org/zap"
)

func newManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	m, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "makanenak-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return m
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	if _, err := auth.NewSessionManager("", "s", "", false, zap.NewNop()); err == nil {
		t.Error("expected error for empty session key")
	}
}

func TestRequireSignedIn_AnonymousBrowserRedirects(t *testing.T) {
	m := newManager(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not run for anonymous request")
	})

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	m.RequireSignedIn(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?return=%2Fdashboard" {
		t.Errorf("location: got %q", loc)
	}
}

func TestRequireSignedIn_AnonymousAPIGets401(t *testing.T) {
	m := newManager(t)

	req := httptest.NewRequest("POST", "/donations/abc/request", nil)
	rec := httptest.NewRecorder()

	m.RequireSignedIn(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireRole(t *testing.T) {
	m := newManager(t)

	ran := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { ran = true })

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "1", Name: "Budi", Role: "donor"})
	rec := httptest.NewRecorder()

	m.RequireRole("donor", "admin")(next).ServeHTTP(rec, req)
	if !ran {
		t.Error("donor should pass RequireRole(donor, admin)")
	}

	req2 := httptest.NewRequest("GET", "/dashboard", nil)
	req2 = auth.WithTestUser(req2, &auth.SessionUser{ID: "2", Name: "Sari", Role: "recipient"})
	rec2 := httptest.NewRecorder()

	m.RequireRole("admin")(next).ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec2.Code, http.StatusForbidden)
	}
}

func TestCurrentUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if _, ok := auth.CurrentUser(req); ok {
		t.Error("expected no user on bare request")
	}

	req = auth.WithTestUser(req, &auth.SessionUser{ID: "1", Role: "donor"})
	u, ok := auth.CurrentUser(req)
	if !ok || u.ID != "1" {
		t.Errorf("CurrentUser: got %+v, ok=%v", u, ok)
	}
}
