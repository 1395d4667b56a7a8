// internal/app/features/login/handler.go
package login

// Terminology: User Identifiers
//   - UserID / userID / user_id: The MongoDB ObjectID (_id) shared by an
//     identity record and its profile
//   - Email: the credential users type to log in

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/makanenak/makanenak/internal/app/features/errors"
	identitystore "github.com/makanenak/makanenak/internal/app/store/identities"
	userstore "github.com/makanenak/makanenak/internal/app/store/users"
	"github.com/makanenak/makanenak/internal/app/system/auth"
	"github.com/makanenak/makanenak/internal/app/system/timeouts"
	"github.com/makanenak/makanenak/internal/app/system/viewdata"
	"github.com/makanenak/makanenak/internal/domain/models"
)

type Handler struct {
	DB            *mongo.Database
	Log           *zap.Logger
	SessionMgr    *auth.SessionManager
	ErrLog        *uierrors.ErrorLogger
	Identities    *identitystore.Store
	Users         *userstore.Store
	GoogleEnabled bool
}

func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, googleEnabled bool, logger *zap.Logger) *Handler {
	h := &Handler{
		DB:            db,
		Log:           logger,
		SessionMgr:    sessionMgr,
		ErrLog:        errLog,
		GoogleEnabled: googleEnabled,
	}
	if db != nil {
		h.Identities = identitystore.New(db)
		h.Users = userstore.New(db)
	}
	return h
}

type loginFormData struct {
	viewdata.BaseVM
	Error         string
	Email         string
	ReturnURL     string
	GoogleEnabled bool
}

// oauthErrorMessages maps the error codes the Google callback redirects
// with to messages shown on the sign-in form. Unknown codes are ignored.
var oauthErrorMessages = map[string]string{
	"google_denied":         "Masuk dengan Google dibatalkan.",
	"google_not_configured": "Masuk dengan Google belum tersedia.",
	"invalid_state":         "Sesi masuk Google kedaluwarsa. Silakan coba lagi.",
	"invalid_code":          "Proses masuk Google gagal. Silakan coba lagi.",
	"token_exchange":        "Proses masuk Google gagal. Silakan coba lagi.",
	"user_info":             "Tidak dapat mengambil data akun Google Anda.",
	"internal":              "Terjadi kesalahan. Silakan coba lagi.",
}

// ServeLogin handles GET /login.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	ret := query.Get(r, "return")

	templates.Render(w, r, "login", loginFormData{
		BaseVM:        viewdata.NewBaseVM(r, "Masuk", "/"),
		Error:         oauthErrorMessages[query.Get(r, "error")],
		ReturnURL:     ret,
		GoogleEnabled: h.GoogleEnabled,
	})
}

// HandleLoginPost handles POST /login.
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" || password == "" {
		h.renderFormWithError(w, r, "Email dan kata sandi wajib diisi.", email)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ident, err := h.Identities.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, identitystore.ErrInvalidCredentials) {
			// The credential error is shown as-is so the form mirrors
			// what the identity layer reported.
			h.renderFormWithError(w, r, err.Error(), email)
			return
		}
		h.ErrLog.LogServerError(w, r, "authenticate identity", err, "A server error occurred.", "/login")
		return
	}

	// The profile shares the identity's id. An identity without one (an
	// orphan from a half-finished registration) cannot use the site, so
	// the form says so instead of bouncing the user around.
	profile, err := h.Users.GetByID(ctx, ident.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.Log.Warn("identity has no profile",
				zap.String("user_id", ident.ID.Hex()))
			h.renderFormWithError(w, r, "Profil akun tidak ditemukan. Silakan hubungi admin.", email)
			return
		}
		h.ErrLog.LogServerError(w, r, "load profile", err, "A server error occurred.", "/login")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, ident.ID.Hex()); err != nil {
		h.ErrLog.LogServerError(w, r, "session sign-in", err, "A server error occurred.", "/login")
		return
	}

	h.Log.Info("user signed in",
		zap.String("user_id", ident.ID.Hex()),
		zap.String("role", profile.Role),
	)

	http.Redirect(w, r, h.postLoginURL(r, profile.Role), http.StatusSeeOther)
}

// postLoginURL picks the landing page after sign-in: an explicit safe
// return URL wins, then every known role lands on its dashboard panel
// and anything else falls back to the map.
func (h *Handler) postLoginURL(r *http.Request, role string) string {
	if ret := urlutil.SafeReturn(r.FormValue("return"), "", "/"); ret != "/" {
		return ret
	}
	if models.ValidRole(role) {
		return "/dashboard"
	}
	return "/"
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, email string) {
	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "login", loginFormData{
		BaseVM:        viewdata.NewBaseVM(r, "Masuk", "/"),
		Error:         msg,
		Email:         email,
		ReturnURL:     r.FormValue("return"),
		GoogleEnabled: h.GoogleEnabled,
	})
}
