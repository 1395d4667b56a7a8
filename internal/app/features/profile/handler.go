// internal/app/features/profile/handler.go
package profile

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/makanenak/makanenak/internal/app/features/errors"
	userstore "github.com/makanenak/makanenak/internal/app/store/users"
	"github.com/makanenak/makanenak/internal/app/system/authz"
	"github.com/makanenak/makanenak/internal/app/system/timeouts"
	"github.com/makanenak/makanenak/internal/app/system/viewdata"
	"github.com/makanenak/makanenak/internal/domain/models"
)

// Handler lets a signed-in user view and edit their own profile.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Users  *userstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	h := &Handler{
		DB:     db,
		Log:    logger,
		ErrLog: errLog,
	}
	if db != nil {
		h.Users = userstore.New(db)
	}
	return h
}

type pageData struct {
	viewdata.BaseVM
	User     *models.User
	ErrorMsg string
	Saved    bool
}

// ServeProfile handles GET /profile.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	_, _, userID, signedIn := authz.UserCtx(r)
	if !signedIn {
		http.Redirect(w, r, "/login?return=%2Fprofile", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load profile", err, "A server error occurred.", "/")
		return
	}
	if u == nil {
		h.ErrLog.LogNotFound(w, r, "profile user missing", nil, "Akun tidak ditemukan.", "/")
		return
	}

	templates.Render(w, r, "profile", pageData{
		BaseVM: viewdata.NewBaseVM(r, "Profil Saya", "/dashboard"),
		User:   u,
		Saved:  r.URL.Query().Get("saved") == "1",
	})
}

// HandleUpdate handles POST /profile.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	_, _, userID, signedIn := authz.UserCtx(r)
	if !signedIn {
		http.Redirect(w, r, "/login?return=%2Fprofile", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse profile form", err, "Formulir tidak valid.", "/profile")
		return
	}

	upd := userstore.ProfileUpdate{
		FullName: r.PostFormValue("full_name"),
		Phone:    r.PostFormValue("phone"),
		Address:  r.PostFormValue("address"),
	}

	if upd.FullName == "" {
		h.renderWithError(w, r, upd, "Nama lengkap wajib diisi.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.Update(ctx, userID, upd); err != nil {
		h.ErrLog.LogServerError(w, r, "update profile", err, "A server error occurred.", "/profile")
		return
	}

	http.Redirect(w, r, "/profile?saved=1", http.StatusSeeOther)
}

func (h *Handler) renderWithError(w http.ResponseWriter, r *http.Request, upd userstore.ProfileUpdate, msg string) {
	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "profile", pageData{
		BaseVM: viewdata.NewBaseVM(r, "Profil Saya", "/dashboard"),
		User: &models.User{
			FullName: upd.FullName,
			Phone:    upd.Phone,
			Address:  upd.Address,
		},
		ErrorMsg: msg,
	})
}
