// internal/app/features/register/handler.go
package register

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/makanenak/makanenak/internal/app/features/errors"
	identitystore "github.com/makanenak/makanenak/internal/app/store/identities"
	userstore "github.com/makanenak/makanenak/internal/app/store/users"
	"github.com/makanenak/makanenak/internal/app/system/authutil"
	"github.com/makanenak/makanenak/internal/app/system/normalize"
	"github.com/makanenak/makanenak/internal/app/system/timeouts"
	"github.com/makanenak/makanenak/internal/app/system/viewdata"
	"github.com/makanenak/makanenak/internal/domain/models"
)

type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	ErrLog     *uierrors.ErrorLogger
	Identities *identitystore.Store
	Users      *userstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	h := &Handler{
		DB:     db,
		Log:    logger,
		ErrLog: errLog,
	}
	if db != nil {
		h.Identities = identitystore.New(db)
		h.Users = userstore.New(db)
	}
	return h
}

type registerFormData struct {
	viewdata.BaseVM
	Error    string
	Notice   string
	FullName string
	Email    string
	Phone    string
	Address  string
	Role     string
}

type registerSuccessData struct {
	viewdata.BaseVM
	Email string
}

// ServeRegister handles GET /register. An optional ?role= query
// preselects donor or recipient on the form.
func (h *Handler) ServeRegister(w http.ResponseWriter, r *http.Request) {
	role := normalize.Role(query.Get(r, "role"))
	if role != models.RoleDonor && role != models.RoleRecipient {
		role = ""
	}

	data := registerFormData{
		BaseVM: viewdata.NewBaseVM(r, "Daftar", "/"),
		Role:   role,
	}
	if query.Get(r, "notice") == "no_account" {
		data.Notice = "Akun Google Anda belum terdaftar. Silakan daftar terlebih dahulu."
	}

	templates.Render(w, r, "register", data)
}

// HandleRegisterPost handles POST /register. The identity record is
// inserted first and the profile second with the same id; a profile
// failure leaves the identity in place.
func (h *Handler) HandleRegisterPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/register")
		return
	}

	form := registerFormData{
		FullName: strings.TrimSpace(r.FormValue("full_name")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Phone:    strings.TrimSpace(r.FormValue("phone")),
		Address:  strings.TrimSpace(r.FormValue("address")),
		Role:     normalize.Role(r.FormValue("role")),
	}
	password := r.FormValue("password")
	confirm := r.FormValue("confirm_password")

	if msg := validateForm(form, password, confirm); msg != "" {
		h.renderFormWithError(w, r, msg, form)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ident, err := h.Identities.Create(ctx, form.Email, password, form.FullName, form.Role)
	if err != nil {
		if errors.Is(err, identitystore.ErrDuplicateEmail) {
			h.renderFormWithError(w, r, err.Error(), form)
			return
		}
		h.ErrLog.LogServerError(w, r, "create identity", err, "A server error occurred.", "/register")
		return
	}

	if _, err := h.Users.Create(ctx, models.User{
		ID:       ident.ID,
		Email:    form.Email,
		FullName: form.FullName,
		Phone:    form.Phone,
		Address:  form.Address,
		Role:     form.Role,
	}); err != nil {
		h.Log.Error("profile insert failed after identity insert",
			zap.String("identity_id", ident.ID.Hex()),
			zap.Error(err),
		)
		h.ErrLog.LogServerError(w, r, "create profile", err, "A server error occurred.", "/register")
		return
	}

	h.Log.Info("user registered",
		zap.String("user_id", ident.ID.Hex()),
		zap.String("role", form.Role),
	)

	templates.Render(w, r, "register_success", registerSuccessData{
		BaseVM: viewdata.NewBaseVM(r, "Pendaftaran Berhasil", "/login"),
		Email:  normalize.Email(form.Email),
	})
}

func validateForm(form registerFormData, password, confirm string) string {
	if form.FullName == "" || form.Email == "" {
		return "Nama lengkap dan email wajib diisi."
	}
	if form.Role != models.RoleDonor && form.Role != models.RoleRecipient {
		return "Silakan pilih peran: donatur atau penerima."
	}
	// Mismatch is reported before length so the user fixes the typo
	// before the rule.
	if password != confirm {
		return "Konfirmasi kata sandi tidak cocok."
	}
	if err := authutil.ValidatePassword(password); err != nil {
		return authutil.PasswordRules()
	}
	return ""
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg string, form registerFormData) {
	form.BaseVM = viewdata.NewBaseVM(r, "Daftar", "/")
	form.Error = msg
	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "register", form)
}
