// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"

	"github.com/makanenak/makanenak/internal/app/system/auth"
)

// RenderForbiddenStatus writes the given status code before rendering
// the error page. Used by ErrorLogger so 400/404/500 responses carry
// the right code instead of an implicit 200.
func RenderForbiddenStatus(w http.ResponseWriter, r *http.Request, status int, msg, backURL string) {
	u, signed := auth.CurrentUser(r)
	role, name := "", ""
	if signed && u != nil {
		role, name = u.Role, u.Name
	}

	w.WriteHeader(status)
	data := pageData{
		Title:      "Something went wrong",
		IsLoggedIn: signed,
		Role:       role,
		UserName:   name,
		Message:    msg,
		BackURL:    backURL,
	}
	templates.Render(w, r, "error_forbidden", data)
}
