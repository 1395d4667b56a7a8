// internal/app/features/requests/routes.go
package requests

import (
	"github.com/go-chi/chi/v5"

	"github.com/makanenak/makanenak/internal/app/system/auth"
)

// Routes wires the request history under /requests. The handler
// dispatches on role: recipients see their own history, donors see
// requests coming in on their donations.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeList)
	})

	return r
}
