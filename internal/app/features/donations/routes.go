// internal/app/features/donations/routes.go
package donations

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/makanenak/makanenak/internal/app/system/auth"
	"github.com/makanenak/makanenak/internal/domain/models"
)

// Routes wires the donor listing pages under /donations. createRequest
// handles POST /donations/{id}/request; it belongs to the requests
// feature but lives on this subtree because it acts on one donation.
func Routes(h *Handler, sm *auth.SessionManager, createRequest http.HandlerFunc) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleDonor, models.RoleAdmin))
		pr.Get("/", h.ServeList)
		pr.Get("/new", h.ServeNew)
		pr.Post("/", h.HandleCreate)
	})

	r.With(sm.RequireSignedIn).Post("/{id}/request", createRequest)

	return r
}

// APIRoutes serves the donor's JSON listing endpoint.
func APIRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeMyDonationsAPI)
	})
	return r
}
