// internal/app/features/home/routes.go
package home

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeHome)
	return r
}

// APIRoutes serves the JSON endpoints the map page polls.
func APIRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/available", h.ServeAvailableDonations)
	return r
}
