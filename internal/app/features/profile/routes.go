// internal/app/features/profile/routes.go
package profile

import (
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Profiles are public.
	r.Get("/{username}", h.HandleGetProfile)

	// Featuring posts on one's own profile requires a session.
	r.Post("/featured-posts", h.HandleFeaturePost)
	r.Delete("/featured-posts", h.HandleUnfeaturePost)

	return r
}
