// internal/app/features/posts/routes.go
package posts

import (
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Reading a post is open; the handler applies the privacy gate.
	r.Get("/{urlName}", h.HandleGetPost)

	// Saves and deletes check the session themselves so they can return
	// the API's uniform 403 body.
	r.Post("/", h.HandleSavePost)
	r.Delete("/", h.HandleDeletePost)

	return r
}
