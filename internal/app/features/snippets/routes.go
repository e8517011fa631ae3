// internal/app/features/snippets/routes.go
package snippets

import (
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleSaveSnippet)
	r.Delete("/", h.HandleDeleteSnippets)
	r.Post("/move", h.HandleMoveSnippets)

	return r
}
