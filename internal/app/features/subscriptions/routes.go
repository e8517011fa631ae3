// internal/app/features/subscriptions/routes.go
package subscriptions

import (
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Subscribing and unsubscribing are open; they act on behalf of the
	// email in the request, not a signed-in user.
	r.Post("/", h.HandleSubscribe)
	r.Delete("/", h.HandleUnsubscribe)

	// Listing subscribers is owner-only.
	r.Get("/{urlName}", h.HandleListSubscribers)

	return r
}
