// internal/app/features/projects/routes.go
package projects

import (
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// LIST / CREATE
	r.Get("/", h.HandleListProjects)
	r.Post("/", h.HandleCreateProject)

	// SINGLE PROJECT
	r.Get("/{urlName}", h.HandleGetProject)
	r.Post("/{urlName}", h.HandleUpdateProject)
	r.Delete("/{urlName}", h.HandleDeleteProject)

	// FEED + STATS
	r.Get("/{urlName}/feed", h.HandleFeed)
	r.Get("/{urlName}/stats", h.HandleStats)

	// COLLABORATORS (owner only)
	r.Post("/{urlName}/collaborators", h.HandleAddCollaborator)
	r.Delete("/{urlName}/collaborators", h.HandleRemoveCollaborator)

	// PROFILE FEATURE TOGGLE
	r.Post("/{urlName}/feature", h.HandleFeatureProject)
	r.Delete("/{urlName}/feature", h.HandleUnfeatureProject)

	// STARS
	r.Post("/{urlName}/star", h.HandleStarProject)
	r.Delete("/{urlName}/star", h.HandleUnstarProject)

	return r
}
