// internal/app/features/projects/feature.go
package projects

import (
	"net/http"

	"github.com/chroniclehq/chronicle/internal/app/policy/projectpolicy"
	"github.com/chroniclehq/chronicle/internal/app/system/apperr"
	"github.com/chroniclehq/chronicle/internal/app/system/authz"
	"github.com/chroniclehq/chronicle/internal/app/system/httpjson"
	"github.com/chroniclehq/chronicle/internal/app/system/timeouts"
)

// HandleFeatureProject pins the project to the caller's public profile.
// Only members can feature a project; featuring twice is a no-op thanks to
// the $addToSet semantics underneath.
func (h *Handler) HandleFeatureProject(w http.ResponseWriter, r *http.Request) {
	principal, err := authz.FromRequest(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "feature project")
	defer cancel()

	project, err := h.loadProject(ctx, w, r)
	if err != nil {
		return
	}
	if !projectpolicy.CanReadAll(project, principal.UserID) {
		httpjson.Error(w, h.Log, apperr.Forbidden(""))
		return
	}

	if err := h.Users.AddFeaturedProject(ctx, principal.UserID, project.ID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.OK(w, "project featured")
}

// HandleUnfeatureProject removes the project from the caller's profile.
func (h *Handler) HandleUnfeatureProject(w http.ResponseWriter, r *http.Request) {
	principal, err := authz.FromRequest(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "unfeature project")
	defer cancel()

	project, err := h.loadProject(ctx, w, r)
	if err != nil {
		return
	}

	if err := h.Users.RemoveFeaturedProject(ctx, principal.UserID, project.ID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.OK(w, "project unfeatured")
}
