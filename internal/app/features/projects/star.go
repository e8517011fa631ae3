// internal/app/features/projects/star.go
package projects

import (
	"net/http"

	"github.com/chroniclehq/chronicle/internal/app/system/authz"
	"github.com/chroniclehq/chronicle/internal/app/system/httpjson"
	"github.com/chroniclehq/chronicle/internal/app/system/timeouts"
)

// HandleStarProject records the caller's star on a project. Any signed-in
// user can star any project; starring twice is a no-op.
func (h *Handler) HandleStarProject(w http.ResponseWriter, r *http.Request) {
	principal, err := authz.FromRequest(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "star project")
	defer cancel()

	project, err := h.loadProject(ctx, w, r)
	if err != nil {
		return
	}
	if err := h.Projects.Star(ctx, project.ID, principal.UserID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.OK(w, "project starred")
}

// HandleUnstarProject removes the caller's star.
func (h *Handler) HandleUnstarProject(w http.ResponseWriter, r *http.Request) {
	principal, err := authz.FromRequest(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "unstar project")
	defer cancel()

	project, err := h.loadProject(ctx, w, r)
	if err != nil {
		return
	}
	if err := h.Projects.Unstar(ctx, project.ID, principal.UserID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.OK(w, "project unstarred")
}
