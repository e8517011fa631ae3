// internal/app/features/projects/collaborators.go
package projects

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/chroniclehq/chronicle/internal/app/policy/projectpolicy"
	userstore "github.com/chroniclehq/chronicle/internal/app/store/users"
	"github.com/chroniclehq/chronicle/internal/app/system/apperr"
	"github.com/chroniclehq/chronicle/internal/app/system/authz"
	"github.com/chroniclehq/chronicle/internal/app/system/httpjson"
	"github.com/chroniclehq/chronicle/internal/app/system/timeouts"
)

type collaboratorRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleAddCollaborator grants an existing user write access to the
// project. Owner only; the owner cannot be added as their own
// collaborator.
func (h *Handler) HandleAddCollaborator(w http.ResponseWriter, r *http.Request) {
	principal, err := authz.FromRequest(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	var req collaboratorRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "add collaborator")
	defer cancel()

	project, err := h.loadProject(ctx, w, r)
	if err != nil {
		return
	}
	if !projectpolicy.CanAdminister(project, principal.UserID) {
		httpjson.Error(w, h.Log, apperr.Forbidden(""))
		return
	}

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == userstore.ErrNotFound {
			httpjson.Error(w, h.Log, apperr.ValidationField("email", "no user with this email"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}
	if user.ID == project.UserID {
		httpjson.Error(w, h.Log, apperr.ValidationField("email", "owner is already a member"))
		return
	}

	if err := h.Projects.AddCollaborator(ctx, project.ID, user.ID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	h.Log.Info("collaborator added",
		zap.String("project_id", project.ID.Hex()),
		zap.String("collaborator_id", user.ID.Hex()))

	httpjson.OK(w, "collaborator added")
}

// HandleRemoveCollaborator revokes a collaborator's access. Owner only.
// Removing an email that is not a collaborator is a no-op.
func (h *Handler) HandleRemoveCollaborator(w http.ResponseWriter, r *http.Request) {
	principal, err := authz.FromRequest(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	var req collaboratorRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "remove collaborator")
	defer cancel()

	project, err := h.loadProject(ctx, w, r)
	if err != nil {
		return
	}
	if !projectpolicy.CanAdminister(project, principal.UserID) {
		httpjson.Error(w, h.Log, apperr.Forbidden(""))
		return
	}

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == userstore.ErrNotFound {
			httpjson.Error(w, h.Log, apperr.ValidationField("email", "no user with this email"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}

	if err := h.Projects.RemoveCollaborator(ctx, project.ID, user.ID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.OK(w, "collaborator removed")
}
