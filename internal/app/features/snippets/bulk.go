// internal/app/features/snippets/bulk.go
package snippets

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/chroniclehq/chronicle/internal/app/policy/projectpolicy"
	projectstore "github.com/chroniclehq/chronicle/internal/app/store/projects"
	"github.com/chroniclehq/chronicle/internal/app/system/apperr"
	"github.com/chroniclehq/chronicle/internal/app/system/authz"
	"github.com/chroniclehq/chronicle/internal/app/system/httpjson"
	"github.com/chroniclehq/chronicle/internal/app/system/timeouts"
	"github.com/chroniclehq/chronicle/internal/domain/models"
)

type deleteSnippetsRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

// HandleDeleteSnippets removes a batch of snippets. Posts that linked the
// deleted snippets are unaffected; the link simply disappears with the
// snippet document.
func (h *Handler) HandleDeleteSnippets(w http.ResponseWriter, r *http.Request) {
	principal, err := authz.FromRequest(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	var req deleteSnippetsRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Batch(), h.Log, "delete snippets")
	defer cancel()

	batch, err := h.loadBatch(ctx, principal.UserID, req.IDs, w)
	if err != nil {
		return
	}

	ids := make([]primitive.ObjectID, len(batch))
	for i, sn := range batch {
		ids[i] = sn.ID
	}
	deleted, err := h.Snippets.DeleteByIDs(ctx, ids)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	h.Log.Info("snippets deleted",
		zap.Int64("count", deleted),
		zap.String("user_id", principal.UserID.Hex()))

	httpjson.OK(w, "snippets deleted")
}

type moveSnippetsRequest struct {
	IDs         []string `json:"ids" validate:"required,min=1"`
	ToProjectID string   `json:"toProjectId" validate:"required"`
}

// HandleMoveSnippets reassigns a batch of snippets to another project the
// caller can also write to.
func (h *Handler) HandleMoveSnippets(w http.ResponseWriter, r *http.Request) {
	principal, err := authz.FromRequest(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	var req moveSnippetsRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	toProjectID, err := primitive.ObjectIDFromHex(req.ToProjectID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.ValidationField("toProjectId", "invalid toProjectId"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Batch(), h.Log, "move snippets")
	defer cancel()

	target, err := h.Projects.GetByID(ctx, toProjectID)
	if err != nil {
		if err == projectstore.ErrNotFound {
			httpjson.Error(w, h.Log, apperr.NotFound("target project not found"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}
	if !projectpolicy.CanWrite(target, principal.UserID) {
		httpjson.Error(w, h.Log, apperr.Forbidden(""))
		return
	}

	batch, err := h.loadBatch(ctx, principal.UserID, req.IDs, w)
	if err != nil {
		return
	}

	ids := make([]primitive.ObjectID, len(batch))
	for i, sn := range batch {
		ids[i] = sn.ID
	}
	moved, err := h.Snippets.MoveToProject(ctx, ids, target.ID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	h.Log.Info("snippets moved",
		zap.Int64("count", moved),
		zap.String("to_project_id", target.ID.Hex()))

	httpjson.OK(w, "snippets moved")
}

// loadBatch resolves snippet ids, checks they all exist and that the
// caller can write every source project. On failure it writes the error
// response itself and returns a non-nil error as a signal.
func (h *Handler) loadBatch(ctx context.Context, userID primitive.ObjectID, hexes []string, w http.ResponseWriter) ([]models.Snippet, error) {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, hx := range hexes {
		id, err := primitive.ObjectIDFromHex(hx)
		if err != nil {
			e := apperr.ValidationField("ids", "invalid snippet id")
			httpjson.Error(w, h.Log, e)
			return nil, e
		}
		ids = append(ids, id)
	}

	batch, err := h.Snippets.GetByIDs(ctx, ids)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return nil, err
	}
	if len(batch) != len(ids) {
		e := apperr.NotFound("snippet not found")
		httpjson.Error(w, h.Log, e)
		return nil, e
	}

	// Authorize per source project; snippets may span several.
	checked := make(map[primitive.ObjectID]bool)
	for _, sn := range batch {
		allowed, ok := checked[sn.ProjectID]
		if !ok {
			project, err := h.Projects.GetByID(ctx, sn.ProjectID)
			if err != nil {
				httpjson.Error(w, h.Log, err)
				return nil, err
			}
			allowed = projectpolicy.CanWrite(project, userID)
			checked[sn.ProjectID] = allowed
		}
		if !allowed {
			e := apperr.Forbidden("")
			httpjson.Error(w, h.Log, e)
			return nil, e
		}
	}
	return batch, nil
}
