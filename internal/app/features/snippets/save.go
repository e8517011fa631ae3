// internal/app/features/snippets/save.go
package snippets

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/chroniclehq/chronicle/internal/app/policy/projectpolicy"
	projectstore "github.com/chroniclehq/chronicle/internal/app/store/projects"
	snippetstore "github.com/chroniclehq/chronicle/internal/app/store/snippets"
	tagstore "github.com/chroniclehq/chronicle/internal/app/store/tags"
	"github.com/chroniclehq/chronicle/internal/app/system/apperr"
	"github.com/chroniclehq/chronicle/internal/app/system/authz"
	"github.com/chroniclehq/chronicle/internal/app/system/httpjson"
	"github.com/chroniclehq/chronicle/internal/app/system/sanitize"
	"github.com/chroniclehq/chronicle/internal/app/system/timeouts"
	"github.com/chroniclehq/chronicle/internal/domain/models"
)

type saveSnippetRequest struct {
	ID        string   `json:"id,omitempty"`
	ProjectID string   `json:"projectId" validate:"required"`
	Type      string   `json:"type" validate:"required,oneof=snippet resource"`
	Body      string   `json:"body" validate:"required"`
	URL       string   `json:"url,omitempty" validate:"omitempty,url"`
	Tags      []string `json:"tags,omitempty"`
}

// HandleSaveSnippet creates a snippet when the request has no id, updates
// it otherwise. A resource-type snippet must carry a url. The snippet's
// linked_posts set is never touched here; only post saves change it.
func (h *Handler) HandleSaveSnippet(w http.ResponseWriter, r *http.Request) {
	principal, err := authz.FromRequest(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	var req saveSnippetRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if req.Type == models.SnippetTypeResource && req.URL == "" {
		httpjson.Error(w, h.Log, apperr.ValidationField("url", "missing url for resource"))
		return
	}
	projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.ValidationField("projectId", "invalid projectId"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "save snippet")
	defer cancel()

	project, err := h.Projects.GetByID(ctx, projectID)
	if err != nil {
		if err == projectstore.ErrNotFound {
			httpjson.Error(w, h.Log, apperr.NotFound("project not found"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}
	if !projectpolicy.CanWrite(project, principal.UserID) {
		httpjson.Error(w, h.Log, apperr.Forbidden(""))
		return
	}

	tags := tagstore.NormalizeKeys(req.Tags)
	body := sanitize.Body(req.Body)

	var snippet models.Snippet
	if req.ID == "" {
		snippet = models.Snippet{
			ProjectID: project.ID,
			UserID:    principal.UserID,
			Type:      req.Type,
			Body:      body,
			URL:       req.URL,
			Tags:      tags,
		}
		snippet, err = h.Snippets.Create(ctx, snippet)
		if err != nil {
			httpjson.Error(w, h.Log, err)
			return
		}
	} else {
		snippetID, perr := primitive.ObjectIDFromHex(req.ID)
		if perr != nil {
			httpjson.Error(w, h.Log, apperr.ValidationField("id", "invalid id"))
			return
		}
		snippet, err = h.Snippets.GetByID(ctx, snippetID)
		if err != nil {
			if err == snippetstore.ErrNotFound {
				httpjson.Error(w, h.Log, apperr.NotFound("snippet not found"))
				return
			}
			httpjson.Error(w, h.Log, err)
			return
		}
		if snippet.ProjectID != project.ID {
			httpjson.Error(w, h.Log, apperr.ValidationField("projectId", "snippet does not belong to project"))
			return
		}
		snippet.Body = body
		snippet.URL = req.URL
		snippet.Tags = tags
		if err := h.Snippets.Update(ctx, snippet.ID, snippet); err != nil {
			httpjson.Error(w, h.Log, err)
			return
		}
	}

	if err := h.Tags.EnsureKeys(ctx, tags); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if err := h.Projects.AddAvailableTags(ctx, project.ID, tags); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	h.Log.Info("snippet saved",
		zap.String("snippet_id", snippet.ID.Hex()),
		zap.String("project_id", project.ID.Hex()))

	httpjson.Write(w, http.StatusOK, snippet)
}
