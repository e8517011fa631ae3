// internal/app/features/posts/save.go
package posts

import (
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/chroniclehq/chronicle/internal/app/policy/projectpolicy"
	poststore "github.com/chroniclehq/chronicle/internal/app/store/posts"
	projectstore "github.com/chroniclehq/chronicle/internal/app/store/projects"
	tagstore "github.com/chroniclehq/chronicle/internal/app/store/tags"
	"github.com/chroniclehq/chronicle/internal/app/system/apperr"
	"github.com/chroniclehq/chronicle/internal/app/system/authz"
	"github.com/chroniclehq/chronicle/internal/app/system/httpjson"
	"github.com/chroniclehq/chronicle/internal/app/system/sanitize"
	"github.com/chroniclehq/chronicle/internal/app/system/slugs"
	"github.com/chroniclehq/chronicle/internal/app/system/timeouts"
	"github.com/chroniclehq/chronicle/internal/domain/models"
)

type savePostRequest struct {
	ID        string   `json:"id,omitempty"`
	ProjectID string   `json:"projectId" validate:"required"`
	Title     string   `json:"title" validate:"required"`
	Body      string   `json:"body" validate:"required"`
	Privacy   string   `json:"privacy" validate:"required,oneof=public private unlisted"`
	Tags      []string `json:"tags,omitempty"`
	Snippets  []string `json:"snippets,omitempty"`
	// TempID is the client-side draft identifier images were uploaded
	// against before the first save.
	TempID string `json:"tempId,omitempty"`
}

// HandleSavePost creates a post when the request has no id, updates it
// otherwise. Both paths run the same pipeline afterwards: tag
// registration, snippet linkage reconciliation, and image garbage
// collection.
func (h *Handler) HandleSavePost(w http.ResponseWriter, r *http.Request) {
	principal, err := authz.FromRequest(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	var req savePostRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.ValidationField("projectId", "invalid projectId"))
		return
	}
	snippetIDs, err := parseObjectIDs(req.Snippets)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.ValidationField("snippets", "invalid snippet id"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "save post")
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

	var post models.Post
	var attachments []string

	if req.ID == "" {
		now := time.Now().UTC()
		post = models.Post{
			ProjectID: project.ID,
			UserID:    principal.UserID,
			URLName:   slugs.ForPost(req.Title, now),
			Title:     req.Title,
			Body:      body,
			Privacy:   req.Privacy,
			Tags:      tags,
		}
		post, err = h.Posts.Create(ctx, post)
		if err != nil {
			httpjson.Error(w, h.Log, err)
			return
		}
		// Images uploaded while drafting are bound to the tempId.
		if req.TempID != "" {
			attachments = []string{req.TempID}
		}
	} else {
		postID, perr := primitive.ObjectIDFromHex(req.ID)
		if perr != nil {
			httpjson.Error(w, h.Log, apperr.ValidationField("id", "invalid id"))
			return
		}
		post, err = h.Posts.GetByID(ctx, postID)
		if err != nil {
			if err == poststore.ErrNotFound {
				httpjson.Error(w, h.Log, apperr.NotFound("post not found"))
				return
			}
			httpjson.Error(w, h.Log, err)
			return
		}
		if post.ProjectID != project.ID {
			httpjson.Error(w, h.Log, apperr.ValidationField("projectId", "post does not belong to project"))
			return
		}
		post.Title = req.Title
		post.Body = body
		post.Privacy = req.Privacy
		post.Tags = tags
		if err := h.Posts.Update(ctx, post.ID, post); err != nil {
			httpjson.Error(w, h.Log, err)
			return
		}
		attachments = []string{post.URLName}
		if req.TempID != "" {
			attachments = append(attachments, req.TempID)
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
	if err := h.Linkage.SyncPostLinks(ctx, post.ID, snippetIDs); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if len(attachments) > 0 {
		if err := h.Linkage.CollectGarbage(ctx, attachments, post.Body, post.URLName); err != nil {
			httpjson.Error(w, h.Log, err)
			return
		}
	}

	h.Log.Info("post saved",
		zap.String("post_id", post.ID.Hex()),
		zap.String("project_id", project.ID.Hex()),
		zap.String("user_id", principal.UserID.Hex()))

	httpjson.Write(w, http.StatusOK, post)
}

func parseObjectIDs(hexes []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, hx := range hexes {
		id, err := primitive.ObjectIDFromHex(hx)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
