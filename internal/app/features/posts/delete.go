// internal/app/features/posts/delete.go
package posts

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/chroniclehq/chronicle/internal/app/policy/projectpolicy"
	poststore "github.com/chroniclehq/chronicle/internal/app/store/posts"
	projectstore "github.com/chroniclehq/chronicle/internal/app/store/projects"
	"github.com/chroniclehq/chronicle/internal/app/system/apperr"
	"github.com/chroniclehq/chronicle/internal/app/system/authz"
	"github.com/chroniclehq/chronicle/internal/app/system/httpjson"
	"github.com/chroniclehq/chronicle/internal/app/system/timeouts"
)

type deletePostRequest struct {
	ID string `json:"id" validate:"required"`
}

// HandleDeletePost removes a post and its dependent state: every snippet
// linked to it loses the link (the snippets survive), its attached images
// are purged, and it disappears from any profile that featured it.
func (h *Handler) HandleDeletePost(w http.ResponseWriter, r *http.Request) {
	principal, err := authz.FromRequest(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	var req deletePostRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	postID, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.ValidationField("id", "invalid id"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "delete post")
	defer cancel()

	post, err := h.Posts.GetByID(ctx, postID)
	if err != nil {
		if err == poststore.ErrNotFound {
			httpjson.Error(w, h.Log, apperr.NotFound("post not found"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}
	project, err := h.Projects.GetByID(ctx, post.ProjectID)
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

	if err := h.Linkage.UnlinkPost(ctx, post.ID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if err := h.Linkage.PurgeImages(ctx, []string{post.URLName}); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if err := h.Users.RemoveFeaturedPostsAll(ctx, []primitive.ObjectID{post.ID}); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if _, err := h.Posts.Delete(ctx, post.ID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	h.Log.Info("post deleted",
		zap.String("post_id", post.ID.Hex()),
		zap.String("user_id", principal.UserID.Hex()))

	httpjson.OK(w, "post deleted")
}
