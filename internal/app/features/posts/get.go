// internal/app/features/posts/get.go
package posts

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chroniclehq/chronicle/internal/app/policy/projectpolicy"
	poststore "github.com/chroniclehq/chronicle/internal/app/store/posts"
	"github.com/chroniclehq/chronicle/internal/app/system/apperr"
	"github.com/chroniclehq/chronicle/internal/app/system/authz"
	"github.com/chroniclehq/chronicle/internal/app/system/httpjson"
	"github.com/chroniclehq/chronicle/internal/app/system/timeouts"
)

// HandleGetPost serves a single post by urlName. Public and unlisted posts
// are readable by anyone; private posts require project membership. A
// private post a caller may not see reads as 404, not 403, so its
// existence is not revealed.
func (h *Handler) HandleGetPost(w http.ResponseWriter, r *http.Request) {
	urlName := chi.URLParam(r, "urlName")

	viewer := primitive.NilObjectID
	if principal, err := authz.FromRequest(r); err == nil {
		viewer = principal.UserID
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get post")
	defer cancel()

	post, err := h.Posts.GetByURLName(ctx, urlName)
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
		httpjson.Error(w, h.Log, err)
		return
	}
	if !projectpolicy.CanViewPost(project, post, viewer) {
		httpjson.Error(w, h.Log, apperr.NotFound("post not found"))
		return
	}

	httpjson.Write(w, http.StatusOK, post)
}
