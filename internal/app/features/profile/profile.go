// internal/app/features/profile/profile.go
package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chroniclehq/chronicle/internal/app/policy/projectpolicy"
	poststore "github.com/chroniclehq/chronicle/internal/app/store/posts"
	userstore "github.com/chroniclehq/chronicle/internal/app/store/users"
	"github.com/chroniclehq/chronicle/internal/app/system/apperr"
	"github.com/chroniclehq/chronicle/internal/app/system/authz"
	"github.com/chroniclehq/chronicle/internal/app/system/httpjson"
	"github.com/chroniclehq/chronicle/internal/app/system/timeouts"
	"github.com/chroniclehq/chronicle/internal/domain/models"
)

// ProfileResponse is a user's public page: their identity plus the
// projects and posts they chose to feature.
type ProfileResponse struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Username         string           `json:"username"`
	Image            string           `json:"image,omitempty"`
	FeaturedProjects []models.Project `json:"featuredProjects"`
	FeaturedPosts    []models.Post    `json:"featuredPosts"`
}

// HandleGetProfile serves a public profile. Featured posts are filtered to
// what the viewer may see in a listing, so a post that was featured and
// later made private or unlisted disappears from the public view without
// unfeaturing it.
func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	viewer := primitive.NilObjectID
	if principal, err := authz.FromRequest(r); err == nil {
		viewer = principal.UserID
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "get profile")
	defer cancel()

	user, err := h.Users.GetByUsername(ctx, chi.URLParam(r, "username"))
	if err != nil {
		if err == userstore.ErrNotFound {
			httpjson.Error(w, h.Log, apperr.NotFound("profile not found"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}

	resp := ProfileResponse{
		ID:               user.ID.Hex(),
		Name:             user.Name,
		Username:         user.Username,
		Image:            user.Image,
		FeaturedProjects: []models.Project{},
		FeaturedPosts:    []models.Post{},
	}

	if len(user.FeaturedProjects) > 0 {
		projects, err := h.Projects.Find(ctx, bson.M{"_id": bson.M{"$in": user.FeaturedProjects}})
		if err != nil {
			httpjson.Error(w, h.Log, err)
			return
		}
		resp.FeaturedProjects = projects
	}

	if len(user.FeaturedPosts) > 0 {
		posts, err := h.Posts.Find(ctx, bson.M{"_id": bson.M{"$in": user.FeaturedPosts}})
		if err != nil {
			httpjson.Error(w, h.Log, err)
			return
		}
		for _, p := range posts {
			project, err := h.Projects.GetByID(ctx, p.ProjectID)
			if err != nil {
				continue
			}
			if projectpolicy.CanListPost(project, p, viewer) {
				resp.FeaturedPosts = append(resp.FeaturedPosts, p)
			}
		}
	}

	httpjson.Write(w, http.StatusOK, resp)
}

type featurePostRequest struct {
	PostID string `json:"postId" validate:"required"`
}

// HandleFeaturePost pins a post to the caller's profile. The caller must
// be a member of the post's project.
func (h *Handler) HandleFeaturePost(w http.ResponseWriter, r *http.Request) {
	principal, err := authz.FromRequest(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	var req featurePostRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	postID, err := primitive.ObjectIDFromHex(req.PostID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.ValidationField("postId", "invalid postId"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "feature post")
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
		httpjson.Error(w, h.Log, err)
		return
	}
	if !projectpolicy.CanReadAll(project, principal.UserID) {
		httpjson.Error(w, h.Log, apperr.Forbidden(""))
		return
	}

	if err := h.Users.AddFeaturedPost(ctx, principal.UserID, post.ID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.OK(w, "post featured")
}

// HandleUnfeaturePost removes a post from the caller's profile.
func (h *Handler) HandleUnfeaturePost(w http.ResponseWriter, r *http.Request) {
	principal, err := authz.FromRequest(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	var req featurePostRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	postID, err := primitive.ObjectIDFromHex(req.PostID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.ValidationField("postId", "invalid postId"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "unfeature post")
	defer cancel()

	if err := h.Users.RemoveFeaturedPost(ctx, principal.UserID, postID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.OK(w, "post unfeatured")
}
