// internal/app/features/projects/crud.go
package projects

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/chroniclehq/chronicle/internal/app/policy/projectpolicy"
	projectstore "github.com/chroniclehq/chronicle/internal/app/store/projects"
	"github.com/chroniclehq/chronicle/internal/app/system/apperr"
	"github.com/chroniclehq/chronicle/internal/app/system/authz"
	"github.com/chroniclehq/chronicle/internal/app/system/httpjson"
	"github.com/chroniclehq/chronicle/internal/app/system/slugs"
	"github.com/chroniclehq/chronicle/internal/app/system/timeouts"
	"github.com/chroniclehq/chronicle/internal/domain/models"
)

type saveProjectRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description,omitempty" validate:"max=1000"`
}

// HandleCreateProject creates a project owned by the caller.
func (h *Handler) HandleCreateProject(w http.ResponseWriter, r *http.Request) {
	principal, err := authz.FromRequest(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	var req saveProjectRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create project")
	defer cancel()

	project := models.Project{
		UserID:      principal.UserID,
		Name:        req.Name,
		Description: req.Description,
		URLName:     slugs.ForProject(req.Name),
	}
	project, err = h.Projects.Create(ctx, project)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	h.Log.Info("project created",
		zap.String("project_id", project.ID.Hex()),
		zap.String("user_id", principal.UserID.Hex()))

	httpjson.Write(w, http.StatusOK, project)
}

// HandleListProjects returns the projects the caller owns or collaborates
// on, newest first.
func (h *Handler) HandleListProjects(w http.ResponseWriter, r *http.Request) {
	principal, err := authz.FromRequest(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list projects")
	defer cancel()

	list, err := h.Projects.ListByMember(ctx, principal.UserID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if list == nil {
		list = []models.Project{}
	}
	httpjson.Write(w, http.StatusOK, list)
}

// HandleGetProject serves a single project. Projects themselves are
// publicly viewable; their private content is filtered at the feed and
// post layers.
func (h *Handler) HandleGetProject(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get project")
	defer cancel()

	project, err := h.loadProject(ctx, w, r)
	if err != nil {
		return
	}
	httpjson.Write(w, http.StatusOK, project)
}

// HandleUpdateProject renames a project or changes its description. The
// urlName is stable after creation.
func (h *Handler) HandleUpdateProject(w http.ResponseWriter, r *http.Request) {
	principal, err := authz.FromRequest(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	var req saveProjectRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update project")
	defer cancel()

	project, err := h.loadProject(ctx, w, r)
	if err != nil {
		return
	}
	if !projectpolicy.CanWrite(project, principal.UserID) {
		httpjson.Error(w, h.Log, apperr.Forbidden(""))
		return
	}

	project.Name = req.Name
	project.Description = req.Description
	if err := h.Projects.Update(ctx, project.ID, project); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.OK(w, "project updated")
}

// HandleDeleteProject removes a project and cascades: all posts (with
// their image attachments and snippet links), all snippets, all
// subscriptions, and any profile feature entries pointing at the deleted
// content.
func (h *Handler) HandleDeleteProject(w http.ResponseWriter, r *http.Request) {
	principal, err := authz.FromRequest(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Batch(), h.Log, "delete project")
	defer cancel()

	project, err := h.loadProject(ctx, w, r)
	if err != nil {
		return
	}
	if !projectpolicy.CanAdminister(project, principal.UserID) {
		httpjson.Error(w, h.Log, apperr.Forbidden(""))
		return
	}

	// Collect the posts first: image purging needs their urlNames and the
	// profile cleanup needs their ids.
	posts, err := h.Posts.Find(ctx, bson.M{"project_id": project.ID})
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	postIDs := make([]primitive.ObjectID, len(posts))
	urlNames := make([]string, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
		urlNames[i] = p.URLName
	}

	if err := h.Linkage.PurgeImages(ctx, urlNames); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if _, err := h.Posts.DeleteByProject(ctx, project.ID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if _, err := h.Snippets.DeleteByProject(ctx, project.ID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if _, err := h.Subs.DeleteByProject(ctx, project.ID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if err := h.Users.RemoveFeaturedProjectAll(ctx, project.ID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if err := h.Users.RemoveFeaturedPostsAll(ctx, postIDs); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if _, err := h.Projects.Delete(ctx, project.ID); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	h.Log.Info("project deleted",
		zap.String("project_id", project.ID.Hex()),
		zap.Int("posts", len(postIDs)),
		zap.String("user_id", principal.UserID.Hex()))

	httpjson.OK(w, "project deleted")
}

// loadProject resolves {urlName} to a project, writing the 404 itself when
// it does not exist.
func (h *Handler) loadProject(ctx context.Context, w http.ResponseWriter, r *http.Request) (models.Project, error) {
	urlName := chi.URLParam(r, "urlName")
	project, err := h.Projects.GetByURLName(ctx, urlName)
	if err != nil {
		if err == projectstore.ErrNotFound {
			e := apperr.NotFound("project not found")
			httpjson.Error(w, h.Log, e)
			return models.Project{}, e
		}
		httpjson.Error(w, h.Log, err)
		return models.Project{}, err
	}
	return project, nil
}
