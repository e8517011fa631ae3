// internal/app/features/posts/handler.go
package posts

import (
	"go.uber.org/zap"

	"github.com/chroniclehq/chronicle/internal/app/linkage"
	poststore "github.com/chroniclehq/chronicle/internal/app/store/posts"
	projectstore "github.com/chroniclehq/chronicle/internal/app/store/projects"
	tagstore "github.com/chroniclehq/chronicle/internal/app/store/tags"
	userstore "github.com/chroniclehq/chronicle/internal/app/store/users"
)

// Handler is the shared dependency container for the posts feature. A post
// save touches four collections (posts, snippets, images, tags) plus the
// project vocabulary, so the handler carries the linkage manager and the
// stores it needs directly.
type Handler struct {
	Posts    *poststore.Store
	Projects *projectstore.Store
	Tags     *tagstore.Store
	Users    *userstore.Store
	Linkage  *linkage.Manager
	Log      *zap.Logger
}

func NewHandler(posts *poststore.Store, projects *projectstore.Store, tags *tagstore.Store, users *userstore.Store, lm *linkage.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		Posts:    posts,
		Projects: projects,
		Tags:     tags,
		Users:    users,
		Linkage:  lm,
		Log:      logger,
	}
}
