// internal/app/features/profile/handler.go
package profile

import (
	"go.uber.org/zap"

	poststore "github.com/chroniclehq/chronicle/internal/app/store/posts"
	projectstore "github.com/chroniclehq/chronicle/internal/app/store/projects"
	userstore "github.com/chroniclehq/chronicle/internal/app/store/users"
)

// Handler is the shared dependency container for public profiles.
type Handler struct {
	Users    *userstore.Store
	Projects *projectstore.Store
	Posts    *poststore.Store
	Log      *zap.Logger
}

func NewHandler(users *userstore.Store, projects *projectstore.Store, posts *poststore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Users:    users,
		Projects: projects,
		Posts:    posts,
		Log:      logger,
	}
}
