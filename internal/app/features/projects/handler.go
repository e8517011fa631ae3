// internal/app/features/projects/handler.go
package projects

import (
	"go.uber.org/zap"

	"github.com/chroniclehq/chronicle/internal/app/feed"
	"github.com/chroniclehq/chronicle/internal/app/linkage"
	poststore "github.com/chroniclehq/chronicle/internal/app/store/posts"
	projectstore "github.com/chroniclehq/chronicle/internal/app/store/projects"
	snippetstore "github.com/chroniclehq/chronicle/internal/app/store/snippets"
	substore "github.com/chroniclehq/chronicle/internal/app/store/subscriptions"
	userstore "github.com/chroniclehq/chronicle/internal/app/store/users"
)

// Handler is the shared dependency container for the projects feature.
// Project deletion cascades across most of the data model, so this handler
// carries more stores than the others.
type Handler struct {
	Projects *projectstore.Store
	Posts    *poststore.Store
	Snippets *snippetstore.Store
	Subs     *substore.Store
	Users    *userstore.Store
	Feed     *feed.Aggregator
	Linkage  *linkage.Manager
	Log      *zap.Logger
}

func NewHandler(projects *projectstore.Store, posts *poststore.Store, snippets *snippetstore.Store, subs *substore.Store, users *userstore.Store, agg *feed.Aggregator, lm *linkage.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		Projects: projects,
		Posts:    posts,
		Snippets: snippets,
		Subs:     subs,
		Users:    users,
		Feed:     agg,
		Linkage:  lm,
		Log:      logger,
	}
}
