// internal/app/features/snippets/handler.go
package snippets

import (
	"go.uber.org/zap"

	projectstore "github.com/chroniclehq/chronicle/internal/app/store/projects"
	snippetstore "github.com/chroniclehq/chronicle/internal/app/store/snippets"
	tagstore "github.com/chroniclehq/chronicle/internal/app/store/tags"
)

// Handler is the shared dependency container for the snippets feature.
type Handler struct {
	Snippets *snippetstore.Store
	Projects *projectstore.Store
	Tags     *tagstore.Store
	Log      *zap.Logger
}

func NewHandler(snippets *snippetstore.Store, projects *projectstore.Store, tags *tagstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Snippets: snippets,
		Projects: projects,
		Tags:     tags,
		Log:      logger,
	}
}
