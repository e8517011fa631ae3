// internal/app/features/subscriptions/handler.go
package subscriptions

import (
	"go.uber.org/zap"

	projectstore "github.com/chroniclehq/chronicle/internal/app/store/projects"
	substore "github.com/chroniclehq/chronicle/internal/app/store/subscriptions"
)

// Handler is the shared dependency container for the subscriptions
// feature.
type Handler struct {
	Subs     *substore.Store
	Projects *projectstore.Store
	Log      *zap.Logger
}

func NewHandler(subs *substore.Store, projects *projectstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Subs:     subs,
		Projects: projects,
		Log:      logger,
	}
}
