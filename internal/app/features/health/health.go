// Package health exposes the liveness endpoint.
package health

import (
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/chroniclehq/chronicle/internal/app/system/httpjson"
	"github.com/chroniclehq/chronicle/internal/app/system/timeouts"
)

type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

// HandleHealth pings the database and reports ok or degraded. A degraded
// response is still 200 so load balancers keep the instance for static
// serving; automation should inspect the body.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Ping(), h.Log, "health ping")
	defer cancel()

	status := "ok"
	if err := h.DB.Client().Ping(ctx, nil); err != nil {
		h.Log.Warn("health ping failed", zap.Error(err))
		status = "degraded"
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": status})
}
