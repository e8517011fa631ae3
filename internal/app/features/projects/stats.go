// internal/app/features/projects/stats.go
package projects

import (
	"math"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chroniclehq/chronicle/internal/app/policy/projectpolicy"
	"github.com/chroniclehq/chronicle/internal/app/system/apperr"
	"github.com/chroniclehq/chronicle/internal/app/system/authz"
	"github.com/chroniclehq/chronicle/internal/app/system/httpjson"
	"github.com/chroniclehq/chronicle/internal/app/system/timeouts"
)

// StatsResponse summarizes a project's content for its members. The date
// lists carry raw creation timestamps so clients can bucket activity by
// calendar day without another query.
type StatsResponse struct {
	Snippets       int64       `json:"snippets"`
	Posts          int64       `json:"posts"`
	LinkedSnippets int64       `json:"linkedSnippets"`
	PercentLinked  int64       `json:"percentLinked"`
	SnippetDates   []time.Time `json:"snippetDates"`
	PostDates      []time.Time `json:"postDates"`
}

// HandleStats reports content counts and the share of snippets that made
// it into a post. A project with no snippets reports zero percent linked,
// not a division error.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	principal, err := authz.FromRequest(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "project stats")
	defer cancel()

	project, err := h.loadProject(ctx, w, r)
	if err != nil {
		return
	}
	if !projectpolicy.CanReadAll(project, principal.UserID) {
		httpjson.Error(w, h.Log, apperr.Forbidden(""))
		return
	}

	filter := bson.M{"project_id": project.ID}
	dates := options.Find().
		SetProjection(bson.M{"created_at": 1}).
		SetSort(bson.D{{Key: "created_at", Value: 1}})

	allSnippets, err := h.Snippets.Find(ctx, filter, dates)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	linked, err := h.Snippets.CountLinked(ctx, project.ID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	allPosts, err := h.Posts.Find(ctx, filter, dates)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	snippetDates := make([]time.Time, len(allSnippets))
	for i, sn := range allSnippets {
		snippetDates[i] = sn.CreatedAt
	}
	postDates := make([]time.Time, len(allPosts))
	for i, p := range allPosts {
		postDates[i] = p.CreatedAt
	}
	snippets := int64(len(allSnippets))

	httpjson.Write(w, http.StatusOK, StatsResponse{
		Snippets:       snippets,
		Posts:          int64(len(allPosts)),
		LinkedSnippets: linked,
		PercentLinked:  PercentLinked(linked, snippets),
		SnippetDates:   snippetDates,
		PostDates:      postDates,
	})
}

// PercentLinked computes the linked-snippet share as a whole percentage.
// Zero snippets means zero percent.
func PercentLinked(linked, total int64) int64 {
	if total == 0 {
		return 0
	}
	return int64(math.Round(float64(linked) / float64(total) * 100))
}
