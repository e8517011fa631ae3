// internal/app/features/projects/feed.go
package projects

import (
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chroniclehq/chronicle/internal/app/feed"
	"github.com/chroniclehq/chronicle/internal/app/system/authz"
	"github.com/chroniclehq/chronicle/internal/app/system/httpjson"
	"github.com/chroniclehq/chronicle/internal/app/system/timeouts"
)

// HandleFeed serves one page of the project's merged snippet/post stream.
// Anonymous callers and non-members get public posts only; members get
// everything. Query params: page (1-indexed), search, tag, kind
// (post|snippet, the tab selector), linked (snippets embedded in a post).
func (h *Handler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	viewer := primitive.NilObjectID
	if principal, err := authz.FromRequest(r); err == nil {
		viewer = principal.UserID
	}

	q := feed.Query{
		Search: r.URL.Query().Get("search"),
		Tag:    r.URL.Query().Get("tag"),
		Kind:   r.URL.Query().Get("kind"),
		Linked: r.URL.Query().Get("linked") == "true",
	}
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		q.Page = p
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "project feed")
	defer cancel()

	project, err := h.loadProject(ctx, w, r)
	if err != nil {
		return
	}

	page, err := h.Feed.List(ctx, project, viewer, q)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, page)
}
