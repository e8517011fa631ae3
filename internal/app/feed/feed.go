// Package feed produces a project's unified activity stream: snippets and
// posts interleaved into one reverse-chronological list.
//
// The two entity kinds live in separate collections, so a page is built by
// querying each collection with the viewer-appropriate filter, merging the
// results in memory, and slicing out the requested window. Each collection
// is asked for enough documents to cover the window (page * PageSize) so
// the merge can never run short on either side.
package feed

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chroniclehq/chronicle/internal/app/policy/projectpolicy"
	poststore "github.com/chroniclehq/chronicle/internal/app/store/posts"
	snippetstore "github.com/chroniclehq/chronicle/internal/app/store/snippets"
	"github.com/chroniclehq/chronicle/internal/domain/models"
)

// PageSize is the fixed number of items per feed page.
const PageSize = 10

// Item kinds.
const (
	KindSnippet = "snippet"
	KindPost    = "post"
)

// Item is one entry in the merged feed. Kind discriminates which of the
// two payload fields is set.
type Item struct {
	Kind    string          `json:"type"`
	Snippet *models.Snippet `json:"snippet,omitempty"`
	Post    *models.Post    `json:"post,omitempty"`

	createdAt time.Time
	score     float64
}

// CreatedAt returns the timestamp the item is ordered by.
func (it Item) CreatedAt() time.Time { return it.createdAt }

// Query narrows a feed listing. Page is 1-indexed; values below 1 are
// treated as 1. An empty Search means no text filtering. Kind restricts
// the stream to one item kind; empty means both. Linked keeps only
// snippets that have been embedded in at least one post.
type Query struct {
	Page   int
	Search string
	Tag    string
	Kind   string
	Linked bool
}

// Page is one window of the feed plus the exact total across all pages.
type Page struct {
	Items []Item `json:"items"`
	Total int64  `json:"total"`
	Page  int    `json:"page"`
}

// Aggregator builds feed pages from the snippet and post stores.
type Aggregator struct {
	Snippets *snippetstore.Store
	Posts    *poststore.Store
}

// List returns one page of the project feed as seen by viewer (NilObjectID
// for anonymous). Members see snippets and all posts; everyone else sees
// public posts only. The total is an exact count of matching items, not an
// estimate from the fetched window.
func (a *Aggregator) List(ctx context.Context, project models.Project, viewer primitive.ObjectID, q Query) (Page, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	member := viewer != primitive.NilObjectID && project.IsMember(viewer)
	fetch := int64(q.Page) * PageSize

	wantPosts := q.Kind != KindSnippet
	wantSnippets := member && q.Kind != KindPost

	postFilter := bson.M{
		"project_id": project.ID,
		"privacy":    bson.M{"$in": projectpolicy.VisiblePrivacies(project, viewer)},
	}
	snippetFilter := bson.M{"project_id": project.ID}
	if q.Tag != "" {
		postFilter["tags"] = q.Tag
		snippetFilter["tags"] = q.Tag
	}
	if q.Search != "" {
		postFilter["$text"] = bson.M{"$search": q.Search}
		snippetFilter["$text"] = bson.M{"$search": q.Search}
	}
	if q.Linked {
		snippetFilter["linked_posts.0"] = bson.M{"$exists": true}
	}

	var items []Item

	if q.Search != "" {
		if wantPosts {
			posts, err := a.Posts.SearchText(ctx, postFilter, fetch)
			if err != nil {
				return Page{}, err
			}
			for i := range posts {
				p := posts[i].Post
				items = append(items, Item{Kind: KindPost, Post: &p, createdAt: p.CreatedAt, score: posts[i].Score})
			}
		}
		if wantSnippets {
			snippets, err := a.Snippets.SearchText(ctx, snippetFilter, fetch)
			if err != nil {
				return Page{}, err
			}
			for i := range snippets {
				sn := snippets[i].Snippet
				items = append(items, Item{Kind: KindSnippet, Snippet: &sn, createdAt: sn.CreatedAt, score: snippets[i].Score})
			}
		}
	} else {
		opts := options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetLimit(fetch)
		if wantPosts {
			posts, err := a.Posts.Find(ctx, postFilter, opts)
			if err != nil {
				return Page{}, err
			}
			for i := range posts {
				items = append(items, Item{Kind: KindPost, Post: &posts[i], createdAt: posts[i].CreatedAt})
			}
		}
		if wantSnippets {
			snippets, err := a.Snippets.Find(ctx, snippetFilter, opts)
			if err != nil {
				return Page{}, err
			}
			for i := range snippets {
				items = append(items, Item{Kind: KindSnippet, Snippet: &snippets[i], createdAt: snippets[i].CreatedAt})
			}
		}
	}

	Sort(items, q.Search != "")

	var total int64
	if wantPosts {
		n, err := a.Posts.Count(ctx, postFilter)
		if err != nil {
			return Page{}, err
		}
		total += n
	}
	if wantSnippets {
		n, err := a.Snippets.Count(ctx, snippetFilter)
		if err != nil {
			return Page{}, err
		}
		total += n
	}

	return Page{
		Items: Window(items, q.Page),
		Total: total,
		Page:  q.Page,
	}, nil
}

// Sort orders merged feed items in place: by relevance score when
// searching (recency breaks ties), otherwise newest first.
func Sort(items []Item, byScore bool) {
	sort.SliceStable(items, func(i, j int) bool {
		if byScore && items[i].score != items[j].score {
			return items[i].score > items[j].score
		}
		return items[i].createdAt.After(items[j].createdAt)
	})
}

// Window slices the 1-indexed page out of the merged list. A page past the
// end is empty, not an error.
func Window(items []Item, page int) []Item {
	start := (page - 1) * PageSize
	if start >= len(items) {
		return []Item{}
	}
	end := start + PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// NewItem builds a feed item for tests and callers outside this package.
func NewItem(kind string, createdAt time.Time, score float64) Item {
	return Item{Kind: kind, createdAt: createdAt, score: score}
}
