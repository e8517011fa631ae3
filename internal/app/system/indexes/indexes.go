// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	imagestore "github.com/chroniclehq/chronicle/internal/app/store/images"
	poststore "github.com/chroniclehq/chronicle/internal/app/store/posts"
	projectstore "github.com/chroniclehq/chronicle/internal/app/store/projects"
	snippetstore "github.com/chroniclehq/chronicle/internal/app/store/snippets"
	substore "github.com/chroniclehq/chronicle/internal/app/store/subscriptions"
	tagstore "github.com/chroniclehq/chronicle/internal/app/store/tags"
	userstore "github.com/chroniclehq/chronicle/internal/app/store/users"
)

// EnsureAll is called at startup. Each store's EnsureIndexes is idempotent.
// Errors are aggregated so every problem is visible and startup can fail
// fast.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(name string, fn func(context.Context) error) {
		if err := fn(ctx); err != nil {
			problems = append(problems, name+": "+err.Error())
		}
	}

	ensure("users", userstore.New(db).EnsureIndexes)
	ensure("projects", projectstore.New(db).EnsureIndexes)
	ensure("snippets", snippetstore.New(db).EnsureIndexes)
	ensure("posts", poststore.New(db).EnsureIndexes)
	ensure("images", imagestore.New(db).EnsureIndexes)
	ensure("tags", tagstore.New(db).EnsureIndexes)
	ensure("subscriptions", substore.New(db).EnsureIndexes)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
