// Package slugs builds the URL identifiers used by posts and projects.
package slugs

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	titleWords = 5
	suffixLen  = 6
)

// ForPost builds a post urlName: the creation date, a slug of the first
// five words of the title, and a short random suffix. The suffix makes
// the name unique even when the same title is posted twice on one day.
func ForPost(title string, createdAt time.Time) string {
	return fmt.Sprintf("%s-%s-%s",
		createdAt.UTC().Format("2006-01-02"),
		truncatedSlug(title, titleWords),
		gonanoid.Must(suffixLen),
	)
}

// ForProject builds a project urlName from its display name, with a short
// random suffix for uniqueness across users.
func ForProject(name string) string {
	return fmt.Sprintf("%s-%s", slug.Make(name), gonanoid.Must(suffixLen))
}

// truncatedSlug slugifies at most the first n whitespace-separated words.
func truncatedSlug(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return slug.Make(strings.Join(words, " "))
}
