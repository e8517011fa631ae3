// Package sanitize cleans user-authored markup before it is stored.
package sanitize

import "github.com/microcosm-cc/bluemonday"

var bodyPolicy = bluemonday.UGCPolicy()

// Body strips unsafe HTML from user-authored post and snippet bodies while
// keeping the formatting tags the editor emits. Image URLs pass through
// untouched, which matters for image garbage collection: the stored body
// must still contain the attachment keys.
func Body(s string) string {
	return bodyPolicy.Sanitize(s)
}
