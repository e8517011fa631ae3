// Package authz bridges the session layer and the handlers: it turns the
// cookie-backed SessionUser into a typed principal id handlers can hand to
// the policy layer.
package authz

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chroniclehq/chronicle/internal/app/system/apperr"
	"github.com/chroniclehq/chronicle/internal/app/system/auth"
)

// Principal identifies the authenticated caller of a request.
type Principal struct {
	UserID   primitive.ObjectID
	Name     string
	Username string
	Email    string
}

// FromRequest extracts the principal from the request context. Returns an
// unauthorized error when there is no session, or the session's user id is
// not a valid ObjectID (a stale or tampered cookie).
func FromRequest(r *http.Request) (Principal, error) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		return Principal{}, apperr.Unauthorized("")
	}
	uid, err := primitive.ObjectIDFromHex(su.ID)
	if err != nil {
		return Principal{}, apperr.Unauthorized("invalid session")
	}
	return Principal{
		UserID:   uid,
		Name:     su.Name,
		Username: su.Username,
		Email:    su.Email,
	}, nil
}
