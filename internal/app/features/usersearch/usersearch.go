// Package usersearch backs the collaborator picker: signed-in users can
// look up other accounts by email prefix.
package usersearch

import (
	"net/http"

	"go.uber.org/zap"

	userstore "github.com/chroniclehq/chronicle/internal/app/store/users"
	"github.com/chroniclehq/chronicle/internal/app/system/apperr"
	"github.com/chroniclehq/chronicle/internal/app/system/authz"
	"github.com/chroniclehq/chronicle/internal/app/system/httpjson"
	"github.com/chroniclehq/chronicle/internal/app/system/timeouts"
)

const maxResults = 10

type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}

// result exposes only what the picker needs; the full user document stays
// server-side.
type result struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
}

// HandleSearch finds users by email prefix. Requires a session so the
// user directory is not open to anonymous scraping; short queries return
// nothing rather than everything.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if _, err := authz.FromRequest(r); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	q := r.URL.Query().Get("email")
	if len(q) < 3 {
		httpjson.Error(w, h.Log, apperr.ValidationField("email", "query too short"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "user search")
	defer cancel()

	users, err := h.Users.SearchByEmail(ctx, q, maxResults)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	results := make([]result, len(users))
	for i, u := range users {
		results[i] = result{
			ID:    u.ID.Hex(),
			Name:  u.Name,
			Email: u.Email,
			Image: u.Image,
		}
	}
	httpjson.Write(w, http.StatusOK, results)
}
