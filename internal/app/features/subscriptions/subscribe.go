// internal/app/features/subscriptions/subscribe.go
package subscriptions

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/chroniclehq/chronicle/internal/app/policy/projectpolicy"
	projectstore "github.com/chroniclehq/chronicle/internal/app/store/projects"
	substore "github.com/chroniclehq/chronicle/internal/app/store/subscriptions"
	"github.com/chroniclehq/chronicle/internal/app/system/apperr"
	"github.com/chroniclehq/chronicle/internal/app/system/authz"
	"github.com/chroniclehq/chronicle/internal/app/system/httpjson"
	"github.com/chroniclehq/chronicle/internal/app/system/timeouts"
	"github.com/chroniclehq/chronicle/internal/domain/models"
)

type subscribeRequest struct {
	ProjectID string `json:"projectId" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

// HandleSubscribe adds an email to a project's subscriber list. Open to
// anyone; subscribing twice with the same email reports a field error
// rather than creating a duplicate.
func (h *Handler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.ValidationField("projectId", "invalid projectId"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "subscribe")
	defer cancel()

	if _, err := h.Projects.GetByID(ctx, projectID); err != nil {
		if err == projectstore.ErrNotFound {
			httpjson.Error(w, h.Log, apperr.NotFound("project not found"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}

	sub, err := h.Subs.Create(ctx, models.Subscription{
		ProjectID: projectID,
		Email:     req.Email,
	})
	if err != nil {
		if err == substore.ErrDuplicate {
			httpjson.Error(w, h.Log, apperr.ValidationField("email", "this email is already subscribed"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}

	h.Log.Info("subscription added",
		zap.String("project_id", projectID.Hex()))

	httpjson.Write(w, http.StatusOK, sub)
}

// HandleUnsubscribe removes an email from a project's subscriber list.
// Unsubscribing an unknown email succeeds quietly so unsubscribe links
// cannot probe the list.
func (h *Handler) HandleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		httpjson.Error(w, h.Log, apperr.ValidationField("projectId", "invalid projectId"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "unsubscribe")
	defer cancel()

	if _, err := h.Subs.Delete(ctx, projectID, req.Email); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.OK(w, "unsubscribed")
}

// HandleListSubscribers returns a project's subscriber list. Owner only.
func (h *Handler) HandleListSubscribers(w http.ResponseWriter, r *http.Request) {
	principal, err := authz.FromRequest(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list subscribers")
	defer cancel()

	project, err := h.Projects.GetByURLName(ctx, chi.URLParam(r, "urlName"))
	if err != nil {
		if err == projectstore.ErrNotFound {
			httpjson.Error(w, h.Log, apperr.NotFound("project not found"))
			return
		}
		httpjson.Error(w, h.Log, err)
		return
	}
	if !projectpolicy.CanAdminister(project, principal.UserID) {
		httpjson.Error(w, h.Log, apperr.Forbidden(""))
		return
	}

	subs, err := h.Subs.ListByProject(ctx, project.ID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	if subs == nil {
		subs = []models.Subscription{}
	}
	httpjson.Write(w, http.StatusOK, subs)
}
