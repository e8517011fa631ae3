package projects

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/chroniclehq/chronicle/internal/app/feed"
	"github.com/chroniclehq/chronicle/internal/app/linkage"
	imagestore "github.com/chroniclehq/chronicle/internal/app/store/images"
	poststore "github.com/chroniclehq/chronicle/internal/app/store/posts"
	projectstore "github.com/chroniclehq/chronicle/internal/app/store/projects"
	snippetstore "github.com/chroniclehq/chronicle/internal/app/store/snippets"
	substore "github.com/chroniclehq/chronicle/internal/app/store/subscriptions"
	userstore "github.com/chroniclehq/chronicle/internal/app/store/users"
	"github.com/chroniclehq/chronicle/internal/domain/models"
	"github.com/chroniclehq/chronicle/internal/testutil"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	log := zap.NewNop()

	snippets := snippetstore.New(db)
	posts := poststore.New(db)

	h := NewHandler(
		projectstore.New(db),
		posts,
		snippets,
		substore.New(db),
		userstore.New(db),
		&feed.Aggregator{Snippets: snippets, Posts: posts},
		&linkage.Manager{
			Snippets: snippets,
			Images:   imagestore.New(db),
			Log:      log,
		},
		log,
	)
	return h, f
}

func TestDeleteProjectRequiresOwner(t *testing.T) {
	h, f := newTestHandler(t)
	ctx := testutil.TestContext(t)

	owner := f.CreateUser(ctx, "Ada", "ada@example.com")
	collab := f.CreateUser(ctx, "Grace", "grace@example.com")
	project := f.CreateProject(ctx, "Garden", owner.ID, collab.ID)

	r := httptest.NewRequest(http.MethodDelete, "/project/"+project.URLName, nil)
	r = testutil.WithChiURLParam(r, "urlName", project.URLName)
	r = testutil.WithUser(r, collab)
	w := httptest.NewRecorder()
	h.HandleDeleteProject(w, r)

	if w.Code != http.StatusForbidden {
		t.Fatalf("collaborator delete status = %d, want %d", w.Code, http.StatusForbidden)
	}
	if _, err := h.Projects.GetByID(ctx, project.ID); err != nil {
		t.Errorf("project was deleted by a collaborator: %v", err)
	}
}

func TestDeleteProjectCascades(t *testing.T) {
	h, f := newTestHandler(t)
	ctx := testutil.TestContext(t)

	owner := f.CreateUser(ctx, "Ada", "ada@example.com")
	fan := f.CreateUser(ctx, "Grace", "grace@example.com")
	project := f.CreateProject(ctx, "Garden", owner.ID)
	other := f.CreateProject(ctx, "Kept", owner.ID)

	post := f.CreatePost(ctx, project.ID, owner.ID, "harvest", models.PrivacyPublic)
	f.CreateSnippet(ctx, project.ID, owner.ID, "doomed note")
	keptSnippet := f.CreateSnippet(ctx, other.ID, owner.ID, "kept note")
	f.CreateImage(ctx, owner.ID, "images/attached.png", post.URLName)

	sub := models.Subscription{ProjectID: project.ID, Email: "fan@example.com"}
	if _, err := h.Subs.Create(ctx, sub); err != nil {
		t.Fatalf("subscribing: %v", err)
	}
	if err := h.Users.AddFeaturedProject(ctx, fan.ID, project.ID); err != nil {
		t.Fatalf("AddFeaturedProject: %v", err)
	}
	if err := h.Users.AddFeaturedPost(ctx, fan.ID, post.ID); err != nil {
		t.Fatalf("AddFeaturedPost: %v", err)
	}

	r := httptest.NewRequest(http.MethodDelete, "/project/"+project.URLName, nil)
	r = testutil.WithChiURLParam(r, "urlName", project.URLName)
	r = testutil.WithUser(r, owner)
	w := httptest.NewRecorder()
	h.HandleDeleteProject(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	if _, err := h.Projects.GetByID(ctx, project.ID); err != projectstore.ErrNotFound {
		t.Errorf("project still present after delete: %v", err)
	}
	if n, _ := h.Posts.Count(ctx, bson.M{"project_id": project.ID}); n != 0 {
		t.Errorf("%d posts survived the cascade", n)
	}
	if n, _ := h.Snippets.Count(ctx, bson.M{"project_id": project.ID}); n != 0 {
		t.Errorf("%d snippets survived the cascade", n)
	}
	if subs, _ := h.Subs.ListByProject(ctx, project.ID); len(subs) != 0 {
		t.Errorf("%d subscriptions survived the cascade", len(subs))
	}
	if images, _ := h.Linkage.Images.FindByAttached(ctx, post.URLName); len(images) != 0 {
		t.Errorf("%d image records survived the cascade", len(images))
	}

	got, err := h.Users.GetByID(ctx, fan.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.FeaturedProjects) != 0 || len(got.FeaturedPosts) != 0 {
		t.Errorf("profile still features deleted content: %+v", got)
	}

	// The sibling project is untouched.
	if _, err := h.Snippets.GetByID(ctx, keptSnippet.ID); err != nil {
		t.Errorf("snippet in another project was deleted: %v", err)
	}
}
