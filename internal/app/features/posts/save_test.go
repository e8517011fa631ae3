package posts

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/chroniclehq/chronicle/internal/app/linkage"
	imagestore "github.com/chroniclehq/chronicle/internal/app/store/images"
	poststore "github.com/chroniclehq/chronicle/internal/app/store/posts"
	projectstore "github.com/chroniclehq/chronicle/internal/app/store/projects"
	snippetstore "github.com/chroniclehq/chronicle/internal/app/store/snippets"
	tagstore "github.com/chroniclehq/chronicle/internal/app/store/tags"
	userstore "github.com/chroniclehq/chronicle/internal/app/store/users"
	"github.com/chroniclehq/chronicle/internal/domain/models"
	"github.com/chroniclehq/chronicle/internal/testutil"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	log := zap.NewNop()

	h := NewHandler(
		poststore.New(db),
		projectstore.New(db),
		tagstore.New(db),
		userstore.New(db),
		&linkage.Manager{
			Snippets: snippetstore.New(db),
			Images:   imagestore.New(db),
			Log:      log,
		},
		log,
	)
	return h, f
}

func TestSavePostRequiresSession(t *testing.T) {
	h, _ := newTestHandler(t)

	r := testutil.JSONRequest(http.MethodPost, "/post", `{}`)
	w := httptest.NewRecorder()
	h.HandleSavePost(w, r)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

func TestSavePostValidation(t *testing.T) {
	h, f := newTestHandler(t)
	ctx := testutil.TestContext(t)

	user := f.CreateUser(ctx, "Ada", "ada@example.com")
	f.CreateProject(ctx, "Garden", user.ID)

	r := testutil.WithUser(testutil.JSONRequest(http.MethodPost, "/post", `{"title":"Hello"}`), user)
	w := httptest.NewRecorder()
	h.HandleSavePost(w, r)

	if w.Code != http.StatusNotAcceptable {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotAcceptable)
	}
	var body struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	for _, field := range []string{"projectId", "body", "privacy"} {
		if _, ok := body.Fields[field]; !ok {
			t.Errorf("missing field error for %q, got %v", field, body.Fields)
		}
	}
}

func TestSavePostForbiddenForStranger(t *testing.T) {
	h, f := newTestHandler(t)
	ctx := testutil.TestContext(t)

	owner := f.CreateUser(ctx, "Ada", "ada@example.com")
	stranger := f.CreateUser(ctx, "Mallory", "mallory@example.com")
	project := f.CreateProject(ctx, "Garden", owner.ID)

	payload := fmt.Sprintf(`{"projectId":%q,"title":"Intrusion","body":"hi","privacy":"public"}`, project.ID.Hex())
	r := testutil.WithUser(testutil.JSONRequest(http.MethodPost, "/post", payload), stranger)
	w := httptest.NewRecorder()
	h.HandleSavePost(w, r)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

func TestSavePostCreate(t *testing.T) {
	h, f := newTestHandler(t)
	ctx := testutil.TestContext(t)

	user := f.CreateUser(ctx, "Ada", "ada@example.com")
	project := f.CreateProject(ctx, "Garden", user.ID)
	sn := f.CreateSnippet(ctx, project.ID, user.ID, "raw material")

	payload := fmt.Sprintf(
		`{"projectId":%q,"title":"First Harvest of the Season","body":"<p>notes</p>","privacy":"public","tags":["Compost"," soil "],"snippets":[%q]}`,
		project.ID.Hex(), sn.ID.Hex())
	r := testutil.WithUser(testutil.JSONRequest(http.MethodPost, "/post", payload), user)
	w := httptest.NewRecorder()
	h.HandleSavePost(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	var post models.Post
	if err := json.Unmarshal(w.Body.Bytes(), &post); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	wantPrefix := time.Now().UTC().Format("2006-01-02") + "-first-harvest-of-the-season-"
	if !strings.HasPrefix(post.URLName, wantPrefix) {
		t.Errorf("urlName = %q, want prefix %q", post.URLName, wantPrefix)
	}
	if len(post.Tags) != 2 || post.Tags[0] != "compost" || post.Tags[1] != "soil" {
		t.Errorf("tags = %v, want normalized [compost soil]", post.Tags)
	}

	// The snippet picked up the back-link.
	got, err := h.Linkage.Snippets.GetByID(ctx, sn.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.LinkedPosts) != 1 || got.LinkedPosts[0] != post.ID {
		t.Errorf("snippet links = %v, want [%s]", got.LinkedPosts, post.ID.Hex())
	}

	// The project vocabulary absorbed the tags.
	proj, err := h.Projects.GetByID(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(proj.AvailableTags) != 2 {
		t.Errorf("project availableTags = %v, want both new tags", proj.AvailableTags)
	}
}

func TestGetPostPrivacy(t *testing.T) {
	h, f := newTestHandler(t)
	ctx := testutil.TestContext(t)

	owner := f.CreateUser(ctx, "Ada", "ada@example.com")
	project := f.CreateProject(ctx, "Garden", owner.ID)
	post := f.CreatePost(ctx, project.ID, owner.ID, "secret", models.PrivacyPrivate)

	get := func(r *http.Request) int {
		r = testutil.WithChiURLParam(r, "urlName", post.URLName)
		w := httptest.NewRecorder()
		h.HandleGetPost(w, r)
		return w.Code
	}

	// Anonymous callers read a private post as absent.
	if code := get(httptest.NewRequest(http.MethodGet, "/post/"+post.URLName, nil)); code != http.StatusNotFound {
		t.Errorf("anonymous status = %d, want %d", code, http.StatusNotFound)
	}

	// Members read it normally.
	r := testutil.WithUser(httptest.NewRequest(http.MethodGet, "/post/"+post.URLName, nil), owner)
	if code := get(r); code != http.StatusOK {
		t.Errorf("member status = %d, want %d", code, http.StatusOK)
	}
}
