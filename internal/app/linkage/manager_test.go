package linkage

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	imagestore "github.com/chroniclehq/chronicle/internal/app/store/images"
	snippetstore "github.com/chroniclehq/chronicle/internal/app/store/snippets"
	"github.com/chroniclehq/chronicle/internal/testutil"
)

func newManager(t *testing.T) (*Manager, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	f := testutil.NewFixtures(t, db)
	m := &Manager{
		Snippets: snippetstore.New(db),
		Images:   imagestore.New(db),
		Log:      zap.NewNop(),
	}
	return m, f
}

func assertLinked(t *testing.T, ctx context.Context, m *Manager, snippetID, postID primitive.ObjectID, want bool) {
	t.Helper()
	sn, err := m.Snippets.GetByID(ctx, snippetID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	got := false
	for _, id := range sn.LinkedPosts {
		if id == postID {
			got = true
		}
	}
	if got != want {
		t.Errorf("snippet %s linked to post = %v, want %v", snippetID.Hex(), got, want)
	}
}

func TestSyncPostLinksSymmetry(t *testing.T) {
	m, f := newManager(t)
	ctx := testutil.TestContext(t)

	owner := primitive.NewObjectID()
	project := f.CreateProject(ctx, "Garden", owner)
	a := f.CreateSnippet(ctx, project.ID, owner, "a")
	b := f.CreateSnippet(ctx, project.ID, owner, "b")
	c := f.CreateSnippet(ctx, project.ID, owner, "c")

	postID := primitive.NewObjectID()

	// First save selects a and b.
	if err := m.SyncPostLinks(ctx, postID, []primitive.ObjectID{a.ID, b.ID}); err != nil {
		t.Fatalf("SyncPostLinks: %v", err)
	}
	assertLinked(t, ctx, m, a.ID, postID, true)
	assertLinked(t, ctx, m, b.ID, postID, true)
	assertLinked(t, ctx, m, c.ID, postID, false)

	// Second save swaps b for c.
	if err := m.SyncPostLinks(ctx, postID, []primitive.ObjectID{a.ID, c.ID}); err != nil {
		t.Fatalf("SyncPostLinks: %v", err)
	}
	assertLinked(t, ctx, m, a.ID, postID, true)
	assertLinked(t, ctx, m, b.ID, postID, false)
	assertLinked(t, ctx, m, c.ID, postID, true)

	// Deleting the post unlinks everything.
	if err := m.UnlinkPost(ctx, postID); err != nil {
		t.Fatalf("UnlinkPost: %v", err)
	}
	assertLinked(t, ctx, m, a.ID, postID, false)
	assertLinked(t, ctx, m, c.ID, postID, false)
}

func TestCollectGarbage(t *testing.T) {
	m, f := newManager(t)
	ctx := testutil.TestContext(t)

	userID := primitive.NewObjectID()
	const tempID = "draft-abc123"
	const urlName = "2026-06-01-garden-notes-x1y2z3"

	kept := f.CreateImage(ctx, userID, "images/kept.png", tempID)
	orphan := f.CreateImage(ctx, userID, "images/orphan.png", tempID)

	body := "some text with an embedded image images/kept.png and nothing else"

	if err := m.CollectGarbage(ctx, []string{tempID}, body, urlName); err != nil {
		t.Fatalf("CollectGarbage: %v", err)
	}

	// The referenced image survives, rebound to the post's urlName.
	images, err := m.Images.FindByAttached(ctx, urlName)
	if err != nil {
		t.Fatalf("FindByAttached: %v", err)
	}
	if len(images) != 1 || images[0].ID != kept.ID {
		t.Fatalf("surviving images = %v, want just the referenced one", images)
	}

	// The unreferenced image is gone from every binding.
	for _, attached := range []string{tempID, urlName} {
		images, err := m.Images.FindByAttached(ctx, attached)
		if err != nil {
			t.Fatalf("FindByAttached(%s): %v", attached, err)
		}
		for _, img := range images {
			if img.ID == orphan.ID {
				t.Errorf("orphaned image still present under %q", attached)
			}
		}
	}
}

func TestPurgeImages(t *testing.T) {
	m, f := newManager(t)
	ctx := testutil.TestContext(t)

	userID := primitive.NewObjectID()
	const urlName = "2026-06-01-doomed-post-abc"

	f.CreateImage(ctx, userID, "images/one.png", urlName)
	f.CreateImage(ctx, userID, "images/two.png", urlName)
	other := f.CreateImage(ctx, userID, "images/other.png", "some-other-post")

	if err := m.PurgeImages(ctx, []string{urlName}); err != nil {
		t.Fatalf("PurgeImages: %v", err)
	}

	images, err := m.Images.FindByAttached(ctx, urlName)
	if err != nil {
		t.Fatalf("FindByAttached: %v", err)
	}
	if len(images) != 0 {
		t.Errorf("purged post still has %d images", len(images))
	}

	images, err = m.Images.FindByAttached(ctx, "some-other-post")
	if err != nil {
		t.Fatalf("FindByAttached: %v", err)
	}
	if len(images) != 1 || images[0].ID != other.ID {
		t.Errorf("unrelated image affected by purge: %v", images)
	}
}
