package userstore

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chroniclehq/chronicle/internal/domain/models"
	"github.com/chroniclehq/chronicle/internal/testutil"
)

func TestGetByEmailCaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := New(db)

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}

	created, err := store.Create(ctx, models.User{
		Name:     "Ada",
		Username: "ada",
		Email:    "Ada@Example.com",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.GetByEmail(ctx, "ADA@example.COM")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("GetByEmail id = %s, want %s", got.ID.Hex(), created.ID.Hex())
	}

	// Same address, different casing, is still a duplicate.
	_, err = store.Create(ctx, models.User{
		Name:     "Imposter",
		Username: "ada2",
		Email:    "ada@example.com",
	})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("duplicate Create err = %v, want ErrDuplicateEmail", err)
	}
}

func TestSearchByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)
	store := New(db)

	f.CreateUser(ctx, "Ada", "ada@example.com")
	f.CreateUser(ctx, "Adam", "adam@example.com")
	f.CreateUser(ctx, "Grace", "grace@example.com")

	users, err := store.SearchByEmail(ctx, "ADA", 10)
	if err != nil {
		t.Fatalf("SearchByEmail: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("SearchByEmail returned %d users, want 2", len(users))
	}

	// Metacharacters in the prefix are literal, not regex.
	users, err = store.SearchByEmail(ctx, "a.a", 10)
	if err != nil {
		t.Fatalf("SearchByEmail: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("dotted prefix matched %d users, want 0", len(users))
	}
}

func TestFeaturedLists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)
	store := New(db)

	a := f.CreateUser(ctx, "Ada", "ada@example.com")
	b := f.CreateUser(ctx, "Grace", "grace@example.com")

	postID := primitive.NewObjectID()
	projectID := primitive.NewObjectID()

	if err := store.AddFeaturedPost(ctx, a.ID, postID); err != nil {
		t.Fatalf("AddFeaturedPost: %v", err)
	}
	// Repeat add is a no-op, not a duplicate.
	if err := store.AddFeaturedPost(ctx, a.ID, postID); err != nil {
		t.Fatalf("AddFeaturedPost (repeat): %v", err)
	}
	if err := store.AddFeaturedPost(ctx, b.ID, postID); err != nil {
		t.Fatalf("AddFeaturedPost: %v", err)
	}
	if err := store.AddFeaturedProject(ctx, a.ID, projectID); err != nil {
		t.Fatalf("AddFeaturedProject: %v", err)
	}

	got, err := store.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.FeaturedPosts) != 1 {
		t.Errorf("FeaturedPosts = %v, want exactly one entry", got.FeaturedPosts)
	}

	// Deleting the post clears it from every profile at once.
	if err := store.RemoveFeaturedPostsAll(ctx, []primitive.ObjectID{postID}); err != nil {
		t.Fatalf("RemoveFeaturedPostsAll: %v", err)
	}
	for _, id := range []primitive.ObjectID{a.ID, b.ID} {
		got, err := store.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if len(got.FeaturedPosts) != 0 {
			t.Errorf("user %s still features deleted post", id.Hex())
		}
	}

	if err := store.RemoveFeaturedProjectAll(ctx, projectID); err != nil {
		t.Fatalf("RemoveFeaturedProjectAll: %v", err)
	}
	got, err = store.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.FeaturedProjects) != 0 {
		t.Errorf("FeaturedProjects = %v, want empty after project removal", got.FeaturedProjects)
	}

	if err := store.AddFeaturedPost(ctx, primitive.NewObjectID(), postID); !errors.Is(err, ErrNotFound) {
		t.Errorf("AddFeaturedPost for missing user err = %v, want ErrNotFound", err)
	}
}
