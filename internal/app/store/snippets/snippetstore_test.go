package snippetstore

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chroniclehq/chronicle/internal/testutil"
)

func TestLinkedPostOperations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)
	store := New(db)

	owner := primitive.NewObjectID()
	project := f.CreateProject(ctx, "Garden", owner)
	a := f.CreateSnippet(ctx, project.ID, owner, "first")
	b := f.CreateSnippet(ctx, project.ID, owner, "second")
	c := f.CreateSnippet(ctx, project.ID, owner, "third")

	postID := primitive.NewObjectID()

	if err := store.AddLinkedPost(ctx, []primitive.ObjectID{a.ID, b.ID}, postID); err != nil {
		t.Fatalf("AddLinkedPost: %v", err)
	}

	linked, err := store.FindLinking(ctx, postID)
	if err != nil {
		t.Fatalf("FindLinking: %v", err)
	}
	if len(linked) != 2 {
		t.Fatalf("FindLinking returned %d ids, want 2", len(linked))
	}

	// Adding again must not duplicate.
	if err := store.AddLinkedPost(ctx, []primitive.ObjectID{a.ID}, postID); err != nil {
		t.Fatalf("AddLinkedPost (repeat): %v", err)
	}
	got, err := store.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.LinkedPosts) != 1 {
		t.Errorf("LinkedPosts = %v, want exactly one entry", got.LinkedPosts)
	}

	if err := store.RemoveLinkedPost(ctx, []primitive.ObjectID{a.ID}, postID); err != nil {
		t.Fatalf("RemoveLinkedPost: %v", err)
	}
	linked, err = store.FindLinking(ctx, postID)
	if err != nil {
		t.Fatalf("FindLinking: %v", err)
	}
	if len(linked) != 1 || linked[0] != b.ID {
		t.Errorf("after removal, linking ids = %v, want just %s", linked, b.ID.Hex())
	}

	// RemoveLinkedPostAll clears the rest.
	if err := store.RemoveLinkedPostAll(ctx, postID); err != nil {
		t.Fatalf("RemoveLinkedPostAll: %v", err)
	}
	linked, err = store.FindLinking(ctx, postID)
	if err != nil {
		t.Fatalf("FindLinking: %v", err)
	}
	if len(linked) != 0 {
		t.Errorf("after unlink-all, linking ids = %v, want none", linked)
	}

	// c was never linked.
	got, err = store.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.LinkedPosts) != 0 {
		t.Errorf("untouched snippet has links: %v", got.LinkedPosts)
	}
}

func TestCountLinked(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)
	store := New(db)

	owner := primitive.NewObjectID()
	project := f.CreateProject(ctx, "Garden", owner)

	var first primitive.ObjectID
	for i := 0; i < 4; i++ {
		sn := f.CreateSnippet(ctx, project.ID, owner, "note")
		if i == 0 {
			first = sn.ID
		}
	}

	n, err := store.CountLinked(ctx, project.ID)
	if err != nil {
		t.Fatalf("CountLinked: %v", err)
	}
	if n != 0 {
		t.Errorf("CountLinked = %d, want 0", n)
	}

	postID := primitive.NewObjectID()
	if err := store.AddLinkedPost(ctx, []primitive.ObjectID{first}, postID); err != nil {
		t.Fatalf("AddLinkedPost: %v", err)
	}

	n, err = store.CountLinked(ctx, project.ID)
	if err != nil {
		t.Fatalf("CountLinked: %v", err)
	}
	if n != 1 {
		t.Errorf("CountLinked = %d, want 1", n)
	}
}

func TestMoveToProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	f := testutil.NewFixtures(t, db)
	store := New(db)

	owner := primitive.NewObjectID()
	src := f.CreateProject(ctx, "Source", owner)
	dst := f.CreateProject(ctx, "Destination", owner)
	a := f.CreateSnippet(ctx, src.ID, owner, "moves")
	b := f.CreateSnippet(ctx, src.ID, owner, "stays")

	moved, err := store.MoveToProject(ctx, []primitive.ObjectID{a.ID}, dst.ID)
	if err != nil {
		t.Fatalf("MoveToProject: %v", err)
	}
	if moved != 1 {
		t.Errorf("moved = %d, want 1", moved)
	}

	got, err := store.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ProjectID != dst.ID {
		t.Errorf("moved snippet project = %s, want %s", got.ProjectID.Hex(), dst.ID.Hex())
	}
	got, err = store.GetByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ProjectID != src.ID {
		t.Errorf("unmoved snippet project changed to %s", got.ProjectID.Hex())
	}
}
