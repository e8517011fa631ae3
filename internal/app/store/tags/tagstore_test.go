package tagstore

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/chroniclehq/chronicle/internal/testutil"
)

func TestNormalizeKeys(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, []string{}},
		{"lowercases and trims", []string{" Compost ", "SOIL"}, []string{"compost", "soil"}},
		{"drops empties", []string{"", "  ", "worms"}, []string{"worms"}},
		{"dedupes keeping first order", []string{"soil", "Compost", "SOIL", "compost"}, []string{"soil", "compost"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeKeys(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeKeys(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEnsureKeysIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := New(db)

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}

	if err := store.EnsureKeys(ctx, []string{"soil", "compost"}); err != nil {
		t.Fatalf("EnsureKeys: %v", err)
	}
	// Second call overlaps the first; only the new key is inserted.
	if err := store.EnsureKeys(ctx, []string{"compost", "worms"}); err != nil {
		t.Fatalf("EnsureKeys (overlap): %v", err)
	}

	tags, err := store.List(ctx, []string{"soil", "compost", "worms"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tags) != 3 {
		t.Fatalf("List returned %d tags, want 3", len(tags))
	}

	n, err := db.Collection("tags").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments: %v", err)
	}
	if n != 3 {
		t.Errorf("tag collection holds %d docs, want 3", n)
	}
}
