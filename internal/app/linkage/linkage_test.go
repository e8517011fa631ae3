package linkage

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDiff(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := primitive.NewObjectID()

	tests := []struct {
		name       string
		current    []primitive.ObjectID
		desired    []primitive.ObjectID
		wantAdd    int
		wantRemove int
	}{
		{"no change", []primitive.ObjectID{a, b}, []primitive.ObjectID{a, b}, 0, 0},
		{"all new", nil, []primitive.ObjectID{a, b}, 2, 0},
		{"all removed", []primitive.ObjectID{a, b}, nil, 0, 2},
		{"swap one", []primitive.ObjectID{a, b}, []primitive.ObjectID{b, c}, 1, 1},
		{"both empty", nil, nil, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toAdd, toRemove := Diff(tt.current, tt.desired)
			if len(toAdd) != tt.wantAdd {
				t.Errorf("toAdd = %v, want %d ids", toAdd, tt.wantAdd)
			}
			if len(toRemove) != tt.wantRemove {
				t.Errorf("toRemove = %v, want %d ids", toRemove, tt.wantRemove)
			}
			for _, id := range toAdd {
				if contains(tt.current, id) {
					t.Errorf("toAdd contains already-linked id %s", id.Hex())
				}
				if !contains(tt.desired, id) {
					t.Errorf("toAdd contains undesired id %s", id.Hex())
				}
			}
			for _, id := range toRemove {
				if contains(tt.desired, id) {
					t.Errorf("toRemove contains still-desired id %s", id.Hex())
				}
			}
		})
	}
}

func contains(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
