// internal/app/store/tags/tagstore.go
package tagstore

import (
	"context"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chroniclehq/chronicle/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("tags")}
}

// NormalizeKeys lowercases and trims tag keys, dropping empties and
// duplicates while preserving first-seen order.
func NormalizeKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// EnsureKeys lazily registers tag keys: it looks up which of the given
// keys already exist and inserts only the missing ones. The insert is
// unordered so a concurrent save registering the same key does not abort
// the batch; duplicate-key errors are expected and swallowed.
func (s *Store) EnsureKeys(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	cur, err := s.c.Find(ctx, bson.M{"key": bson.M{"$in": keys}},
		options.Find().SetProjection(bson.M{"key": 1}))
	if err != nil {
		return err
	}
	var existing []models.Tag
	if err := cur.All(ctx, &existing); err != nil {
		return err
	}

	have := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		have[t.Key] = struct{}{}
	}

	now := time.Now().UTC()
	var docs []any
	for _, k := range keys {
		if _, ok := have[k]; ok {
			continue
		}
		docs = append(docs, models.Tag{
			ID:        primitive.NewObjectID(),
			Key:       k,
			CreatedAt: now,
		})
	}
	if len(docs) == 0 {
		return nil
	}

	_, err = s.c.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil && !wafflemongo.IsDup(err) {
		return err
	}
	return nil
}

// List returns the tags for the given keys.
func (s *Store) List(ctx context.Context, keys []string) ([]models.Tag, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"key": bson.M{"$in": keys}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var tags []models.Tag
	if err := cur.All(ctx, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// EnsureIndexes creates indexes for the tags collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		// Keys are globally unique; lazy inserts rely on this
		{
			Keys:    bson.D{{Key: "key", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_tag_key"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
