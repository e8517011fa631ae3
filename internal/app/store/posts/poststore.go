// internal/app/store/posts/poststore.go
package poststore

import (
	"context"
	"errors"
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

var (
	ErrDuplicateURLName = errors.New("a post with this url name already exists")
	ErrNotFound         = errors.New("post not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("posts")}
}

// Create inserts a new post. URLName must already be set by the caller;
// the unique index backstops suffix collisions.
func (s *Store) Create(ctx context.Context, p models.Post) (models.Post, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, p)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Post{}, ErrDuplicateURLName
		}
		return models.Post{}, err
	}
	return p, nil
}

// GetByID retrieves a post by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Post, error) {
	var p models.Post
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Post{}, ErrNotFound
		}
		return models.Post{}, err
	}
	return p, nil
}

// GetByURLName retrieves a post by its stable url name.
func (s *Store) GetByURLName(ctx context.Context, urlName string) (models.Post, error) {
	var p models.Post
	err := s.c.FindOne(ctx, bson.M{"url_name": urlName}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Post{}, ErrNotFound
		}
		return models.Post{}, err
	}
	return p, nil
}

// Update modifies a post's mutable fields. URLName never changes after
// creation.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, p models.Post) error {
	set := bson.M{
		"title":      p.Title,
		"body":       p.Body,
		"privacy":    p.Privacy,
		"tags":       p.Tags,
		"updated_at": time.Now().UTC(),
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a post by ID.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByProject removes every post in a project, returning the deleted
// ids so callers can clean up dependent data.
func (s *Store) DeleteByProject(ctx context.Context, projectID primitive.ObjectID) ([]primitive.ObjectID, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cur, err := s.c.Find(ctx, bson.M{"project_id": projectID}, opts)
	if err != nil {
		return nil, err
	}
	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	if len(ids) > 0 {
		if _, err := s.c.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

// Find returns posts matching the given filter.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Post, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []models.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Count returns the number of posts matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// Scored is a post paired with its text-search relevance score.
type Scored struct {
	models.Post `bson:",inline"`
	Score       float64 `bson:"score"`
}

// SearchText runs a $text query and returns posts ordered by relevance.
// The filter must already contain the $text clause.
func (s *Store) SearchText(ctx context.Context, filter bson.M, limit int64) ([]Scored, error) {
	opts := options.Find().
		SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetSort(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var scored []Scored
	if err := cur.All(ctx, &scored); err != nil {
		return nil, err
	}
	return scored, nil
}

// EnsureIndexes creates indexes for the posts collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		// Stable public address; also backstops slug suffix collisions
		{
			Keys:    bson.D{{Key: "url_name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_post_url_name"),
		},
		// Feed listing within a project, newest first
		{
			Keys:    bson.D{{Key: "project_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_post_project_created"),
		},
		// Tag filter
		{
			Keys:    bson.D{{Key: "project_id", Value: 1}, {Key: "tags", Value: 1}},
			Options: options.Index().SetName("idx_post_project_tags"),
		},
		// Full-text feed search
		{
			Keys:    bson.D{{Key: "title", Value: "text"}, {Key: "body", Value: "text"}},
			Options: options.Index().SetName("idx_post_text"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
