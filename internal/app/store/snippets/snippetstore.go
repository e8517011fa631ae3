// internal/app/store/snippets/snippetstore.go
package snippetstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chroniclehq/chronicle/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("snippet not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("snippets")}
}

// Create inserts a new snippet.
func (s *Store) Create(ctx context.Context, sn models.Snippet) (models.Snippet, error) {
	now := time.Now().UTC()
	sn.ID = primitive.NewObjectID()
	sn.CreatedAt = now
	sn.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, sn); err != nil {
		return models.Snippet{}, err
	}
	return sn, nil
}

// GetByID retrieves a snippet by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Snippet, error) {
	var sn models.Snippet
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sn)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Snippet{}, ErrNotFound
		}
		return models.Snippet{}, err
	}
	return sn, nil
}

// GetByIDs retrieves the snippets whose ids are in the given set. Missing
// ids are simply absent from the result.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Snippet, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var snippets []models.Snippet
	if err := cur.All(ctx, &snippets); err != nil {
		return nil, err
	}
	return snippets, nil
}

// Update modifies a snippet's content fields. LinkedPosts is deliberately
// untouched here; only the linkage operations below write it.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, sn models.Snippet) error {
	set := bson.M{
		"body":       sn.Body,
		"url":        sn.URL,
		"tags":       sn.Tags,
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

// Delete removes a snippet by ID.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByIDs removes a batch of snippets.
func (s *Store) DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.c.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByProject removes every snippet in a project. Used by project
// cascade deletion.
func (s *Store) DeleteByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"project_id": projectID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// MoveToProject reassigns a batch of snippets to another project.
func (s *Store) MoveToProject(ctx context.Context, ids []primitive.ObjectID, projectID primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.c.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"project_id": projectID, "updated_at": time.Now().UTC()}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// AddLinkedPost records postID on every snippet in ids.
func (s *Store) AddLinkedPost(ctx context.Context, ids []primitive.ObjectID, postID primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.c.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$addToSet": bson.M{"linked_posts": postID}})
	return err
}

// RemoveLinkedPost removes postID from every snippet in ids.
func (s *Store) RemoveLinkedPost(ctx context.Context, ids []primitive.ObjectID, postID primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.c.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$pull": bson.M{"linked_posts": postID}})
	return err
}

// RemoveLinkedPostAll removes postID from every snippet that references
// it. Used when a post is deleted.
func (s *Store) RemoveLinkedPostAll(ctx context.Context, postID primitive.ObjectID) error {
	_, err := s.c.UpdateMany(ctx,
		bson.M{"linked_posts": postID},
		bson.M{"$pull": bson.M{"linked_posts": postID}})
	return err
}

// FindLinking returns the ids of snippets currently linked to postID.
func (s *Store) FindLinking(ctx context.Context, postID primitive.ObjectID) ([]primitive.ObjectID, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cur, err := s.c.Find(ctx, bson.M{"linked_posts": postID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

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
	return ids, nil
}

// Find returns snippets matching the given filter.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Snippet, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var snippets []models.Snippet
	if err := cur.All(ctx, &snippets); err != nil {
		return nil, err
	}
	return snippets, nil
}

// Count returns the number of snippets matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}

// Scored is a snippet paired with its text-search relevance score.
type Scored struct {
	models.Snippet `bson:",inline"`
	Score          float64 `bson:"score"`
}

// SearchText runs a $text query and returns snippets ordered by relevance.
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

// CountLinked returns how many snippets in the project are linked to at
// least one post. Feeds the stats endpoint.
func (s *Store) CountLinked(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{
		"project_id":     projectID,
		"linked_posts.0": bson.M{"$exists": true},
	})
}

// EnsureIndexes creates indexes for the snippets collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		// Feed listing within a project, newest first
		{
			Keys:    bson.D{{Key: "project_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_snippet_project_created"),
		},
		// Tag filter
		{
			Keys:    bson.D{{Key: "project_id", Value: 1}, {Key: "tags", Value: 1}},
			Options: options.Index().SetName("idx_snippet_project_tags"),
		},
		// Reverse linkage lookups and unlink-all on post delete
		{
			Keys:    bson.D{{Key: "linked_posts", Value: 1}},
			Options: options.Index().SetName("idx_snippet_linked_posts"),
		},
		// Full-text feed search
		{
			Keys:    bson.D{{Key: "body", Value: "text"}, {Key: "url", Value: "text"}},
			Options: options.Index().SetName("idx_snippet_text"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
