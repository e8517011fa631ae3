// internal/app/store/subscriptions/substore.go
package substore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
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
	ErrDuplicate = errors.New("this email is already subscribed")
	ErrNotFound  = errors.New("subscription not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("subscriptions")}
}

// Create subscribes an email to a project.
func (s *Store) Create(ctx context.Context, sub models.Subscription) (models.Subscription, error) {
	sub.ID = primitive.NewObjectID()
	sub.Email = text.Fold(sub.Email)
	sub.CreatedAt = time.Now().UTC()
	_, err := s.c.InsertOne(ctx, sub)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Subscription{}, ErrDuplicate
		}
		return models.Subscription{}, err
	}
	return sub, nil
}

// Delete removes a subscription by project and email.
func (s *Store) Delete(ctx context.Context, projectID primitive.ObjectID, email string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{
		"project_id": projectID,
		"email":      text.Fold(email),
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListByProject returns a project's subscribers, oldest first.
func (s *Store) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Subscription, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"project_id": projectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var subs []models.Subscription
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// DeleteByProject removes every subscription for a project. Used by
// project cascade deletion.
func (s *Store) DeleteByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"project_id": projectID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates indexes for the subscriptions collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		// One subscription per email per project
		{
			Keys:    bson.D{{Key: "project_id", Value: 1}, {Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_sub_project_email"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
