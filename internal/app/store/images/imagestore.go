// internal/app/store/images/imagestore.go
package imagestore

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

var ErrNotFound = errors.New("image not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("images")}
}

// Create inserts a new image record.
func (s *Store) Create(ctx context.Context, img models.Image) (models.Image, error) {
	img.ID = primitive.NewObjectID()
	img.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, img); err != nil {
		return models.Image{}, err
	}
	return img, nil
}

// FindByAttached returns every image bound to the given draft identifier
// (a tempId before first save, the post urlName after).
func (s *Store) FindByAttached(ctx context.Context, attached string) ([]models.Image, error) {
	cur, err := s.c.Find(ctx, bson.M{"attached_url_name": attached})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var images []models.Image
	if err := cur.All(ctx, &images); err != nil {
		return nil, err
	}
	return images, nil
}

// FindByAttachedMany returns images bound to any of the given identifiers.
func (s *Store) FindByAttachedMany(ctx context.Context, attached []string) ([]models.Image, error) {
	if len(attached) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"attached_url_name": bson.M{"$in": attached}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var images []models.Image
	if err := cur.All(ctx, &images); err != nil {
		return nil, err
	}
	return images, nil
}

// Rebind moves images from one attachment identifier to another. Called
// after first save to promote tempId attachments onto the post urlName.
func (s *Store) Rebind(ctx context.Context, from, to string) error {
	_, err := s.c.UpdateMany(ctx,
		bson.M{"attached_url_name": from},
		bson.M{"$set": bson.M{"attached_url_name": to}})
	return err
}

// DeleteByIDs removes a batch of image records.
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

// EnsureIndexes creates indexes for the images collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		// Garbage collection scans by attachment
		{
			Keys:    bson.D{{Key: "attached_url_name", Value: 1}},
			Options: options.Index().SetName("idx_image_attached"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
