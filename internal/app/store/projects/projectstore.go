// internal/app/store/projects/projectstore.go
package projectstore

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
	ErrDuplicateURLName = errors.New("a project with this url name already exists")
	ErrNotFound         = errors.New("project not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("projects")}
}

// Create inserts a new project.
func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, p)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Project{}, ErrDuplicateURLName
		}
		return models.Project{}, err
	}
	return p, nil
}

// GetByID retrieves a project by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Project, error) {
	var p models.Project
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Project{}, ErrNotFound
		}
		return models.Project{}, err
	}
	return p, nil
}

// GetByURLName retrieves a project by its url name.
func (s *Store) GetByURLName(ctx context.Context, urlName string) (models.Project, error) {
	var p models.Project
	err := s.c.FindOne(ctx, bson.M{"url_name": urlName}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Project{}, ErrNotFound
		}
		return models.Project{}, err
	}
	return p, nil
}

// ListByMember returns projects the user owns or collaborates on, newest
// first.
func (s *Store) ListByMember(ctx context.Context, userID primitive.ObjectID) ([]models.Project, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"user_id": userID},
		bson.M{"collaborators": userID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var projects []models.Project
	if err := cur.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Find returns projects matching the given filter.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Project, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var projects []models.Project
	if err := cur.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Update modifies a project's mutable fields.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, p models.Project) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if p.Name != "" {
		set["name"] = p.Name
	}
	// Description may be cleared.
	set["description"] = p.Description

	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// Delete removes a project by ID.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// AddCollaborator adds a user to the project's collaborator set.
func (s *Store) AddCollaborator(ctx context.Context, projectID, userID primitive.ObjectID) error {
	return s.touch(ctx, projectID, bson.M{"$addToSet": bson.M{"collaborators": userID}})
}

// RemoveCollaborator removes a user from the project's collaborator set.
func (s *Store) RemoveCollaborator(ctx context.Context, projectID, userID primitive.ObjectID) error {
	return s.touch(ctx, projectID, bson.M{"$pull": bson.M{"collaborators": userID}})
}

// AddAvailableTags merges tags into the project's vocabulary.
func (s *Store) AddAvailableTags(ctx context.Context, projectID primitive.ObjectID, tags []string) error {
	if len(tags) == 0 {
		return nil
	}
	return s.touch(ctx, projectID, bson.M{
		"$addToSet": bson.M{"available_tags": bson.M{"$each": tags}},
	})
}

// Star records userID starring the project; Unstar reverses it.
func (s *Store) Star(ctx context.Context, projectID, userID primitive.ObjectID) error {
	return s.touch(ctx, projectID, bson.M{"$addToSet": bson.M{"stars": userID}})
}

func (s *Store) Unstar(ctx context.Context, projectID, userID primitive.ObjectID) error {
	return s.touch(ctx, projectID, bson.M{"$pull": bson.M{"stars": userID}})
}

func (s *Store) touch(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	res, err := s.c.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureIndexes creates indexes for the projects collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		// Unique url name for routing
		{
			Keys:    bson.D{{Key: "url_name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_project_url_name"),
		},
		// Dashboard listing by owner
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_project_owner"),
		},
		// Dashboard listing by collaborator
		{
			Keys:    bson.D{{Key: "collaborators", Value: 1}},
			Options: options.Index().SetName("idx_project_collaborators"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
