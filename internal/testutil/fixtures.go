package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chroniclehq/chronicle/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user.
func (f *Fixtures) CreateUser(ctx context.Context, name, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Username:  text.Fold(name) + "-" + primitive.NewObjectID().Hex()[:6],
		Email:     email,
		EmailCI:   text.Fold(email),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateProject creates a test project owned by ownerID, with the given
// collaborators.
func (f *Fixtures) CreateProject(ctx context.Context, name string, ownerID primitive.ObjectID, collaborators ...primitive.ObjectID) models.Project {
	f.t.Helper()

	now := time.Now().UTC()
	project := models.Project{
		ID:            primitive.NewObjectID(),
		UserID:        ownerID,
		Name:          name,
		URLName:       fmt.Sprintf("%s-%s", text.Fold(name), primitive.NewObjectID().Hex()[:6]),
		Collaborators: collaborators,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := f.db.Collection("projects").InsertOne(ctx, project); err != nil {
		f.t.Fatalf("failed to create test project: %v", err)
	}
	return project
}

// CreateSnippet creates a test snippet in the given project.
func (f *Fixtures) CreateSnippet(ctx context.Context, projectID, userID primitive.ObjectID, body string) models.Snippet {
	f.t.Helper()

	now := time.Now().UTC()
	snippet := models.Snippet{
		ID:        primitive.NewObjectID(),
		ProjectID: projectID,
		UserID:    userID,
		Type:      models.SnippetTypeNote,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("snippets").InsertOne(ctx, snippet); err != nil {
		f.t.Fatalf("failed to create test snippet: %v", err)
	}
	return snippet
}

// CreatePost creates a test post in the given project with the given
// privacy.
func (f *Fixtures) CreatePost(ctx context.Context, projectID, userID primitive.ObjectID, title, privacy string) models.Post {
	f.t.Helper()

	now := time.Now().UTC()
	post := models.Post{
		ID:        primitive.NewObjectID(),
		ProjectID: projectID,
		UserID:    userID,
		URLName:   fmt.Sprintf("%s-%s-%s", now.Format("2006-01-02"), text.Fold(title), primitive.NewObjectID().Hex()[:6]),
		Title:     title,
		Body:      "test body",
		Privacy:   privacy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("posts").InsertOne(ctx, post); err != nil {
		f.t.Fatalf("failed to create test post: %v", err)
	}
	return post
}

// CreatePostAt creates a test public post with an explicit creation time,
// for pagination and ordering tests.
func (f *Fixtures) CreatePostAt(ctx context.Context, projectID, userID primitive.ObjectID, title string, createdAt time.Time) models.Post {
	f.t.Helper()

	post := models.Post{
		ID:        primitive.NewObjectID(),
		ProjectID: projectID,
		UserID:    userID,
		URLName:   fmt.Sprintf("%s-%s-%s", createdAt.Format("2006-01-02"), text.Fold(title), primitive.NewObjectID().Hex()[:6]),
		Title:     title,
		Body:      "test body",
		Privacy:   models.PrivacyPublic,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	if _, err := f.db.Collection("posts").InsertOne(ctx, post); err != nil {
		f.t.Fatalf("failed to create test post: %v", err)
	}
	return post
}

// CreateSnippetAt creates a test snippet with an explicit creation time.
func (f *Fixtures) CreateSnippetAt(ctx context.Context, projectID, userID primitive.ObjectID, body string, createdAt time.Time) models.Snippet {
	f.t.Helper()

	snippet := models.Snippet{
		ID:        primitive.NewObjectID(),
		ProjectID: projectID,
		UserID:    userID,
		Type:      models.SnippetTypeNote,
		Body:      body,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}

	if _, err := f.db.Collection("snippets").InsertOne(ctx, snippet); err != nil {
		f.t.Fatalf("failed to create test snippet: %v", err)
	}
	return snippet
}

// CreateImage creates a test image record bound to the given attachment
// identifier.
func (f *Fixtures) CreateImage(ctx context.Context, userID primitive.ObjectID, key, attached string) models.Image {
	f.t.Helper()

	img := models.Image{
		ID:              primitive.NewObjectID(),
		UserID:          userID,
		Key:             key,
		AttachedURLName: attached,
		StoragePath:     key,
		CreatedAt:       time.Now().UTC(),
	}

	if _, err := f.db.Collection("images").InsertOne(ctx, img); err != nil {
		f.t.Fatalf("failed to create test image: %v", err)
	}
	return img
}
