// internal/app/store/users/userstore.go
package userstore

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
	ErrDuplicateEmail    = errors.New("a user with this email already exists")
	ErrDuplicateUsername = errors.New("a user with this username already exists")
	ErrNotFound          = errors.New("user not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// Create inserts a new user.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.EmailCI = text.Fold(u.Email)
	u.CreatedAt = now
	u.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, u)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID retrieves a user by ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByEmail retrieves a user by email, case-insensitively.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(email)}).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByUsername retrieves a user by their public username.
func (s *Store) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"username": username}).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

// SearchByEmail finds users whose folded email starts with the given
// prefix. Used by the collaborator picker; results are capped.
func (s *Store) SearchByEmail(ctx context.Context, prefix string, limit int64) ([]models.User, error) {
	if limit <= 0 {
		limit = 10
	}
	filter := bson.M{"email_ci": bson.M{"$regex": "^" + regexQuote(text.Fold(prefix))}}
	opts := options.Find().
		SetLimit(limit).
		SetSort(bson.D{{Key: "email_ci", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AddFeaturedPost adds a post to the user's profile feature list.
func (s *Store) AddFeaturedPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	return s.touch(ctx, userID, bson.M{"$addToSet": bson.M{"featured_posts": postID}})
}

// RemoveFeaturedPost removes a post from the user's profile feature list.
func (s *Store) RemoveFeaturedPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	return s.touch(ctx, userID, bson.M{"$pull": bson.M{"featured_posts": postID}})
}

// AddFeaturedProject adds a project to the user's profile feature list.
func (s *Store) AddFeaturedProject(ctx context.Context, userID, projectID primitive.ObjectID) error {
	return s.touch(ctx, userID, bson.M{"$addToSet": bson.M{"featured_projects": projectID}})
}

// RemoveFeaturedProject removes a project from the user's profile feature list.
func (s *Store) RemoveFeaturedProject(ctx context.Context, userID, projectID primitive.ObjectID) error {
	return s.touch(ctx, userID, bson.M{"$pull": bson.M{"featured_projects": projectID}})
}

// RemoveFeaturedProjectAll clears a deleted project from every profile.
func (s *Store) RemoveFeaturedProjectAll(ctx context.Context, projectID primitive.ObjectID) error {
	_, err := s.c.UpdateMany(ctx,
		bson.M{"featured_projects": projectID},
		bson.M{"$pull": bson.M{"featured_projects": projectID}})
	return err
}

// RemoveFeaturedPostsAll clears deleted posts from every profile.
func (s *Store) RemoveFeaturedPostsAll(ctx context.Context, postIDs []primitive.ObjectID) error {
	if len(postIDs) == 0 {
		return nil
	}
	_, err := s.c.UpdateMany(ctx,
		bson.M{"featured_posts": bson.M{"$in": postIDs}},
		bson.M{"$pull": bson.M{"featured_posts": bson.M{"$in": postIDs}}})
	return err
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

// EnsureIndexes creates indexes for the users collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_user_email_ci"),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_user_username"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// regexQuote escapes regex metacharacters so a prefix search treats the
// input literally.
func regexQuote(s string) string {
	const meta = `\.+*?()|[]{}^$`
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		for j := 0; j < len(meta); j++ {
			if s[i] == meta[j] {
				out = append(out, '\\')
				break
			}
		}
		out = append(out, s[i])
	}
	return string(out)
}
