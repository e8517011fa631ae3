// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account on the platform. Users are created at signup and are
// never hard-deleted; profile feature lists point at projects and posts the
// user has chosen to display publicly.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Username string             `bson:"username" json:"username"`
	Email    string             `bson:"email" json:"email"`
	// EmailCI is the case-folded email used for indexed lookup and the
	// collaborator picker's prefix search.
	EmailCI string `bson:"email_ci" json:"-"`
	Image   string `bson:"image,omitempty" json:"image,omitempty"`

	// FeaturedProjects and FeaturedPosts are the ordered sets shown on the
	// user's public profile.
	FeaturedProjects []primitive.ObjectID `bson:"featured_projects,omitempty" json:"featuredProjects"`
	FeaturedPosts    []primitive.ObjectID `bson:"featured_posts,omitempty" json:"featuredPosts"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
