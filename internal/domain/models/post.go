// internal/domain/models/post.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post privacy settings.
const (
	PrivacyPublic   = "public"
	PrivacyPrivate  = "private"
	PrivacyUnlisted = "unlisted"
)

// IsValidPrivacy checks if a value is a supported privacy setting.
func IsValidPrivacy(value string) bool {
	switch value {
	case PrivacyPublic, PrivacyPrivate, PrivacyUnlisted:
		return true
	}
	return false
}

// Post is a long-form publishable document inside a project.
//
// URLName is assigned once at creation (date + title slug + random suffix)
// and never changes afterwards; it is the stable key that image attachments
// are bound to. UserID is the author, which may differ from the project
// owner when a collaborator writes the post.
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID primitive.ObjectID `bson:"project_id" json:"projectId"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`

	URLName string `bson:"url_name" json:"urlName"`
	Title   string `bson:"title" json:"title"`
	Body    string `bson:"body" json:"body"`
	Privacy string `bson:"privacy" json:"privacy"`

	Tags []string `bson:"tags,omitempty" json:"tags"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
