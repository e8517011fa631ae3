// internal/domain/models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project is the ownership and visibility boundary for snippets and posts.
//
// The owner (UserID) and the collaborators form the "member" set for read
// and write access; administrative actions (delete, collaborator
// management, feature toggle) are owner-only.
type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"userId"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	URLName     string             `bson:"url_name" json:"urlName"`

	Collaborators []primitive.ObjectID `bson:"collaborators,omitempty" json:"collaborators"`

	// AvailableTags is the project's denormalized tag vocabulary. It grows
	// whenever a snippet or post in the project is saved with a tag that is
	// not yet in the list.
	AvailableTags []string `bson:"available_tags,omitempty" json:"availableTags"`

	Stars []primitive.ObjectID `bson:"stars,omitempty" json:"stars"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsMember reports whether userID is the owner or a collaborator.
func (p Project) IsMember(userID primitive.ObjectID) bool {
	if p.UserID == userID {
		return true
	}
	for _, c := range p.Collaborators {
		if c == userID {
			return true
		}
	}
	return false
}
