// internal/domain/models/snippet.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Snippet types. A "resource" is a snippet built around an external link
// and requires a non-empty URL; a plain snippet is free-form text.
const (
	SnippetTypeNote     = "snippet"
	SnippetTypeResource = "resource"
)

// IsValidSnippetType checks if a value is a supported snippet type.
func IsValidSnippetType(value string) bool {
	return value == SnippetTypeNote || value == SnippetTypeResource
}

// Snippet is an atomic, timestamped note or resource inside a project.
//
// LinkedPosts holds the ids of posts that embed this snippet. It is the
// inverse of each post's selected-snippet set and is maintained exclusively
// by the linkage manager; nothing else may write it.
type Snippet struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID primitive.ObjectID `bson:"project_id" json:"projectId"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`

	Type string `bson:"type" json:"type"`
	Body string `bson:"body" json:"body"`
	URL  string `bson:"url,omitempty" json:"url,omitempty"`

	Tags        []string             `bson:"tags,omitempty" json:"tags"`
	LinkedPosts []primitive.ObjectID `bson:"linked_posts,omitempty" json:"linkedPosts"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
