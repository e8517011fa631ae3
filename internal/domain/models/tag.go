// internal/domain/models/tag.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tag is a global tag key, created lazily the first time any post or
// snippet references it. Uniqueness of Key is enforced by an index.
type Tag struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Key       string             `bson:"key" json:"key"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
