// internal/domain/models/image.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image is an uploaded asset referenced from a post body.
//
// Key is the content token that appears in the body text. AttachedURLName
// is the draft the image currently belongs to: the client-generated tempId
// while the post is unsaved, the post's urlName afterwards. An image whose
// key no longer appears in the owning body after a save is garbage.
type Image struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user_id" json:"userId"`
	Key             string             `bson:"key" json:"key"`
	AttachedURLName string             `bson:"attached_url_name" json:"attachedUrlName"`
	StoragePath     string             `bson:"storage_path" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
