// Package projectpolicy provides the authorization rules for project
// content.
//
// Authorization rules:
//   - The owner and collaborators ("members") can read and write all
//     content in a project, including private posts and snippets.
//   - Anyone, signed in or not, can read a public post.
//   - An unlisted post is readable by anyone who has its address, but it
//     never appears in listings for non-members.
//   - Administrative actions (delete project, manage collaborators) are
//     owner-only; collaborators cannot perform them.
//
// Policies are pure functions over already-loaded documents: handlers load
// the project (and post, where relevant) and pass the authenticated user
// id, so decisions are deterministic and trivially testable.
package projectpolicy

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chroniclehq/chronicle/internal/domain/models"
)

// CanWrite reports whether userID may create, edit, or delete content in
// the project.
func CanWrite(p models.Project, userID primitive.ObjectID) bool {
	return p.IsMember(userID)
}

// CanReadAll reports whether userID may read everything in the project,
// including private posts and all snippets.
func CanReadAll(p models.Project, userID primitive.ObjectID) bool {
	return p.IsMember(userID)
}

// CanAdminister reports whether userID may delete the project or manage
// its collaborators and subscriber list.
func CanAdminister(p models.Project, userID primitive.ObjectID) bool {
	return p.UserID == userID
}

// CanViewPost reports whether userID (NilObjectID for anonymous callers)
// may read the given post.
func CanViewPost(p models.Project, post models.Post, userID primitive.ObjectID) bool {
	switch post.Privacy {
	case models.PrivacyPublic, models.PrivacyUnlisted:
		return true
	default:
		return userID != primitive.NilObjectID && p.IsMember(userID)
	}
}

// CanListPost reports whether the post may appear in a listing shown to
// userID. Stricter than CanViewPost: an unlisted post is readable at its
// address but stays out of non-member listings.
func CanListPost(p models.Project, post models.Post, userID primitive.ObjectID) bool {
	for _, privacy := range VisiblePrivacies(p, userID) {
		if post.Privacy == privacy {
			return true
		}
	}
	return false
}

// VisiblePrivacies returns the post privacy levels userID may see in the
// project's listings. Unlisted posts are address-only and excluded from
// listings for non-members.
func VisiblePrivacies(p models.Project, userID primitive.ObjectID) []string {
	if userID != primitive.NilObjectID && p.IsMember(userID) {
		return []string{models.PrivacyPublic, models.PrivacyPrivate, models.PrivacyUnlisted}
	}
	return []string{models.PrivacyPublic}
}
