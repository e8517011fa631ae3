package projectpolicy

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/chroniclehq/chronicle/internal/domain/models"
)

func TestAccessMatrix(t *testing.T) {
	owner := primitive.NewObjectID()
	collab := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	project := models.Project{
		ID:            primitive.NewObjectID(),
		UserID:        owner,
		Collaborators: []primitive.ObjectID{collab},
	}

	tests := []struct {
		name       string
		user       primitive.ObjectID
		write      bool
		readAll    bool
		administer bool
	}{
		{"owner", owner, true, true, true},
		{"collaborator", collab, true, true, false},
		{"stranger", stranger, false, false, false},
		{"anonymous", primitive.NilObjectID, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanWrite(project, tt.user); got != tt.write {
				t.Errorf("CanWrite() = %v, want %v", got, tt.write)
			}
			if got := CanReadAll(project, tt.user); got != tt.readAll {
				t.Errorf("CanReadAll() = %v, want %v", got, tt.readAll)
			}
			if got := CanAdminister(project, tt.user); got != tt.administer {
				t.Errorf("CanAdminister() = %v, want %v", got, tt.administer)
			}
		})
	}
}

func TestCanViewPost(t *testing.T) {
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	project := models.Project{ID: primitive.NewObjectID(), UserID: owner}

	tests := []struct {
		name    string
		privacy string
		user    primitive.ObjectID
		want    bool
	}{
		{"public to anonymous", models.PrivacyPublic, primitive.NilObjectID, true},
		{"unlisted to anonymous", models.PrivacyUnlisted, primitive.NilObjectID, true},
		{"private to anonymous", models.PrivacyPrivate, primitive.NilObjectID, false},
		{"private to stranger", models.PrivacyPrivate, stranger, false},
		{"private to owner", models.PrivacyPrivate, owner, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := models.Post{Privacy: tt.privacy}
			if got := CanViewPost(project, post, tt.user); got != tt.want {
				t.Errorf("CanViewPost() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanListPost(t *testing.T) {
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	project := models.Project{ID: primitive.NewObjectID(), UserID: owner}

	tests := []struct {
		name    string
		privacy string
		user    primitive.ObjectID
		want    bool
	}{
		{"public to anonymous", models.PrivacyPublic, primitive.NilObjectID, true},
		{"unlisted to anonymous", models.PrivacyUnlisted, primitive.NilObjectID, false},
		{"unlisted to stranger", models.PrivacyUnlisted, stranger, false},
		{"unlisted to owner", models.PrivacyUnlisted, owner, true},
		{"private to stranger", models.PrivacyPrivate, stranger, false},
		{"private to owner", models.PrivacyPrivate, owner, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := models.Post{Privacy: tt.privacy}
			if got := CanListPost(project, post, tt.user); got != tt.want {
				t.Errorf("CanListPost() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVisiblePrivacies(t *testing.T) {
	owner := primitive.NewObjectID()
	project := models.Project{ID: primitive.NewObjectID(), UserID: owner}

	member := VisiblePrivacies(project, owner)
	if len(member) != 3 {
		t.Errorf("member sees %d privacy levels, want 3", len(member))
	}

	public := VisiblePrivacies(project, primitive.NilObjectID)
	if len(public) != 1 || public[0] != models.PrivacyPublic {
		t.Errorf("anonymous sees %v, want [public] only", public)
	}
}
