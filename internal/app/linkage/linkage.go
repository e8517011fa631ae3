// Package linkage maintains the bidirectional relationship between posts
// and snippets, and the lifecycle of images attached to post bodies.
//
// Every snippet carries the set of posts that embed it (linked_posts).
// That set is the inverse of the embedding choice made when a post is
// saved, and this package is the only writer of it: post saves call
// SyncPostLinks with the full desired set, post deletion calls UnlinkPost,
// and nothing else touches the field.
package linkage

import (
	"context"
	"strings"

	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	imagestore "github.com/chroniclehq/chronicle/internal/app/store/images"
	snippetstore "github.com/chroniclehq/chronicle/internal/app/store/snippets"
)

// Manager coordinates linkage and image-attachment writes across stores.
type Manager struct {
	Snippets *snippetstore.Store
	Images   *imagestore.Store
	Storage  storage.Store
	Log      *zap.Logger
}

// Diff computes the set difference between the snippets currently linked
// to a post and the desired set: toAdd gains the link, toRemove loses it.
// Ids present in both sets are untouched, so a save that keeps a link does
// not rewrite it.
func Diff(current, desired []primitive.ObjectID) (toAdd, toRemove []primitive.ObjectID) {
	cur := make(map[primitive.ObjectID]struct{}, len(current))
	for _, id := range current {
		cur[id] = struct{}{}
	}
	des := make(map[primitive.ObjectID]struct{}, len(desired))
	for _, id := range desired {
		des[id] = struct{}{}
		if _, ok := cur[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}
	for _, id := range current {
		if _, ok := des[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}
	return toAdd, toRemove
}

// SyncPostLinks reconciles the linked_posts sets after a post save: every
// snippet in desired ends up linked to postID, every snippet that was
// linked but is no longer desired is unlinked.
func (m *Manager) SyncPostLinks(ctx context.Context, postID primitive.ObjectID, desired []primitive.ObjectID) error {
	current, err := m.Snippets.FindLinking(ctx, postID)
	if err != nil {
		return err
	}
	toAdd, toRemove := Diff(current, desired)

	if err := m.Snippets.AddLinkedPost(ctx, toAdd, postID); err != nil {
		return err
	}
	if err := m.Snippets.RemoveLinkedPost(ctx, toRemove, postID); err != nil {
		return err
	}

	if len(toAdd) > 0 || len(toRemove) > 0 {
		m.Log.Debug("post links reconciled",
			zap.String("post_id", postID.Hex()),
			zap.Int("added", len(toAdd)),
			zap.Int("removed", len(toRemove)))
	}
	return nil
}

// UnlinkPost removes postID from every snippet that references it. Called
// when a post is deleted; the snippets themselves survive.
func (m *Manager) UnlinkPost(ctx context.Context, postID primitive.ObjectID) error {
	return m.Snippets.RemoveLinkedPostAll(ctx, postID)
}

// CollectGarbage reconciles the images attached to a post draft after a
// save. attached names the identifiers images may currently be bound to
// (the client tempId on first save, the post urlName on later saves).
//
// An image whose key still appears in the saved body survives and is
// rebound to urlName; one whose key is gone was removed in the editor and
// is deleted, record and stored object both. Storage deletion failures are
// logged and skipped: a leaked object is recoverable, a failed save is
// not.
func (m *Manager) CollectGarbage(ctx context.Context, attached []string, body, urlName string) error {
	images, err := m.Images.FindByAttachedMany(ctx, attached)
	if err != nil {
		return err
	}

	var dead []primitive.ObjectID
	for _, img := range images {
		if strings.Contains(body, img.Key) {
			continue
		}
		dead = append(dead, img.ID)
		if m.Storage != nil {
			if err := m.Storage.Delete(ctx, img.StoragePath); err != nil {
				m.Log.Warn("orphaned image object not deleted",
					zap.String("path", img.StoragePath),
					zap.Error(err))
			}
		}
	}
	if _, err := m.Images.DeleteByIDs(ctx, dead); err != nil {
		return err
	}

	// Survivors follow the post's stable name.
	for _, a := range attached {
		if a == urlName {
			continue
		}
		if err := m.Images.Rebind(ctx, a, urlName); err != nil {
			return err
		}
	}
	return nil
}

// PurgeImages removes every image bound to the given identifiers,
// unconditionally. Used when a post or a whole project is deleted.
func (m *Manager) PurgeImages(ctx context.Context, attached []string) error {
	images, err := m.Images.FindByAttachedMany(ctx, attached)
	if err != nil {
		return err
	}
	ids := make([]primitive.ObjectID, 0, len(images))
	for _, img := range images {
		ids = append(ids, img.ID)
		if m.Storage != nil {
			if err := m.Storage.Delete(ctx, img.StoragePath); err != nil {
				m.Log.Warn("image object not deleted",
					zap.String("path", img.StoragePath),
					zap.Error(err))
			}
		}
	}
	_, err = m.Images.DeleteByIDs(ctx, ids)
	return err
}
