// Package images accepts editor uploads and records them for the
// attachment lifecycle: an upload binds to a draft (tempId or post
// urlName) and the post-save garbage collector decides whether it
// survives.
package images

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"

	imagestore "github.com/chroniclehq/chronicle/internal/app/store/images"
	"github.com/chroniclehq/chronicle/internal/app/system/apperr"
	"github.com/chroniclehq/chronicle/internal/app/system/authz"
	"github.com/chroniclehq/chronicle/internal/app/system/httpjson"
	"github.com/chroniclehq/chronicle/internal/app/system/timeouts"
	"github.com/chroniclehq/chronicle/internal/domain/models"
)

// maxUploadBytes caps a single image upload at 8 MiB.
const maxUploadBytes = 8 << 20

var allowedExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

type Handler struct {
	Images  *imagestore.Store
	Storage storage.Store
	Log     *zap.Logger
}

func NewHandler(images *imagestore.Store, store storage.Store, logger *zap.Logger) *Handler {
	return &Handler{Images: images, Storage: store, Log: logger}
}

type uploadResponse struct {
	ID  string `json:"id"`
	Key string `json:"key"`
	URL string `json:"url"`
}

// HandleUpload accepts a multipart upload with an "image" file part and an
// "attachedUrlName" field naming the draft it belongs to. The stored
// object key doubles as the token the garbage collector looks for in the
// saved body.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	principal, err := authz.FromRequest(r)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpjson.Error(w, h.Log, apperr.ValidationField("image", "image too large or malformed upload"))
		return
	}

	attached := r.FormValue("attachedUrlName")
	if attached == "" {
		httpjson.Error(w, h.Log, apperr.ValidationField("attachedUrlName", "missing attachedUrlName"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httpjson.Error(w, h.Log, apperr.ValidationField("image", "missing image"))
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExts[ext] {
		httpjson.Error(w, h.Log, apperr.ValidationField("image", "unsupported image type"))
		return
	}

	key := fmt.Sprintf("images/%s%s", uuid.NewString(), ext)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "image upload")
	defer cancel()

	if err := h.Storage.Put(ctx, key, file, &storage.PutOptions{
		ContentType: header.Header.Get("Content-Type"),
	}); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	img, err := h.Images.Create(ctx, models.Image{
		UserID:          principal.UserID,
		Key:             key,
		AttachedURLName: attached,
		StoragePath:     key,
	})
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	url, err := h.Storage.PresignedURL(ctx, key, &storage.PresignOptions{
		Expires: 24 * time.Hour,
	})
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	h.Log.Info("image uploaded",
		zap.String("image_id", img.ID.Hex()),
		zap.String("attached", attached))

	httpjson.Write(w, http.StatusOK, uploadResponse{
		ID:  img.ID.Hex(),
		Key: img.Key,
		URL: url,
	})
}
