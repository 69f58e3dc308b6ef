package objstore

import (
	"context"
	"fmt"
	"io"
	"path"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/BrianKimathi/event-booking-api/pkg/helpers"
)

// GCSImageStore stores event poster images in a Google Cloud Storage
// bucket and returns their public URLs.
type GCSImageStore struct {
	client *storage.Client
	bucket string
}

func NewGCSImageStore(client *storage.Client, bucket string) *GCSImageStore {
	return &GCSImageStore{client: client, bucket: bucket}
}

// UploadEventImage stores the image under events/<eventID>/ with a
// random object name so re-uploads never collide with cached URLs.
func (s *GCSImageStore) UploadEventImage(ctx context.Context, eventID int64, filename, contentType string, r io.Reader) (string, error) {
	ext := path.Ext(filename)
	object := fmt.Sprintf("events/%d/%s%s", eventID, uuid.NewString(), ext)
	return helpers.UploadObject(ctx, s.client, s.bucket, object, contentType, r)
}
