package supabase

import (
	"context"
	"net/url"
	"strings"

	"supasocial/models"

	"github.com/pkg/errors"
)

// Storage implements backend.Storage on one bucket of the storage API.
type Storage struct {
	*Client
	bucket string
}

func NewStorage(c *Client) *Storage {
	return &Storage{Client: c, bucket: c.cfg.Bucket}
}

// escapePath escapes each segment of an object key, keeping the slashes.
func escapePath(path string) string {
	segs := strings.Split(path, "/")
	for i := range segs {
		segs[i] = url.PathEscape(segs[i])
	}
	return strings.Join(segs, "/")
}

// Upload writes the object once; an existing key is reported as an error by
// the platform rather than overwritten.
func (s *Storage) Upload(ctx context.Context, path string, file *models.ImageFile) error {
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	resp, err := s.request(ctx).
		SetHeader("Content-Type", contentType).
		SetHeader("x-upsert", "false").
		SetHeader("cache-control", "max-age=3600").
		SetBody(file.Data).
		Post("/storage/v1/object/" + s.bucket + "/" + escapePath(path))
	return errors.Wrap(check(resp, err), "supabase:Upload: upload object")
}

func (s *Storage) PublicURL(path string) string {
	return s.cfg.URL + "/storage/v1/object/public/" + s.bucket + "/" + escapePath(path)
}
