// Package qiniu stores post images in a Qiniu Kodo bucket.
package qiniu

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/qiniu/go-sdk/v7/auth"
	"github.com/qiniu/go-sdk/v7/storage"

	"supasocial/models"
)

type Config struct {
	AccessKey string
	SecretKey string
	Bucket    string
	BaseURL   string // bound domain the bucket is served from
	UseHTTPS  bool
}

type putter interface {
	Put(ctx context.Context, ret interface{}, uptoken, key string, data io.Reader, size int64, extra *storage.PutExtra) error
}

type Storage struct {
	mac      *auth.Credentials
	uploader putter
	bucket   string
	baseURL  string
}

func New(c Config) *Storage {
	cfg := &storage.Config{UseHTTPS: c.UseHTTPS}
	return &Storage{
		mac:      auth.New(c.AccessKey, c.SecretKey),
		uploader: storage.NewFormUploader(cfg),
		bucket:   c.Bucket,
		baseURL:  c.BaseURL,
	}
}

// uploadToken is scoped to the bucket only, so an existing key is rejected
// instead of overwritten.
func (s *Storage) uploadToken() string {
	putPolicy := storage.PutPolicy{
		Scope:   s.bucket,
		Expires: 3600,
	}
	return putPolicy.UploadToken(s.mac)
}

func (s *Storage) Upload(ctx context.Context, path string, file *models.ImageFile) error {
	ret := storage.PutRet{}
	extra := &storage.PutExtra{MimeType: file.ContentType}
	err := s.uploader.Put(ctx, &ret, s.uploadToken(), path, file.Reader(), file.Size(), extra)
	return errors.Wrap(err, "qiniu:Upload: form upload")
}

func (s *Storage) PublicURL(path string) string {
	return storage.MakePublicURLv2(s.baseURL, path)
}
