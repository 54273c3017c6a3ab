package qiniu

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/qiniu/go-sdk/v7/auth"
	"github.com/qiniu/go-sdk/v7/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supasocial/models"
)

type fakePutter struct {
	token, key, mime string
	data             []byte
	size             int64
	err              error
}

func (f *fakePutter) Put(_ context.Context, _ interface{}, uptoken, key string, data io.Reader, size int64, extra *storage.PutExtra) error {
	f.token, f.key, f.size, f.mime = uptoken, key, size, extra.MimeType
	f.data, _ = io.ReadAll(data)
	return f.err
}

func newTestStorage(p putter) *Storage {
	return &Storage{
		mac:      auth.New("ak", "sk"),
		uploader: p,
		bucket:   "post-images",
		baseURL:  "https://cdn.example.com",
	}
}

func TestUpload(t *testing.T) {
	p := &fakePutter{}
	st := newTestStorage(p)

	err := st.Upload(context.Background(), "Hello-1-cat.png",
		&models.ImageFile{Filename: "cat.png", ContentType: "image/png", Data: []byte("png")})
	require.NoError(t, err)
	assert.Equal(t, "Hello-1-cat.png", p.key)
	assert.Equal(t, int64(3), p.size)
	assert.Equal(t, "image/png", p.mime)
	assert.Equal(t, []byte("png"), p.data)
	assert.True(t, strings.HasPrefix(p.token, "ak:"))
}

func TestUploadError(t *testing.T) {
	st := newTestStorage(&fakePutter{err: errors.New("file exists")})

	err := st.Upload(context.Background(), "a.png", &models.ImageFile{Data: []byte("x")})
	assert.Equal(t, "file exists", errors.Cause(err).Error())
}

func TestPublicURL(t *testing.T) {
	st := newTestStorage(&fakePutter{})
	assert.Equal(t, "https://cdn.example.com/My%20cat.png", st.PublicURL("My cat.png"))
}
