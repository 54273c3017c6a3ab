package inmemory

import (
	"context"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"supasocial/models"
)

var ErrObjectExists = errors.New("The resource already exists")

func (p *Platform) Upload(_ context.Context, path string, file *models.ImageFile) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.UploadCalls++
	if p.UploadErr != nil {
		return p.UploadErr
	}
	if _, ok := p.objects[path]; ok {
		return ErrObjectExists
	}
	cp := *file
	cp.Data = append([]byte(nil), file.Data...)
	p.objects[path] = &cp
	return nil
}

func (p *Platform) PublicURL(path string) string {
	segs := strings.Split(path, "/")
	for i := range segs {
		segs[i] = url.PathEscape(segs[i])
	}
	return strings.TrimRight(p.publicBaseURL, "/") + "/" + strings.Join(segs, "/")
}

// Object returns a stored blob, for serving it in development and for tests.
func (p *Platform) Object(path string) (*models.ImageFile, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	f, ok := p.objects[path]
	return f, ok
}

// ObjectKeys lists the stored keys.
func (p *Platform) ObjectKeys() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	keys := make([]string, 0, len(p.objects))
	for k := range p.objects {
		keys = append(keys, k)
	}
	return keys
}
