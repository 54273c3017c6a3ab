// Package inmemory is a platform that lives in process memory. It backs the
// memory drivers used for local development and the tests of the layers
// above the platform.
package inmemory

import (
	"sync"

	"supasocial/dao/backend"
	"supasocial/internal/utils"
	"supasocial/models"
)

// Platform holds tables, bucket and sessions. The *Err fields make the next
// calls of that kind fail, for exercising failure paths.
type Platform struct {
	mu sync.RWMutex

	communities map[int64]*models.Community
	posts       map[int64]*models.Post
	votes       map[int64]*models.Vote
	comments    map[int64]*models.Comment
	objects     map[string]*models.ImageFile
	sessions    map[string]*models.Session
	codes       map[string]string // oauth code -> browser session
	seq         int64

	publicBaseURL string
	listeners     utils.Listeners[models.AuthEvent]

	UploadErr error
	InsertErr error
	QueryErr  error
	AuthErr   error

	UploadCalls int
	InsertCalls int
	RPCCalls    int
	ListCalls   int
}

func New(publicBaseURL string) *Platform {
	return &Platform{
		communities:   make(map[int64]*models.Community),
		posts:         make(map[int64]*models.Post),
		votes:         make(map[int64]*models.Vote),
		comments:      make(map[int64]*models.Comment),
		objects:       make(map[string]*models.ImageFile),
		sessions:      make(map[string]*models.Session),
		codes:         make(map[string]string),
		publicBaseURL: publicBaseURL,
	}
}

// Client exposes the platform through the handle the other layers take.
func (p *Platform) Client() *backend.Client {
	return &backend.Client{Auth: p, Storage: p, Database: p}
}

func (p *Platform) nextID() int64 {
	p.seq++
	return p.seq
}

// SetFailures sets the injected errors under the platform lock.
func (p *Platform) SetFailures(upload, insert, query error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.UploadErr, p.InsertErr, p.QueryErr = upload, insert, query
}

// Counts reports blobs and post rows currently stored.
func (p *Platform) Counts() (objects, posts int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.objects), len(p.posts)
}
