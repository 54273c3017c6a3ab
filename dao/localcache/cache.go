package localcache

import (
	"context"
	"time"

	"github.com/bluele/gcache"
	"github.com/pkg/errors"
)

// New builds the LRU used by the query layer and the memory session store.
func New(size int) gcache.Cache {
	if size <= 0 {
		size = 1024
	}
	return gcache.New(size).LRU().Build()
}

// SessionStore keeps browser session state in process memory. Everything is
// lost on restart.
type SessionStore struct {
	cache gcache.Cache
}

func NewSessionStore(size int) *SessionStore {
	return &SessionStore{cache: New(size)}
}

func (s *SessionStore) Get(_ context.Context, key string) ([]byte, error) {
	val, err := s.cache.Get(key)
	if errors.Is(err, gcache.KeyNotFoundError) {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "localcache:SessionStore.Get")
	}
	b, _ := val.([]byte)
	return b, nil
}

func (s *SessionStore) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	if ttl > 0 {
		return errors.Wrap(s.cache.SetWithExpire(key, val, ttl), "localcache:SessionStore.Set")
	}
	return errors.Wrap(s.cache.Set(key, val), "localcache:SessionStore.Set")
}

func (s *SessionStore) Del(_ context.Context, key string) error {
	s.cache.Remove(key)
	return nil
}
