package redis

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// SessionStore keeps browser session state in redis so that sessions survive
// restarts and are shared between server instances.
type SessionStore struct {
	rdb     redis.Cmdable
	timeout time.Duration
}

func NewSessionStore(rdb redis.Cmdable, timeout time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, timeout: timeout}
}

func (s *SessionStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *SessionStore) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	val, err := s.rdb.Get(ctx, KeySessionStringPF+key).Bytes()
	if errors.Is(err, Nil) {
		return nil, nil
	}
	return val, errors.Wrap(err, "redis:SessionStore.Get")
}

func (s *SessionStore) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.rdb.Set(ctx, KeySessionStringPF+key, val, ttl).Err()
	return errors.Wrap(err, "redis:SessionStore.Set")
}

func (s *SessionStore) Del(ctx context.Context, key string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.rdb.Del(ctx, KeySessionStringPF+key).Err()
	return errors.Wrap(err, "redis:SessionStore.Del")
}
