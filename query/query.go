// Package query is the process wide fetch cache. Reads are keyed by a logical
// query key, identical reads in flight share one platform call, and
// mutations run to completion even when the request that issued them goes
// away.
package query

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bluele/gcache"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"supasocial/internal/utils"
)

type Status int

const (
	StatusPending Status = iota
	StatusError
	StatusSuccess
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusError:
		return "error"
	case StatusSuccess:
		return "success"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

type Result[T any] struct {
	Status Status
	Data   T
	Err    error
}

func (r Result[T]) IsPending() bool { return r.Status == StatusPending }
func (r Result[T]) IsError() bool   { return r.Status == StatusError }
func (r Result[T]) IsSuccess() bool { return r.Status == StatusSuccess }

const (
	KeyCommunities = "communities"
	KeyPosts       = "posts"
)

func PostKey(postID int64) string           { return fmt.Sprintf("post_%d", postID) }
func CommunityKey(communityID int64) string { return fmt.Sprintf("community_%d", communityID) }
func CommunityPostsKey(communityID int64) string {
	return fmt.Sprintf("community_posts_%d", communityID)
}
func VotesKey(postID int64) string    { return fmt.Sprintf("votes_%d", postID) }
func CommentsKey(postID int64) string { return fmt.Sprintf("comments_%d", postID) }

type Client struct {
	cache     gcache.Cache
	staleTime time.Duration
	group     singleflight.Group

	mu       sync.Mutex
	mutating map[string]int
}

// NewClient caches successful reads for staleTime; zero disables caching and
// only in-flight deduplication remains.
func NewClient(cache gcache.Cache, staleTime time.Duration) *Client {
	return &Client{cache: cache, staleTime: staleTime, mutating: make(map[string]int)}
}

// scopeSep separates the viewer scope from the logical key in cache keys.
const scopeSep = "|"

func scoped(ctx context.Context, key string) string {
	return utils.ViewerScope(ctx) + scopeSep + key
}

func unscoped(k string) string {
	if i := strings.Index(k, scopeSep); i >= 0 {
		return k[i+len(scopeSep):]
	}
	return k
}

// Fetch returns the cached value of key or runs fn once for all concurrent
// callers. Entries and in-flight calls are kept per viewer (see
// utils.ViewerScope) since row-level policies make each viewer's answer
// differ. The shared call does not inherit the caller's cancellation; when
// the caller stops waiting it gets a pending result while the call finishes
// and fills the cache.
func Fetch[T any](ctx context.Context, c *Client, key string, fn func(ctx context.Context) (T, error)) Result[T] {
	key = scoped(ctx, key)
	if c.staleTime > 0 {
		if v, err := c.cache.Get(key); err == nil {
			if data, ok := v.(T); ok {
				return Result[T]{Status: StatusSuccess, Data: data}
			}
		}
	}

	detached := context.WithoutCancel(ctx)
	v, _, err := utils.SfDoWithContext(ctx, &c.group, key, func() (any, error) {
		data, err := fn(detached)
		if err != nil {
			return nil, err
		}
		if c.staleTime > 0 {
			_ = c.cache.SetWithExpire(key, data, c.staleTime)
		}
		return data, nil
	})

	switch {
	case err == nil:
		data, _ := v.(T)
		return Result[T]{Status: StatusSuccess, Data: data}
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		return Result[T]{Status: StatusPending}
	default:
		return Result[T]{Status: StatusError, Err: err}
	}
}

// Invalidate drops the cached values of keys for every viewer so the next
// Fetch goes to the platform.
func (c *Client) Invalidate(keys ...string) {
	drop := make(map[string]bool, len(keys))
	for _, key := range keys {
		drop[key] = true
	}
	c.removeIf(func(key string) bool { return drop[key] })
}

// InvalidatePrefix drops every cached key starting with prefix, for every
// viewer.
func (c *Client) InvalidatePrefix(prefix string) {
	c.removeIf(func(key string) bool { return strings.HasPrefix(key, prefix) })
}

func (c *Client) removeIf(match func(key string) bool) {
	for _, k := range c.cache.Keys(false) {
		if s, ok := k.(string); ok && match(unscoped(s)) {
			c.cache.Remove(s)
		}
	}
}

// Mutate runs fn under key, which IsMutating reports until fn returns. fn
// gets a context that is never cancelled: an issued write always completes.
// Nothing stops a second Mutate on the same key.
func (c *Client) Mutate(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	c.mu.Lock()
	c.mutating[key]++
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		if c.mutating[key]--; c.mutating[key] <= 0 {
			delete(c.mutating, key)
		}
		c.mu.Unlock()
	}()

	return fn(context.WithoutCancel(ctx))
}

func (c *Client) IsMutating(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mutating[key] > 0
}
