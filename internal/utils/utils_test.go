package utils

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	supasocial "supasocial/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/singleflight"
)

func TestListeners(t *testing.T) {
	var l Listeners[int]
	var got []int

	remove := l.Add(func(v int) { got = append(got, v) })
	l.Emit(1)
	assert.Equal(t, 1, l.Len())

	remove()
	remove()
	l.Emit(2)

	assert.Equal(t, []int{1}, got)
	assert.Equal(t, 0, l.Len())
}

func TestListenersRemoveInsideCallback(t *testing.T) {
	var l Listeners[string]
	calls := 0
	var remove func()
	remove = l.Add(func(string) {
		calls++
		remove()
	})

	l.Emit("a")
	l.Emit("b")
	assert.Equal(t, 1, calls)
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "hello", Excerpt("hello", 10))
	assert.Equal(t, "hel...", Excerpt("hello", 3))
	assert.Equal(t, "你好...", Excerpt("你好世界", 2))
	assert.Equal(t, "", Excerpt("hello", 0))
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "AL", Initials("ann lee"))
	assert.Equal(t, "A", Initials("Ann"))
	assert.Equal(t, "?", Initials("  "))
	assert.Equal(t, "ÉZ", Initials("Émile Zola"))
	assert.Equal(t, "ÅB", Initials("åsa berg lind"))
}

func signed(t *testing.T, claims jwt.Claims, secret []byte) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return s
}

func TestParseAccessToken(t *testing.T) {
	secret := []byte("super-secret")
	claims := &AccessClaims{
		Email:        "ann@example.com",
		UserMetadata: map[string]any{"full_name": "Ann", "avatar_url": "https://img/ann.png"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok := signed(t, claims, secret)

	t.Run("verified", func(t *testing.T) {
		c, err := ParseAccessToken(tok, secret)
		require.NoError(t, err)
		assert.Equal(t, "u1", c.Subject)
		assert.Equal(t, "Ann", c.UserMetadata["full_name"])
	})

	t.Run("unverified", func(t *testing.T) {
		c, err := ParseAccessToken(tok, nil)
		require.NoError(t, err)
		assert.Equal(t, "ann@example.com", c.Email)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := ParseAccessToken(tok, []byte("other"))
		assert.True(t, errors.Is(err, supasocial.ErrInvalidToken))
	})

	t.Run("expired", func(t *testing.T) {
		old := *claims
		old.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		_, err := ParseAccessToken(signed(t, &old, secret), secret)
		assert.Equal(t, supasocial.ErrExpiredToken, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseAccessToken("not-a-token", nil)
		assert.True(t, errors.Is(err, supasocial.ErrInvalidToken))
	})
}

func TestViewerScope(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "anon", ViewerScope(ctx))

	tok := signed(t, &AccessClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"}}, []byte("s"))
	assert.Equal(t, "uid:u1", ViewerScope(WithAccessToken(ctx, tok)))

	a := ViewerScope(WithAccessToken(ctx, "opaque-a"))
	b := ViewerScope(WithAccessToken(ctx, "opaque-b"))
	assert.Regexp(t, `^tok:[0-9a-f]{16}$`, a)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, ViewerScope(WithAccessToken(ctx, "opaque-a")))
}

func TestAccessTokenContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", AccessTokenFrom(ctx))
	assert.Equal(t, ctx, WithAccessToken(ctx, ""))
	assert.Equal(t, "tok", AccessTokenFrom(WithAccessToken(ctx, "tok")))
}

func TestSfDoWithContextDedup(t *testing.T) {
	var grp singleflight.Group
	var calls int32
	release := make(chan struct{})

	fn := func() (any, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "v", nil
	}

	var wg sync.WaitGroup
	results := make([]any, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, _, err := SfDoWithContext(context.Background(), &grp, "k", fn)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, v := range results {
		assert.Equal(t, "v", v)
	}
}

func TestSfDoWithContextCallerGivesUp(t *testing.T) {
	var grp singleflight.Group
	release := make(chan struct{})
	done := make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := SfDoWithContext(ctx, &grp, "k", func() (any, error) {
		defer close(done)
		<-release
		return nil, nil
	})
	assert.True(t, errors.Is(err, context.Canceled))

	close(release)
	<-done
}
