// Package session mirrors the platform's auth state for one browser session
// and republishes the current user to whoever renders for it.
package session

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"supasocial/dao/backend"
	"supasocial/internal/utils"
	"supasocial/logger"
	"supasocial/models"
)

const ProviderGoogle = "google"

type Bridge struct {
	auth backend.Auth
	sid  string

	mu       sync.RWMutex
	session  *models.Session
	resolved bool
	version  int // bumped by every auth event

	subscribers utils.Listeners[*models.User]
	unsubscribe func()
}

func NewBridge(auth backend.Auth, sid string) *Bridge {
	return &Bridge{auth: auth, sid: sid}
}

func (b *Bridge) SessionID() string { return b.sid }

// Mount starts listening for auth events of this browser session, then
// resolves the current session once. Failures leave the user signed out and
// are only logged.
func (b *Bridge) Mount(ctx context.Context) {
	b.mu.Lock()
	if b.unsubscribe != nil {
		b.mu.Unlock()
		return
	}
	b.unsubscribe = b.auth.OnAuthStateChange(b.onAuthEvent)
	seen := b.version
	b.mu.Unlock()

	s, err := b.auth.GetSession(ctx, b.sid)
	if err != nil {
		logger.Warnf("session:Mount: get session of %s failed: %v", b.sid, err)
	}

	b.mu.Lock()
	if b.version != seen {
		// an event arrived meanwhile and is newer than this answer
		b.mu.Unlock()
		return
	}
	b.session = s
	b.resolved = true
	b.mu.Unlock()

	b.subscribers.Emit(userOf(s))
}

// Close stops listening. The bridge keeps its last known state.
func (b *Bridge) Close() {
	b.mu.Lock()
	unsubscribe := b.unsubscribe
	b.unsubscribe = nil
	b.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (b *Bridge) onAuthEvent(e models.AuthEvent) {
	if e.SessionID != b.sid {
		return
	}
	b.mu.Lock()
	b.version++
	b.resolved = true
	if e.Event == models.SignedOut {
		b.session = nil
	} else {
		b.session = e.Session
	}
	s := b.session
	b.mu.Unlock()

	logger.Debugf("session: %s on %s", e.Event, b.sid)
	b.subscribers.Emit(userOf(s))
}

func userOf(s *models.Session) *models.User {
	if s == nil {
		return nil
	}
	return s.User
}

// User is nil until the first resolution and whenever no one is signed in.
func (b *Bridge) User() *models.User {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return userOf(b.session)
}

func (b *Bridge) Session() *models.Session {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.session
}

// Resolved reports whether the session was looked up or an event was seen.
func (b *Bridge) Resolved() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.resolved
}

// Subscribe calls fn with the user after every change, nil meaning signed
// out. It returns the function that stops the calls.
func (b *Bridge) Subscribe(fn func(*models.User)) (unsubscribe func()) {
	return b.subscribers.Add(fn)
}

// SignInWithGoogle returns the URL to send the browser to. The resulting
// session shows up through the auth listener once the provider calls back.
func (b *Bridge) SignInWithGoogle(ctx context.Context) (string, error) {
	url, err := b.auth.SignInWithOAuth(ctx, b.sid, ProviderGoogle)
	return url, errors.Wrap(err, "session:SignInWithGoogle")
}

// CompleteSignIn exchanges the code the provider redirected back with.
func (b *Bridge) CompleteSignIn(ctx context.Context, code string) error {
	_, err := b.auth.ExchangeCode(ctx, b.sid, code)
	return errors.Wrap(err, "session:CompleteSignIn")
}

// SignOut ends the session; the change arrives through the auth listener.
func (b *Bridge) SignOut(ctx context.Context) error {
	return errors.Wrap(b.auth.SignOut(ctx, b.sid), "session:SignOut")
}
