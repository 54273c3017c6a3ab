package inmemory

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"

	supasocial "supasocial/errors"
	"supasocial/models"
)

// DevUser signs in through the memory auth redirect.
var DevUser = models.User{ID: "dev-user", Email: "dev@localhost", FullName: "Dev User"}

func (p *Platform) OnAuthStateChange(l models.AuthListener) (unsubscribe func()) {
	return p.listeners.Add(l)
}

func (p *Platform) GetSession(_ context.Context, sid string) (*models.Session, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.AuthErr != nil {
		return nil, p.AuthErr
	}
	s, ok := p.sessions[sid]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

// SignInWithOAuth skips the provider and sends the browser straight to the
// callback with a one time code.
func (p *Platform) SignInWithOAuth(_ context.Context, sid, provider string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.AuthErr != nil {
		return "", p.AuthErr
	}
	code := uuid.NewString()
	p.codes[code] = sid
	return "/auth/callback?" + url.Values{"code": {code}, "provider": {provider}}.Encode(), nil
}

func (p *Platform) ExchangeCode(_ context.Context, sid, code string) (*models.Session, error) {
	p.mu.Lock()
	owner, ok := p.codes[code]
	if !ok || owner != sid {
		p.mu.Unlock()
		return nil, supasocial.ErrInvalidOAuthCB
	}
	delete(p.codes, code)
	p.mu.Unlock()

	u := DevUser
	return p.SignIn(sid, &u), nil
}

// SignIn establishes a session for user directly and notifies listeners.
func (p *Platform) SignIn(sid string, user *models.User) *models.Session {
	s := &models.Session{
		AccessToken: uuid.NewString(),
		ExpiresAt:   time.Now().Add(time.Hour),
		User:        user,
	}
	p.mu.Lock()
	p.sessions[sid] = s
	p.mu.Unlock()

	p.listeners.Emit(models.AuthEvent{SessionID: sid, Event: models.SignedIn, Session: s})
	return s
}

func (p *Platform) SignOut(_ context.Context, sid string) error {
	p.mu.Lock()
	if p.AuthErr != nil {
		p.mu.Unlock()
		return p.AuthErr
	}
	_, had := p.sessions[sid]
	delete(p.sessions, sid)
	p.mu.Unlock()

	if had {
		p.listeners.Emit(models.AuthEvent{SessionID: sid, Event: models.SignedOut})
	}
	return nil
}

// Listeners reports how many auth listeners are registered.
func (p *Platform) Listeners() int {
	return p.listeners.Len()
}
