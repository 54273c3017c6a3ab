package supabase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/url"
	"time"

	supasocial "supasocial/errors"
	"supasocial/internal/utils"
	"supasocial/logger"
	"supasocial/models"

	"github.com/pkg/errors"
)

// SessionStore keeps per browser session state between requests. Get returns
// nil, nil for a missing key.
type SessionStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

const (
	sessionKeyPrefix  = "session:"
	verifierKeyPrefix = "pkce:"

	verifierTTL = 10 * time.Minute
	// refresh a little before the token actually expires
	expiryMargin = 10 * time.Second
)

// Auth implements backend.Auth on GoTrue with the PKCE redirect flow.
type Auth struct {
	*Client
	store     SessionStore
	ttl       time.Duration
	listeners utils.Listeners[models.AuthEvent]
	now       func() time.Time
}

func NewAuth(c *Client, store SessionStore, ttl time.Duration) *Auth {
	return &Auth{Client: c, store: store, ttl: ttl, now: time.Now}
}

func (a *Auth) OnAuthStateChange(l models.AuthListener) (unsubscribe func()) {
	return a.listeners.Add(l)
}

func (a *Auth) emit(sid string, event models.AuthChangeEvent, s *models.Session) {
	a.listeners.Emit(models.AuthEvent{SessionID: sid, Event: event, Session: s})
}

func (a *Auth) loadSession(ctx context.Context, sid string) (*models.Session, error) {
	raw, err := a.store.Get(ctx, sessionKeyPrefix+sid)
	if err != nil || raw == nil {
		return nil, err
	}
	s := new(models.Session)
	if err := json.Unmarshal(raw, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (a *Auth) saveSession(ctx context.Context, sid string, s *models.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, sessionKeyPrefix+sid, raw, a.ttl)
}

// GetSession returns the stored session, refreshing it first when the access
// token has expired. A failed refresh ends the session.
func (a *Auth) GetSession(ctx context.Context, sid string) (*models.Session, error) {
	s, err := a.loadSession(ctx, sid)
	if err != nil {
		return nil, errors.Wrap(err, "supabase:GetSession: load session")
	}
	if s == nil {
		return nil, nil
	}
	if !s.Expired(a.now().Add(expiryMargin)) {
		return s, nil
	}

	refreshed, err := a.refresh(ctx, s.RefreshToken)
	if err != nil {
		_ = a.store.Del(ctx, sessionKeyPrefix+sid)
		a.emit(sid, models.SignedOut, nil)
		return nil, errors.Wrap(err, "supabase:GetSession: refresh")
	}
	if err := a.saveSession(ctx, sid, refreshed); err != nil {
		return nil, errors.Wrap(err, "supabase:GetSession: save session")
	}
	a.emit(sid, models.TokenRefreshed, refreshed)
	return refreshed, nil
}

// SignInWithOAuth stores a PKCE verifier for sid and builds the authorize URL.
// Nothing is sent to the platform until the browser follows it.
func (a *Auth) SignInWithOAuth(ctx context.Context, sid, provider string) (string, error) {
	verifier, err := newVerifier()
	if err != nil {
		return "", errors.Wrap(err, "supabase:SignInWithOAuth: verifier")
	}
	if err := a.store.Set(ctx, verifierKeyPrefix+sid, []byte(verifier), verifierTTL); err != nil {
		return "", errors.Wrap(err, "supabase:SignInWithOAuth: save verifier")
	}

	q := url.Values{}
	q.Set("provider", provider)
	q.Set("redirect_to", a.cfg.SiteURL+"/auth/callback")
	q.Set("code_challenge", challenge(verifier))
	q.Set("code_challenge_method", "s256")
	return a.cfg.URL + "/auth/v1/authorize?" + q.Encode(), nil
}

func (a *Auth) ExchangeCode(ctx context.Context, sid, code string) (*models.Session, error) {
	if code == "" {
		return nil, supasocial.ErrInvalidOAuthCB
	}
	verifier, err := a.store.Get(ctx, verifierKeyPrefix+sid)
	if err != nil {
		return nil, errors.Wrap(err, "supabase:ExchangeCode: load verifier")
	}
	if verifier == nil {
		return nil, supasocial.ErrInvalidOAuthCB
	}

	var tok tokenResponse
	resp, err := a.request(ctx).
		SetQueryParam("grant_type", "pkce").
		SetBody(map[string]string{"auth_code": code, "code_verifier": string(verifier)}).
		SetResult(&tok).
		Post("/auth/v1/token")
	if err := check(resp, err); err != nil {
		return nil, errors.Wrap(err, "supabase:ExchangeCode: token")
	}
	_ = a.store.Del(ctx, verifierKeyPrefix+sid)

	s, err := a.toSession(&tok)
	if err != nil {
		return nil, errors.Wrap(err, "supabase:ExchangeCode: session")
	}
	if err := a.saveSession(ctx, sid, s); err != nil {
		return nil, errors.Wrap(err, "supabase:ExchangeCode: save session")
	}
	a.emit(sid, models.SignedIn, s)
	return s, nil
}

// SignOut always forgets the local session, even when the platform call
// fails; that failure is still returned.
func (a *Auth) SignOut(ctx context.Context, sid string) error {
	s, err := a.loadSession(ctx, sid)
	if err != nil {
		return errors.Wrap(err, "supabase:SignOut: load session")
	}
	if s == nil {
		return nil
	}

	resp, err := a.request(utils.WithAccessToken(ctx, s.AccessToken)).
		SetQueryParam("scope", "local").
		Post("/auth/v1/logout")
	remoteErr := check(resp, err)

	if err := a.store.Del(ctx, sessionKeyPrefix+sid); err != nil {
		logger.Warnf("supabase:SignOut: delete session %s failed: %v", sid, err)
	}
	a.emit(sid, models.SignedOut, nil)
	return errors.Wrap(remoteErr, "supabase:SignOut: logout")
}

func (a *Auth) refresh(ctx context.Context, refreshToken string) (*models.Session, error) {
	if refreshToken == "" {
		return nil, supasocial.ErrExpiredToken
	}
	var tok tokenResponse
	resp, err := a.request(ctx).
		SetQueryParam("grant_type", "refresh_token").
		SetBody(map[string]string{"refresh_token": refreshToken}).
		SetResult(&tok).
		Post("/auth/v1/token")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return a.toSession(&tok)
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	User         *struct {
		ID           string         `json:"id"`
		Email        string         `json:"email"`
		UserMetadata map[string]any `json:"user_metadata"`
	} `json:"user"`
}

// toSession builds a session from a token grant. Claims of the access token
// fill in whatever the response left out.
func (a *Auth) toSession(tok *tokenResponse) (*models.Session, error) {
	claims, err := utils.ParseAccessToken(tok.AccessToken, []byte(a.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	s := &models.Session{AccessToken: tok.AccessToken, RefreshToken: tok.RefreshToken}
	switch {
	case tok.ExpiresAt > 0:
		s.ExpiresAt = time.Unix(tok.ExpiresAt, 0)
	case tok.ExpiresIn > 0:
		s.ExpiresAt = a.now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	case claims.ExpiresAt != nil:
		s.ExpiresAt = claims.ExpiresAt.Time
	}

	u := &models.User{ID: claims.Subject, Email: claims.Email}
	meta := claims.UserMetadata
	if tok.User != nil {
		u.ID, u.Email, meta = tok.User.ID, tok.User.Email, tok.User.UserMetadata
	}
	u.AvatarURL = metaString(meta, "avatar_url", "picture")
	u.FullName = metaString(meta, "full_name", "name")
	if u.ID == "" {
		return nil, supasocial.ErrInvalidToken
	}
	s.User = u
	return s, nil
}

func metaString(meta map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := meta[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func newVerifier() (string, error) {
	buf := make([]byte, 48)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func challenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
