package models

import "time"

// User is the identity the auth provider hands back. Display fields come
// from its user_metadata.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	FullName  string `json:"full_name,omitempty"`
}

// DisplayName falls back to the email when the provider gave no name.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         *User     `json:"user"`
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

type AuthChangeEvent string

const (
	SignedIn       AuthChangeEvent = "SIGNED_IN"
	SignedOut      AuthChangeEvent = "SIGNED_OUT"
	TokenRefreshed AuthChangeEvent = "TOKEN_REFRESHED"
)

// AuthEvent is delivered to listeners of one browser session. Session is nil
// on SIGNED_OUT.
type AuthEvent struct {
	SessionID string
	Event     AuthChangeEvent
	Session   *Session
}

type AuthListener func(AuthEvent)
