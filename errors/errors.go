package supasocial

import "github.com/pkg/errors"

var (
	// session
	ErrNeedLogin      = errors.New("need login")
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("expired token")
	ErrNoSession      = errors.New("no session")
	ErrInvalidOAuthCB = errors.New("invalid oauth callback")

	// common
	ErrInternal     = errors.New("server busy")
	ErrInvalidParam = errors.New("invalid param")
	ErrMissingImage = errors.New("missing image")

	// community
	ErrNoSuchCommunity = errors.New("Community not found")

	// post
	ErrNoSuchPost = errors.New("Post not found")
)
