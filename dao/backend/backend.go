// Package backend holds the handle every other layer uses to reach the
// platform: its auth service, its object storage and its database.
package backend

import (
	"context"

	"supasocial/models"
)

type Auth interface {
	// GetSession resolves the current session of browser session sid, or nil.
	GetSession(ctx context.Context, sid string) (*models.Session, error)
	// OnAuthStateChange registers l for every browser session and returns the
	// function that unregisters it.
	OnAuthStateChange(l models.AuthListener) (unsubscribe func())
	// SignInWithOAuth returns the provider URL the browser is redirected to.
	SignInWithOAuth(ctx context.Context, sid, provider string) (string, error)
	// ExchangeCode finishes the redirect flow started by SignInWithOAuth.
	ExchangeCode(ctx context.Context, sid, code string) (*models.Session, error)
	SignOut(ctx context.Context, sid string) error
}

type Storage interface {
	Upload(ctx context.Context, path string, file *models.ImageFile) error
	// PublicURL is computed locally, no request is made.
	PublicURL(path string) string
}

type Database interface {
	InsertPost(ctx context.Context, p *models.PostInsert) error
	ListPosts(ctx context.Context) ([]*models.PostDetail, error)
	ListCommunityPosts(ctx context.Context, communityID int64) ([]*models.PostDetail, error)
	// GetPostDetails calls the get_post_details procedure: zero or one row.
	GetPostDetails(ctx context.Context, postID int64) ([]*models.PostDetail, error)

	ListCommunities(ctx context.Context) ([]*models.Community, error)
	GetCommunity(ctx context.Context, id int64) (*models.Community, error)

	ListVotes(ctx context.Context, postID int64) ([]*models.Vote, error)
	FindVote(ctx context.Context, postID int64, userID string) (*models.Vote, error)
	InsertVote(ctx context.Context, v *models.Vote) error
	UpdateVote(ctx context.Context, id int64, vote int8) error
	DeleteVote(ctx context.Context, id int64) error

	ListComments(ctx context.Context, postID int64) ([]*models.Comment, error)
	InsertComment(ctx context.Context, c *models.CommentInsert) error
}

// Client is created once at startup and passed to whoever needs it.
type Client struct {
	Auth     Auth
	Storage  Storage
	Database Database
}
