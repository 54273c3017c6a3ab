// Package supabase talks to the platform over its REST surface: PostgREST
// for tables and procedures, the storage API for the bucket and GoTrue for
// sessions.
package supabase

import (
	"context"
	"fmt"
	"strings"

	"supasocial/internal/utils"

	"github.com/go-resty/resty/v2"
)

type Config struct {
	URL       string // project base URL
	Key       string // public (anon) key
	JWTSecret string // optional, enables access token signature checks
	Bucket    string
	SiteURL   string // where the OAuth provider sends the browser back to
	Debug     bool
}

// Client is shared by the database, storage and auth adapters.
type Client struct {
	cfg  Config
	http *resty.Client
}

func NewClient(cfg Config) *Client {
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")

	rc := resty.New().
		SetBaseURL(cfg.URL).
		SetHeader("apikey", cfg.Key).
		SetHeader("Accept", "application/json").
		SetDebug(cfg.Debug)

	return &Client{cfg: cfg, http: rc}
}

// request starts a call as the user whose access token travels in ctx, or
// as the anonymous role.
func (c *Client) request(ctx context.Context) *resty.Request {
	token := utils.AccessTokenFrom(ctx)
	if token == "" {
		token = c.cfg.Key
	}
	return c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token).
		SetError(&APIError{})
}

// APIError covers the error bodies of PostgREST, storage and GoTrue.
type APIError struct {
	Status           int    `json:"-"`
	Code             any    `json:"code,omitempty"`
	Message          string `json:"message,omitempty"`
	Msg              string `json:"msg,omitempty"`
	Details          string `json:"details,omitempty"`
	Hint             string `json:"hint,omitempty"`
	ErrorName        string `json:"error,omitempty"`
	ErrorDescription string `json:"error_description,omitempty"`
}

func (e *APIError) Error() string {
	if msg := e.message(); msg != "" {
		return msg
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

func (e *APIError) message() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Msg != "":
		return e.Msg
	case e.ErrorDescription != "":
		return e.ErrorDescription
	case e.ErrorName != "":
		return e.ErrorName
	}
	return ""
}

// check converts a transport error or an error response into an error.
func check(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if !resp.IsError() {
		return nil
	}
	apiErr, ok := resp.Error().(*APIError)
	if !ok || apiErr == nil {
		apiErr = &APIError{}
	}
	apiErr.Status = resp.StatusCode()
	if apiErr.message() == "" && len(resp.Body()) > 0 {
		apiErr.Message = strings.TrimSpace(string(resp.Body()))
	}
	return apiErr
}
