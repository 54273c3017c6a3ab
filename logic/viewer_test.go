package logic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supasocial/dao/backend"
	"supasocial/dao/localcache"
	"supasocial/dao/supabase"
	supasocial "supasocial/errors"
	"supasocial/internal/utils"
	"supasocial/models"
	"supasocial/query"
)

// draftPlatform answers get_post_details with post 1 only to its author,
// the way a row-level policy on an unpublished post would.
func draftPlatform(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/rpc/get_post_details", r.URL.Path)
		rows := []*models.PostDetail{}
		if r.Header.Get("Authorization") == "Bearer author-token" {
			rows = append(rows, &models.PostDetail{Post: models.Post{ID: 1, Title: "private draft", Content: "secret", AuthorUID: "u1"}})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rows)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetPostDetailPerViewer(t *testing.T) {
	srv := draftPlatform(t)
	rest := supabase.NewClient(supabase.Config{URL: srv.URL, Key: "anon-key"})
	svc := New(&backend.Client{Database: supabase.NewDatabase(rest)},
		query.NewClient(localcache.New(128), time.Minute))

	author := utils.WithAccessToken(context.Background(), "author-token")
	r := svc.GetPostDetail(author, 1)
	require.True(t, r.IsSuccess())
	assert.Equal(t, "private draft", r.Data.Title)

	r = svc.GetPostDetail(context.Background(), 1)
	require.True(t, r.IsError())
	assert.True(t, errors.Is(r.Err, supasocial.ErrNoSuchPost))

	// the author still gets the cached row
	r = svc.GetPostDetail(author, 1)
	require.True(t, r.IsSuccess())
	assert.Equal(t, "secret", r.Data.Content)
}
