package supabase

import (
	"context"
	"strconv"

	supasocial "supasocial/errors"
	"supasocial/models"

	"github.com/pkg/errors"
)

// Database implements backend.Database on PostgREST.
type Database struct {
	*Client
}

func NewDatabase(c *Client) *Database {
	return &Database{Client: c}
}

// postRow is a posts row with its community embedded by PostgREST.
type postRow struct {
	models.Post
	Communities *struct {
		Name string `json:"name"`
	} `json:"communities"`
}

func flatten(rows []postRow) []*models.PostDetail {
	res := make([]*models.PostDetail, 0, len(rows))
	for i := range rows {
		d := &models.PostDetail{Post: rows[i].Post}
		if rows[i].Communities != nil {
			name := rows[i].Communities.Name
			d.CommunityName = &name
		}
		res = append(res, d)
	}
	return res
}

func eq(v any) string {
	switch v := v.(type) {
	case int64:
		return "eq." + strconv.FormatInt(v, 10)
	case string:
		return "eq." + v
	}
	return ""
}

func (db *Database) InsertPost(ctx context.Context, p *models.PostInsert) error {
	resp, err := db.request(ctx).
		SetHeader("Prefer", "return=minimal").
		SetBody(p).
		Post("/rest/v1/posts")
	return errors.Wrap(check(resp, err), "supabase:InsertPost: insert posts")
}

func (db *Database) ListPosts(ctx context.Context) ([]*models.PostDetail, error) {
	var rows []postRow
	resp, err := db.request(ctx).
		SetQueryParam("select", "*,communities(name)").
		SetQueryParam("order", "created_at.desc").
		SetResult(&rows).
		Get("/rest/v1/posts")
	if err := check(resp, err); err != nil {
		return nil, errors.Wrap(err, "supabase:ListPosts: select posts")
	}
	return flatten(rows), nil
}

func (db *Database) ListCommunityPosts(ctx context.Context, communityID int64) ([]*models.PostDetail, error) {
	var rows []postRow
	resp, err := db.request(ctx).
		SetQueryParam("select", "*,communities(name)").
		SetQueryParam("community_id", eq(communityID)).
		SetQueryParam("order", "created_at.desc").
		SetResult(&rows).
		Get("/rest/v1/posts")
	if err := check(resp, err); err != nil {
		return nil, errors.Wrap(err, "supabase:ListCommunityPosts: select posts")
	}
	return flatten(rows), nil
}

func (db *Database) GetPostDetails(ctx context.Context, postID int64) ([]*models.PostDetail, error) {
	var rows []*models.PostDetail
	resp, err := db.request(ctx).
		SetBody(map[string]int64{"post_id": postID}).
		SetResult(&rows).
		Post("/rest/v1/rpc/get_post_details")
	if err := check(resp, err); err != nil {
		return nil, errors.Wrap(err, "supabase:GetPostDetails: rpc get_post_details")
	}
	return rows, nil
}

func (db *Database) ListCommunities(ctx context.Context) ([]*models.Community, error) {
	var res []*models.Community
	resp, err := db.request(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("order", "id.asc").
		SetResult(&res).
		Get("/rest/v1/communities")
	if err := check(resp, err); err != nil {
		return nil, errors.Wrap(err, "supabase:ListCommunities: select communities")
	}
	return res, nil
}

func (db *Database) GetCommunity(ctx context.Context, id int64) (*models.Community, error) {
	var res []*models.Community
	resp, err := db.request(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("id", eq(id)).
		SetResult(&res).
		Get("/rest/v1/communities")
	if err := check(resp, err); err != nil {
		return nil, errors.Wrap(err, "supabase:GetCommunity: select communities")
	}
	if len(res) == 0 {
		return nil, supasocial.ErrNoSuchCommunity
	}
	return res[0], nil
}

func (db *Database) ListVotes(ctx context.Context, postID int64) ([]*models.Vote, error) {
	var res []*models.Vote
	resp, err := db.request(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("post_id", eq(postID)).
		SetResult(&res).
		Get("/rest/v1/votes")
	if err := check(resp, err); err != nil {
		return nil, errors.Wrap(err, "supabase:ListVotes: select votes")
	}
	return res, nil
}

// FindVote returns nil when the user has not voted on the post.
func (db *Database) FindVote(ctx context.Context, postID int64, userID string) (*models.Vote, error) {
	var res []*models.Vote
	resp, err := db.request(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("post_id", eq(postID)).
		SetQueryParam("user_id", eq(userID)).
		SetResult(&res).
		Get("/rest/v1/votes")
	if err := check(resp, err); err != nil {
		return nil, errors.Wrap(err, "supabase:FindVote: select votes")
	}
	if len(res) == 0 {
		return nil, nil
	}
	return res[0], nil
}

func (db *Database) InsertVote(ctx context.Context, v *models.Vote) error {
	resp, err := db.request(ctx).
		SetHeader("Prefer", "return=minimal").
		SetBody(map[string]any{"post_id": v.PostID, "user_id": v.UserID, "vote": v.Vote}).
		Post("/rest/v1/votes")
	return errors.Wrap(check(resp, err), "supabase:InsertVote: insert votes")
}

func (db *Database) UpdateVote(ctx context.Context, id int64, vote int8) error {
	resp, err := db.request(ctx).
		SetHeader("Prefer", "return=minimal").
		SetQueryParam("id", eq(id)).
		SetBody(map[string]int8{"vote": vote}).
		Patch("/rest/v1/votes")
	return errors.Wrap(check(resp, err), "supabase:UpdateVote: update votes")
}

func (db *Database) DeleteVote(ctx context.Context, id int64) error {
	resp, err := db.request(ctx).
		SetQueryParam("id", eq(id)).
		Delete("/rest/v1/votes")
	return errors.Wrap(check(resp, err), "supabase:DeleteVote: delete votes")
}

func (db *Database) ListComments(ctx context.Context, postID int64) ([]*models.Comment, error) {
	var res []*models.Comment
	resp, err := db.request(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("post_id", eq(postID)).
		SetQueryParam("order", "created_at.asc").
		SetResult(&res).
		Get("/rest/v1/comments")
	if err := check(resp, err); err != nil {
		return nil, errors.Wrap(err, "supabase:ListComments: select comments")
	}
	return res, nil
}

func (db *Database) InsertComment(ctx context.Context, c *models.CommentInsert) error {
	resp, err := db.request(ctx).
		SetHeader("Prefer", "return=minimal").
		SetBody(c).
		Post("/rest/v1/comments")
	return errors.Wrap(check(resp, err), "supabase:InsertComment: insert comments")
}
