package postgres

import (
	"context"

	"github.com/pkg/errors"

	"supasocial/models"
)

const selectPostDetail = `SELECT p.id, p.title, p.content, p.image_url, p.avatar_url,
		p.author_name, p.author_uid, p.community_id, p.created_at,
		c.name AS community_name
	FROM posts p
	LEFT JOIN communities c ON c.id = p.community_id`

func (d *Database) InsertPost(ctx context.Context, p *models.PostInsert) error {
	res := d.db.WithContext(ctx).Create(p)
	return errors.Wrap(res.Error, "postgres:InsertPost: create post")
}

func (d *Database) ListPosts(ctx context.Context) ([]*models.PostDetail, error) {
	var posts []*models.PostDetail
	res := d.db.WithContext(ctx).Raw(selectPostDetail + ` ORDER BY p.created_at DESC`).Scan(&posts)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "postgres:ListPosts: select posts")
	}
	return posts, nil
}

func (d *Database) ListCommunityPosts(ctx context.Context, communityID int64) ([]*models.PostDetail, error) {
	var posts []*models.PostDetail
	res := d.db.WithContext(ctx).
		Raw(selectPostDetail+` WHERE p.community_id = ? ORDER BY p.created_at DESC`, communityID).
		Scan(&posts)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "postgres:ListCommunityPosts: select posts")
	}
	return posts, nil
}

func (d *Database) GetPostDetails(ctx context.Context, postID int64) ([]*models.PostDetail, error) {
	var rows []*models.PostDetail
	res := d.db.WithContext(ctx).Raw(`SELECT * FROM get_post_details(?)`, postID).Scan(&rows)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "postgres:GetPostDetails: call get_post_details")
	}
	return rows, nil
}
