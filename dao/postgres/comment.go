package postgres

import (
	"context"

	"github.com/pkg/errors"

	"supasocial/models"
)

func (d *Database) ListComments(ctx context.Context, postID int64) ([]*models.Comment, error) {
	var comments []*models.Comment
	res := d.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at, id").
		Find(&comments)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "postgres:ListComments: select comments")
	}
	return comments, nil
}

func (d *Database) InsertComment(ctx context.Context, c *models.CommentInsert) error {
	res := d.db.WithContext(ctx).Create(c)
	return errors.Wrap(res.Error, "postgres:InsertComment: create comment")
}
