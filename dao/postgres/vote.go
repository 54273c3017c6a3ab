package postgres

import (
	"context"

	"github.com/pkg/errors"

	"supasocial/models"
)

func (d *Database) ListVotes(ctx context.Context, postID int64) ([]*models.Vote, error) {
	var votes []*models.Vote
	res := d.db.WithContext(ctx).Where("post_id = ?", postID).Find(&votes)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "postgres:ListVotes: select votes")
	}
	return votes, nil
}

func (d *Database) FindVote(ctx context.Context, postID int64, userID string) (*models.Vote, error) {
	var votes []*models.Vote
	res := d.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Limit(1).
		Find(&votes)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "postgres:FindVote: select vote")
	}
	if len(votes) == 0 {
		return nil, nil
	}
	return votes[0], nil
}

func (d *Database) InsertVote(ctx context.Context, v *models.Vote) error {
	res := d.db.WithContext(ctx).Create(v)
	return errors.Wrap(res.Error, "postgres:InsertVote: create vote")
}

func (d *Database) UpdateVote(ctx context.Context, id int64, vote int8) error {
	res := d.db.WithContext(ctx).Model(&models.Vote{}).Where("id = ?", id).Update("vote", vote)
	return errors.Wrap(res.Error, "postgres:UpdateVote: update vote")
}

func (d *Database) DeleteVote(ctx context.Context, id int64) error {
	res := d.db.WithContext(ctx).Delete(&models.Vote{}, id)
	return errors.Wrap(res.Error, "postgres:DeleteVote: delete vote")
}
