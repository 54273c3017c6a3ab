package logic

import (
	"context"

	"github.com/pkg/errors"

	supasocial "supasocial/errors"
	"supasocial/models"
	"supasocial/query"
)

// GetVotes counts the votes of a post. mine is the viewer's own vote and is
// left at 0 when user is nil.
func (s *Service) GetVotes(ctx context.Context, postID int64, user *models.User) query.Result[*models.VoteCount] {
	votes := query.Fetch(ctx, s.queries, query.VotesKey(postID), func(ctx context.Context) ([]*models.Vote, error) {
		list, err := s.client.Database.ListVotes(ctx, postID)
		return list, errors.Wrap(err, "logic:GetVotes: ListVotes")
	})
	if !votes.IsSuccess() {
		return query.Result[*models.VoteCount]{Status: votes.Status, Err: votes.Err}
	}

	count := &models.VoteCount{}
	for _, v := range votes.Data {
		switch v.Vote {
		case 1:
			count.Likes++
		case -1:
			count.Dislikes++
		}
		if user != nil && v.UserID == user.ID {
			count.Mine = v.Vote
		}
	}
	return query.Result[*models.VoteCount]{Status: query.StatusSuccess, Data: count}
}

/* Toggling a vote:
vote equals the existing one   --> remove it
vote opposite to existing one  --> switch it
no existing vote               --> insert it
*/

func (s *Service) ToggleVote(ctx context.Context, postID int64, user *models.User, vote int8) error {
	if user == nil {
		return supasocial.ErrNeedLogin
	}
	if vote != 1 && vote != -1 {
		return supasocial.ErrInvalidParam
	}

	return s.queries.Mutate(ctx, query.VotesKey(postID), func(ctx context.Context) error {
		existing, err := s.client.Database.FindVote(ctx, postID, user.ID)
		if err != nil {
			return errors.Wrap(err, "logic:ToggleVote: FindVote")
		}

		switch {
		case existing == nil:
			err = s.client.Database.InsertVote(ctx, &models.Vote{PostID: postID, UserID: user.ID, Vote: vote})
		case existing.Vote == vote:
			err = s.client.Database.DeleteVote(ctx, existing.ID)
		default:
			err = s.client.Database.UpdateVote(ctx, existing.ID, vote)
		}
		if err != nil {
			return errors.Wrap(err, "logic:ToggleVote: write vote")
		}

		s.queries.Invalidate(query.VotesKey(postID))
		return nil
	})
}
