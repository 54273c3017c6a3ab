package logic

import (
	"context"

	"github.com/pkg/errors"

	supasocial "supasocial/errors"
	"supasocial/models"
	"supasocial/query"
)

// GetCommentTree returns the top level comments of a post with their replies
// nested, each level oldest first.
func (s *Service) GetCommentTree(ctx context.Context, postID int64) query.Result[[]*models.CommentDTO] {
	comments := query.Fetch(ctx, s.queries, query.CommentsKey(postID), func(ctx context.Context) ([]*models.Comment, error) {
		list, err := s.client.Database.ListComments(ctx, postID)
		return list, errors.Wrap(err, "logic:GetCommentTree: ListComments")
	})
	if !comments.IsSuccess() {
		return query.Result[[]*models.CommentDTO]{Status: comments.Status, Err: comments.Err}
	}
	return query.Result[[]*models.CommentDTO]{Status: query.StatusSuccess, Data: BuildCommentTree(comments.Data)}
}

// BuildCommentTree nests comments by parent. A reply whose parent is missing
// is shown at the top level. The input order is kept within each level.
func BuildCommentTree(comments []*models.Comment) []*models.CommentDTO {
	nodes := make(map[int64]*models.CommentDTO, len(comments))
	for _, c := range comments {
		nodes[c.ID] = &models.CommentDTO{Comment: c, Replies: []*models.CommentDTO{}}
	}

	roots := make([]*models.CommentDTO, 0)
	for _, c := range comments {
		node := nodes[c.ID]
		if c.ParentCommentID != nil {
			if parent, ok := nodes[*c.ParentCommentID]; ok && parent != node {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

func (s *Service) CreateComment(ctx context.Context, postID int64, user *models.User, params *models.ParamComment) error {
	if user == nil {
		return supasocial.ErrNeedLogin
	}

	return s.queries.Mutate(ctx, query.CommentsKey(postID), func(ctx context.Context) error {
		err := s.client.Database.InsertComment(ctx, &models.CommentInsert{
			PostID:          postID,
			ParentCommentID: params.ParentCommentID,
			Content:         params.Content,
			UserID:          user.ID,
			Author:          user.FullName,
		})
		if err != nil {
			return errors.Wrap(err, "logic:CreateComment: InsertComment")
		}
		s.queries.Invalidate(query.CommentsKey(postID))
		return nil
	})
}
