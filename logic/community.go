package logic

import (
	"context"

	"github.com/pkg/errors"

	"supasocial/models"
	"supasocial/query"
)

// GetCommunityList backs both the community page and the create form's
// selector, so they share one cache entry.
func (s *Service) GetCommunityList(ctx context.Context) query.Result[[]*models.Community] {
	return query.Fetch(ctx, s.queries, query.KeyCommunities, func(ctx context.Context) ([]*models.Community, error) {
		list, err := s.client.Database.ListCommunities(ctx)
		return list, errors.Wrap(err, "logic:GetCommunityList: ListCommunities")
	})
}

func (s *Service) GetCommunityPosts(ctx context.Context, communityID int64) query.Result[*models.CommunityPosts] {
	community := query.Fetch(ctx, s.queries, query.CommunityKey(communityID), func(ctx context.Context) (*models.Community, error) {
		return s.client.Database.GetCommunity(ctx, communityID)
	})
	if !community.IsSuccess() {
		return query.Result[*models.CommunityPosts]{Status: community.Status, Err: community.Err}
	}

	posts := query.Fetch(ctx, s.queries, query.CommunityPostsKey(communityID), func(ctx context.Context) ([]*models.PostDetail, error) {
		list, err := s.client.Database.ListCommunityPosts(ctx, communityID)
		return list, errors.Wrap(err, "logic:GetCommunityPosts: ListCommunityPosts")
	})
	if !posts.IsSuccess() {
		return query.Result[*models.CommunityPosts]{Status: posts.Status, Err: posts.Err}
	}

	return query.Result[*models.CommunityPosts]{
		Status: query.StatusSuccess,
		Data:   &models.CommunityPosts{Community: community.Data, Posts: posts.Data},
	}
}
