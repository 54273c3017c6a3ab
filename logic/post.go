package logic

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pkg/errors"

	"supasocial/algorithm"
	supasocial "supasocial/errors"
	"supasocial/logger"
	"supasocial/models"
	"supasocial/query"
)

// UploadKey names the stored image. Two uploads of the same title and file
// name in the same millisecond collide; the second one fails.
func UploadKey(title string, t time.Time, filename string) string {
	return fmt.Sprintf("%s-%d-%s", title, t.UnixMilli(), filename)
}

// CreatePostKey identifies the create form of one browser session.
func CreatePostKey(sid string) string {
	return "create_post:" + sid
}

// IsCreatingPost reports whether a submission of that form is in flight.
func (s *Service) IsCreatingPost(sid string) bool {
	return s.queries.IsMutating(CreatePostKey(sid))
}

// CreatePost uploads the image, then inserts the post row pointing at its
// public URL. Without a user nothing is sent. A failed upload means no row;
// a failed insert leaves the uploaded image in place. Once started, the flow
// runs to the end even if ctx is cancelled.
func (s *Service) CreatePost(ctx context.Context, sid string, user *models.User, params *models.ParamCreatePost, image *models.ImageFile) error {
	if user == nil {
		return supasocial.ErrNeedLogin
	}
	if image == nil || image.Filename == "" {
		return supasocial.ErrMissingImage
	}

	return s.queries.Mutate(ctx, CreatePostKey(sid), func(ctx context.Context) error {
		key := UploadKey(params.Title, s.now(), image.Filename)
		if err := s.client.Storage.Upload(ctx, key, image); err != nil {
			return errors.Wrap(err, "logic:CreatePost: upload image")
		}

		post := &models.PostInsert{
			Title:       params.Title,
			Content:     params.Content,
			ImageURL:    s.client.Storage.PublicURL(key),
			AuthorName:  user.FullName,
			AuthorUID:   user.ID,
			CommunityID: params.Community(),
		}
		if user.AvatarURL != "" {
			avatar := user.AvatarURL
			post.AvatarURL = &avatar
		}
		if err := s.client.Database.InsertPost(ctx, post); err != nil {
			logger.Warnf("logic:CreatePost: image %s is left without a post", key)
			return errors.Wrap(err, "logic:CreatePost: insert post")
		}

		s.queries.Invalidate(query.KeyPosts)
		if post.CommunityID != nil {
			s.queries.Invalidate(query.CommunityPostsKey(*post.CommunityID))
		}
		return nil
	})
}

// GetPostDetail reads one post through get_post_details. An empty answer is
// ErrNoSuchPost, distinct from a failing call.
func (s *Service) GetPostDetail(ctx context.Context, postID int64) query.Result[*models.PostDetail] {
	return query.Fetch(ctx, s.queries, query.PostKey(postID), func(ctx context.Context) (*models.PostDetail, error) {
		rows, err := s.client.Database.GetPostDetails(ctx, postID)
		if err != nil {
			return nil, errors.Wrap(err, "logic:GetPostDetail: GetPostDetails")
		}
		if len(rows) == 0 {
			return nil, supasocial.ErrNoSuchPost
		}
		return rows[0], nil
	})
}

// GetPostList is the root listing, newest first.
func (s *Service) GetPostList(ctx context.Context) query.Result[[]*models.PostDetail] {
	return query.Fetch(ctx, s.queries, query.KeyPosts, func(ctx context.Context) ([]*models.PostDetail, error) {
		posts, err := s.client.Database.ListPosts(ctx)
		return posts, errors.Wrap(err, "logic:GetPostList: ListPosts")
	})
}

// GetHotPostList is the root listing ordered by algorithm.HotScore. Vote
// counts come through the same cached queries the vote widget uses.
func (s *Service) GetHotPostList(ctx context.Context) query.Result[[]*models.PostDetail] {
	list := s.GetPostList(ctx)
	if !list.IsSuccess() {
		return list
	}

	scores := make(map[int64]float64, len(list.Data))
	for _, p := range list.Data {
		votes := s.GetVotes(ctx, p.ID, nil)
		if !votes.IsSuccess() {
			return query.Result[[]*models.PostDetail]{Status: votes.Status, Err: votes.Err}
		}
		scores[p.ID] = algorithm.HotScore(p.CreatedAt, int64(votes.Data.Likes-votes.Data.Dislikes))
	}

	// the cached slice is shared, sort a copy
	posts := append([]*models.PostDetail(nil), list.Data...)
	sort.SliceStable(posts, func(i, j int) bool {
		return scores[posts[i].ID] > scores[posts[j].ID]
	})
	return query.Result[[]*models.PostDetail]{Status: query.StatusSuccess, Data: posts}
}
