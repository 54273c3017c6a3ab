package inmemory

import (
	"context"
	"sort"
	"time"

	supasocial "supasocial/errors"
	"supasocial/models"
)

// SeedCommunity adds a community and returns its id.
func (p *Platform) SeedCommunity(name, description string) int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID()
	p.communities[id] = &models.Community{ID: id, Name: name, Description: description, CreatedAt: time.Now()}
	return id
}

func (p *Platform) InsertPost(_ context.Context, in *models.PostInsert) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.InsertCalls++
	if p.InsertErr != nil {
		return p.InsertErr
	}
	id := p.nextID()
	p.posts[id] = &models.Post{
		ID:          id,
		Title:       in.Title,
		Content:     in.Content,
		ImageURL:    in.ImageURL,
		AvatarURL:   in.AvatarURL,
		AuthorName:  in.AuthorName,
		AuthorUID:   in.AuthorUID,
		CommunityID: in.CommunityID,
		CreatedAt:   time.Now(),
	}
	return nil
}

// Posts returns every stored post row, oldest first.
func (p *Platform) Posts() []*models.Post {
	p.mu.RLock()
	defer p.mu.RUnlock()
	res := make([]*models.Post, 0, len(p.posts))
	for _, post := range p.posts {
		cp := *post
		res = append(res, &cp)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res
}

func (p *Platform) detail(post *models.Post) *models.PostDetail {
	d := &models.PostDetail{Post: *post}
	if post.CommunityID != nil {
		if c, ok := p.communities[*post.CommunityID]; ok {
			name := c.Name
			d.CommunityName = &name
		}
	}
	return d
}

func (p *Platform) listPosts(keep func(*models.Post) bool) []*models.PostDetail {
	res := make([]*models.PostDetail, 0)
	for _, post := range p.posts {
		if keep(post) {
			res = append(res, p.detail(post))
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].ID > res[j].ID
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res
}

func (p *Platform) ListPosts(context.Context) ([]*models.PostDetail, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ListCalls++
	if p.QueryErr != nil {
		return nil, p.QueryErr
	}
	return p.listPosts(func(*models.Post) bool { return true }), nil
}

func (p *Platform) ListCommunityPosts(_ context.Context, communityID int64) ([]*models.PostDetail, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.QueryErr != nil {
		return nil, p.QueryErr
	}
	return p.listPosts(func(post *models.Post) bool {
		return post.CommunityID != nil && *post.CommunityID == communityID
	}), nil
}

func (p *Platform) GetPostDetails(_ context.Context, postID int64) ([]*models.PostDetail, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.RPCCalls++
	if p.QueryErr != nil {
		return nil, p.QueryErr
	}
	post, ok := p.posts[postID]
	if !ok {
		return []*models.PostDetail{}, nil
	}
	return []*models.PostDetail{p.detail(post)}, nil
}

func (p *Platform) ListCommunities(context.Context) ([]*models.Community, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.QueryErr != nil {
		return nil, p.QueryErr
	}
	res := make([]*models.Community, 0, len(p.communities))
	for _, c := range p.communities {
		cp := *c
		res = append(res, &cp)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (p *Platform) GetCommunity(_ context.Context, id int64) (*models.Community, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.QueryErr != nil {
		return nil, p.QueryErr
	}
	c, ok := p.communities[id]
	if !ok {
		return nil, supasocial.ErrNoSuchCommunity
	}
	cp := *c
	return &cp, nil
}

func (p *Platform) ListVotes(_ context.Context, postID int64) ([]*models.Vote, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.QueryErr != nil {
		return nil, p.QueryErr
	}
	res := make([]*models.Vote, 0)
	for _, v := range p.votes {
		if v.PostID == postID {
			cp := *v
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (p *Platform) FindVote(_ context.Context, postID int64, userID string) (*models.Vote, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.QueryErr != nil {
		return nil, p.QueryErr
	}
	for _, v := range p.votes {
		if v.PostID == postID && v.UserID == userID {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (p *Platform) InsertVote(_ context.Context, v *models.Vote) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.InsertErr != nil {
		return p.InsertErr
	}
	cp := *v
	cp.ID = p.nextID()
	p.votes[cp.ID] = &cp
	return nil
}

func (p *Platform) UpdateVote(_ context.Context, id int64, vote int8) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.InsertErr != nil {
		return p.InsertErr
	}
	if v, ok := p.votes[id]; ok {
		v.Vote = vote
	}
	return nil
}

func (p *Platform) DeleteVote(_ context.Context, id int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.InsertErr != nil {
		return p.InsertErr
	}
	delete(p.votes, id)
	return nil
}

func (p *Platform) ListComments(_ context.Context, postID int64) ([]*models.Comment, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.QueryErr != nil {
		return nil, p.QueryErr
	}
	res := make([]*models.Comment, 0)
	for _, c := range p.comments {
		if c.PostID == postID {
			cp := *c
			res = append(res, &cp)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (p *Platform) InsertComment(_ context.Context, in *models.CommentInsert) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.InsertErr != nil {
		return p.InsertErr
	}
	id := p.nextID()
	p.comments[id] = &models.Comment{
		ID:              id,
		PostID:          in.PostID,
		ParentCommentID: in.ParentCommentID,
		Content:         in.Content,
		UserID:          in.UserID,
		Author:          in.Author,
		CreatedAt:       time.Now(),
	}
	return nil
}
