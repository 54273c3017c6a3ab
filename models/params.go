package models

import "strconv"

/*
	request parameter structs
*/

/* Post */
type ParamCreatePost struct {
	Title       string `form:"title" binding:"required,max=256"`
	Content     string `form:"content" binding:"required"`
	CommunityID string `form:"community_id" binding:"omitempty,numeric"`
}

// Community returns nil when no community was selected.
func (p *ParamCreatePost) Community() *int64 {
	id, err := strconv.ParseInt(p.CommunityID, 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}

type ParamPostID struct {
	PostID int64 `uri:"post_id" binding:"required,gt=0"`
}

type ParamCommunityID struct {
	CommunityID int64 `uri:"id" binding:"required,gt=0"`
}

/* Vote */
type ParamVote struct {
	Vote int8 `form:"vote" json:"vote" binding:"required,oneof=1 -1"`
}

/* Comment */
type ParamComment struct {
	Content         string `form:"content" json:"content" binding:"required,max=8192"`
	ParentCommentID *int64 `form:"parent_comment_id" json:"parent_comment_id" binding:"omitempty,gt=0"`
}

/* Auth */
type ParamOAuthCallback struct {
	Code  string `form:"code"`
	Error string `form:"error"`
	Desc  string `form:"error_description"`
}
