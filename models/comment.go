package models

import "time"

type Comment struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	PostID          int64     `gorm:"column:post_id;not null" json:"post_id"`
	ParentCommentID *int64    `gorm:"column:parent_comment_id" json:"parent_comment_id"`
	Content         string    `gorm:"type:text;not null" json:"content"`
	UserID          string    `gorm:"column:user_id" json:"user_id"`
	Author          string    `gorm:"column:author" json:"author"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime;default:now()" json:"created_at"`
}

func (Comment) TableName() string { return "comments" }

type CommentInsert struct {
	PostID          int64  `gorm:"column:post_id" json:"post_id"`
	ParentCommentID *int64 `gorm:"column:parent_comment_id" json:"parent_comment_id"`
	Content         string `gorm:"column:content" json:"content"`
	UserID          string `gorm:"column:user_id" json:"user_id"`
	Author          string `gorm:"column:author" json:"author"`
}

func (CommentInsert) TableName() string { return "comments" }

type CommentDTO struct {
	*Comment
	Replies []*CommentDTO `json:"replies"`
}
