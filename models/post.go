package models

import "time"

type Post struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	ImageURL    string    `gorm:"column:image_url;type:text" json:"image_url"`
	AvatarURL   *string   `gorm:"column:avatar_url;type:text" json:"avatar_url"`
	AuthorName  string    `gorm:"column:author_name;type:text" json:"author_name"`
	AuthorUID   string    `gorm:"column:author_uid;type:text" json:"author_uid"`
	CommunityID *int64    `gorm:"column:community_id" json:"community_id"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime;default:now()" json:"created_at"`
}

func (Post) TableName() string { return "posts" }

// PostInsert is the row written by the create flow. Absent community and
// avatar are sent as null.
type PostInsert struct {
	Title       string  `gorm:"column:title" json:"title"`
	Content     string  `gorm:"column:content" json:"content"`
	ImageURL    string  `gorm:"column:image_url" json:"image_url"`
	AvatarURL   *string `gorm:"column:avatar_url" json:"avatar_url"`
	AuthorName  string  `gorm:"column:author_name" json:"author_name"`
	AuthorUID   string  `gorm:"column:author_uid" json:"author_uid"`
	CommunityID *int64  `gorm:"column:community_id" json:"community_id"`
}

func (PostInsert) TableName() string { return "posts" }

// PostDetail is one row of get_post_details, or of a listing joined with
// communities.
type PostDetail struct {
	Post
	CommunityName *string `gorm:"column:community_name" json:"community_name"`
}

// Date formats the creation date the way the detail page shows it.
func (p *Post) Date() string {
	return p.CreatedAt.Local().Format("1/2/2006")
}
