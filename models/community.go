package models

import "time"

type Community struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime;default:now()" json:"created_at,omitempty"`
}

func (Community) TableName() string { return "communities" }

type CommunityPosts struct {
	Community *Community    `json:"community"`
	Posts     []*PostDetail `json:"posts"`
}
