package models

type Vote struct {
	ID     int64  `gorm:"primaryKey" json:"id"`
	PostID int64  `gorm:"column:post_id;not null" json:"post_id"`
	UserID string `gorm:"column:user_id;not null" json:"user_id"`
	Vote   int8   `gorm:"column:vote;not null" json:"vote"`
}

func (Vote) TableName() string { return "votes" }

type VoteCount struct {
	Likes    int  `json:"likes"`
	Dislikes int  `json:"dislikes"`
	Mine     int8 `json:"mine"` // the viewer's vote, 0 when none
}
