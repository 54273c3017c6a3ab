package controller

import "supasocial/models"

type ResponseSession struct {
	User *models.User `json:"user"`
}

type ResponsePostDetail struct {
	Post     *models.PostDetail   `json:"post"`
	Votes    *models.VoteCount    `json:"votes,omitempty"`
	Comments []*models.CommentDTO `json:"comments,omitempty"`
}

type ResponseSignIn struct {
	RedirectURL string `json:"redirect_url"`
}
