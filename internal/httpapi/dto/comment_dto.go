package dto

import (
	"time"

	"campuseats/internal/httpapi/models"
)

// CreateCommentRequest carries the comment form body.
type CreateCommentRequest struct {
	Comment string `form:"comment"`
}

// CommentView is a comment joined with its author for API output.
type CommentView struct {
	ID       int64  `json:"id"`
	Author   string `json:"author"`
	UserID   string `json:"user_id"`
	Text     string `json:"text"`
	Date     string `json:"date"`
}

// FromModelToCommentView converts a Comment model to its API projection.
func FromModelToCommentView(comment *models.Comment) CommentView {
	return CommentView{
		ID:     comment.ID,
		Author: comment.User.Username,
		UserID: comment.UserID,
		Text:   comment.CommentText,
		Date:   comment.CreatedAt.Format(time.RFC3339),
	}
}
