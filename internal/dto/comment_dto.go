package dto

import (
	"time"

	"github.com/emilythestrangee/blog-platform/backend/internal/models"
)

type CreateCommentRequest struct {
	Body            string `json:"body" form:"body"`
	ParentCommentID *int   `json:"parent_comment_id" form:"parent_comment_id"`
}

type UpdateCommentRequest struct {
	Body string `json:"body"`
}

type CommentResponse struct {
	ID              int            `json:"id"`
	PostID          int            `json:"post_id"`
	ParentCommentID *int           `json:"parent_comment_id"`
	Body            string         `json:"body"`
	WasEdited       bool           `json:"was_edited"`
	Author          AuthorResponse `json:"author"`
	RepliesCount    int64          `json:"replies_count"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func FromComment(comment *models.Comment) CommentResponse {
	return CommentResponse{
		ID:              comment.ID,
		PostID:          comment.PostID,
		ParentCommentID: comment.ParentCommentID,
		Body:            comment.Body,
		WasEdited:       comment.WasEdited,
		Author:          FromAuthor(&comment.User),
		RepliesCount:    comment.RepliesCount,
		CreatedAt:       comment.CreatedAt,
		UpdatedAt:       comment.UpdatedAt,
	}
}
