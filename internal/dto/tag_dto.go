package dto

import (
	"time"

	"github.com/emilythestrangee/blog-platform/backend/internal/models"
)

type CreateTagRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type TagResponse struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	PostsCount  int64     `json:"posts_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromTag(tag *models.Tag) TagResponse {
	return TagResponse{
		ID:          tag.ID,
		Name:        tag.Name,
		Description: tag.Description,
		PostsCount:  tag.PostsCount,
		CreatedAt:   tag.CreatedAt,
	}
}
