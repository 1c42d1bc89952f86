package dto

import "github.com/emilythestrangee/blog-platform/backend/internal/validation"

type ErrorResponse struct {
	Error   string                  `json:"error"`
	Details []validation.FieldError `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status     string            `json:"status"`
	UsersCount int64             `json:"users_count"`
	PostsCount int64             `json:"posts_count"`
	Database   map[string]string `json:"database"`
}
