package handlers

import (
	"context"

	"github.com/emilythestrangee/blog-platform/backend/internal/config"
	"github.com/emilythestrangee/blog-platform/backend/internal/service"
)

// HealthChecker reports database status. database.Service satisfies it.
type HealthChecker interface {
	Health(ctx context.Context) map[string]string
}

// Services are the dependencies shared by every handler.
type Services struct {
	Auth      service.AuthService
	Users     service.UserService
	Posts     service.PostService
	Comments  service.CommentService
	Tags      service.TagService
	Reactions service.ReactionService
	DB        HealthChecker
}

// Handler combines all handler types
type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Post    *PostHandler
	Comment *CommentHandler
	Tag     *TagHandler
	Health  *HealthHandler
	Page    *PageHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(svc Services, cfg *config.Config) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(svc.Auth, svc.Users),
		User:    NewUserHandler(svc.Users, svc.Posts, svc.Reactions),
		Post:    NewPostHandler(svc.Posts, svc.Reactions),
		Comment: NewCommentHandler(svc.Comments),
		Tag:     NewTagHandler(svc.Tags),
		Health:  NewHealthHandler(svc.DB, svc.Users, svc.Posts),
		Page:    NewPageHandler(svc.Auth, svc.Posts, svc.Comments, cfg),
	}
}
