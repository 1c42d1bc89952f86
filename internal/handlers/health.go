package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/blog-platform/backend/internal/dto"
	"github.com/emilythestrangee/blog-platform/backend/internal/service"
)

type HealthHandler struct {
	db    HealthChecker
	users service.UserService
	posts service.PostService
}

func NewHealthHandler(db HealthChecker, users service.UserService, posts service.PostService) *HealthHandler {
	return &HealthHandler{db: db, users: users, posts: posts}
}

// Health reports database status and table sizes. It answers 503 while the database is down.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	stats := h.db.Health(ctx)
	if stats["status"] != "up" {
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "unhealthy", Database: stats})
		return
	}

	users, err := h.users.Count(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	posts, err := h.posts.Count(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:     "healthy",
		UsersCount: users,
		PostsCount: posts,
		Database:   stats,
	})
}
