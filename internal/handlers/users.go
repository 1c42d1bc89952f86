package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/blog-platform/backend/internal/dto"
	"github.com/emilythestrangee/blog-platform/backend/internal/middleware"
	"github.com/emilythestrangee/blog-platform/backend/internal/service"
)

type UserHandler struct {
	users     service.UserService
	posts     service.PostService
	reactions service.ReactionService
}

func NewUserHandler(users service.UserService, posts service.PostService, reactions service.ReactionService) *UserHandler {
	return &UserHandler{users: users, posts: posts, reactions: reactions}
}

func (h *UserHandler) List(c *gin.Context) {
	var query dto.UserQuery
	if !bindQuery(c, &query) {
		return
	}

	users, total, err := h.users.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapPage(users, query.PageQuery, total, dto.FromUser))
}

// Create registers a user without issuing a token
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromUser(user))
}

// Get returns a profile. Signed-in viewers also learn whether they follow it.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := dto.FromUser(user)

	if viewerID := middleware.CurrentUserID(c); viewerID != 0 && viewerID != id {
		following, err := h.reactions.IsFollowing(c.Request.Context(), viewerID, id)
		if err != nil {
			respondError(c, err)
			return
		}
		resp.IsFollowing = &following
	}

	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.Update(c.Request.Context(), middleware.CurrentUserID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromUser(user))
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Posts lists a user's posts, including drafts when the author is asking
func (h *UserHandler) Posts(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var query dto.PageQuery
	if !bindQuery(c, &query) {
		return
	}

	posts, total, err := h.posts.ListByAuthor(c.Request.Context(), middleware.CurrentUserID(c), id, query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapPage(posts, query, total, dto.FromPost))
}

func (h *UserHandler) Followers(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var query dto.PageQuery
	if !bindQuery(c, &query) {
		return
	}

	users, total, err := h.reactions.Followers(c.Request.Context(), id, query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapPage(users, query, total, dto.FromUser))
}

func (h *UserHandler) Following(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var query dto.PageQuery
	if !bindQuery(c, &query) {
		return
	}

	users, total, err := h.reactions.Following(c.Request.Context(), id, query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapPage(users, query, total, dto.FromUser))
}

func (h *UserHandler) Follow(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.reactions.Follow(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "followed"})
}

func (h *UserHandler) Unfollow(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.reactions.Unfollow(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Bookmarks lists the current user's saved posts, most recently saved first
func (h *UserHandler) Bookmarks(c *gin.Context) {
	var query dto.PageQuery
	if !bindQuery(c, &query) {
		return
	}

	posts, total, err := h.reactions.Bookmarks(c.Request.Context(), middleware.CurrentUserID(c), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapPage(posts, query, total, dto.FromPost))
}
