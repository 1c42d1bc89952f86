package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/blog-platform/backend/internal/dto"
	"github.com/emilythestrangee/blog-platform/backend/internal/middleware"
	"github.com/emilythestrangee/blog-platform/backend/internal/service"
)

type PostHandler struct {
	posts     service.PostService
	reactions service.ReactionService
}

func NewPostHandler(posts service.PostService, reactions service.ReactionService) *PostHandler {
	return &PostHandler{posts: posts, reactions: reactions}
}

// List returns published posts, newest first, filtered by ?search= and ?tag=
func (h *PostHandler) List(c *gin.Context) {
	var query dto.PostQuery
	if !bindQuery(c, &query) {
		return
	}

	posts, total, err := h.posts.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapPage(posts, query.PageQuery, total, dto.FromPost))
}

func (h *PostHandler) Create(c *gin.Context) {
	var req dto.CreatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.posts.Create(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromPost(post))
}

// Get returns a single post by ID and counts the view
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	viewerID := middleware.CurrentUserID(c)

	post, err := h.posts.Get(c.Request.Context(), viewerID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := dto.FromPost(post)

	if viewerID != 0 {
		status, err := h.reactions.PostStatus(c.Request.Context(), viewerID, id)
		if err != nil {
			respondError(c, err)
			return
		}
		resp.Liked = &status.Liked
		resp.Bookmarked = &status.Bookmarked
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PostHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.posts.Update(c.Request.Context(), middleware.CurrentUserID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromPost(post))
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.posts.Delete(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *PostHandler) Like(c *gin.Context) {
	h.react(c, h.reactions.Like, http.StatusCreated)
}

func (h *PostHandler) Unlike(c *gin.Context) {
	h.react(c, h.reactions.Unlike, http.StatusNoContent)
}

func (h *PostHandler) Bookmark(c *gin.Context) {
	h.react(c, h.reactions.Bookmark, http.StatusCreated)
}

func (h *PostHandler) Unbookmark(c *gin.Context) {
	h.react(c, h.reactions.Unbookmark, http.StatusNoContent)
}

type reaction func(ctx context.Context, userID, postID int) error

func (h *PostHandler) react(c *gin.Context, apply reaction, status int) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := apply(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}

	if status == http.StatusNoContent {
		c.Status(status)
		return
	}
	c.JSON(status, dto.MessageResponse{Message: "ok"})
}
