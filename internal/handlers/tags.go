package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/blog-platform/backend/internal/dto"
	"github.com/emilythestrangee/blog-platform/backend/internal/service"
)

type TagHandler struct {
	tags service.TagService
}

func NewTagHandler(tags service.TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

// List returns every tag with its published post count
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.tags.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.TagResponse, len(tags))
	for i := range tags {
		resp[i] = dto.FromTag(&tags[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TagHandler) Create(c *gin.Context) {
	var req dto.CreateTagRequest
	if !bindJSON(c, &req) {
		return
	}

	tag, err := h.tags.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromTag(tag))
}

func (h *TagHandler) Get(c *gin.Context) {
	tag, err := h.tags.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromTag(tag))
}
