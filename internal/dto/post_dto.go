package dto

import (
	"time"

	"github.com/emilythestrangee/blog-platform/backend/internal/models"
)

type CreatePostRequest struct {
	Title       string   `json:"title" form:"title"`
	Content     string   `json:"content" form:"content"`
	IsPublished *bool    `json:"is_published" form:"is_published"`
	Tags        []string `json:"tags" form:"tags"`
}

// UpdatePostRequest changes only the fields that are present. Tags, when present, replaces the whole set.
type UpdatePostRequest struct {
	Title       *string   `json:"title"`
	Content     *string   `json:"content"`
	IsPublished *bool     `json:"is_published"`
	Tags        *[]string `json:"tags"`
}

type PostQuery struct {
	PageQuery
	Search string `form:"search"`
	Tag    string `form:"tag"`
}

type PostResponse struct {
	ID            int            `json:"id"`
	Title         string         `json:"title"`
	Content       string         `json:"content"`
	IsPublished   bool           `json:"is_published"`
	ViewCounter   int            `json:"view_counter"`
	Author        AuthorResponse `json:"author"`
	Tags          []TagResponse  `json:"tags"`
	LikesCount    int64          `json:"likes_count"`
	CommentsCount int64          `json:"comments_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	Liked         *bool          `json:"liked,omitempty"`
	Bookmarked    *bool          `json:"bookmarked,omitempty"`
}

func FromPost(post *models.Post) PostResponse {
	tags := make([]TagResponse, len(post.Tags))
	for i := range post.Tags {
		tags[i] = FromTag(&post.Tags[i])
	}
	return PostResponse{
		ID:            post.ID,
		Title:         post.Title,
		Content:       post.Content,
		IsPublished:   post.IsPublished,
		ViewCounter:   post.ViewCounter,
		Author:        FromAuthor(&post.Author),
		Tags:          tags,
		LikesCount:    post.LikesCount,
		CommentsCount: post.CommentsCount,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
	}
}
