package dto

import (
	"time"

	"github.com/emilythestrangee/blog-platform/backend/internal/models"
)

// UpdateUserRequest changes only the fields that are present.
type UpdateUserRequest struct {
	Email       *string `json:"email"`
	Username    *string `json:"username"`
	Password    *string `json:"password"`
	ProfileText *string `json:"profile_text"`
	AvatarPath  *string `json:"avatar_path"`
}

type UserQuery struct {
	PageQuery
	Search string `form:"search"`
}

type UserResponse struct {
	ID             int        `json:"id"`
	Email          string     `json:"email"`
	Username       string     `json:"username"`
	ProfileText    string     `json:"profile_text"`
	AvatarPath     string     `json:"avatar_path"`
	IsActive       bool       `json:"is_active"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	PostsCount     int64      `json:"posts_count"`
	FollowersCount int64      `json:"followers_count"`
	FollowingCount int64      `json:"following_count"`
	IsFollowing    *bool      `json:"is_following,omitempty"`
}

// AuthorResponse is the short user form embedded in posts and comments.
type AuthorResponse struct {
	ID         int    `json:"id"`
	Username   string `json:"username"`
	AvatarPath string `json:"avatar_path"`
}

func FromUser(user *models.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Email:          user.Email,
		Username:       user.Username,
		ProfileText:    user.ProfileText,
		AvatarPath:     user.AvatarPath,
		IsActive:       user.IsActive,
		LastLogin:      user.LastLogin,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
		PostsCount:     user.PostsCount,
		FollowersCount: user.FollowersCount,
		FollowingCount: user.FollowingCount,
	}
}

func FromAuthor(user *models.User) AuthorResponse {
	return AuthorResponse{
		ID:         user.ID,
		Username:   user.Username,
		AvatarPath: user.AvatarPath,
	}
}
