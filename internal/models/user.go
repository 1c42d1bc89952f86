package models

import "time"

type User struct {
	ID           int        `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Username     string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	ProfileText  string     `gorm:"type:text" json:"profile_text"`
	AvatarPath   string     `gorm:"size:500" json:"avatar_path"`
	IsActive     bool       `gorm:"not null" json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Aggregates, only populated by queries that select them
	PostsCount     int64 `gorm:"->;-:migration" json:"posts_count"`
	FollowersCount int64 `gorm:"->;-:migration" json:"followers_count"`
	FollowingCount int64 `gorm:"->;-:migration" json:"following_count"`
}
