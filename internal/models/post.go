package models

import "time"

type Post struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	UserID      int       `gorm:"not null;index" json:"user_id"`
	Author      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"author"`
	Title       string    `gorm:"size:300;not null" json:"title"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	IsPublished bool      `gorm:"not null" json:"is_published"`
	ViewCounter int       `gorm:"not null;default:0" json:"view_counter"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Loaded through post_tags, see PostTag
	Tags []Tag `gorm:"-" json:"tags"`

	LikesCount    int64 `gorm:"->;-:migration" json:"likes_count"`
	CommentsCount int64 `gorm:"->;-:migration" json:"comments_count"`
}
