package models

import "time"

type Comment struct {
	ID     int   `gorm:"primaryKey" json:"id"`
	PostID int   `gorm:"not null;index" json:"post_id"`
	Post   *Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	UserID int   `gorm:"not null;index" json:"user_id"`
	User   User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`

	// Replies survive their parent: the reference is nulled and they become top-level
	ParentCommentID *int     `gorm:"index" json:"parent_comment_id"`
	Parent          *Comment `gorm:"foreignKey:ParentCommentID;constraint:OnDelete:SET NULL" json:"-"`

	Body      string    `gorm:"type:text;not null" json:"body"`
	WasEdited bool      `gorm:"not null" json:"was_edited"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	RepliesCount int64 `gorm:"->;-:migration" json:"replies_count"`
}
