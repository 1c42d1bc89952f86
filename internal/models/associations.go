package models

import "time"

// PostTag links a post to a tag.
type PostTag struct {
	PostID  int       `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
	TagID   int       `gorm:"primaryKey;autoIncrement:false;index" json:"tag_id"`
	Post    Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Tag     Tag       `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"-"`
	AddedAt time.Time `gorm:"autoCreateTime" json:"added_at"`
}

func (PostTag) TableName() string {
	return "post_tags"
}

// Bookmark is a post saved by a user.
type Bookmark struct {
	UserID  int       `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	PostID  int       `gorm:"primaryKey;autoIncrement:false;index" json:"post_id"`
	User    User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Post    Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	SavedAt time.Time `gorm:"autoCreateTime" json:"saved_at"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}

// PostReaction is a like on a post.
type PostReaction struct {
	UserID    int       `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	PostID    int       `gorm:"primaryKey;autoIncrement:false;index" json:"post_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Post      Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	ReactedAt time.Time `gorm:"autoCreateTime" json:"reacted_at"`
}

func (PostReaction) TableName() string {
	return "post_reactions"
}

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Post{},
		&Tag{},
		&Comment{},
		&PostTag{},
		&Bookmark{},
		&Follow{},
		&PostReaction{},
	}
}
