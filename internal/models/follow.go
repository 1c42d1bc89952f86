package models

import "time"

// Follow is one edge of the follow graph: FollowerID follows FollowingID.
type Follow struct {
	FollowerID   int       `gorm:"primaryKey;autoIncrement:false" json:"follower_id"`
	FollowingID  int       `gorm:"primaryKey;autoIncrement:false;index" json:"following_id"`
	Follower     User      `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-"`
	Following    User      `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE" json:"-"`
	SubscribedAt time.Time `gorm:"autoCreateTime" json:"subscribed_at"`
}

func (Follow) TableName() string {
	return "user_subscriptions"
}
