package model

import "time"

type Follow struct {
	ID         uint64 `gorm:"primaryKey"`
	FollowerID string `gorm:"size:36;not null;uniqueIndex:idx_follower_followee,priority:1;index:idx_follower_id"`
	FolloweeID string `gorm:"size:36;not null;uniqueIndex:idx_follower_followee,priority:2;index:idx_followee_id"`
	Status     int8   `gorm:"not null;default:1;comment:'1=follow,0=unfollow'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName sets table name for Follow
func (Follow) TableName() string {
	return "follow"
}
