package model

import "time"

type Comment struct {
	ID             string    `gorm:"primaryKey;size:36" json:"_id"`
	PostID         string    `gorm:"size:36;not null;index:idx_post_time,priority:1" json:"postId"`
	Username       string    `gorm:"size:32;not null" json:"username"`
	AvatarColor    string    `gorm:"size:16" json:"avatarColor"`
	ProfilePicture string    `gorm:"size:255" json:"profilePicture"`
	Text           string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt      time.Time `gorm:"index:idx_post_time,priority:2,sort:desc" json:"createdAt"`
	UpdatedAt      time.Time `json:"-"`
}
