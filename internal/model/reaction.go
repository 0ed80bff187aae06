package model

import "time"

// Reaction 一个用户对一个帖子只保留一条记录，换表情按 (post_id, username) 覆盖
type Reaction struct {
	ID             string    `gorm:"primaryKey;size:36" json:"_id"`
	PostID         string    `gorm:"size:36;not null;uniqueIndex:idx_post_username,priority:1" json:"postId"`
	Username       string    `gorm:"size:32;not null;uniqueIndex:idx_post_username,priority:2" json:"username"`
	AvatarColor    string    `gorm:"size:16" json:"avatarColor"`
	ProfilePicture string    `gorm:"size:255" json:"profilePicture"`
	Feeling        Feeling   `gorm:"size:16;not null" json:"feeling"`
	UserTo         string    `gorm:"size:36;index" json:"userTo"`
	UserFrom       string    `gorm:"size:36" json:"userFrom"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"-"`
}
