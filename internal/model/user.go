package model

import "time"

// NotificationSettings 用户通知开关，关掉的类型不再落通知记录
type NotificationSettings struct {
	Messages  bool `json:"messages"`
	Reactions bool `json:"reactions"`
	Comments  bool `json:"comments"`
	Follows   bool `json:"follows"`
}

// Enabled 按通知类型取对应开关
func (n NotificationSettings) Enabled(t NotificationType) bool {
	switch t {
	case NotificationMessages:
		return n.Messages
	case NotificationReactions:
		return n.Reactions
	case NotificationComments:
		return n.Comments
	case NotificationFollows:
		return n.Follows
	}
	return false
}

type User struct {
	ID             string               `gorm:"primaryKey;size:36" json:"_id"`
	AuthID         string               `gorm:"uniqueIndex;size:36;not null" json:"authId"`
	UID            string               `gorm:"uniqueIndex;size:16;not null" json:"uId"`
	Username       string               `gorm:"uniqueIndex;size:32;not null" json:"username"`
	Email          string               `gorm:"uniqueIndex;size:64;not null" json:"email"`
	AvatarColor    string               `gorm:"size:16" json:"avatarColor"`
	ProfilePicture string               `gorm:"size:255" json:"profilePicture"`
	PostsCount     int64                `gorm:"not null;default:0" json:"postsCount"`
	FollowersCount int64                `gorm:"not null;default:0" json:"followersCount"`
	FollowingCount int64                `gorm:"not null;default:0" json:"followingCount"`
	Notifications  NotificationSettings `gorm:"serializer:json;type:json" json:"notifications"`
	Work           string               `gorm:"size:128" json:"work"`
	Location       string               `gorm:"size:128" json:"location"`
	School         string               `gorm:"size:128" json:"school"`
	Quote          string               `gorm:"size:255" json:"quote"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"-"`
}
