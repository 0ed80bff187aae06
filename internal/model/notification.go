package model

import "time"

type NotificationType string

const (
	NotificationMessages  NotificationType = "messages"
	NotificationReactions NotificationType = "reactions"
	NotificationComments  NotificationType = "comments"
	NotificationFollows   NotificationType = "follows"
)

// Notification 通知记录，快照字段冗余自帖子/评论/表情，避免展示时回查
type Notification struct {
	ID               string           `gorm:"primaryKey;size:36" json:"_id"`
	UserFrom         string           `gorm:"size:36;not null" json:"userFrom"`
	UserTo           string           `gorm:"size:36;not null;index:idx_user_to_time,priority:1" json:"userTo"`
	Message          string           `gorm:"size:255;not null" json:"message"`
	NotificationType NotificationType `gorm:"size:16;not null" json:"notificationType"`
	EntityID         string           `gorm:"size:36;not null" json:"entityId"`
	CreatedItemID    string           `gorm:"size:36" json:"createdItemId"`
	Comment          string           `gorm:"type:text" json:"comment"`
	Post             string           `gorm:"type:text" json:"post"`
	ImgID            string           `gorm:"size:64" json:"imgId"`
	ImgVersion       string           `gorm:"size:32" json:"imgVersion"`
	GifURL           string           `gorm:"size:255" json:"gifUrl"`
	Reaction         string           `gorm:"size:16" json:"reaction"`
	Read             bool             `gorm:"not null;default:false" json:"read"`
	CreatedAt        time.Time        `gorm:"index:idx_user_to_time,priority:2,sort:desc" json:"createdAt"`
}
