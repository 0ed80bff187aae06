package model

import "time"

type AuthUser struct {
	ID                   string    `gorm:"primaryKey;size:36" json:"_id"`
	UID                  string    `gorm:"uniqueIndex;size:16;not null" json:"uId"`
	Username             string    `gorm:"uniqueIndex;size:32;not null" json:"username"`
	Email                string    `gorm:"uniqueIndex;size:64;not null" json:"email"`
	Password             string    `gorm:"size:255;not null" json:"-"`
	AvatarColor          string    `gorm:"size:16" json:"avatarColor"`
	PasswordResetToken   string    `gorm:"size:64;index" json:"-"`
	PasswordResetExpires time.Time `json:"-"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"-"`
}

func (AuthUser) TableName() string { return "auth" }
