package model

import "time"

// Feeling 帖子表情类型
type Feeling string

const (
	FeelingAngry Feeling = "angry"
	FeelingHappy Feeling = "happy"
	FeelingLike  Feeling = "like"
	FeelingLove  Feeling = "love"
	FeelingSad   Feeling = "sad"
	FeelingWow   Feeling = "wow"
)

func (f Feeling) Valid() bool {
	switch f {
	case FeelingAngry, FeelingHappy, FeelingLike, FeelingLove, FeelingSad, FeelingWow:
		return true
	}
	return false
}

// Reactions 帖子各表情的聚合计数，列名 reactions_* 便于原子增减
type Reactions struct {
	Angry int64 `gorm:"column:reactions_angry;not null;default:0" json:"angry"`
	Happy int64 `gorm:"column:reactions_happy;not null;default:0" json:"happy"`
	Like  int64 `gorm:"column:reactions_like;not null;default:0" json:"like"`
	Love  int64 `gorm:"column:reactions_love;not null;default:0" json:"love"`
	Sad   int64 `gorm:"column:reactions_sad;not null;default:0" json:"sad"`
	Wow   int64 `gorm:"column:reactions_wow;not null;default:0" json:"wow"`
}

// Count 按表情取计数
func (r Reactions) Count(f Feeling) int64 {
	switch f {
	case FeelingAngry:
		return r.Angry
	case FeelingHappy:
		return r.Happy
	case FeelingLike:
		return r.Like
	case FeelingLove:
		return r.Love
	case FeelingSad:
		return r.Sad
	case FeelingWow:
		return r.Wow
	}
	return 0
}

// Total 全部表情计数之和
func (r Reactions) Total() int64 {
	return r.Angry + r.Happy + r.Like + r.Love + r.Sad + r.Wow
}

type Post struct {
	ID             string    `gorm:"primaryKey;size:36" json:"_id"`
	UserID         string    `gorm:"size:36;not null;index:idx_user_time,priority:1" json:"userId"`
	Username       string    `gorm:"size:32;not null;index" json:"username"`
	Email          string    `gorm:"size:64" json:"email"`
	AvatarColor    string    `gorm:"size:16" json:"avatarColor"`
	ProfilePicture string    `gorm:"size:255" json:"profilePicture"`
	Text           string    `gorm:"type:text" json:"post"`
	BgColor        string    `gorm:"size:16" json:"bgColor"`
	Privacy        string    `gorm:"size:16" json:"privacy"`
	Feelings       string    `gorm:"size:16" json:"feelings"`
	GifURL         string    `gorm:"size:255" json:"gifUrl"`
	ImgID          string    `gorm:"size:64" json:"imgId"`
	ImgVersion     string    `gorm:"size:32" json:"imgVersion"`
	CommentsCount  int64     `gorm:"not null;default:0" json:"commentsCount"`
	Reactions      Reactions `gorm:"embedded" json:"reactions"`
	CreatedAt      time.Time `gorm:"index:idx_user_time,priority:2,sort:desc;index" json:"createdAt"`
	UpdatedAt      time.Time `json:"-"`
}
