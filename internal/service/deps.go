package service

import (
	"context"
	"errors"
	"time"

	"Wave_Social/internal/model"
	"Wave_Social/internal/repository/mysql"
)

var (
	ErrValidation         = errors.New("invalid params")
	ErrUserExists         = errors.New("user is already created")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrExternalDependency = errors.New("external server error")
	ErrResetTokenInvalid  = errors.New("reset token invalid or expired")
)

// CurrentUser 请求方身份，auth 中间件从 JWT 解出后注入
type CurrentUser struct {
	UserID      string
	UID         string
	Username    string
	Email       string
	AvatarColor string
}

// Dispatcher 入队即返回，绝不等消费者；入队失败对创建请求是致命的
type Dispatcher interface {
	Enqueue(ctx context.Context, queueName, jobName, key string, payload any) error
}

// Broadcaster 尽力而为的实时推送
type Broadcaster interface {
	Publish(event string, payload any)
}

type UserCache interface {
	SaveUser(ctx context.Context, u *model.User) error
	GetUser(ctx context.Context, id string) (*model.User, bool, error)
}

type PostCache interface {
	SavePost(ctx context.Context, p *model.Post, uID string) error
	GetPost(ctx context.Context, id string) (*model.Post, bool, error)
	GetPosts(ctx context.Context, start, end int64) ([]model.Post, error)
	PostCount(ctx context.Context) (int64, error)
	IncrementCommentsCount(ctx context.Context, postID string) error
}

type ReactionCache interface {
	SaveUserReaction(ctx context.Context, r *model.Reaction) error
	GetUserReaction(ctx context.Context, postID, username string) (*model.Reaction, bool, error)
}

type AuthStore interface {
	Exists(ctx context.Context, email, username string) (bool, error)
	FindByUsername(ctx context.Context, username string) (*model.AuthUser, error)
	FindByEmail(ctx context.Context, email string) (*model.AuthUser, error)
	FindByResetToken(ctx context.Context, token string) (*model.AuthUser, error)
	SaveResetToken(ctx context.Context, id, token string, expires time.Time) error
	UpdatePassword(ctx context.Context, id, hashed string) error
}

type UserStore interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

type PostStore interface {
	FindByID(ctx context.Context, id string) (*model.Post, error)
	List(ctx context.Context, q mysql.PostQuery, offset, limit int) ([]model.Post, error)
	Count(ctx context.Context) (int64, error)
}

type ReactionStore interface {
	ListByPost(ctx context.Context, postID string) ([]model.Reaction, error)
	FindByPostAndUsername(ctx context.Context, postID, username string) (*model.Reaction, error)
}

type CommentStore interface {
	ListByPost(ctx context.Context, postID string) ([]model.Comment, error)
}

type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) error
	ListByUser(ctx context.Context, userTo string, limit int) ([]model.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

type FollowStore interface {
	Follow(ctx context.Context, followerID, followeeID string) (bool, error)
	Unfollow(ctx context.Context, followerID, followeeID string) (bool, error)
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
	ListFollowers(ctx context.Context, userID string, cursor uint64, limit int) ([]model.Follow, uint64, error)
	ListFollowings(ctx context.Context, userID string, cursor uint64, limit int) ([]model.Follow, uint64, error)
}
