package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"Wave_Social/internal/model"
)

const (
	UserIndexKey  = "user"  // zset：score=uId，member=用户ID
	UserKeyPrefix = "users" // hash：users:<id>
)

type UserCache struct{}

func NewUserCache() *UserCache {
	return &UserCache{}
}

func userKey(id string) string {
	return fmt.Sprintf("%s:%s", UserKeyPrefix, id)
}

// SaveUser 注册快路径：先把用户 ID 记入有序索引，再写投影 hash。
// 任何一步失败都向上抛 ErrCacheWrite，调用方不能再声称创建成功。
func (c *UserCache) SaveUser(ctx context.Context, u *model.User) error {
	score, err := strconv.ParseFloat(u.UID, 64)
	if err != nil {
		return fmt.Errorf("%w: bad uId %q", ErrCacheWrite, u.UID)
	}
	notifications, _ := json.Marshal(u.Notifications)

	if err = Client.ZAdd(ctx, UserIndexKey, zMember(score, u.ID)).Err(); err != nil {
		return fmt.Errorf("%w: index user %s: %v", ErrCacheWrite, u.ID, err)
	}
	fields := map[string]string{
		"_id":            u.ID,
		"uId":            u.UID,
		"username":       u.Username,
		"email":          u.Email,
		"avatarColor":    u.AvatarColor,
		"profilePicture": u.ProfilePicture,
		"postsCount":     strconv.FormatInt(u.PostsCount, 10),
		"followersCount": strconv.FormatInt(u.FollowersCount, 10),
		"followingCount": strconv.FormatInt(u.FollowingCount, 10),
		"notifications":  string(notifications),
		"work":           u.Work,
		"location":       u.Location,
		"school":         u.School,
		"quote":          u.Quote,
		"createdAt":      u.CreatedAt.UTC().Format(time.RFC3339),
	}
	if err = Client.HSet(ctx, userKey(u.ID), fields).Err(); err != nil {
		return fmt.Errorf("%w: user %s: %v", ErrCacheWrite, u.ID, err)
	}
	return nil
}

// GetUser 读用户投影，未命中返回 ok=false
func (c *UserCache) GetUser(ctx context.Context, id string) (*model.User, bool, error) {
	fields, err := Client.HGetAll(ctx, userKey(id)).Result()
	if err != nil {
		return nil, false, fmt.Errorf("%w: user %s: %v", ErrCacheRead, id, err)
	}
	if len(fields) == 0 {
		return nil, false, nil
	}
	return userFromFields(fields), true, nil
}

func userFromFields(f map[string]string) *model.User {
	u := &model.User{
		ID:             f["_id"],
		UID:            f["uId"],
		Username:       f["username"],
		Email:          f["email"],
		AvatarColor:    f["avatarColor"],
		ProfilePicture: f["profilePicture"],
		Work:           f["work"],
		Location:       f["location"],
		School:         f["school"],
		Quote:          f["quote"],
	}
	u.PostsCount, _ = strconv.ParseInt(f["postsCount"], 10, 64)
	u.FollowersCount, _ = strconv.ParseInt(f["followersCount"], 10, 64)
	u.FollowingCount, _ = strconv.ParseInt(f["followingCount"], 10, 64)
	_ = json.Unmarshal([]byte(f["notifications"]), &u.Notifications)
	if t, err := time.Parse(time.RFC3339, f["createdAt"]); err == nil {
		u.CreatedAt = t
	}
	return u
}
