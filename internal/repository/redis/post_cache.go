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
	PostIndexKey  = "post"  // zset：score=作者 uId，member=帖子ID
	PostKeyPrefix = "posts" // hash：posts:<id>
)

type PostCache struct{}

func NewPostCache() *PostCache {
	return &PostCache{}
}

func postKey(id string) string {
	return fmt.Sprintf("%s:%s", PostKeyPrefix, id)
}

// SavePost 发帖快路径：索引 + 投影两步写，失败即请求失败
func (c *PostCache) SavePost(ctx context.Context, p *model.Post, uID string) error {
	score, err := strconv.ParseFloat(uID, 64)
	if err != nil {
		return fmt.Errorf("%w: bad uId %q", ErrCacheWrite, uID)
	}
	if err = Client.ZAdd(ctx, PostIndexKey, zMember(score, p.ID)).Err(); err != nil {
		return fmt.Errorf("%w: index post %s: %v", ErrCacheWrite, p.ID, err)
	}
	if err = Client.HSet(ctx, postKey(p.ID), postFields(p)).Err(); err != nil {
		return fmt.Errorf("%w: post %s: %v", ErrCacheWrite, p.ID, err)
	}
	return nil
}

// GetPost 读单个帖子投影
func (c *PostCache) GetPost(ctx context.Context, id string) (*model.Post, bool, error) {
	fields, err := Client.HGetAll(ctx, postKey(id)).Result()
	if err != nil {
		return nil, false, fmt.Errorf("%w: post %s: %v", ErrCacheRead, id, err)
	}
	if len(fields) == 0 {
		return nil, false, nil
	}
	return postFromFields(fields), true, nil
}

// GetPosts 按索引倒序取 [start, end] 区间的帖子，feed 第一页基本不用回源
func (c *PostCache) GetPosts(ctx context.Context, start, end int64) ([]model.Post, error) {
	ids, err := Client.ZRevRange(ctx, PostIndexKey, start, end).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: post index: %v", ErrCacheRead, err)
	}
	posts := make([]model.Post, 0, len(ids))
	for _, id := range ids {
		fields, err := Client.HGetAll(ctx, postKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: post %s: %v", ErrCacheRead, id, err)
		}
		if len(fields) == 0 {
			// 索引里有但投影被淘汰，跳过交给 DB 回源
			continue
		}
		posts = append(posts, *postFromFields(fields))
	}
	return posts, nil
}

// PostCount 索引里的帖子总数
func (c *PostCache) PostCount(ctx context.Context) (int64, error) {
	n, err := Client.ZCard(ctx, PostIndexKey).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: post index: %v", ErrCacheRead, err)
	}
	return n, nil
}

// IncrementCommentsCount 评论快路径直接在投影上加一，消费侧落库后对账兜底
func (c *PostCache) IncrementCommentsCount(ctx context.Context, postID string) error {
	if err := Client.HIncrBy(ctx, postKey(postID), "commentsCount", 1).Err(); err != nil {
		return fmt.Errorf("%w: post %s commentsCount: %v", ErrCacheWrite, postID, err)
	}
	return nil
}

// SetCommentsCount 对账用：以库里的权威值覆盖投影计数
func (c *PostCache) SetCommentsCount(ctx context.Context, postID string, n int64) error {
	if err := Client.HSet(ctx, postKey(postID), "commentsCount", strconv.FormatInt(n, 10)).Err(); err != nil {
		return fmt.Errorf("%w: post %s commentsCount: %v", ErrCacheWrite, postID, err)
	}
	return nil
}

func postFields(p *model.Post) map[string]string {
	reactions, _ := json.Marshal(p.Reactions)
	return map[string]string{
		"_id":            p.ID,
		"userId":         p.UserID,
		"username":       p.Username,
		"email":          p.Email,
		"avatarColor":    p.AvatarColor,
		"profilePicture": p.ProfilePicture,
		"post":           p.Text,
		"bgColor":        p.BgColor,
		"privacy":        p.Privacy,
		"feelings":       p.Feelings,
		"gifUrl":         p.GifURL,
		"imgId":          p.ImgID,
		"imgVersion":     p.ImgVersion,
		"commentsCount":  strconv.FormatInt(p.CommentsCount, 10),
		"reactions":      string(reactions),
		"createdAt":      p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func postFromFields(f map[string]string) *model.Post {
	p := &model.Post{
		ID:             f["_id"],
		UserID:         f["userId"],
		Username:       f["username"],
		Email:          f["email"],
		AvatarColor:    f["avatarColor"],
		ProfilePicture: f["profilePicture"],
		Text:           f["post"],
		BgColor:        f["bgColor"],
		Privacy:        f["privacy"],
		Feelings:       f["feelings"],
		GifURL:         f["gifUrl"],
		ImgID:          f["imgId"],
		ImgVersion:     f["imgVersion"],
	}
	p.CommentsCount, _ = strconv.ParseInt(f["commentsCount"], 10, 64)
	_ = json.Unmarshal([]byte(f["reactions"]), &p.Reactions)
	if t, err := time.Parse(time.RFC3339, f["createdAt"]); err == nil {
		p.CreatedAt = t
	}
	return p
}
