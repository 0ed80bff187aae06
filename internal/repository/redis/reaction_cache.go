package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"Wave_Social/internal/model"
)

const ReactionKeyPrefix = "reactions" // hash：reactions:<postId>，field=username

type ReactionCache struct{}

func NewReactionCache() *ReactionCache {
	return &ReactionCache{}
}

func reactionKey(postID string) string {
	return fmt.Sprintf("%s:%s", ReactionKeyPrefix, postID)
}

// SaveUserReaction 快路径：按用户名覆盖写，换表情就是同 field 重写
func (c *ReactionCache) SaveUserReaction(ctx context.Context, r *model.Reaction) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("%w: reaction %s: %v", ErrCacheWrite, r.ID, err)
	}
	if err = Client.HSet(ctx, reactionKey(r.PostID), r.Username, string(raw)).Err(); err != nil {
		return fmt.Errorf("%w: reaction %s/%s: %v", ErrCacheWrite, r.PostID, r.Username, err)
	}
	return nil
}

// GetUserReaction 查该用户此前对帖子的表情，用来算 previousFeeling
func (c *ReactionCache) GetUserReaction(ctx context.Context, postID, username string) (*model.Reaction, bool, error) {
	raw, err := Client.HGet(ctx, reactionKey(postID), username).Result()
	if err != nil {
		if isNil(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: reaction %s/%s: %v", ErrCacheRead, postID, username, err)
	}
	var r model.Reaction
	if err = json.Unmarshal([]byte(raw), &r); err != nil {
		return nil, false, fmt.Errorf("%w: reaction %s/%s: %v", ErrCacheRead, postID, username, err)
	}
	return &r, true, nil
}

// SavePostReactions 消费侧落库后把权威聚合计数刷回帖子投影
func (c *ReactionCache) SavePostReactions(ctx context.Context, postID string, counts model.Reactions) error {
	raw, err := json.Marshal(counts)
	if err != nil {
		return fmt.Errorf("%w: reactions %s: %v", ErrCacheWrite, postID, err)
	}
	if err = Client.HSet(ctx, postKey(postID), "reactions", string(raw)).Err(); err != nil {
		return fmt.Errorf("%w: reactions %s: %v", ErrCacheWrite, postID, err)
	}
	return nil
}
