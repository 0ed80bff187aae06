package service

import (
	"context"
	"errors"
	"time"

	"Wave_Social/internal/model"
	"Wave_Social/internal/queue"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReactionService struct {
	cache      ReactionCache
	store      ReactionStore
	dispatcher Dispatcher
	hub        Broadcaster
}

func NewReactionService(cache ReactionCache, store ReactionStore, dispatcher Dispatcher, hub Broadcaster) *ReactionService {
	return &ReactionService{cache: cache, store: store, dispatcher: dispatcher, hub: hub}
}

type AddReactionInput struct {
	PostID  string
	UserTo  string
	Feeling model.Feeling
}

// Add 表情写路径。previousFeeling 从缓存里查：同一用户换表情时，
// 消费者要拿它去做旧计数 -1。
func (s *ReactionService) Add(ctx context.Context, actor CurrentUser, in AddReactionInput) (*model.Reaction, error) {
	if in.PostID == "" || !in.Feeling.Valid() {
		return nil, ErrValidation
	}

	var previous model.Feeling
	if prev, ok, err := s.cache.GetUserReaction(ctx, in.PostID, actor.Username); err == nil && ok {
		previous = prev.Feeling
	}

	reaction := &model.Reaction{
		ID:          uuid.NewString(),
		PostID:      in.PostID,
		Username:    actor.Username,
		AvatarColor: actor.AvatarColor,
		Feeling:     in.Feeling,
		UserTo:      in.UserTo,
		UserFrom:    actor.UserID,
		CreatedAt:   time.Now().UTC(),
	}

	s.hub.Publish("add-reaction", reaction)

	if err := s.cache.SaveUserReaction(ctx, reaction); err != nil {
		return nil, err
	}
	// key 取帖子 ID：同一帖子的表情任务进同一分区，按提交顺序消费
	if err := s.dispatcher.Enqueue(ctx, queue.QueueReaction, queue.JobAddPostReaction, in.PostID, queue.AddReactionJob{
		Reaction:        *reaction,
		PreviousFeeling: previous,
	}); err != nil {
		return nil, err
	}
	return reaction, nil
}

// ListByPost 帖子的全部表情，读库
func (s *ReactionService) ListByPost(ctx context.Context, postID string) ([]model.Reaction, error) {
	if postID == "" {
		return nil, ErrValidation
	}
	return s.store.ListByPost(ctx, postID)
}

// GetByUsername 某用户对帖子的表情，缓存优先，缓存没有再回库
func (s *ReactionService) GetByUsername(ctx context.Context, postID, username string) (*model.Reaction, error) {
	if postID == "" || username == "" {
		return nil, ErrValidation
	}
	if r, ok, err := s.cache.GetUserReaction(ctx, postID, username); err == nil && ok {
		return r, nil
	}
	r, err := s.store.FindByPostAndUsername(ctx, postID, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 没点过表情不算错误
		return nil, nil
	}
	return r, err
}
