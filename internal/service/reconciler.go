package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"Wave_Social/internal/model"

	"gorm.io/gorm"
)

type reconcilerPostCache interface {
	GetPosts(ctx context.Context, start, end int64) ([]model.Post, error)
	SetCommentsCount(ctx context.Context, postID string, n int64) error
}

type reconcilerReactionCache interface {
	SavePostReactions(ctx context.Context, postID string, counts model.Reactions) error
}

// Reconciler 快路径和持久路径的对账器。
// 缓存里可见但超过宽限期仍没落库的帖子说明任务进了死信，必须暴露出来；
// 计数漂移以数据库为准刷回投影。
type Reconciler struct {
	postCache     reconcilerPostCache
	reactionCache reconcilerReactionCache
	store         PostStore
	batchSize     int
	interval      time.Duration
	grace         time.Duration
	logger        *slog.Logger
}

func NewReconciler(postCache reconcilerPostCache, reactionCache reconcilerReactionCache, store PostStore, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		postCache:     postCache,
		reactionCache: reactionCache,
		store:         store,
		batchSize:     500,
		interval:      5 * time.Minute,
		grace:         time.Minute,
		logger:        logger,
	}
}

// Run 对账定时任务启动器
func (r *Reconciler) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.reconcileOnce(ctx)
		}
	}
}

// 对账一次
func (r *Reconciler) reconcileOnce(ctx context.Context) {
	cached, err := r.postCache.GetPosts(ctx, 0, int64(r.batchSize-1))
	if err != nil {
		r.logger.Error("reconcile list failed", "error", err)
		return
	}

	for i := range cached {
		p := cached[i]
		// 宽限期内的帖子可能还在队列里，跳过
		if time.Since(p.CreatedAt) < r.grace {
			continue
		}
		durable, err := r.store.FindByID(ctx, p.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				r.logger.Error("post visible in cache but never persisted",
					"postId", p.ID, "username", p.Username, "createdAt", p.CreatedAt)
			}
			continue
		}
		if durable.CommentsCount != p.CommentsCount {
			if err = r.postCache.SetCommentsCount(ctx, p.ID, durable.CommentsCount); err != nil {
				r.logger.Warn("repair commentsCount failed", "postId", p.ID, "error", err)
			}
		}
		if durable.Reactions != p.Reactions {
			if err = r.reactionCache.SavePostReactions(ctx, p.ID, durable.Reactions); err != nil {
				r.logger.Warn("repair reactions failed", "postId", p.ID, "error", err)
			}
		}
	}
}
