package consumer

import (
	"context"
	"log/slog"

	"Wave_Social/internal/model"
	"Wave_Social/internal/queue"
)

type PostStore interface {
	Upsert(ctx context.Context, p *model.Post) error
}

type PostAuthorStore interface {
	IncrementPostsCount(ctx context.Context, id string, delta int64) error
}

// NewPostConsumer post 队列：帖子落库并给作者的发帖计数加一
func NewPostConsumer(brokers []string, store PostStore, users PostAuthorStore, logger *slog.Logger) *Consumer {
	c := New(Config{Queue: queue.QueuePost, Brokers: brokers}, logger)
	c.Handle(queue.JobAddPost, func(ctx context.Context, job *Job) error {
		var data queue.AddPostJob
		if err := job.Bind(&data); err != nil {
			return err
		}
		if err := store.Upsert(ctx, &data.Post); err != nil {
			return err
		}
		job.Progress(50)
		if err := users.IncrementPostsCount(ctx, data.Post.UserID, 1); err != nil {
			return err
		}
		job.Progress(100)
		return nil
	})
	return c
}
