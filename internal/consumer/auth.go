package consumer

import (
	"context"
	"log/slog"

	"Wave_Social/internal/model"
	"Wave_Social/internal/queue"
)

type AuthStore interface {
	Upsert(ctx context.Context, au *model.AuthUser) error
}

// NewAuthConsumer auth 队列：注册时缓存已可见的账号在这里落库
func NewAuthConsumer(brokers []string, store AuthStore, logger *slog.Logger) *Consumer {
	c := New(Config{Queue: queue.QueueAuth, Brokers: brokers}, logger)
	c.Handle(queue.JobAddAuthUser, func(ctx context.Context, job *Job) error {
		var data queue.AddAuthUserJob
		if err := job.Bind(&data); err != nil {
			return err
		}
		return store.Upsert(ctx, &data.AuthUser)
	})
	return c
}
