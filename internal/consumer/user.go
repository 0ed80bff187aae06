package consumer

import (
	"context"
	"log/slog"

	"Wave_Social/internal/model"
	"Wave_Social/internal/queue"
)

type UserStore interface {
	Upsert(ctx context.Context, u *model.User) error
}

// NewUserConsumer user 队列：用户档案落库
func NewUserConsumer(brokers []string, store UserStore, logger *slog.Logger) *Consumer {
	c := New(Config{Queue: queue.QueueUser, Brokers: brokers}, logger)
	c.Handle(queue.JobAddUser, func(ctx context.Context, job *Job) error {
		var data queue.AddUserJob
		if err := job.Bind(&data); err != nil {
			return err
		}
		return store.Upsert(ctx, &data.User)
	})
	return c
}
