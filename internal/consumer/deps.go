package consumer

import (
	"context"

	"Wave_Social/internal/model"
	"Wave_Social/internal/service"
)

// Enqueuer 消费者完成主任务后继续扇出次级任务（通知邮件等）
type Enqueuer interface {
	Enqueue(ctx context.Context, queueName, jobName, key string, payload any) error
}

type UserFinder interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// Notifier 判定并落通知记录，返回 nil 表示按规则不通知
type Notifier interface {
	Insert(ctx context.Context, p service.InsertNotificationParams) (*model.Notification, error)
}
