package service

import (
	"context"
	"time"

	"Wave_Social/internal/model"

	"github.com/google/uuid"
)

type NotificationService struct {
	store NotificationStore
	users UserStore
}

func NewNotificationService(store NotificationStore, users UserStore) *NotificationService {
	return &NotificationService{store: store, users: users}
}

type InsertNotificationParams struct {
	UserFrom         string
	UserTo           string
	Message          string
	NotificationType model.NotificationType
	EntityID         string
	CreatedItemID    string
	Comment          string
	Post             string
	ImgID            string
	ImgVersion       string
	GifURL           string
	Reaction         string
}

// Insert 先判定再落库：自己对自己的动作不通知，收件人关了对应开关也不通知。
// 两种情况都返回 (nil, nil)，对调用方是正常的空操作，不是错误。
func (s *NotificationService) Insert(ctx context.Context, p InsertNotificationParams) (*model.Notification, error) {
	if p.UserFrom == p.UserTo {
		return nil, nil
	}
	recipient, err := s.users.FindByID(ctx, p.UserTo)
	if err != nil {
		return nil, err
	}
	if !recipient.Notifications.Enabled(p.NotificationType) {
		return nil, nil
	}

	n := &model.Notification{
		ID:               uuid.NewString(),
		UserFrom:         p.UserFrom,
		UserTo:           p.UserTo,
		Message:          p.Message,
		NotificationType: p.NotificationType,
		EntityID:         p.EntityID,
		CreatedItemID:    p.CreatedItemID,
		Comment:          p.Comment,
		Post:             p.Post,
		ImgID:            p.ImgID,
		ImgVersion:       p.ImgVersion,
		GifURL:           p.GifURL,
		Reaction:         p.Reaction,
		CreatedAt:        time.Now().UTC(),
	}
	if err = s.store.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// ListByUser 收件箱
func (s *NotificationService) ListByUser(ctx context.Context, userTo string, limit int) ([]model.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.store.ListByUser(ctx, userTo, limit)
}

func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	if id == "" {
		return ErrValidation
	}
	return s.store.MarkRead(ctx, id)
}
