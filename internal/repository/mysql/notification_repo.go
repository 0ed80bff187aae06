package mysql

import (
	"context"

	"Wave_Social/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(n).Error
}

// ListByUser 用户收到的通知，时间倒序
func (r *NotificationRepository) ListByUser(ctx context.Context, userTo string, limit int) ([]model.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var list []model.Notification
	err := r.DB.WithContext(ctx).Where("user_to = ?", userTo).
		Order("created_at DESC").Limit(limit).Find(&list).Error
	return list, err
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Model(&model.Notification{}).Where("id = ?", id).
		Update("read", true).Error
}
