package mysql

import (
	"context"

	"Wave_Social/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepository struct {
	DB *gorm.DB
}

// Create 按主键去重，at-least-once 投递下不会写出两条
func (r *CommentRepository) Create(ctx context.Context, c *model.Comment) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(c).Error
}

// ListByPost 帖子下的评论，时间倒序
func (r *CommentRepository) ListByPost(ctx context.Context, postID string) ([]model.Comment, error) {
	var list []model.Comment
	err := r.DB.WithContext(ctx).Where("post_id = ?", postID).
		Order("created_at DESC").Find(&list).Error
	return list, err
}
