package mysql

import (
	"context"

	"Wave_Social/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReactionRepository struct {
	DB *gorm.DB
}

// Upsert 以 (post_id, username) 为准覆盖：同一用户换表情就是改 feeling。
// 重投递落到同一行上，天然幂等。
func (r *ReactionRepository) Upsert(ctx context.Context, rc *model.Reaction) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"feeling", "avatar_color", "profile_picture", "updated_at"}),
	}).Create(rc).Error
}

func (r *ReactionRepository) FindByPostAndUsername(ctx context.Context, postID, username string) (*model.Reaction, error) {
	var rc model.Reaction
	err := r.DB.WithContext(ctx).Where("post_id = ? AND username = ?", postID, username).First(&rc).Error
	return &rc, err
}

func (r *ReactionRepository) ListByPost(ctx context.Context, postID string) ([]model.Reaction, error) {
	var list []model.Reaction
	err := r.DB.WithContext(ctx).Where("post_id = ?", postID).
		Order("created_at DESC").Find(&list).Error
	return list, err
}
