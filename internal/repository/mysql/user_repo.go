package mysql

import (
	"context"

	"Wave_Social/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

// Upsert 幂等写入用户档案
func (r *UserRepository) Upsert(ctx context.Context, u *model.User) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(u).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := r.DB.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.DB.WithContext(ctx).Where("username = ?", username).First(&u).Error
	return &u, err
}

// IncrementPostsCount 发帖计数，原子增减不回读
func (r *UserRepository) IncrementPostsCount(ctx context.Context, id string, delta int64) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		UpdateColumn("posts_count", gorm.Expr("GREATEST(0, posts_count + ?)", delta)).Error
}
