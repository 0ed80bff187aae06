package mysql

import (
	"context"
	"errors"
	"time"

	"Wave_Social/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AuthRepository struct {
	DB *gorm.DB
}

// Upsert 按主键幂等写入，重投递的任务不会报唯一键冲突
func (r *AuthRepository) Upsert(ctx context.Context, au *model.AuthUser) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(au).Error
}

// Exists 按邮箱或用户名查重
func (r *AuthRepository) Exists(ctx context.Context, email, username string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.AuthUser{}).
		Where("email = ? OR username = ?", email, username).
		Count(&n).Error
	return n > 0, err
}

func (r *AuthRepository) FindByUsername(ctx context.Context, username string) (*model.AuthUser, error) {
	var au model.AuthUser
	err := r.DB.WithContext(ctx).Where("username = ? OR email = ?", username, username).First(&au).Error
	return &au, err
}

func (r *AuthRepository) FindByEmail(ctx context.Context, email string) (*model.AuthUser, error) {
	var au model.AuthUser
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&au).Error
	return &au, err
}

// FindByResetToken 只认未过期的令牌
func (r *AuthRepository) FindByResetToken(ctx context.Context, token string) (*model.AuthUser, error) {
	var au model.AuthUser
	err := r.DB.WithContext(ctx).
		Where("password_reset_token = ? AND password_reset_expires > ?", token, time.Now()).
		First(&au).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, gorm.ErrRecordNotFound
	}
	return &au, err
}

func (r *AuthRepository) SaveResetToken(ctx context.Context, id, token string, expires time.Time) error {
	return r.DB.WithContext(ctx).Model(&model.AuthUser{}).Where("id = ?", id).
		Updates(map[string]any{
			"password_reset_token":   token,
			"password_reset_expires": expires,
		}).Error
}

// UpdatePassword 更新密码并作废重置令牌
func (r *AuthRepository) UpdatePassword(ctx context.Context, id, hashed string) error {
	return r.DB.WithContext(ctx).Model(&model.AuthUser{}).Where("id = ?", id).
		Updates(map[string]any{
			"password":               hashed,
			"password_reset_token":   "",
			"password_reset_expires": time.Time{},
		}).Error
}
