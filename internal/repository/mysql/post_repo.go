package mysql

import (
	"context"
	"fmt"

	"Wave_Social/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepository struct {
	DB *gorm.DB
}

// PostQuery 列表过滤条件。HasMedia 对应"带图或带动图"的谓词。
type PostQuery struct {
	Username string
	HasMedia bool
}

// feelingColumns 表情到计数列的映射，拼 SQL 前必须经过这张表
var feelingColumns = map[model.Feeling]string{
	model.FeelingAngry: "reactions_angry",
	model.FeelingHappy: "reactions_happy",
	model.FeelingLike:  "reactions_like",
	model.FeelingLove:  "reactions_love",
	model.FeelingSad:   "reactions_sad",
	model.FeelingWow:   "reactions_wow",
}

// Upsert 幂等写入，任务重投递不报错
func (r *PostRepository) Upsert(ctx context.Context, p *model.Post) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(p).Error
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	var p model.Post
	err := r.DB.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

// List 按创建时间倒序分页
func (r *PostRepository) List(ctx context.Context, q PostQuery, offset, limit int) ([]model.Post, error) {
	var list []model.Post
	db := r.DB.WithContext(ctx).Model(&model.Post{})
	if q.HasMedia {
		db = db.Where("img_id <> '' OR gif_url <> ''")
	}
	if q.Username != "" {
		db = db.Where("username = ?", q.Username)
	}
	err := db.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}

func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Post{}).Count(&n).Error
	return n, err
}

// UpdateReactionCounts 单条 UPDATE 原子调整计数：新表情 +1，换表情时旧表情 -1（防负）。
// 并发的表情任务靠这里收敛，禁止读改写。
func (r *PostRepository) UpdateReactionCounts(ctx context.Context, postID string, feeling, previous model.Feeling) (*model.Post, error) {
	col, ok := feelingColumns[feeling]
	if !ok {
		return nil, fmt.Errorf("unknown feeling %q", feeling)
	}
	updates := map[string]any{
		col: gorm.Expr(fmt.Sprintf("%s + 1", col)),
	}
	if previous != "" && previous != feeling {
		prevCol, ok := feelingColumns[previous]
		if !ok {
			return nil, fmt.Errorf("unknown feeling %q", previous)
		}
		updates[prevCol] = gorm.Expr(fmt.Sprintf("GREATEST(0, %s - 1)", prevCol))
	}
	if err := r.DB.WithContext(ctx).Model(&model.Post{}).Where("id = ?", postID).
		UpdateColumns(updates).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, postID)
}

// IncrementCommentsCount 原子加评论数并回读最新行
func (r *PostRepository) IncrementCommentsCount(ctx context.Context, postID string) (*model.Post, error) {
	if err := r.DB.WithContext(ctx).Model(&model.Post{}).Where("id = ?", postID).
		UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, postID)
}
