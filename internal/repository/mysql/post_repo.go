package mysql

import (
	"context"
	"errors"

	"Aura_Community/internal/model"

	"gorm.io/gorm"
)

var ErrPostNotFound = errors.New("post not found")

type PostRepository struct {
	DB *gorm.DB
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return r.DB.WithContext(ctx).Create(post).Error
}

func (r *PostRepository) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).First(&post, "id = ? AND status = 0", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	return &post, err
}

// ListCursor 基于id游标的倒序分页，lastID=0表示第一页
func (r *PostRepository) ListCursor(ctx context.Context, lastID uint64, limit int) ([]model.Post, error) {
	var list []model.Post
	q := r.DB.WithContext(ctx).Where("status = 0")
	if lastID > 0 {
		q = q.Where("id < ?", lastID)
	}
	err := q.Order("id DESC").Limit(limit).Find(&list).Error
	return list, err
}

// DeleteByAuthor 作者本人的一步软删除；幂等（已删除不报错）
func (r *PostRepository) DeleteByAuthor(ctx context.Context, postID, authorID uint64) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.Post{}).
		Where("id = ? AND author_id = ? AND status = 0", postID, authorID).
		Update("status", 1)
	return res.RowsAffected, res.Error
}
