package mysql

import (
	"context"
	"errors"

	"Aura_Community/internal/model"

	"gorm.io/gorm"
)

type ArtworkRepository struct {
	DB *gorm.DB
}

type CommentRepository struct {
	DB *gorm.DB
}

func (r *ArtworkRepository) Create(ctx context.Context, a *model.Artwork) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *ArtworkRepository) FindByID(ctx context.Context, id uint64) (*model.Artwork, error) {
	var a model.Artwork
	err := r.DB.WithContext(ctx).First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrArtworkNotFound
	}
	return &a, err
}

func (r *ArtworkRepository) ListNewestFirst(ctx context.Context, offset, limit int) ([]model.Artwork, error) {
	var list []model.Artwork
	err := r.DB.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, err
}

// DeleteByAuthor 仅作者可删，一步条件删除保证幂等
func (r *ArtworkRepository) DeleteByAuthor(ctx context.Context, artworkID, authorID uint64) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND author_id = ?", artworkID, authorID).
		Delete(&model.Artwork{})
	return res.RowsAffected, res.Error
}

func (r *CommentRepository) Create(ctx context.Context, c *model.Comment) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *CommentRepository) ListByArtwork(ctx context.Context, artworkID uint64, offset, limit int) ([]model.Comment, error) {
	var list []model.Comment
	err := r.DB.WithContext(ctx).
		Where("artwork_id = ?", artworkID).
		Order("created_at ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, err
}
