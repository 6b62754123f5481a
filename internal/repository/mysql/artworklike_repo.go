package mysql

import (
	"context"
	"errors"

	"Aura_Community/internal/model"

	"gorm.io/gorm"
)

var ErrArtworkNotFound = errors.New("artwork not found")

type ArtworkLikeRepository struct {
	DB *gorm.DB
}

// Toggle 翻转 (user, artwork) 的唯一点赞关系：无则建，有则删。
// 先直接尝试插入，唯一索引冲突即视为"已点赞"，转入取消分支——
// 约束本身是并发下的最终仲裁，不把裸冲突错误往上抛。
func (r *ArtworkLikeRepository) Toggle(ctx context.Context, userID, artworkID uint64) (bool, error) {
	var liked bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a model.Artwork
		if err := tx.Select("id").First(&a, artworkID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrArtworkNotFound
			}
			return err
		}

		err := tx.Create(&model.ArtworkLike{UserID: userID, ArtworkID: artworkID}).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return err
			}
			// 已点过 -> 取消
			liked = false
			res := tx.Where("user_id = ? AND artwork_id = ?", userID, artworkID).
				Delete(&model.ArtworkLike{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// 并发下已被另一次toggle删掉，保持取消语义即可
				return nil
			}
			if err := tx.Model(&model.Artwork{}).
				Where("id = ?", artworkID).
				UpdateColumn("like_count",
					gorm.Expr("CASE WHEN like_count > 0 THEN like_count - 1 ELSE 0 END")).
				Error; err != nil {
				return err
			}
			return insertOutbox(tx, "artwork.unlike", userID, artworkID)
		}

		liked = true
		if err := tx.Model(&model.Artwork{}).
			Where("id = ?", artworkID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).
			Error; err != nil {
			return err
		}
		return insertOutbox(tx, "artwork.like", userID, artworkID)
	})
	return liked, err
}

func (r *ArtworkLikeRepository) IsLiked(ctx context.Context, userID, artworkID uint64) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&model.ArtworkLike{}).
		Where("user_id = ? AND artwork_id = ?", userID, artworkID).
		Count(&count).Error
	return count > 0, err
}

func (r *ArtworkLikeRepository) GetLikeCount(ctx context.Context, artworkID uint64) (int64, error) {
	var a model.Artwork
	err := r.DB.WithContext(ctx).Select("id", "like_count").First(&a, artworkID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrArtworkNotFound
	}
	if err != nil {
		return 0, err
	}
	return a.LikeCount, nil
}
