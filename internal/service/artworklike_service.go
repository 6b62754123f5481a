package service

import (
	"context"
	"fmt"
	"time"

	"Aura_Community/internal/repository/mysql"
	"Aura_Community/internal/repository/redis"

	"gorm.io/gorm"
)

type ArtworkLikeService struct {
	repo      *mysql.ArtworkLikeRepository
	likeCache *redis.LikeCacheRepository
	lock      *redis.DistLock
}

func NewArtworkLikeService(db *gorm.DB) *ArtworkLikeService {
	return &ArtworkLikeService{
		repo:      &mysql.ArtworkLikeRepository{DB: db},
		likeCache: redis.NewLikeCacheRepository(),
		lock:      &redis.DistLock{},
	}
}

// Toggle 点赞开关：落库翻转唯一关系，随后维护缓存。
// 返回翻转后的状态 liked。
func (s *ArtworkLikeService) Toggle(ctx context.Context, userID, artworkID uint64) (bool, error) {
	if userID == 0 || artworkID == 0 {
		return false, ErrValidation
	}

	liked, err := s.repo.Toggle(ctx, userID, artworkID)
	if err != nil {
		return false, err
	}
	if redis.Client == nil {
		// 缓存未接入（单测环境）
		return liked, nil
	}

	// 集合可直接更新（不强制），失败忽略
	if liked {
		_ = s.likeCache.AddLike(ctx, userID, artworkID)
	} else {
		_ = s.likeCache.RemoveLike(ctx, userID, artworkID)
	}

	// 计数一致性：拿不到锁就删计数Key，交给读侧锁保护重建
	token := fmt.Sprintf("%d-%d-%d", userID, artworkID, time.Now().UnixNano())
	got, _ := s.lock.Acquire(ctx, artworkID, token)
	if got {
		defer s.lock.Release(ctx, artworkID, token)
	} else {
		_ = s.likeCache.DeleteCount(ctx, artworkID)
	}
	return liked, nil
}

func (s *ArtworkLikeService) IsLiked(ctx context.Context, userID, artworkID uint64) (bool, error) {
	if userID == 0 || artworkID == 0 {
		return false, ErrValidation
	}
	if redis.Client != nil {
		if b, ok, err := s.likeCache.IsLikedCached(ctx, userID, artworkID); err == nil && ok {
			return b, nil
		}
	}
	// 回源 MySQL
	b, err := s.repo.IsLiked(ctx, userID, artworkID)
	if err == nil && redis.Client != nil {
		s.likeCache.WarmIsLiked(ctx, userID, artworkID, b)
	}
	return b, err
}

// GetCount 计数读取：缓存miss时由持锁者回源重建，其余请求短暂退避
func (s *ArtworkLikeService) GetCount(ctx context.Context, userID, artworkID uint64) (int64, error) {
	if redis.Client == nil {
		return s.repo.GetLikeCount(ctx, artworkID)
	}

	if v, ok, err := s.likeCache.GetLikeCountCached(ctx, artworkID); err == nil && ok {
		return v, nil
	}
	token := fmt.Sprintf("%d-%d-%d", userID, artworkID, time.Now().UnixNano())
	got, _ := s.lock.Acquire(ctx, artworkID, token)
	if got {
		defer s.lock.Release(ctx, artworkID, token)

		// 双重检查，避免重复回源
		if v, ok, err := s.likeCache.GetLikeCountCached(ctx, artworkID); err == nil && ok {
			return v, nil
		}
		v, err := s.repo.GetLikeCount(ctx, artworkID)
		if err != nil {
			return 0, err
		}
		_ = s.likeCache.SetLikeCount(ctx, artworkID, v)
		return v, nil
	}

	// 没拿到锁，退避后再读一次缓存，避免全体打DB
	time.Sleep(50 * time.Millisecond)
	if v, ok, err := s.likeCache.GetLikeCountCached(ctx, artworkID); err == nil && ok {
		return v, nil
	}
	return s.repo.GetLikeCount(ctx, artworkID)
}
