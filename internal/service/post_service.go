package service

import (
	"context"

	"Aura_Community/internal/model"
	"Aura_Community/internal/repository/mysql"

	"gorm.io/gorm"
)

type PostService struct {
	repo *mysql.PostRepository
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{
		repo: &mysql.PostRepository{DB: db},
	}
}

func (s *PostService) CreatePost(ctx context.Context, userID uint64, content string) (*model.Post, error) {
	if content == "" {
		return nil, ErrValidation
	}
	post := &model.Post{
		AuthorID: userID,
		Content:  content,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// List 游标分页：首页传 lastID=0
func (s *PostService) List(ctx context.Context, lastID uint64, size int) ([]model.Post, uint64, error) {
	if size <= 0 || size > 50 {
		size = 20
	}
	list, err := s.repo.ListCursor(ctx, lastID, size)
	if err != nil {
		return nil, 0, err
	}
	var next uint64
	if len(list) == size {
		next = list[len(list)-1].ID
	}
	return list, next, nil
}

// DeletePost 幂等删除：已删不报错；存在但非作者 -> 无权限
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint64) error {
	affected, err := s.repo.DeleteByAuthor(ctx, postID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := s.repo.FindByID(ctx, postID); err != nil {
			// 帖子不存在或已删除，视为幂等成功
			return nil
		}
		return ErrNotOwner
	}
	return nil
}
