package service

import (
	"context"

	"Aura_Community/internal/model"
	"Aura_Community/internal/repository/mysql"

	"gorm.io/gorm"
)

type ArtworkService struct {
	repo        *mysql.ArtworkRepository
	commentRepo *mysql.CommentRepository
}

func NewArtworkService(db *gorm.DB) *ArtworkService {
	return &ArtworkService{
		repo:        &mysql.ArtworkRepository{DB: db},
		commentRepo: &mysql.CommentRepository{DB: db},
	}
}

// CreateArtwork 图片先上传对象存储，这里只收URL
func (s *ArtworkService) CreateArtwork(ctx context.Context, userID uint64, title, imageURL string) (*model.Artwork, error) {
	if title == "" {
		return nil, ErrValidation
	}
	artwork := &model.Artwork{
		AuthorID: userID,
		Title:    title,
		ImageURL: imageURL,
	}
	if err := s.repo.Create(ctx, artwork); err != nil {
		return nil, err
	}
	return artwork, nil
}

func (s *ArtworkService) Get(ctx context.Context, id uint64) (*model.Artwork, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ArtworkService) List(ctx context.Context, page, size int) ([]model.Artwork, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	return s.repo.ListNewestFirst(ctx, (page-1)*size, size)
}

// Delete 仅作者可删；存在但非本人 -> 无权限
func (s *ArtworkService) Delete(ctx context.Context, userID, artworkID uint64) error {
	affected, err := s.repo.DeleteByAuthor(ctx, artworkID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := s.repo.FindByID(ctx, artworkID); err != nil {
			return err
		}
		return ErrNotOwner
	}
	return nil
}

// AddComment 评论前先确认作品存在
func (s *ArtworkService) AddComment(ctx context.Context, userID, artworkID uint64, content string) (*model.Comment, error) {
	if content == "" {
		return nil, ErrValidation
	}
	if _, err := s.repo.FindByID(ctx, artworkID); err != nil {
		return nil, err
	}
	comment := &model.Comment{
		ArtworkID: artworkID,
		AuthorID:  userID,
		Content:   content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *ArtworkService) ListComments(ctx context.Context, artworkID uint64, page, size int) ([]model.Comment, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 50
	}
	if _, err := s.repo.FindByID(ctx, artworkID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByArtwork(ctx, artworkID, (page-1)*size, size)
}
