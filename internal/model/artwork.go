package model

import "time"

type Artwork struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	AuthorID  uint64 `gorm:"not null;index" json:"author_id"`
	Title     string `gorm:"size:200;not null" json:"title"`
	// 图片本体存对象存储，这里只落地访问URL
	ImageURL  string `gorm:"size:512" json:"image_url"`
	LikeCount int64  `gorm:"not null;default:0" json:"like_count"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ArtworkLike struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	UserID    uint64 `gorm:"not null;index;uniqueIndex:uk_user_artwork"`
	ArtworkID uint64 `gorm:"not null;index;uniqueIndex:uk_user_artwork"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ArtworkLike) TableName() string {
	return "artwork_likes"
}

type Comment struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	ArtworkID uint64 `gorm:"not null;index" json:"artwork_id"`
	AuthorID  uint64 `gorm:"not null;index" json:"author_id"`
	Content   string `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
