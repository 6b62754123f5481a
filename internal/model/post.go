package model

import "time"

type Post struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	AuthorID  uint64    `gorm:"not null;index:idx_author_time" json:"author_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Status    int       `gorm:"not null;default:0" json:"-"` // 0=normal 1=deleted
	CreatedAt time.Time `gorm:"index:idx_author_time"`
	UpdatedAt time.Time
}
