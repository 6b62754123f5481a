package model

import "time"

type User struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"uniqueIndex;size:32;not null" json:"username"`
	Password  string `gorm:"size:255;not null" json:"-"`
	Email     string `gorm:"uniqueIndex;size:64;not null" json:"email"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
