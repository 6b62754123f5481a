package model

import "time"

type Session struct {
	ID           uint64 `gorm:"primaryKey" json:"id"`
	Title        string `gorm:"size:200;not null" json:"title"`
	Date         string `gorm:"size:16;not null" json:"date"` // YYYY-MM-DD
	Time         string `gorm:"size:16;not null" json:"time"` // 展示用时间串，如 "18:00"
	MaxAttendees int    `gorm:"not null" json:"max_attendees"`
	// 冗余计数列，入会时作为容量闸门原子自增
	AttendeeCount int    `gorm:"not null;default:0" json:"attendee_count"`
	CreatorID     uint64 `gorm:"not null;index" json:"creator_id"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type SessionAttendee struct {
	ID        uint64 `gorm:"primaryKey"`
	SessionID uint64 `gorm:"not null;index;uniqueIndex:uk_session_user"`
	UserID    uint64 `gorm:"not null;index;uniqueIndex:uk_session_user"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SessionAttendee) TableName() string {
	return "session_attendees"
}
