package model

import "time"

// EngagementOutbox 互动事件监控表（join/leave/like/unlike 随业务事务落库，异步投递）
type EngagementOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:32;not null"` // session.join / session.leave / artwork.like / artwork.unlike
	ActorID   uint64 `gorm:"not null"`
	TargetID  uint64 `gorm:"not null"`
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (EngagementOutbox) TableName() string { return "engagement_outbox" }
