package mysql

import (
	"context"
	"encoding/json"
	"time"

	"Aura_Community/internal/model"

	"gorm.io/gorm"
)

type OutboxRepository struct {
	DB *gorm.DB
}

// insertOutbox 随业务事务写入互动事件，由relayer异步投递
func insertOutbox(tx *gorm.DB, event string, actorID, targetID uint64) error {
	payload, _ := json.Marshal(map[string]any{
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
		"actor":      actorID,
		"target":     targetID,
	})
	ob := &model.EngagementOutbox{
		EventType: event,
		ActorID:   actorID,
		TargetID:  targetID,
		Payload:   string(payload),
		Status:    0,
	}
	return tx.Create(ob).Error
}

// List 批量拉取待投递事件
func (r *OutboxRepository) List(ctx context.Context, batchSize int) ([]model.EngagementOutbox, error) {
	var list []model.EngagementOutbox
	if err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// RetryUpdate 投递失败记录重试
func (r *OutboxRepository) RetryUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.EngagementOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error
}

// SuccessUpdate 投递成功标记
func (r *OutboxRepository) SuccessUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.EngagementOutbox{}).Where("id = ?", id).
		Update("status", 1).Error
}
