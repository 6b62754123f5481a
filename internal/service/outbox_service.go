package service

import (
	"context"
	"log"
	"time"

	"Aura_Community/internal/model"
	"Aura_Community/internal/pkg"
	"Aura_Community/internal/repository/mysql"

	"gorm.io/gorm"
)

// Sender 单条outbox事件的投递函数
type Sender func(ctx context.Context, ob *model.EngagementOutbox) error

// OutboxRelayer 轮询 engagement_outbox，把随业务事务落库的互动事件异步投递出去
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(db *gorm.DB, sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      &mysql.OutboxRepository{DB: db},
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		log.Printf("outbox query err: %v", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			_ = r.repo.RetryUpdate(ctx, ob.ID)
			continue
		}
		_ = r.repo.SuccessUpdate(ctx, ob.ID)
	}
}

// KafkaSender 事件按目标ID分区投递
func KafkaSender(p *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.EngagementOutbox) error {
		return p.Send(ctx, pkg.MakeKeyFromID(ob.TargetID), []byte(ob.Payload))
	}
}

// LogSender 未配置broker时的降级投递：只打日志
func LogSender(ctx context.Context, ob *model.EngagementOutbox) error {
	log.Printf("OUTBOX SEND type=%s actor=%d target=%d payload=%s", ob.EventType, ob.ActorID, ob.TargetID, ob.Payload)
	return nil
}
