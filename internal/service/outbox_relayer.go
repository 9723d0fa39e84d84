package service

import (
	"context"
	"log"
	"time"

	"CampusConnect/internal/model"
	"CampusConnect/internal/pkg"
	"CampusConnect/internal/repository/mysql"
	"CampusConnect/internal/repository/redis"
)

type Sender func(ctx context.Context, ob *model.EngagementOutbox) error

// OutboxRelayer drains pending engagement events to the configured sender.
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      &mysql.OutboxRepository{DB: mysql.DB},
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
			_ = r.repo.MarkRetry(ctx, ob.ID)
			continue
		}
		_ = r.repo.MarkSent(ctx, ob.ID)
	}
}

// KafkaSender publishes outbox rows keyed by actor id.
func KafkaSender(producer *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.EngagementOutbox) error {
		return producer.Send(ctx, pkg.KeyFromID(ob.ActorID), []byte(ob.Payload))
	}
}

// LogSender is the fallback when no broker is configured.
func LogSender(ctx context.Context, ob *model.EngagementOutbox) error {
	log.Printf("OUTBOX SEND type=%s actor=%d payload=%s", ob.EventType, ob.ActorID, ob.Payload)
	return nil
}

// ViewSyncer flushes buffered view counts from redis into the posts table.
type ViewSyncer struct {
	repo     *mysql.PostRepository
	cache    *redis.EngagementCache
	interval time.Duration
}

func NewViewSyncer() *ViewSyncer {
	return &ViewSyncer{
		repo:     &mysql.PostRepository{DB: mysql.DB},
		cache:    redis.NewEngagementCache(),
		interval: 30 * time.Second,
	}
}

func (v *ViewSyncer) Run(ctx context.Context) {
	t := time.NewTicker(v.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := v.cache.DrainViews(ctx, func(postID uint64, n int64) error {
				return v.repo.IncViews(ctx, postID, n)
			}); err != nil {
				log.Printf("view sync err: %v", err)
			}
		}
	}
}
