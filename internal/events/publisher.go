package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
}

type redisPublisher struct {
	client *redis.Client
	stream string
	maxLen int64
	logger *slog.Logger
}

// NewRedisPublisher appends events to a Redis stream, trimmed to roughly maxLen
// entries when maxLen is positive.
func NewRedisPublisher(client *redis.Client, stream string, maxLen int64, logger *slog.Logger) Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisPublisher{
		client: client,
		stream: stream,
		maxLen: maxLen,
		logger: logger,
	}
}

func (p *redisPublisher) Publish(ctx context.Context, events ...Event) error {
	if len(events) == 0 {
		return nil
	}

	pipe := p.client.Pipeline()
	for _, e := range events {
		if e.OccurredAt.IsZero() {
			e.OccurredAt = time.Now()
		}
		args := &redis.XAddArgs{Stream: p.stream, Values: e.values()}
		if p.maxLen > 0 {
			args.MaxLen = p.maxLen
			args.Approx = true
		}
		pipe.XAdd(ctx, args)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publishing %d events: %w", len(events), err)
	}

	for _, e := range events {
		p.logger.DebugContext(ctx, "published event", "type", e.Type, "organization_id", e.OrganizationID, "user_id", e.UserID, "stream", p.stream)
	}
	return nil
}

type noopPublisher struct{}

// NewNoopPublisher drops every event. Used when Redis is not configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, ...Event) error {
	return nil
}
