package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher publishes events with Redis PUBLISH on
// "<prefix>:<question_id>".
type RedisPublisher struct {
	client *redis.Client
	prefix string
}

// RedisOptions configures NewRedisPublisher.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// NewRedisPublisher builds a publisher. It does not dial until first use.
func NewRedisPublisher(opts RedisOptions) *RedisPublisher {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "calibrated:question"
	}
	return &RedisPublisher{
		client: redis.NewClient(&redis.Options{
			Addr:     opts.Addr,
			Password: opts.Password,
			DB:       opts.DB,
		}),
		prefix: prefix,
	}
}

// Channel returns the channel name for a question.
func (p *RedisPublisher) Channel(questionID string) string {
	return p.prefix + ":" + questionID
}

// Publish implements Publisher.
func (p *RedisPublisher) Publish(ctx context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.client.Publish(ctx, p.Channel(ev.QuestionID), data).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", ev.Type, err)
	}
	return nil
}

// Ping checks connectivity.
func (p *RedisPublisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (p *RedisPublisher) Close() error { return p.client.Close() }
