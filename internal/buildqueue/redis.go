package buildqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// DefaultQueueKey is the redis list the build consumer drains.
const DefaultQueueKey = "content:queue:build"

type RedisConfig struct {
	URL      string
	QueueKey string
}

// RedisQueue pushes build events onto a redis list. The handle is
// long-lived and safe for concurrent use.
type RedisQueue struct {
	client *redis.Client
	key    string
}

func NewRedisQueue(ctx context.Context, cfg RedisConfig) (*RedisQueue, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		opt = &redis.Options{Addr: cfg.URL}
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	key := cfg.QueueKey
	if key == "" {
		key = DefaultQueueKey
	}

	return &RedisQueue{client: client, key: key}, nil
}

// NewRedisQueueFromClient wraps an existing client, sharing it with
// other redis-backed components.
func NewRedisQueueFromClient(client *redis.Client, key string) *RedisQueue {
	if key == "" {
		key = DefaultQueueKey
	}
	return &RedisQueue{client: client, key: key}
}

func (q *RedisQueue) Enqueue(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal build event: %w", err)
	}

	if err := q.client.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue build event: %w", err)
	}

	slog.Info("build event enqueued", "event", msg.Event, "item", msg.ItemID, "queue", q.key)
	return nil
}

func (q *RedisQueue) Close() error {
	return q.client.Close()
}

var _ Queue = (*RedisQueue)(nil)
