package propagation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultReconcileKey is the redis list failed propagations land on.
const DefaultReconcileKey = "content:reconcile"

// Entry describes one failed propagation call. There is no in-process
// retry: a separate repair job drains the log and replays the ops.
type Entry struct {
	Op       string    `json:"op"`
	ObjectID string    `json:"objectId"`
	Event    string    `json:"event,omitempty"`
	Reason   string    `json:"reason"`
	FailedAt time.Time `json:"failedAt"`
}

// Recorder persists failed propagation ops.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// NopRecorder drops entries; the slog error trail is then the only
// record.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Entry) error { return nil }

// RedisRecorder appends entries to a redis list.
type RedisRecorder struct {
	client *redis.Client
	key    string
}

func NewRedisRecorder(client *redis.Client, key string) *RedisRecorder {
	if key == "" {
		key = DefaultReconcileKey
	}
	return &RedisRecorder{client: client, key: key}
}

func (r *RedisRecorder) Record(ctx context.Context, entry Entry) error {
	if entry.FailedAt.IsZero() {
		entry.FailedAt = time.Now().UTC()
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal reconciliation entry: %w", err)
	}
	if err := r.client.LPush(ctx, r.key, payload).Err(); err != nil {
		return fmt.Errorf("failed to push reconciliation entry: %w", err)
	}
	return nil
}

var _ Recorder = (*RedisRecorder)(nil)
