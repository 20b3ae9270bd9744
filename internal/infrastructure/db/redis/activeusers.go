package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	activeWindow = 10 * time.Minute
	activeTTL    = 15 * time.Minute
)

// ActiveUserTracker counts distinct logged-in diners over a sliding window.
// Session signatures are added to a per-window set; the gauge reads the
// current window's cardinality. Key format: active:<unix/window-seconds>.
type ActiveUserTracker struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewActiveUserTracker creates a tracker wrapping the given Redis client.
func NewActiveUserTracker(client *redis.Client, log zerolog.Logger) *ActiveUserTracker {
	return &ActiveUserTracker{client: client, log: log}
}

// Touch records that the session was seen just now. Failures are logged and
// swallowed: activity accounting never fails a request.
func (t *ActiveUserTracker) Touch(ctx context.Context, signature string) {
	if signature == "" {
		return
	}
	key := t.key(time.Now())
	pipe := t.client.Pipeline()
	pipe.SAdd(ctx, key, signature)
	pipe.Expire(ctx, key, activeTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		t.log.Warn().Err(err).Msg("active user touch failed")
	}
}

// Count returns the number of distinct sessions seen in the current window.
func (t *ActiveUserTracker) Count() float64 {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	n, err := t.client.SCard(ctx, t.key(time.Now())).Result()
	if err != nil {
		t.log.Warn().Err(err).Msg("active user count failed")
		return 0
	}
	return float64(n)
}

func (t *ActiveUserTracker) key(now time.Time) string {
	return fmt.Sprintf("active:%d", now.Unix()/int64(activeWindow.Seconds()))
}
