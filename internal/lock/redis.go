package lock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix  = "tenancy:lock:"
	pollInterval    = 25 * time.Millisecond
	releaseDeadline = 2 * time.Second
)

// releaseScript deletes the key only if it still holds our token, so an
// expired lease never removes someone else's lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a Locker shared by every process talking to the same Redis.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
	logger *slog.Logger
}

// NewRedis builds a Redis locker. ttl caps how long a crashed holder can keep
// a key; wait bounds how long Acquire polls for a busy key.
func NewRedis(client *redis.Client, ttl, wait time.Duration, logger *slog.Logger) (*Redis, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("lock ttl must be positive, got %s", ttl)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Redis{client: client, ttl: ttl, wait: wait, logger: logger}, nil
}

func (r *Redis) Acquire(ctx context.Context, keys ...string) (func(), error) {
	keys = normalize(keys)
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	if r.wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, r.wait, ErrTimeout)
		defer cancel()
	}

	held := make([]string, 0, len(keys))
	for _, key := range keys {
		if err := r.lock(ctx, redisKeyPrefix+key, token); err != nil {
			r.unlockAll(held, token)
			return nil, fmt.Errorf("acquiring %s: %w", key, err)
		}
		held = append(held, redisKeyPrefix+key)
	}

	var once sync.Once
	return func() { once.Do(func() { r.unlockAll(held, token) }) }, nil
}

func (r *Redis) lock(ctx context.Context, key, token string) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			if ctxErr := context.Cause(ctx); ctxErr != nil {
				return ctxErr
			}
			return fmt.Errorf("set %s: %w", key, err)
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return context.Cause(ctx)
		case <-ticker.C:
		}
	}
}

// unlockAll runs on a fresh context so cancelled requests still release.
func (r *Redis) unlockAll(keys []string, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), releaseDeadline)
	defer cancel()

	for i := len(keys) - 1; i >= 0; i-- {
		n, err := releaseScript.Run(ctx, r.client, []string{keys[i]}, token).Int()
		if err != nil && !errors.Is(err, redis.Nil) {
			r.logger.WarnContext(ctx, "failed to release lock", "key", keys[i], "error", err)
			continue
		}
		if n == 0 {
			r.logger.WarnContext(ctx, "lock expired before release", "key", keys[i], "ttl", r.ttl)
		}
	}
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating lock token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
