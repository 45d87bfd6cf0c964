package slotlock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/studiokita/booking-service/internal/config"
)

// ErrSlotLocked is returned when another submission currently holds the slot.
var ErrSlotLocked = errors.New("slotlock: slot is locked by another request")

// releaseScript deletes the key only when the caller still owns it, so an
// expired lock taken over by someone else is never released by the old owner.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Locker is a short-lived per-slot mutex in Redis. It narrows the race window
// between two submissions for the same slot before they reach the database;
// the unique constraint there remains the source of truth.
type Locker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewClient builds a Redis client from the service configuration.
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewLocker(client *redis.Client, ttl time.Duration) *Locker {
	return &Locker{client: client, ttl: ttl}
}

// Ping verifies the Redis connection.
func (l *Locker) Ping(ctx context.Context) error {
	if err := l.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("slotlock: ping redis: %w", err)
	}
	return nil
}

// Acquire takes the lock for one slot. Returns an owner token to pass to
// Release, or ErrSlotLocked when the slot is already held.
func (l *Locker) Acquire(ctx context.Context, studioID, layoutID int64, date, startTime string) (string, error) {
	token := uuid.NewString()
	key := slotKey(studioID, layoutID, date, startTime)

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("slotlock: acquire %s: %w", key, err)
	}
	if !ok {
		return "", ErrSlotLocked
	}

	return token, nil
}

// Release frees the lock if the token still owns it. Releasing a lock that
// already expired is not an error.
func (l *Locker) Release(ctx context.Context, studioID, layoutID int64, date, startTime, token string) error {
	key := slotKey(studioID, layoutID, date, startTime)

	if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("slotlock: release %s: %w", key, err)
	}

	return nil
}

func slotKey(studioID, layoutID int64, date, startTime string) string {
	return fmt.Sprintf("slot_lock:%d:%d:%s:%s", studioID, layoutID, date, startTime)
}
