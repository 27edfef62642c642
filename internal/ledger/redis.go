package ledger

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fhuszti/imgbatch/internal/port"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "imgbatch:"

// claims are per run, so they never need to outlive a long batch
const defaultClaimTTL = 7 * 24 * time.Hour

// RedisLedger keeps claims and completion marks in Redis, so they survive
// across runs and are shared with queue workers.
type RedisLedger struct {
	client *redis.Client
	ttl    time.Duration
}

// compile-time check: *RedisLedger must satisfy port.Ledger
var _ port.Ledger = (*RedisLedger)(nil)

// NewRedis connects to addr. ttl bounds how long entries live; with 0, done
// marks are kept forever and claims expire after a week.
func NewRedis(addr, password string, ttl time.Duration) *RedisLedger {
	log.Println("initialising redis ledger...")
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	return &RedisLedger{client: rdb, ttl: ttl}
}

func (l *RedisLedger) Claim(ctx context.Context, key, claimant string) (string, error) {
	ok, err := l.client.SetNX(ctx, claimKey(key), claimant, l.claimTTL()).Result()
	if err != nil {
		return "", fmt.Errorf("redis setnx failed: %w", err)
	}
	if ok {
		return claimant, nil
	}

	owner, err := l.client.Get(ctx, claimKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		// expired between the two calls
		return l.Claim(ctx, key, claimant)
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return owner, nil
}

func (l *RedisLedger) claimTTL() time.Duration {
	if l.ttl > 0 {
		return l.ttl
	}
	return defaultClaimTTL
}

func (l *RedisLedger) MarkDone(ctx context.Context, index, key string) error {
	if err := l.client.Set(ctx, doneKey(index), key, l.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (l *RedisLedger) IsDone(ctx context.Context, index string) (bool, error) {
	n, err := l.client.Exists(ctx, doneKey(index)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists failed: %w", err)
	}
	return n > 0, nil
}

func (l *RedisLedger) Close() error {
	return l.client.Close()
}

func claimKey(key string) string {
	return keyPrefix + "claim:" + key
}

func doneKey(index string) string {
	return keyPrefix + "done:" + index
}
