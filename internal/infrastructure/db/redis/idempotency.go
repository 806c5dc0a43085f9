package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultIdempotencyTTL = 24 * time.Hour
	pendingOrder          = "pending"
)

// IdempotencyStore remembers which order an Idempotency-Key produced.
// Key format: idem:<user_id>:<client_key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Reserve stores a pending marker under key unless the key exists. A taken
// key reports the order it holds, or 0 while that order is being placed.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (bool, uint, error) {
	k := idempotencyKey(key)
	// a second round covers a key that expired or was released between calls
	for range 2 {
		ok, err := s.client.SetNX(ctx, k, pendingOrder, s.ttl).Result()
		if err != nil {
			return false, 0, fmt.Errorf("idempotency reserve: %w", err)
		}
		if ok {
			return true, 0, nil
		}
		raw, err := s.client.Get(ctx, k).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return false, 0, fmt.Errorf("idempotency reserve: %w", err)
		}
		id, err := parseOrderID(raw)
		if err != nil {
			return false, 0, fmt.Errorf("idempotency reserve: %w", err)
		}
		return false, id, nil
	}
	return false, 0, nil
}

// Remember replaces the pending marker with the order id.
func (s *IdempotencyStore) Remember(ctx context.Context, key string, orderID uint) error {
	err := s.client.Set(ctx, idempotencyKey(key), strconv.FormatUint(uint64(orderID), 10), s.ttl).Err()
	if err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, idempotencyKey(key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func parseOrderID(raw string) (uint, error) {
	if raw == pendingOrder {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("corrupt value %q", raw)
	}
	return uint(id), nil
}

func idempotencyKey(key string) string {
	return "idem:" + key
}
