package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/seon98/Trip-Backend/internal/core/domain"
	"github.com/seon98/Trip-Backend/internal/core/ports"
)

const (
	idempotencyTTL = 24 * time.Hour
	// pendingTTL bounds how long a crashed request can hold a key.
	pendingTTL   = time.Minute
	pendingValue = "pending"
)

// IdempotencyStore binds Idempotency-Key headers to booking ids.
// Key format: idem:<kind>:<user_id>:<client key>
type IdempotencyStore struct {
	client *redis.Client
}

func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Claim takes ownership of key with SETNX. When another request already owns
// it, the bound booking id is returned, or domain.ErrBookingInProgress while
// that request is still running.
func (s *IdempotencyStore) Claim(ctx context.Context, key string) (int64, error) {
	ok, err := s.client.SetNX(ctx, s.key(key), pendingValue, pendingTTL).Result()
	if err != nil {
		return 0, fmt.Errorf("idempotency claim: %w", err)
	}
	if ok {
		return 0, nil
	}

	val, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		// Released between SETNX and GET; the client may retry.
		return 0, domain.ErrBookingInProgress
	}
	if err != nil {
		return 0, fmt.Errorf("idempotency lookup: %w", err)
	}
	return parseBinding(val)
}

// Bind records the booking id produced under key.
func (s *IdempotencyStore) Bind(ctx context.Context, key string, bookingID int64) error {
	return s.client.Set(ctx, s.key(key), strconv.FormatInt(bookingID, 10), idempotencyTTL).Err()
}

// Release frees key after a failed booking so the client can retry.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

func (s *IdempotencyStore) key(key string) string {
	return "idem:" + key
}

func parseBinding(val string) (int64, error) {
	if val == pendingValue {
		return 0, domain.ErrBookingInProgress
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("idempotency: corrupt binding %q", val)
	}
	return id, nil
}

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)
