package memory

import (
	"context"
	"sync"

	"github.com/seon98/Trip-Backend/internal/core/domain"
	"github.com/seon98/Trip-Backend/internal/core/ports"
)

// pending marks a key claimed by a request that has not finished yet.
const pending int64 = -1

// IdempotencyStore keeps Idempotency-Key bindings in process memory. Keys
// never expire; it is meant for single-instance and test deployments.
type IdempotencyStore struct {
	mu   sync.Mutex
	keys map[string]int64
}

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{keys: make(map[string]int64)}
}

func (s *IdempotencyStore) Claim(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.keys[key]
	switch {
	case !ok:
		s.keys[key] = pending
		return 0, nil
	case id == pending:
		return 0, domain.ErrBookingInProgress
	default:
		return id, nil
	}
}

func (s *IdempotencyStore) Bind(_ context.Context, key string, bookingID int64) error {
	s.mu.Lock()
	s.keys[key] = bookingID
	s.mu.Unlock()
	return nil
}

func (s *IdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.keys, key)
	s.mu.Unlock()
	return nil
}

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)
