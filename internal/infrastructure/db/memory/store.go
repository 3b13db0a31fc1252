// Package memory is a process-local implementation of the repositories. It
// backs the server when no MySQL DSN is configured and drives the router
// scenario tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/seon98/Trip-Backend/internal/core/domain"
	"github.com/seon98/Trip-Backend/internal/core/ports"
)

// Store holds every table behind a single RWMutex.
type Store struct {
	mu sync.RWMutex

	users          map[int64]*domain.User
	usersByEmail   map[string]int64
	accommodations map[int64]*domain.Accommodation
	flights        map[int64]*domain.Flight
	accBookings    map[int64]*domain.AccommodationBooking
	flightBookings map[int64]*domain.FlightBooking

	seq int64
}

func NewStore() *Store {
	return &Store{
		users:          make(map[int64]*domain.User),
		usersByEmail:   make(map[string]int64),
		accommodations: make(map[int64]*domain.Accommodation),
		flights:        make(map[int64]*domain.Flight),
		accBookings:    make(map[int64]*domain.AccommodationBooking),
		flightBookings: make(map[int64]*domain.FlightBooking),
	}
}

func (s *Store) Users() *UserRepository                   { return &UserRepository{s} }
func (s *Store) Accommodations() *AccommodationRepository { return &AccommodationRepository{s} }
func (s *Store) Flights() *FlightRepository               { return &FlightRepository{s} }
func (s *Store) Bookings() *BookingRepository             { return &BookingRepository{s} }

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

// page applies skip/limit to n items and returns the slice bounds.
func page(n int, p ports.Page) (int, int) {
	start := p.Skip
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	end := n
	if p.Limit > 0 && start+p.Limit < n {
		end = start + p.Limit
	}
	return start, end
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type UserRepository struct{ s *Store }

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.usersByEmail[domain.NormalizeEmail(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := *r.s.users[id]
	return &u, nil
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	email := domain.NormalizeEmail(user.Email)
	if _, exists := r.s.usersByEmail[email]; exists {
		return nil, domain.ErrUserExists
	}
	u := *user
	u.ID = r.s.nextID()
	u.Email = email
	r.s.users[u.ID] = &u
	r.s.usersByEmail[email] = u.ID

	out := u
	return &out, nil
}

func (r *UserRepository) List(_ context.Context, p ports.Page) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	keys := sortedKeys(r.s.users)
	start, end := page(len(keys), p)
	out := make([]*domain.User, 0, end-start)
	for _, id := range keys[start:end] {
		u := *r.s.users[id]
		out = append(out, &u)
	}
	return out, nil
}

// Delete removes a user. Only tests use it, to simulate an account that
// disappears while its tokens are still valid.
func (r *UserRepository) Delete(_ context.Context, email string) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	email = domain.NormalizeEmail(email)
	if id, ok := r.s.usersByEmail[email]; ok {
		delete(r.s.users, id)
		delete(r.s.usersByEmail, email)
	}
}

// ---------------------------------------------------------------------------
// Accommodations
// ---------------------------------------------------------------------------

type AccommodationRepository struct{ s *Store }

// withOwner returns a copy of a with the owner summary filled in. Callers
// hold at least the read lock.
func (r *AccommodationRepository) withOwner(a *domain.Accommodation) *domain.Accommodation {
	out := *a
	out.Owner = domain.OwnerSummary{ID: a.OwnerID}
	if u, ok := r.s.users[a.OwnerID]; ok {
		out.Owner.Email = u.Email
	}
	return &out
}

func (r *AccommodationRepository) Create(_ context.Context, a *domain.Accommodation) (*domain.Accommodation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *a
	stored.ID = r.s.nextID()
	r.s.accommodations[stored.ID] = &stored
	return r.withOwner(&stored), nil
}

func (r *AccommodationRepository) Get(_ context.Context, id int64) (*domain.Accommodation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.accommodations[id]
	if !ok {
		return nil, domain.ErrAccommodationNotFound
	}
	return r.withOwner(a), nil
}

func (r *AccommodationRepository) List(_ context.Context, f ports.AccommodationFilter) ([]*domain.Accommodation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	needle := strings.ToLower(f.Location)
	var matched []*domain.Accommodation
	for _, id := range sortedKeys(r.s.accommodations) {
		a := r.s.accommodations[id]
		if needle != "" && !strings.Contains(strings.ToLower(a.Location), needle) {
			continue
		}
		matched = append(matched, a)
	}

	start, end := page(len(matched), f.Page)
	out := make([]*domain.Accommodation, 0, end-start)
	for _, a := range matched[start:end] {
		out = append(out, r.withOwner(a))
	}
	return out, nil
}

func (r *AccommodationRepository) Update(_ context.Context, a *domain.Accommodation) (*domain.Accommodation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.accommodations[a.ID]
	if !ok {
		return nil, domain.ErrAccommodationNotFound
	}
	stored := *a
	stored.OwnerID = current.OwnerID
	r.s.accommodations[a.ID] = &stored
	return r.withOwner(&stored), nil
}

func (r *AccommodationRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.accommodations[id]; !ok {
		return domain.ErrAccommodationNotFound
	}
	delete(r.s.accommodations, id)
	return nil
}

// ---------------------------------------------------------------------------
// Flights
// ---------------------------------------------------------------------------

type FlightRepository struct{ s *Store }

func (r *FlightRepository) Create(_ context.Context, f *domain.Flight) (*domain.Flight, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *f
	stored.ID = r.s.nextID()
	r.s.flights[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *FlightRepository) Get(_ context.Context, id int64) (*domain.Flight, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	f, ok := r.s.flights[id]
	if !ok {
		return nil, domain.ErrFlightNotFound
	}
	out := *f
	return &out, nil
}

func (r *FlightRepository) List(_ context.Context, p ports.Page) ([]*domain.Flight, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	keys := sortedKeys(r.s.flights)
	start, end := page(len(keys), p)
	out := make([]*domain.Flight, 0, end-start)
	for _, id := range keys[start:end] {
		f := *r.s.flights[id]
		out = append(out, &f)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Bookings
// ---------------------------------------------------------------------------

type BookingRepository struct{ s *Store }

func (r *BookingRepository) CreateAccommodationBooking(_ context.Context, b *domain.AccommodationBooking) (*domain.AccommodationBooking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *b
	stored.ID = r.s.nextID()
	r.s.accBookings[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *BookingRepository) CreateFlightBooking(_ context.Context, b *domain.FlightBooking) (*domain.FlightBooking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *b
	stored.ID = r.s.nextID()
	r.s.flightBookings[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *BookingRepository) GetAccommodationBooking(_ context.Context, id int64) (*domain.AccommodationBooking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.accBookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	out := *b
	return &out, nil
}

func (r *BookingRepository) GetFlightBooking(_ context.Context, id int64) (*domain.FlightBooking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.flightBookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	out := *b
	return &out, nil
}

func (r *BookingRepository) AccommodationBookingsByUser(_ context.Context, userID int64) ([]*domain.AccommodationBooking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*domain.AccommodationBooking{}
	for _, id := range sortedKeys(r.s.accBookings) {
		if b := r.s.accBookings[id]; b.UserID == userID {
			c := *b
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *BookingRepository) FlightBookingsByUser(_ context.Context, userID int64) ([]*domain.FlightBooking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*domain.FlightBooking{}
	for _, id := range sortedKeys(r.s.flightBookings) {
		if b := r.s.flightBookings[id]; b.UserID == userID {
			c := *b
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *BookingRepository) ListAccommodationBookings(_ context.Context, p ports.Page) ([]*domain.AccommodationBooking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	keys := sortedKeys(r.s.accBookings)
	start, end := page(len(keys), p)
	out := make([]*domain.AccommodationBooking, 0, end-start)
	for _, id := range keys[start:end] {
		b := *r.s.accBookings[id]
		out = append(out, &b)
	}
	return out, nil
}

var (
	_ ports.UserRepository          = (*UserRepository)(nil)
	_ ports.AccommodationRepository = (*AccommodationRepository)(nil)
	_ ports.FlightRepository        = (*FlightRepository)(nil)
	_ ports.BookingRepository       = (*BookingRepository)(nil)
)
