package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/seon98/Trip-Backend/internal/core/domain"
	"github.com/seon98/Trip-Backend/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   map[string]*domain.User
	nextID  int64
	findErr error // if set, FindByEmail returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = r.nextID
	r.users[created.Email] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[domain.NormalizeEmail(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context, page ports.Page) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Listings
// ---------------------------------------------------------------------------

type stubAccommodationRepo struct {
	byID      map[int64]*domain.Accommodation
	nextID    int64
	lastQuery ports.AccommodationFilter
	deleted   []int64
}

func newStubAccommodationRepo() *stubAccommodationRepo {
	return &stubAccommodationRepo{byID: make(map[int64]*domain.Accommodation)}
}

func (r *stubAccommodationRepo) Create(_ context.Context, a *domain.Accommodation) (*domain.Accommodation, error) {
	r.nextID++
	clone := *a
	clone.ID = r.nextID
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubAccommodationRepo) Get(_ context.Context, id int64) (*domain.Accommodation, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccommodationNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAccommodationRepo) List(_ context.Context, f ports.AccommodationFilter) ([]*domain.Accommodation, error) {
	r.lastQuery = f
	var out []*domain.Accommodation
	for _, a := range r.byID {
		if f.Location != "" && !strings.Contains(a.Location, f.Location) {
			continue
		}
		clone := *a
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubAccommodationRepo) Update(_ context.Context, a *domain.Accommodation) (*domain.Accommodation, error) {
	if _, ok := r.byID[a.ID]; !ok {
		return nil, domain.ErrAccommodationNotFound
	}
	clone := *a
	r.byID[a.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubAccommodationRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrAccommodationNotFound
	}
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type stubFlightRepo struct {
	byID   map[int64]*domain.Flight
	nextID int64
}

func newStubFlightRepo() *stubFlightRepo {
	return &stubFlightRepo{byID: make(map[int64]*domain.Flight)}
}

func (r *stubFlightRepo) Create(_ context.Context, f *domain.Flight) (*domain.Flight, error) {
	r.nextID++
	clone := *f
	clone.ID = r.nextID
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubFlightRepo) Get(_ context.Context, id int64) (*domain.Flight, error) {
	f, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrFlightNotFound
	}
	clone := *f
	return &clone, nil
}

func (r *stubFlightRepo) List(_ context.Context, _ ports.Page) ([]*domain.Flight, error) {
	var out []*domain.Flight
	for _, f := range r.byID {
		clone := *f
		out = append(out, &clone)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Bookings
// ---------------------------------------------------------------------------

type stubBookingRepo struct {
	acc       map[int64]*domain.AccommodationBooking
	flights   map[int64]*domain.FlightBooking
	nextID    int64
	createErr error
	lastPage  ports.Page
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{
		acc:     make(map[int64]*domain.AccommodationBooking),
		flights: make(map[int64]*domain.FlightBooking),
	}
}

func (r *stubBookingRepo) CreateAccommodationBooking(_ context.Context, b *domain.AccommodationBooking) (*domain.AccommodationBooking, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	clone := *b
	clone.ID = r.nextID
	r.acc[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubBookingRepo) CreateFlightBooking(_ context.Context, b *domain.FlightBooking) (*domain.FlightBooking, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	clone := *b
	clone.ID = r.nextID
	r.flights[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubBookingRepo) GetAccommodationBooking(_ context.Context, id int64) (*domain.AccommodationBooking, error) {
	b, ok := r.acc[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) GetFlightBooking(_ context.Context, id int64) (*domain.FlightBooking, error) {
	b, ok := r.flights[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) AccommodationBookingsByUser(_ context.Context, userID int64) ([]*domain.AccommodationBooking, error) {
	var out []*domain.AccommodationBooking
	for _, b := range r.acc {
		if b.UserID == userID {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubBookingRepo) FlightBookingsByUser(_ context.Context, userID int64) ([]*domain.FlightBooking, error) {
	var out []*domain.FlightBooking
	for _, b := range r.flights {
		if b.UserID == userID {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubBookingRepo) ListAccommodationBookings(_ context.Context, page ports.Page) ([]*domain.AccommodationBooking, error) {
	r.lastPage = page
	var out []*domain.AccommodationBooking
	for _, b := range r.acc {
		clone := *b
		out = append(out, &clone)
	}
	return out, nil
}

type stubIdem struct {
	bound    map[string]int64
	claimErr error
	released []string
}

func newStubIdem() *stubIdem {
	return &stubIdem{bound: make(map[string]int64)}
}

func (s *stubIdem) Claim(_ context.Context, key string) (int64, error) {
	if s.claimErr != nil {
		return 0, s.claimErr
	}
	return s.bound[key], nil
}

func (s *stubIdem) Bind(_ context.Context, key string, id int64) error {
	s.bound[key] = id
	return nil
}

func (s *stubIdem) Release(_ context.Context, key string) error {
	s.released = append(s.released, key)
	return nil
}

type stubSink struct {
	events []domain.BookingEvent
}

func (s *stubSink) Enqueue(ev domain.BookingEvent) {
	s.events = append(s.events, ev)
}
