package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/seon98/Trip-Backend/internal/core/domain"
	"github.com/seon98/Trip-Backend/internal/core/ports"
)

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const (
	accBookingSelect    = "SELECT id, start_date, end_date, status, user_id, accommodation_id FROM accommodation_bookings"
	flightBookingSelect = "SELECT id, booking_date, status, user_id, flight_id FROM flight_bookings"
)

func scanAccBooking(row interface{ Scan(...any) error }) (*domain.AccommodationBooking, error) {
	var (
		b          domain.AccommodationBooking
		start, end time.Time
	)
	if err := row.Scan(&b.ID, &start, &end, &b.Status, &b.UserID, &b.AccommodationID); err != nil {
		return nil, err
	}
	b.StartDate = domain.NewDate(start)
	b.EndDate = domain.NewDate(end)
	return &b, nil
}

func scanFlightBooking(row interface{ Scan(...any) error }) (*domain.FlightBooking, error) {
	var (
		b   domain.FlightBooking
		day time.Time
	)
	if err := row.Scan(&b.ID, &day, &b.Status, &b.UserID, &b.FlightID); err != nil {
		return nil, err
	}
	b.BookingDate = domain.NewDate(day)
	return &b, nil
}

func (r *BookingRepository) CreateAccommodationBooking(ctx context.Context, b *domain.AccommodationBooking) (*domain.AccommodationBooking, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO accommodation_bookings (start_date, end_date, status, user_id, accommodation_id) VALUES (?, ?, ?, ?, ?)",
		b.StartDate.String(), b.EndDate.String(), b.Status, b.UserID, b.AccommodationID)
	if err != nil {
		return nil, fmt.Errorf("insert accommodation booking: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert accommodation booking: %w", err)
	}
	created := *b
	created.ID = id
	return &created, nil
}

func (r *BookingRepository) CreateFlightBooking(ctx context.Context, b *domain.FlightBooking) (*domain.FlightBooking, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO flight_bookings (booking_date, status, user_id, flight_id) VALUES (?, ?, ?, ?)",
		b.BookingDate.String(), b.Status, b.UserID, b.FlightID)
	if err != nil {
		return nil, fmt.Errorf("insert flight booking: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert flight booking: %w", err)
	}
	created := *b
	created.ID = id
	return &created, nil
}

func (r *BookingRepository) GetAccommodationBooking(ctx context.Context, id int64) (*domain.AccommodationBooking, error) {
	b, err := scanAccBooking(r.db.QueryRowContext(ctx, accBookingSelect+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get accommodation booking: %w", err)
	}
	return b, nil
}

func (r *BookingRepository) GetFlightBooking(ctx context.Context, id int64) (*domain.FlightBooking, error) {
	b, err := scanFlightBooking(r.db.QueryRowContext(ctx, flightBookingSelect+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get flight booking: %w", err)
	}
	return b, nil
}

func (r *BookingRepository) AccommodationBookingsByUser(ctx context.Context, userID int64) ([]*domain.AccommodationBooking, error) {
	return r.queryAccBookings(ctx, accBookingSelect+" WHERE user_id = ? ORDER BY id", userID)
}

func (r *BookingRepository) ListAccommodationBookings(ctx context.Context, page ports.Page) ([]*domain.AccommodationBooking, error) {
	return r.queryAccBookings(ctx, accBookingSelect+" ORDER BY id LIMIT ? OFFSET ?", page.Limit, page.Skip)
}

func (r *BookingRepository) FlightBookingsByUser(ctx context.Context, userID int64) ([]*domain.FlightBooking, error) {
	rows, err := r.db.QueryContext(ctx, flightBookingSelect+" WHERE user_id = ? ORDER BY id", userID)
	if err != nil {
		return nil, fmt.Errorf("list flight bookings: %w", err)
	}
	defer rows.Close()

	out := []*domain.FlightBooking{}
	for rows.Next() {
		b, err := scanFlightBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan flight booking: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BookingRepository) queryAccBookings(ctx context.Context, query string, args ...any) ([]*domain.AccommodationBooking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list accommodation bookings: %w", err)
	}
	defer rows.Close()

	out := []*domain.AccommodationBooking{}
	for rows.Next() {
		b, err := scanAccBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan accommodation booking: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

var (
	_ ports.UserRepository          = (*UserRepository)(nil)
	_ ports.AccommodationRepository = (*AccommodationRepository)(nil)
	_ ports.FlightRepository        = (*FlightRepository)(nil)
	_ ports.BookingRepository       = (*BookingRepository)(nil)
)
