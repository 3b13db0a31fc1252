package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/seon98/Trip-Backend/internal/core/domain"
	"github.com/seon98/Trip-Backend/internal/core/ports"
)

type AccommodationRepository struct {
	db *sql.DB
}

func NewAccommodationRepository(db *sql.DB) *AccommodationRepository {
	return &AccommodationRepository{db: db}
}

// accommodationSelect joins the owner so every listing carries its summary.
const accommodationSelect = `SELECT a.id, a.name, a.location, a.price, a.description, a.owner_id, u.email
	FROM accommodations a JOIN users u ON u.id = a.owner_id`

func scanAccommodation(row interface{ Scan(...any) error }) (*domain.Accommodation, error) {
	var (
		a    domain.Accommodation
		desc sql.NullString
	)
	if err := row.Scan(&a.ID, &a.Name, &a.Location, &a.Price, &desc, &a.OwnerID, &a.Owner.Email); err != nil {
		return nil, err
	}
	if desc.Valid {
		a.Description = &desc.String
	}
	a.Owner.ID = a.OwnerID
	return &a, nil
}

func (r *AccommodationRepository) Create(ctx context.Context, a *domain.Accommodation) (*domain.Accommodation, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO accommodations (name, location, price, description, owner_id) VALUES (?, ?, ?, ?, ?)",
		a.Name, a.Location, a.Price, a.Description, a.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("insert accommodation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert accommodation: %w", err)
	}
	return r.Get(ctx, id)
}

func (r *AccommodationRepository) Get(ctx context.Context, id int64) (*domain.Accommodation, error) {
	a, err := scanAccommodation(r.db.QueryRowContext(ctx, accommodationSelect+" WHERE a.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAccommodationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get accommodation: %w", err)
	}
	return a, nil
}

func (r *AccommodationRepository) List(ctx context.Context, f ports.AccommodationFilter) ([]*domain.Accommodation, error) {
	query := accommodationSelect
	args := []any{}
	if f.Location != "" {
		query += " WHERE a.location LIKE ? ESCAPE '!'"
		args = append(args, containsPattern(f.Location))
	}
	query += " ORDER BY a.id LIMIT ? OFFSET ?"
	args = append(args, f.Page.Limit, f.Page.Skip)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list accommodations: %w", err)
	}
	defer rows.Close()

	out := []*domain.Accommodation{}
	for rows.Next() {
		a, err := scanAccommodation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan accommodation: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern builds a LIKE pattern matching s as a literal substring.
// It pairs with ESCAPE '!'.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func (r *AccommodationRepository) Update(ctx context.Context, a *domain.Accommodation) (*domain.Accommodation, error) {
	// MySQL reports 0 affected rows when nothing changed, so existence is
	// confirmed by reading the row back.
	if _, err := r.db.ExecContext(ctx,
		"UPDATE accommodations SET name = ?, location = ?, price = ?, description = ? WHERE id = ?",
		a.Name, a.Location, a.Price, a.Description, a.ID); err != nil {
		return nil, fmt.Errorf("update accommodation: %w", err)
	}
	return r.Get(ctx, a.ID)
}

func (r *AccommodationRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM accommodations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete accommodation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete accommodation: %w", err)
	}
	if n == 0 {
		return domain.ErrAccommodationNotFound
	}
	return nil
}

type FlightRepository struct {
	db *sql.DB
}

func NewFlightRepository(db *sql.DB) *FlightRepository {
	return &FlightRepository{db: db}
}

const flightSelect = "SELECT id, departure_airport, arrival_airport, departure_time, arrival_time, price FROM flights"

func scanFlight(row interface{ Scan(...any) error }) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.DepartureAirport, &f.ArrivalAirport, &f.DepartureTime, &f.ArrivalTime, &f.Price); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FlightRepository) Create(ctx context.Context, f *domain.Flight) (*domain.Flight, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO flights (departure_airport, arrival_airport, departure_time, arrival_time, price) VALUES (?, ?, ?, ?, ?)",
		f.DepartureAirport, f.ArrivalAirport, f.DepartureTime, f.ArrivalTime, f.Price)
	if err != nil {
		return nil, fmt.Errorf("insert flight: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert flight: %w", err)
	}
	created := *f
	created.ID = id
	return &created, nil
}

func (r *FlightRepository) Get(ctx context.Context, id int64) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRowContext(ctx, flightSelect+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrFlightNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get flight: %w", err)
	}
	return f, nil
}

func (r *FlightRepository) List(ctx context.Context, page ports.Page) ([]*domain.Flight, error) {
	rows, err := r.db.QueryContext(ctx, flightSelect+" ORDER BY id LIMIT ? OFFSET ?", page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("list flights: %w", err)
	}
	defer rows.Close()

	out := []*domain.Flight{}
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, fmt.Errorf("scan flight: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
