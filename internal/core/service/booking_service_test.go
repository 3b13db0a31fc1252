package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/seon98/Trip-Backend/internal/core/domain"
	"github.com/seon98/Trip-Backend/internal/core/ports"
)

type bookingFixture struct {
	svc      *BookingService
	bookings *stubBookingRepo
	idem     *stubIdem
	sink     *stubSink
	accID    int64
	flightID int64
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	ctx := context.Background()

	accRepo := newStubAccommodationRepo()
	acc, _ := accRepo.Create(ctx, &domain.Accommodation{Name: "Hanok", Location: "Seoul", OwnerID: owner.ID})
	flightRepo := newStubFlightRepo()
	fl, _ := flightRepo.Create(ctx, &domain.Flight{DepartureAirport: "ICN", ArrivalAirport: "NRT"})

	f := &bookingFixture{
		bookings: newStubBookingRepo(),
		idem:     newStubIdem(),
		sink:     &stubSink{},
		accID:    acc.ID,
		flightID: fl.ID,
	}
	f.svc = NewBookingService(f.bookings, accRepo, flightRepo, f.idem, f.sink, discardLogger)
	return f
}

func day(s string) domain.Date {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestBookingService_BookAccommodation(t *testing.T) {
	f := newBookingFixture(t)

	b, err := f.svc.BookAccommodation(context.Background(), stranger, ports.AccommodationBookingInput{
		AccommodationID: f.accID,
		StartDate:       day("2026-12-01"),
		EndDate:         day("2026-12-03"),
	})
	if err != nil {
		t.Fatalf("BookAccommodation: %v", err)
	}
	if b.Status != domain.BookingStatusPending || b.UserID != stranger.ID {
		t.Errorf("unexpected booking %+v", b)
	}

	if len(f.sink.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(f.sink.events))
	}
	ev := f.sink.events[0]
	if ev.Kind != domain.EventAccommodationBooked || ev.BookingID != b.ID || ev.UserEmail != stranger.Email {
		t.Errorf("unexpected event %+v", ev)
	}
	if ev.ID == "" {
		t.Error("expected the event to carry an id")
	}
	if ev.StartDate != "2026-12-01" || ev.EndDate != "2026-12-03" {
		t.Errorf("unexpected event dates %q..%q", ev.StartDate, ev.EndDate)
	}
}

func TestBookingService_BookAccommodationRejects(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		caller  *domain.User
		in      ports.AccommodationBookingInput
		wantErr error
	}{
		{
			"anonymous", nil,
			ports.AccommodationBookingInput{AccommodationID: f.accID, StartDate: day("2026-12-01"), EndDate: day("2026-12-02")},
			domain.ErrUnauthenticated,
		},
		{
			"end before start", stranger,
			ports.AccommodationBookingInput{AccommodationID: f.accID, StartDate: day("2026-12-05"), EndDate: day("2026-12-01")},
			domain.ErrInvalidInput,
		},
		{
			"same day", stranger,
			ports.AccommodationBookingInput{AccommodationID: f.accID, StartDate: day("2026-12-05"), EndDate: day("2026-12-05")},
			domain.ErrInvalidInput,
		},
		{
			"unknown accommodation", stranger,
			ports.AccommodationBookingInput{AccommodationID: 404, StartDate: day("2026-12-01"), EndDate: day("2026-12-02")},
			domain.ErrAccommodationNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.svc.BookAccommodation(ctx, tt.caller, tt.in); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
	if len(f.sink.events) != 0 {
		t.Errorf("rejected bookings must not emit events, got %d", len(f.sink.events))
	}
}

func TestBookingService_IdempotentReplay(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	in := ports.AccommodationBookingInput{
		AccommodationID: f.accID,
		StartDate:       day("2026-12-01"),
		EndDate:         day("2026-12-02"),
		IdempotencyKey:  "req-1",
	}

	first, err := f.svc.BookAccommodation(ctx, stranger, in)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := f.svc.BookAccommodation(ctx, stranger, in)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected replay of booking %d, got %d", first.ID, second.ID)
	}
	if len(f.bookings.acc) != 1 {
		t.Errorf("expected a single stored booking, got %d", len(f.bookings.acc))
	}
	if len(f.sink.events) != 1 {
		t.Errorf("replay must not emit a second event, got %d", len(f.sink.events))
	}

	// Same header from another user is a different key.
	other, err := f.svc.BookAccommodation(ctx, owner, in)
	if err != nil {
		t.Fatalf("other user: %v", err)
	}
	if other.ID == first.ID {
		t.Error("keys must be scoped per user")
	}
}

func TestBookingService_IdempotencyErrors(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	in := ports.FlightBookingInput{FlightID: f.flightID, BookingDate: day("2026-12-24"), IdempotencyKey: "k"}

	f.idem.claimErr = domain.ErrBookingInProgress
	if _, err := f.svc.BookFlight(ctx, stranger, in); !errors.Is(err, domain.ErrBookingInProgress) {
		t.Fatalf("expected ErrBookingInProgress, got %v", err)
	}

	f.idem.claimErr = nil
	f.bookings.createErr = errors.New("disk full")
	if _, err := f.svc.BookFlight(ctx, stranger, in); err == nil {
		t.Fatal("expected create error")
	}
	if len(f.idem.released) != 1 || f.idem.released[0] != "flight.booked:2:k" {
		t.Errorf("expected claimed key to be released, got %v", f.idem.released)
	}
}

func TestBookingService_BookFlightAndMyBookings(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	if _, err := f.svc.BookFlight(ctx, stranger, ports.FlightBookingInput{FlightID: 999, BookingDate: day("2026-12-24")}); !errors.Is(err, domain.ErrFlightNotFound) {
		t.Fatalf("expected ErrFlightNotFound, got %v", err)
	}

	fb, err := f.svc.BookFlight(ctx, stranger, ports.FlightBookingInput{FlightID: f.flightID, BookingDate: day("2026-12-24")})
	if err != nil {
		t.Fatalf("BookFlight: %v", err)
	}
	if fb.BookingDate.String() != "2026-12-24" {
		t.Errorf("unexpected booking date %s", fb.BookingDate)
	}
	if _, err := f.svc.BookAccommodation(ctx, stranger, ports.AccommodationBookingInput{
		AccommodationID: f.accID, StartDate: day("2026-12-24"), EndDate: day("2026-12-26"),
	}); err != nil {
		t.Fatalf("BookAccommodation: %v", err)
	}
	if _, err := f.svc.BookFlight(ctx, owner, ports.FlightBookingInput{FlightID: f.flightID, BookingDate: day("2026-12-25")}); err != nil {
		t.Fatalf("BookFlight owner: %v", err)
	}

	mine, err := f.svc.MyBookings(ctx, stranger)
	if err != nil {
		t.Fatalf("MyBookings: %v", err)
	}
	if len(mine.Accommodations) != 1 || len(mine.Flights) != 1 {
		t.Errorf("expected 1+1 bookings, got %d+%d", len(mine.Accommodations), len(mine.Flights))
	}

	if _, err := f.svc.MyBookings(ctx, nil); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}

	if _, err := f.svc.ListAccommodationBookings(ctx, ports.Page{Limit: 1000}); err != nil {
		t.Fatalf("ListAccommodationBookings: %v", err)
	}
	if f.bookings.lastPage.Limit != 100 {
		t.Errorf("expected limit capped at 100, got %d", f.bookings.lastPage.Limit)
	}
}

func TestBookingService_OptionalCollaborators(t *testing.T) {
	ctx := context.Background()
	accRepo := newStubAccommodationRepo()
	acc, _ := accRepo.Create(ctx, &domain.Accommodation{Name: "Hanok", Location: "Seoul"})
	svc := NewBookingService(newStubBookingRepo(), accRepo, newStubFlightRepo(), nil, nil, discardLogger)

	_, err := svc.BookAccommodation(ctx, stranger, ports.AccommodationBookingInput{
		AccommodationID: acc.ID,
		StartDate:       domain.NewDate(time.Date(2026, 12, 1, 15, 0, 0, 0, time.UTC)),
		EndDate:         domain.NewDate(time.Date(2026, 12, 2, 9, 0, 0, 0, time.UTC)),
		IdempotencyKey:  "ignored without a store",
	})
	if err != nil {
		t.Fatalf("BookAccommodation without idempotency or sink: %v", err)
	}
}
