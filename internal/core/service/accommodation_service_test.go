package service

import (
	"context"
	"errors"
	"testing"

	"github.com/seon98/Trip-Backend/internal/core/domain"
	"github.com/seon98/Trip-Backend/internal/core/ports"
)

var (
	owner    = &domain.User{ID: 1, Email: "owner@example.com", Role: domain.RoleUser}
	stranger = &domain.User{ID: 2, Email: "stranger@example.com", Role: domain.RoleUser}
	admin    = &domain.User{ID: 3, Email: "admin@example.com", Role: domain.RoleAdmin}
)

func seaView() domain.AccommodationFields {
	desc := "two rooms"
	return domain.AccommodationFields{Name: "Sea View", Location: "Busan", Price: 120, Description: &desc}
}

func TestAccommodationService_Create(t *testing.T) {
	repo := newStubAccommodationRepo()
	svc := NewAccommodationService(repo, discardLogger)

	a, err := svc.Create(context.Background(), owner, seaView())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.ID == 0 {
		t.Error("expected an assigned id")
	}
	if a.OwnerID != owner.ID || a.Owner.Email != owner.Email {
		t.Errorf("expected owner %d, got %+v", owner.ID, a.Owner)
	}
}

func TestAccommodationService_CreateValidation(t *testing.T) {
	svc := NewAccommodationService(newStubAccommodationRepo(), discardLogger)
	ctx := context.Background()

	if _, err := svc.Create(ctx, nil, seaView()); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("nil caller: expected ErrUnauthenticated, got %v", err)
	}

	bad := []domain.AccommodationFields{
		{Name: "", Location: "Busan", Price: 1},
		{Name: "x", Location: "  ", Price: 1},
		{Name: "x", Location: "Busan", Price: -1},
	}
	for _, in := range bad {
		if _, err := svc.Create(ctx, owner, in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("Create(%+v): expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestAccommodationService_UpdateOwnership(t *testing.T) {
	repo := newStubAccommodationRepo()
	svc := NewAccommodationService(repo, discardLogger)
	ctx := context.Background()

	a, _ := svc.Create(ctx, owner, seaView())
	changed := seaView()
	changed.Price = 200

	tests := []struct {
		name    string
		caller  *domain.User
		id      int64
		wantErr error
	}{
		{"stranger is forbidden", stranger, a.ID, domain.ErrForbidden},
		{"admin is not an owner", admin, a.ID, domain.ErrForbidden},
		{"anonymous", nil, a.ID, domain.ErrUnauthenticated},
		{"missing id wins over ownership", stranger, 999, domain.ErrAccommodationNotFound},
		{"owner succeeds", owner, a.ID, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, err := svc.Update(ctx, tt.caller, tt.id, changed)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr == nil && updated.Price != 200 {
				t.Errorf("expected price 200, got %d", updated.Price)
			}
		})
	}

	if repo.byID[a.ID].OwnerID != owner.ID {
		t.Error("update must not change the owner")
	}
}

func TestAccommodationService_Delete(t *testing.T) {
	repo := newStubAccommodationRepo()
	svc := NewAccommodationService(repo, discardLogger)
	ctx := context.Background()

	a, _ := svc.Create(ctx, owner, seaView())

	if _, err := svc.Delete(ctx, stranger, a.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("stranger delete: expected ErrForbidden, got %v", err)
	}
	if len(repo.deleted) != 0 {
		t.Fatal("rejected delete must not touch the store")
	}

	removed, err := svc.Delete(ctx, owner, a.ID)
	if err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if removed.Name != "Sea View" {
		t.Errorf("expected the removed listing to be returned, got %+v", removed)
	}

	if _, err := svc.Delete(ctx, owner, a.ID); !errors.Is(err, domain.ErrAccommodationNotFound) {
		t.Errorf("second delete: expected ErrAccommodationNotFound, got %v", err)
	}
}

func TestAccommodationService_ListNormalizesFilter(t *testing.T) {
	repo := newStubAccommodationRepo()
	svc := NewAccommodationService(repo, discardLogger)
	ctx := context.Background()

	_, _ = svc.Create(ctx, owner, seaView())
	jeju := seaView()
	jeju.Location = "Jeju"
	_, _ = svc.Create(ctx, owner, jeju)

	got, err := svc.List(ctx, ports.AccommodationFilter{Location: " Jeju ", Page: ports.Page{Skip: -1}})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].Location != "Jeju" {
		t.Errorf("expected only the Jeju listing, got %+v", got)
	}
	if repo.lastQuery.Location != "Jeju" || repo.lastQuery.Page != (ports.Page{Skip: 0, Limit: 100}) {
		t.Errorf("unexpected normalized filter %+v", repo.lastQuery)
	}
}

func TestFlightService(t *testing.T) {
	svc := NewFlightService(newStubFlightRepo(), discardLogger)
	ctx := context.Background()

	if _, err := svc.Create(ctx, ports.FlightInput{ArrivalAirport: "CJU"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}

	f, err := svc.Create(ctx, ports.FlightInput{
		DepartureAirport: "GMP",
		ArrivalAirport:   "CJU",
		DepartureTime:    "2026-11-01T09:00:00",
		ArrivalTime:      "2026-11-01T10:10:00",
		Price:            80,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := svc.Get(ctx, f.ID)
	if err != nil || got.ArrivalAirport != "CJU" {
		t.Fatalf("Get: %+v, %v", got, err)
	}
	if _, err := svc.Get(ctx, 42); !errors.Is(err, domain.ErrFlightNotFound) {
		t.Errorf("expected ErrFlightNotFound, got %v", err)
	}
}
