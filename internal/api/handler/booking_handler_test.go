package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/seon98/Trip-Backend/internal/api/middleware"
	"github.com/seon98/Trip-Backend/internal/core/domain"
	"github.com/seon98/Trip-Backend/internal/core/ports"
)

func TestBookingHandler_BookAccommodation(t *testing.T) {
	e := newEcho()
	stub := &stubBookingService{}
	h := NewBookingHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"start_date":"2026-07-01","end_date":"2026-07-04"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Idempotency-Key", "abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("12")
	middleware.SetCurrentUser(c, &domain.User{ID: 2})

	if err := h.BookAccommodation(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	in := stub.lastAccommodation
	if in.AccommodationID != 12 || in.IdempotencyKey != "abc" {
		t.Fatalf("unexpected input: %+v", in)
	}
	if in.StartDate.String() != "2026-07-01" || in.EndDate.String() != "2026-07-04" {
		t.Fatalf("unexpected dates: %s %s", in.StartDate, in.EndDate)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["start_date"] != "2026-07-01" || resp["status"] != "pending" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestBookingHandler_BookAccommodation_BadDate(t *testing.T) {
	e := newEcho()
	h := NewBookingHandler(&stubBookingService{})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"start_date":"01/07/2026","end_date":"2026-07-04"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("12")
	middleware.SetCurrentUser(c, &domain.User{ID: 2})

	err := h.BookAccommodation(c)
	if code := httpCode(t, err); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if !strings.Contains(err.Error(), "start_date") {
		t.Fatalf("message should name the field: %v", err)
	}
}

func TestBookingHandler_BookFlight(t *testing.T) {
	e := newEcho()
	stub := &stubBookingService{}
	h := NewBookingHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"booking_date":"2026-08-15"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("4")
	middleware.SetCurrentUser(c, &domain.User{ID: 2})

	if err := h.BookFlight(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.lastFlight.FlightID != 4 || stub.lastFlight.BookingDate.String() != "2026-08-15" {
		t.Fatalf("unexpected input: %+v", stub.lastFlight)
	}
	if stub.lastFlight.IdempotencyKey != "" {
		t.Fatalf("expected no idempotency key, got %q", stub.lastFlight.IdempotencyKey)
	}
}

func TestBookingHandler_MyBookings_EmptyArrays(t *testing.T) {
	e := newEcho()
	stub := &stubBookingService{mine: &ports.MyBookings{
		Accommodations: []*domain.AccommodationBooking{},
		Flights:        []*domain.FlightBooking{},
	}}
	h := NewBookingHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	middleware.SetCurrentUser(c, &domain.User{ID: 2})

	if err := h.MyBookings(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"accommodations":[],"flights":[]}` {
		t.Fatalf("unexpected body: %s", got)
	}
}
