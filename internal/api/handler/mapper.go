package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/seon98/Trip-Backend/internal/core/domain"
	"github.com/seon98/Trip-Backend/internal/core/ports"
)

// --- Request → Service input ---

func (r accommodationRequest) toFields() domain.AccommodationFields {
	return domain.AccommodationFields{
		Name:        r.Name,
		Location:    r.Location,
		Price:       r.Price,
		Description: r.Description,
	}
}

func (r flightRequest) toInput() ports.FlightInput {
	return ports.FlightInput{
		DepartureAirport: r.DepartureAirport,
		ArrivalAirport:   r.ArrivalAirport,
		DepartureTime:    r.DepartureTime,
		ArrivalTime:      r.ArrivalTime,
		Price:            r.Price,
	}
}

// --- Domain → Response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Role: u.Role}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toAccommodationResponse(a *domain.Accommodation) accommodationResponse {
	return accommodationResponse{
		ID:          a.ID,
		Name:        a.Name,
		Location:    a.Location,
		Price:       a.Price,
		Description: a.Description,
		OwnerID:     a.OwnerID,
		Owner:       userResponse{ID: a.Owner.ID, Email: a.Owner.Email},
	}
}

func toAccommodationResponses(list []*domain.Accommodation) []accommodationResponse {
	out := make([]accommodationResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAccommodationResponse(a))
	}
	return out
}

// --- Request parsing helpers ---

// bindAndValidate binds the request body and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// pageQuery reads skip and limit query parameters. Defaults and the upper
// bound are applied by the services.
func pageQuery(c echo.Context) (ports.Page, error) {
	var p ports.Page
	if err := echo.QueryParamsBinder(c).
		Int("skip", &p.Skip).
		Int("limit", &p.Limit).
		BindError(); err != nil {
		return ports.Page{}, echo.NewHTTPError(http.StatusBadRequest, "skip and limit must be integers")
	}
	return p, nil
}
