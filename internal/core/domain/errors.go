package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenRejected      = errors.New("could not validate credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidInput       = errors.New("invalid input")

	ErrUserNotFound          = errors.New("user not found")
	ErrUserExists            = errors.New("email already registered")
	ErrAccommodationNotFound = errors.New("accommodation not found")
	ErrFlightNotFound        = errors.New("flight not found")
	ErrBookingNotFound       = errors.New("booking not found")
	ErrBookingInProgress     = errors.New("booking with this idempotency key is in progress")
)
