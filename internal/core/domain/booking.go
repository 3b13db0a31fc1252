package domain

import "time"

// BookingStatusPending is the status every new booking starts in.
const BookingStatusPending = "pending"

// DateLayout is the wire format for booking dates.
const DateLayout = "2006-01-02"

// Date is a calendar day that marshals as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate truncates t to its UTC calendar day.
func NewDate(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return NewDate(t), nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// AccommodationBooking reserves an accommodation for a date range.
type AccommodationBooking struct {
	ID              int64  `json:"id"`
	StartDate       Date   `json:"start_date"`
	EndDate         Date   `json:"end_date"`
	Status          string `json:"status"`
	UserID          int64  `json:"user_id"`
	AccommodationID int64  `json:"accommodation_id"`
}

// FlightBooking reserves a seat on a flight for a given day.
type FlightBooking struct {
	ID          int64  `json:"id"`
	BookingDate Date   `json:"booking_date"`
	Status      string `json:"status"`
	UserID      int64  `json:"user_id"`
	FlightID    int64  `json:"flight_id"`
}
