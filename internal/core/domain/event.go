package domain

import "time"

const (
	EventAccommodationBooked = "accommodation.booked"
	EventFlightBooked        = "flight.booked"
)

// BookingEvent is emitted after a booking is persisted and fanned out to the
// audit log and the message broker.
type BookingEvent struct {
	ID         string    `json:"id" bson:"event_id"`
	Kind       string    `json:"kind" bson:"kind"`
	BookingID  int64     `json:"booking_id" bson:"booking_id"`
	UserID     int64     `json:"user_id" bson:"user_id"`
	UserEmail  string    `json:"user_email" bson:"user_email"`
	ResourceID int64     `json:"resource_id" bson:"resource_id"`
	StartDate  string    `json:"start_date" bson:"start_date"`
	EndDate    string    `json:"end_date,omitempty" bson:"end_date,omitempty"`
	OccurredAt time.Time `json:"occurred_at" bson:"occurred_at"`
}
