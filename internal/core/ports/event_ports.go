package ports

import (
	"context"

	"github.com/seon98/Trip-Backend/internal/core/domain"
)

// AuditRepository appends booking events to the audit trail.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.BookingEvent) error
}

// EventPublisher hands booking events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, event *domain.BookingEvent) error
}

// EventProcessor handles one booking event end to end.
type EventProcessor interface {
	Process(ctx context.Context, event domain.BookingEvent) error
}

// EventSink accepts booking events for asynchronous processing.
type EventSink interface {
	Enqueue(event domain.BookingEvent)
}
