package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/seon98/Trip-Backend/internal/api/metrics"
	"github.com/seon98/Trip-Backend/internal/core/domain"
	"github.com/seon98/Trip-Backend/internal/core/ports"
)

type bookingEventProcessor struct {
	publisher ports.EventPublisher  // optional
	audit     ports.AuditRepository // optional
	log       zerolog.Logger
}

// NewBookingEventProcessor returns an EventProcessor that publishes booking
// events to the broker and records them in the audit trail. Either
// collaborator may be nil, in which case that step is skipped.
func NewBookingEventProcessor(
	publisher ports.EventPublisher,
	audit ports.AuditRepository,
	log zerolog.Logger,
) ports.EventProcessor {
	return &bookingEventProcessor{
		publisher: publisher,
		audit:     audit,
		log:       log,
	}
}

// Process publishes the event and writes the audit record. The audit insert
// runs even when publishing fails; a publish failure is then returned so the
// dispatcher can log it. Audit failures are logged here and swallowed.
func (p *bookingEventProcessor) Process(ctx context.Context, ev domain.BookingEvent) error {
	start := time.Now()

	var publishErr error
	if p.publisher != nil {
		if err := p.publisher.Publish(ctx, &ev); err != nil {
			metrics.EventsErrorsTotal.WithLabelValues("publish_failed").Inc()
			publishErr = fmt.Errorf("process event: publish: %w", err)
		}
	}

	if p.audit != nil {
		if err := p.audit.InsertEvent(ctx, &ev); err != nil {
			metrics.EventsErrorsTotal.WithLabelValues("audit_failed").Inc()
			p.log.Warn().Err(err).Int64("booking_id", ev.BookingID).Msg("failed to insert audit event")
		}
	}

	if publishErr != nil {
		metrics.EventProcessingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return publishErr
	}

	metrics.EventsProcessedTotal.WithLabelValues(ev.Kind).Inc()
	metrics.EventProcessingDuration.WithLabelValues(ev.Kind).Observe(time.Since(start).Seconds())

	p.log.Info().
		Str("kind", ev.Kind).
		Int64("booking_id", ev.BookingID).
		Int64("user_id", ev.UserID).
		Msg("event processed")

	return nil
}
