package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/seon98/Trip-Backend/internal/core/domain"
	"github.com/seon98/Trip-Backend/internal/core/ports"
)

const auditCollection = "booking_events"

// auditDocument is a booking event as stored in the audit trail.
type auditDocument struct {
	domain.BookingEvent `bson:",inline"`
	RecordedAt          time.Time `bson:"recorded_at"`
}

// AuditRepository appends booking events to the booking_events collection.
// Inserts are keyed on the event id, so a redelivered event is stored once.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.BookingEvent) error {
	doc := auditDocument{
		BookingEvent: *event,
		RecordedAt:   time.Now().UTC(),
	}
	doc.OccurredAt = doc.OccurredAt.UTC()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		// Redelivered event ids are already recorded.
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
