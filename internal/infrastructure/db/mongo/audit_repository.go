package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/holidaydesk/vacation-system/internal/core/domain"
)

const auditCollection = "decision_events"

// MongoAuditRepository appends decision events to the audit trail. Events are
// insert-only; nothing in the system updates or deletes them.
type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	RequestID string    `bson:"request_id"`
	Status    string    `bson:"status"`
	ActorID   string    `bson:"actor_id"`
	Reason    string    `bson:"reason,omitempty"`
	Timestamp time.Time `bson:"timestamp"`
}

func (r *MongoAuditRepository) InsertEvent(ctx context.Context, event *domain.DecisionEvent) error {
	doc := auditDoc{
		RequestID: event.RequestID,
		Status:    string(event.Status),
		ActorID:   event.ActorID,
		Reason:    event.Reason,
		Timestamp: event.Timestamp,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert decision event: %w", err)
	}
	return nil
}
