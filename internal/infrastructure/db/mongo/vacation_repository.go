package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/holidaydesk/vacation-system/internal/core/domain"
)

const vacationCollection = "vacation_requests"

type MongoVacationRepository struct {
	coll *mongo.Collection
}

func NewVacationRepository(db *mongo.Database) *MongoVacationRepository {
	return &MongoVacationRepository{coll: db.Collection(vacationCollection)}
}

type vacationDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	RequesterID     string             `bson:"requester_id"`
	StartDate       time.Time          `bson:"start_date"`
	EndDate         time.Time          `bson:"end_date"`
	Status          string             `bson:"status"`
	RejectionReason string             `bson:"rejection_reason,omitempty"`
	DecidedBy       string             `bson:"decided_by,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"`
	DecidedAt       time.Time          `bson:"decided_at,omitempty"`
}

func (r *MongoVacationRepository) Create(ctx context.Context, v *domain.VacationRequest) error {
	doc := vacationDoc{
		ID:          primitive.NewObjectID(),
		RequesterID: v.RequesterID,
		StartDate:   v.StartDate,
		EndDate:     v.EndDate,
		Status:      string(v.Status),
		CreatedAt:   v.CreatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert vacation request: %w", err)
	}

	v.ID = doc.ID.Hex()
	return nil
}

func (r *MongoVacationRepository) FindByID(ctx context.Context, id string) (*domain.VacationRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRequestNotFound
	}

	var doc vacationDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find vacation request: %w", err)
	}

	return toDomain(&doc), nil
}

// UpdateStatus performs the pending -> terminal transition as a conditional
// write: the filter matches on status=pending, so once a request is decided
// no concurrent call can decide it again.
func (r *MongoVacationRepository) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus, decidedBy, reason string, decidedAt time.Time) (*domain.VacationRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRequestNotFound
	}

	set := bson.M{
		"status":     string(status),
		"decided_by": decidedBy,
		"decided_at": decidedAt,
	}
	if reason != "" {
		set["rejection_reason"] = reason
	}

	var doc vacationDoc
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid, "status": string(domain.StatusPending)},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			return nil, fmt.Errorf("update vacation status: %w", err)
		}
		// No pending document matched: either the id is unknown or the
		// request was already decided.
		if _, findErr := r.FindByID(ctx, id); findErr != nil {
			return nil, findErr
		}
		return nil, domain.ErrInvalidTransition
	}

	return toDomain(&doc), nil
}

func (r *MongoVacationRepository) ListPending(ctx context.Context) ([]*domain.VacationRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return r.list(ctx, bson.M{"status": string(domain.StatusPending)}, opts)
}

func (r *MongoVacationRepository) ListByRequester(ctx context.Context, userID string) ([]*domain.VacationRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.list(ctx, bson.M{"requester_id": userID}, opts)
}

func (r *MongoVacationRepository) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.VacationRequest, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list vacation requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []*domain.VacationRequest
	for cursor.Next(ctx) {
		var doc vacationDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode vacation request: %w", err)
		}
		requests = append(requests, toDomain(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list vacation requests: %w", err)
	}
	return requests, nil
}

func toDomain(doc *vacationDoc) *domain.VacationRequest {
	return &domain.VacationRequest{
		ID:              doc.ID.Hex(),
		RequesterID:     doc.RequesterID,
		StartDate:       doc.StartDate.UTC(),
		EndDate:         doc.EndDate.UTC(),
		Status:          domain.RequestStatus(doc.Status),
		RejectionReason: doc.RejectionReason,
		DecidedBy:       doc.DecidedBy,
		CreatedAt:       doc.CreatedAt.UTC(),
		DecidedAt:       doc.DecidedAt.UTC(),
	}
}
