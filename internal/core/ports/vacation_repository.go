package ports

import (
	"context"
	"time"

	"github.com/holidaydesk/vacation-system/internal/core/domain"
)

// VacationRepository defines persistence operations for vacation requests.
type VacationRepository interface {
	// Create persists a new request and assigns its ID.
	Create(ctx context.Context, v *domain.VacationRequest) error

	// FindByID retrieves a request by id, or domain.ErrRequestNotFound.
	FindByID(ctx context.Context, id string) (*domain.VacationRequest, error)

	// UpdateStatus applies the pending -> status transition as a conditional
	// write: it only matches a document whose status is still pending, so a
	// terminal transition is applied at most once per request id even under
	// concurrent approve/reject calls. Returns the updated request,
	// domain.ErrRequestNotFound when the id is unknown, or
	// domain.ErrInvalidTransition when the request was already decided.
	UpdateStatus(ctx context.Context, id string, status domain.RequestStatus, decidedBy, reason string, decidedAt time.Time) (*domain.VacationRequest, error)

	// ListPending returns all pending requests, oldest first.
	ListPending(ctx context.Context) ([]*domain.VacationRequest, error)

	// ListByRequester returns all requests created by userID, newest first.
	ListByRequester(ctx context.Context, userID string) ([]*domain.VacationRequest, error)
}
