package ports

import (
	"context"
	"time"

	"github.com/holidaydesk/vacation-system/internal/core/domain"
)

// Actor identifies the authenticated caller of a use case.
type Actor struct {
	UserID string
	Role   string
}

// RequestVacationInput carries all data needed to create a vacation request.
type RequestVacationInput struct {
	Actor     Actor
	StartDate time.Time
	EndDate   time.Time
}

// DecisionInput carries the parameters for approving or rejecting a request.
type DecisionInput struct {
	Actor     Actor
	RequestID string
	Reason    string // required for rejections, ignored for approvals
}

// VacationResult is the view of a request returned by the use cases.
type VacationResult struct {
	ID              string
	RequesterID     string
	StartDate       time.Time
	EndDate         time.Time
	Status          string
	RejectionReason string
	DecidedBy       string
	CreatedAt       time.Time
	DecidedAt       time.Time
}

// VacationService defines the vacation request use cases.
type VacationService interface {
	Request(ctx context.Context, input RequestVacationInput) (*VacationResult, error)
	Approve(ctx context.Context, input DecisionInput) (*VacationResult, error)
	Reject(ctx context.Context, input DecisionInput) (*VacationResult, error)
	ListPending(ctx context.Context, actor Actor) ([]VacationResult, error)
	ListHistory(ctx context.Context, actor Actor) ([]VacationResult, error)
}

// AuditTrail records lifecycle changes asynchronously. Implementations must
// not block the calling use case.
type AuditTrail interface {
	Record(event domain.DecisionEvent)
}
