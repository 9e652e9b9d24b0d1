package domain

import (
	"errors"
	"time"
)

// RequestStatus represents the lifecycle state of a vacation request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// validTransitions defines the allowed state machine transitions.
// Approved and rejected are terminal: no key, no way out.
var validTransitions = map[RequestStatus][]RequestStatus{
	StatusPending: {StatusApproved, StatusRejected},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrInvalidDateRange = errors.New("invalid date range")
var ErrRequestNotFound = errors.New("vacation request not found")
var ErrEmptyReason = errors.New("rejection reason is required")
var ErrForbidden = errors.New("access forbidden")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// VacationRequest is the core aggregate root. Dates are inclusive calendar
// days; times of day are normalised away at construction.
type VacationRequest struct {
	ID              string        `json:"id" bson:"_id,omitempty"`
	RequesterID     string        `json:"requester_id" bson:"requester_id"`
	StartDate       time.Time     `json:"start_date" bson:"start_date"`
	EndDate         time.Time     `json:"end_date" bson:"end_date"`
	Status          RequestStatus `json:"status" bson:"status"`
	RejectionReason string        `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
	DecidedBy       string        `json:"decided_by,omitempty" bson:"decided_by,omitempty"`
	CreatedAt       time.Time     `json:"created_at" bson:"created_at"`
	DecidedAt       time.Time     `json:"decided_at,omitempty" bson:"decided_at,omitempty"`
}

// NewVacationRequest validates the date range and returns a pending request.
// Rules: both dates set, start <= end, and start not before today (requests
// cannot be retroactive). "Today" is derived from now in UTC.
func NewVacationRequest(requesterID string, startDate, endDate, now time.Time) (*VacationRequest, error) {
	if startDate.IsZero() || endDate.IsZero() {
		return nil, ErrInvalidDateRange
	}

	start := truncateToDay(startDate)
	end := truncateToDay(endDate)
	today := truncateToDay(now)

	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}
	if start.Before(today) {
		return nil, ErrInvalidDateRange
	}

	return &VacationRequest{
		RequesterID: requesterID,
		StartDate:   start,
		EndDate:     end,
		Status:      StatusPending,
		CreatedAt:   now.UTC(),
	}, nil
}

// Days returns the number of calendar days covered by the request, inclusive.
func (v *VacationRequest) Days() int {
	return int(v.EndDate.Sub(v.StartDate).Hours()/24) + 1
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
