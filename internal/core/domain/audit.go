package domain

import "time"

// DecisionEvent records one lifecycle change of a vacation request for the
// audit trail: creation, approval, or rejection.
type DecisionEvent struct {
	RequestID string
	Status    RequestStatus
	ActorID   string
	Reason    string // non-empty only for rejections
	Timestamp time.Time
}
