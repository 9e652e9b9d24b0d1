package handler

import "time"

const dateLayout = "2006-01-02"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createVacationRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"required,datetime=2006-01-02"`
}

type rejectVacationRequest struct {
	Reason string `json:"reason" validate:"required,min=1"`
}

// --- Response types ---
// Response-only types owned by the transport layer. These are intentionally
// separate from ports/domain types so the JSON contract is not coupled to
// internal service changes.

type vacationLinks struct {
	Self string `json:"self"`
}

type vacationResponse struct {
	ID              string        `json:"id"`
	RequesterID     string        `json:"requester_id"`
	StartDate       string        `json:"start_date"`
	EndDate         string        `json:"end_date"`
	Status          string        `json:"status"`
	RejectionReason string        `json:"rejection_reason,omitempty"`
	DecidedBy       string        `json:"decided_by,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	DecidedAt       *time.Time    `json:"decided_at,omitempty"`
	Links           vacationLinks `json:"_links"`
}

type listVacationsResponse struct {
	Data  []vacationResponse `json:"data"`
	Total int                `json:"total"`
}
