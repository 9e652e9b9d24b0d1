package handler

import (
	"github.com/holidaydesk/vacation-system/internal/core/ports"
)

// --- Service result → HTTP response ---

func toVacationResponse(r *ports.VacationResult) vacationResponse {
	resp := vacationResponse{
		ID:          r.ID,
		RequesterID: r.RequesterID,
		StartDate:   r.StartDate.Format(dateLayout),
		EndDate:     r.EndDate.Format(dateLayout),
		Status:      r.Status,
		CreatedAt:   r.CreatedAt.UTC(),
		Links:       vacationLinks{Self: "/v1/vacations/" + r.ID},
	}
	if !r.DecidedAt.IsZero() {
		decidedAt := r.DecidedAt.UTC()
		resp.DecidedAt = &decidedAt
		resp.DecidedBy = r.DecidedBy
		resp.RejectionReason = r.RejectionReason
	}
	return resp
}

func toListResponse(results []ports.VacationResult) listVacationsResponse {
	data := make([]vacationResponse, 0, len(results))
	for i := range results {
		data = append(data, toVacationResponse(&results[i]))
	}
	return listVacationsResponse{Data: data, Total: len(data)}
}
