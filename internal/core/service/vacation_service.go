package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/holidaydesk/vacation-system/internal/core/domain"
	"github.com/holidaydesk/vacation-system/internal/core/ports"
)

type VacationService struct {
	repo   ports.VacationRepository
	audit  ports.AuditTrail
	logger zerolog.Logger
	now    func() time.Time
}

func NewVacationService(repo ports.VacationRepository, audit ports.AuditTrail, logger zerolog.Logger) *VacationService {
	return &VacationService{
		repo:   repo,
		audit:  audit,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the time source. Intended for tests.
func (s *VacationService) WithClock(now func() time.Time) *VacationService {
	s.now = now
	return s
}

// Request creates a new vacation request in pending state on behalf of the
// acting collaborator.
func (s *VacationService) Request(ctx context.Context, input ports.RequestVacationInput) (*ports.VacationResult, error) {
	if !domain.CanPerform(input.Actor.Role, domain.ActionRequestVacation) {
		return nil, domain.ErrForbidden
	}
	if input.Actor.UserID == "" {
		return nil, domain.ErrInvalidCredentials
	}

	request, err := domain.NewVacationRequest(input.Actor.UserID, input.StartDate, input.EndDate, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, request); err != nil {
		s.logger.Error().Err(err).Str("requester_id", input.Actor.UserID).Msg("failed to create vacation request")
		return nil, err
	}

	s.audit.Record(domain.DecisionEvent{
		RequestID: request.ID,
		Status:    request.Status,
		ActorID:   input.Actor.UserID,
		Timestamp: request.CreatedAt,
	})

	s.logger.Info().
		Str("request_id", request.ID).
		Str("requester_id", request.RequesterID).
		Int("days", request.Days()).
		Msg("vacation request created")

	return toResult(request), nil
}

// Approve transitions a pending request to approved and stamps the deciding
// manager. Already-decided requests fail with ErrInvalidTransition.
func (s *VacationService) Approve(ctx context.Context, input ports.DecisionInput) (*ports.VacationResult, error) {
	if !domain.CanPerform(input.Actor.Role, domain.ActionApproveVacation) {
		return nil, domain.ErrForbidden
	}
	return s.decide(ctx, input, domain.StatusApproved, "")
}

// Reject transitions a pending request to rejected, stamping the deciding
// manager and the mandatory reason.
func (s *VacationService) Reject(ctx context.Context, input ports.DecisionInput) (*ports.VacationResult, error) {
	if !domain.CanPerform(input.Actor.Role, domain.ActionRejectVacation) {
		return nil, domain.ErrForbidden
	}
	if input.Reason == "" {
		return nil, domain.ErrEmptyReason
	}
	return s.decide(ctx, input, domain.StatusRejected, input.Reason)
}

// decide loads the request, validates the transition against the state
// machine, then applies it through the repository's conditional write. The
// pre-check gives precise errors; the conditional write closes the race
// between two concurrent decisions on the same request.
func (s *VacationService) decide(ctx context.Context, input ports.DecisionInput, status domain.RequestStatus, reason string) (*ports.VacationResult, error) {
	current, err := s.repo.FindByID(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransitionTo(status) {
		return nil, domain.ErrInvalidTransition
	}

	decidedAt := s.now().UTC()
	updated, err := s.repo.UpdateStatus(ctx, input.RequestID, status, input.Actor.UserID, reason, decidedAt)
	if err != nil {
		s.logger.Error().Err(err).
			Str("request_id", input.RequestID).
			Str("status", string(status)).
			Msg("failed to update request status")
		return nil, err
	}

	s.audit.Record(domain.DecisionEvent{
		RequestID: updated.ID,
		Status:    updated.Status,
		ActorID:   input.Actor.UserID,
		Reason:    reason,
		Timestamp: decidedAt,
	})

	s.logger.Info().
		Str("request_id", updated.ID).
		Str("status", string(updated.Status)).
		Str("decided_by", input.Actor.UserID).
		Msg("vacation request decided")

	return toResult(updated), nil
}

// ListPending returns the queue of undecided requests for managers.
func (s *VacationService) ListPending(ctx context.Context, actor ports.Actor) ([]ports.VacationResult, error) {
	if !domain.CanPerform(actor.Role, domain.ActionViewPendingQueue) {
		return nil, domain.ErrForbidden
	}

	requests, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	return toResults(requests), nil
}

// ListHistory returns all requests created by the acting user.
func (s *VacationService) ListHistory(ctx context.Context, actor ports.Actor) ([]ports.VacationResult, error) {
	if !domain.CanPerform(actor.Role, domain.ActionViewOwnHistory) {
		return nil, domain.ErrForbidden
	}

	requests, err := s.repo.ListByRequester(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return toResults(requests), nil
}

func toResult(v *domain.VacationRequest) *ports.VacationResult {
	return &ports.VacationResult{
		ID:              v.ID,
		RequesterID:     v.RequesterID,
		StartDate:       v.StartDate,
		EndDate:         v.EndDate,
		Status:          string(v.Status),
		RejectionReason: v.RejectionReason,
		DecidedBy:       v.DecidedBy,
		CreatedAt:       v.CreatedAt,
		DecidedAt:       v.DecidedAt,
	}
}

func toResults(requests []*domain.VacationRequest) []ports.VacationResult {
	results := make([]ports.VacationResult, 0, len(requests))
	for _, v := range requests {
		results = append(results, *toResult(v))
	}
	return results
}
