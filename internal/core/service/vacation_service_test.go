package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/holidaydesk/vacation-system/internal/core/domain"
	"github.com/holidaydesk/vacation-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubVacationRepo struct {
	byID      map[string]*domain.VacationRequest
	nextID    int
	createErr error // if set, Create returns this error
}

func newStubVacationRepo() *stubVacationRepo {
	return &stubVacationRepo{byID: make(map[string]*domain.VacationRequest)}
}

func (r *stubVacationRepo) Create(_ context.Context, v *domain.VacationRequest) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	v.ID = fmt.Sprintf("req_%d", r.nextID)
	clone := *v
	r.byID[v.ID] = &clone
	return nil
}

func (r *stubVacationRepo) FindByID(_ context.Context, id string) (*domain.VacationRequest, error) {
	v, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	clone := *v
	return &clone, nil
}

// UpdateStatus mirrors the conditional write of the real Mongo repo: it only
// applies when the stored status is still pending.
func (r *stubVacationRepo) UpdateStatus(_ context.Context, id string, status domain.RequestStatus, decidedBy, reason string, decidedAt time.Time) (*domain.VacationRequest, error) {
	v, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	if v.Status != domain.StatusPending {
		return nil, domain.ErrInvalidTransition
	}
	v.Status = status
	v.DecidedBy = decidedBy
	v.RejectionReason = reason
	v.DecidedAt = decidedAt
	clone := *v
	return &clone, nil
}

func (r *stubVacationRepo) ListPending(_ context.Context) ([]*domain.VacationRequest, error) {
	var out []*domain.VacationRequest
	for _, v := range r.byID {
		if v.Status == domain.StatusPending {
			clone := *v
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubVacationRepo) ListByRequester(_ context.Context, userID string) ([]*domain.VacationRequest, error) {
	var out []*domain.VacationRequest
	for _, v := range r.byID {
		if v.RequesterID == userID {
			clone := *v
			out = append(out, &clone)
		}
	}
	return out, nil
}

// stubAudit records events synchronously so tests can assert on them.
type stubAudit struct {
	events []domain.DecisionEvent
}

func (a *stubAudit) Record(event domain.DecisionEvent) {
	a.events = append(a.events, event)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var testClock = func() time.Time {
	return time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
}

func newTestService() (*VacationService, *stubVacationRepo, *stubAudit) {
	repo := newStubVacationRepo()
	audit := &stubAudit{}
	svc := NewVacationService(repo, audit, zerolog.Nop()).WithClock(testClock)
	return svc, repo, audit
}

func mustRequest(t *testing.T, svc *VacationService, userID string, start, end time.Time) *ports.VacationResult {
	t.Helper()
	result, err := svc.Request(context.Background(), ports.RequestVacationInput{
		Actor:     ports.Actor{UserID: userID, Role: domain.RoleCollaborator},
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		t.Fatalf("Request returned error: %v", err)
	}
	return result
}

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

// ---------------------------------------------------------------------------
// Request
// ---------------------------------------------------------------------------

func TestVacationService_Request_Success(t *testing.T) {
	svc, _, audit := newTestService()

	result := mustRequest(t, svc, "ana", day(10), day(15))

	if result.Status != string(domain.StatusPending) {
		t.Fatalf("expected pending, got %s", result.Status)
	}
	if result.RequesterID != "ana" {
		t.Fatalf("expected requester ana, got %s", result.RequesterID)
	}
	if result.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if len(audit.events) != 1 || audit.events[0].Status != domain.StatusPending {
		t.Fatalf("expected one pending audit event, got %+v", audit.events)
	}
}

func TestVacationService_Request_RoundTrip(t *testing.T) {
	svc, repo, _ := newTestService()

	created := mustRequest(t, svc, "ana", day(10), day(15))

	loaded, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if !loaded.StartDate.Equal(day(10)) || !loaded.EndDate.Equal(day(15)) {
		t.Fatalf("dates did not round-trip: %v - %v", loaded.StartDate, loaded.EndDate)
	}
	if loaded.RequesterID != "ana" {
		t.Fatalf("requester did not round-trip: %s", loaded.RequesterID)
	}
}

func TestVacationService_Request_EndBeforeStart(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Request(context.Background(), ports.RequestVacationInput{
		Actor:     ports.Actor{UserID: "ana", Role: domain.RoleCollaborator},
		StartDate: day(20),
		EndDate:   day(10),
	})
	if !errors.Is(err, domain.ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestVacationService_Request_ManagerDenied(t *testing.T) {
	svc, _, _ := newTestService()

	for _, role := range []string{domain.RoleManager, domain.RoleAdmin} {
		_, err := svc.Request(context.Background(), ports.RequestVacationInput{
			Actor:     ports.Actor{UserID: "bruno", Role: role},
			StartDate: day(10),
			EndDate:   day(15),
		})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("role %s: expected ErrForbidden, got %v", role, err)
		}
	}
}

func TestVacationService_Request_RepoFailure(t *testing.T) {
	svc, repo, audit := newTestService()
	repo.createErr = errors.New("mongo down")

	_, err := svc.Request(context.Background(), ports.RequestVacationInput{
		Actor:     ports.Actor{UserID: "ana", Role: domain.RoleCollaborator},
		StartDate: day(10),
		EndDate:   day(15),
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(audit.events) != 0 {
		t.Fatalf("no audit event expected on failed create")
	}
}

// ---------------------------------------------------------------------------
// Approve / Reject
// ---------------------------------------------------------------------------

func TestVacationService_Approve_Success(t *testing.T) {
	svc, _, audit := newTestService()
	created := mustRequest(t, svc, "ana", day(10), day(15))

	result, err := svc.Approve(context.Background(), ports.DecisionInput{
		Actor:     ports.Actor{UserID: "bruno", Role: domain.RoleManager},
		RequestID: created.ID,
	})
	if err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}
	if result.Status != string(domain.StatusApproved) {
		t.Fatalf("expected approved, got %s", result.Status)
	}
	if result.DecidedBy != "bruno" {
		t.Fatalf("expected decidedBy bruno, got %s", result.DecidedBy)
	}
	if result.RejectionReason != "" {
		t.Fatalf("rejection reason must stay empty on approval")
	}
	if len(audit.events) != 2 || audit.events[1].Status != domain.StatusApproved {
		t.Fatalf("expected approval audit event, got %+v", audit.events)
	}
}

func TestVacationService_Approve_Twice(t *testing.T) {
	svc, _, _ := newTestService()
	created := mustRequest(t, svc, "ana", day(10), day(15))

	input := ports.DecisionInput{
		Actor:     ports.Actor{UserID: "bruno", Role: domain.RoleManager},
		RequestID: created.ID,
	}
	if _, err := svc.Approve(context.Background(), input); err != nil {
		t.Fatalf("first approval failed: %v", err)
	}
	if _, err := svc.Approve(context.Background(), input); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on second approval, got %v", err)
	}
}

func TestVacationService_Approve_AfterReject(t *testing.T) {
	svc, _, _ := newTestService()
	created := mustRequest(t, svc, "ana", day(10), day(15))

	actor := ports.Actor{UserID: "bruno", Role: domain.RoleManager}
	if _, err := svc.Reject(context.Background(), ports.DecisionInput{Actor: actor, RequestID: created.ID, Reason: "no"}); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if _, err := svc.Approve(context.Background(), ports.DecisionInput{Actor: actor, RequestID: created.ID}); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestVacationService_Approve_CollaboratorDenied(t *testing.T) {
	svc, _, _ := newTestService()
	created := mustRequest(t, svc, "ana", day(10), day(15))

	_, err := svc.Approve(context.Background(), ports.DecisionInput{
		Actor:     ports.Actor{UserID: "ana", Role: domain.RoleCollaborator},
		RequestID: created.ID,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// Denial is role-based, not state-based: an unknown id is denied too.
	_, err = svc.Approve(context.Background(), ports.DecisionInput{
		Actor:     ports.Actor{UserID: "ana", Role: domain.RoleCollaborator},
		RequestID: "missing",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestVacationService_Approve_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Approve(context.Background(), ports.DecisionInput{
		Actor:     ports.Actor{UserID: "bruno", Role: domain.RoleManager},
		RequestID: "missing",
	})
	if !errors.Is(err, domain.ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
}

func TestVacationService_Approve_RaceClosedByConditionalWrite(t *testing.T) {
	svc, repo, _ := newTestService()
	created := mustRequest(t, svc, "ana", day(10), day(15))

	// Simulate a concurrent rejection landing between the service's pre-check
	// and its conditional write.
	repo.byID[created.ID].Status = domain.StatusRejected

	_, err := svc.Approve(context.Background(), ports.DecisionInput{
		Actor:     ports.Actor{UserID: "bruno", Role: domain.RoleManager},
		RequestID: created.ID,
	})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestVacationService_Reject_Success(t *testing.T) {
	svc, _, audit := newTestService()
	created := mustRequest(t, svc, "ana", day(10), day(15))

	result, err := svc.Reject(context.Background(), ports.DecisionInput{
		Actor:     ports.Actor{UserID: "bruno", Role: domain.RoleManager},
		RequestID: created.ID,
		Reason:    "Cobertura insuficiente",
	})
	if err != nil {
		t.Fatalf("Reject returned error: %v", err)
	}
	if result.Status != string(domain.StatusRejected) {
		t.Fatalf("expected rejected, got %s", result.Status)
	}
	if result.RejectionReason != "Cobertura insuficiente" {
		t.Fatalf("unexpected reason: %q", result.RejectionReason)
	}
	if result.DecidedBy != "bruno" {
		t.Fatalf("expected decidedBy bruno, got %s", result.DecidedBy)
	}
	if audit.events[len(audit.events)-1].Reason != "Cobertura insuficiente" {
		t.Fatalf("audit event missing reason")
	}
}

func TestVacationService_Reject_EmptyReason(t *testing.T) {
	svc, repo, _ := newTestService()
	created := mustRequest(t, svc, "ana", day(10), day(15))

	_, err := svc.Reject(context.Background(), ports.DecisionInput{
		Actor:     ports.Actor{UserID: "bruno", Role: domain.RoleManager},
		RequestID: created.ID,
	})
	if !errors.Is(err, domain.ErrEmptyReason) {
		t.Fatalf("expected ErrEmptyReason, got %v", err)
	}

	// The request must stay pending.
	stored, _ := repo.FindByID(context.Background(), created.ID)
	if stored.Status != domain.StatusPending {
		t.Fatalf("request mutated despite validation failure: %s", stored.Status)
	}
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

func TestVacationService_ListPending(t *testing.T) {
	svc, _, _ := newTestService()
	first := mustRequest(t, svc, "ana", day(10), day(15))
	mustRequest(t, svc, "carla", day(20), day(22))

	if _, err := svc.Approve(context.Background(), ports.DecisionInput{
		Actor:     ports.Actor{UserID: "bruno", Role: domain.RoleManager},
		RequestID: first.ID,
	}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	pending, err := svc.ListPending(context.Background(), ports.Actor{UserID: "bruno", Role: domain.RoleManager})
	if err != nil {
		t.Fatalf("ListPending returned error: %v", err)
	}
	if len(pending) != 1 || pending[0].RequesterID != "carla" {
		t.Fatalf("unexpected pending queue: %+v", pending)
	}
}

func TestVacationService_ListPending_CollaboratorDenied(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.ListPending(context.Background(), ports.Actor{UserID: "ana", Role: domain.RoleCollaborator}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestVacationService_ListHistory_OwnOnly(t *testing.T) {
	svc, _, _ := newTestService()
	mustRequest(t, svc, "ana", day(10), day(15))
	mustRequest(t, svc, "carla", day(20), day(22))

	history, err := svc.ListHistory(context.Background(), ports.Actor{UserID: "ana", Role: domain.RoleCollaborator})
	if err != nil {
		t.Fatalf("ListHistory returned error: %v", err)
	}
	if len(history) != 1 || history[0].RequesterID != "ana" {
		t.Fatalf("unexpected history: %+v", history)
	}
}

func TestVacationService_RejectionReasonInvariant(t *testing.T) {
	svc, repo, _ := newTestService()
	approved := mustRequest(t, svc, "ana", day(10), day(15))
	rejected := mustRequest(t, svc, "ana", day(20), day(22))

	actor := ports.Actor{UserID: "bruno", Role: domain.RoleManager}
	if _, err := svc.Approve(context.Background(), ports.DecisionInput{Actor: actor, RequestID: approved.ID}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if _, err := svc.Reject(context.Background(), ports.DecisionInput{Actor: actor, RequestID: rejected.ID, Reason: "cover"}); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	for id, v := range repo.byID {
		hasReason := v.RejectionReason != ""
		if hasReason != (v.Status == domain.StatusRejected) {
			t.Errorf("request %s violates reason invariant: status=%s reason=%q", id, v.Status, v.RejectionReason)
		}
	}
}
