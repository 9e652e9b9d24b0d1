package domain

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewVacationRequest_Valid(t *testing.T) {
	now := date(2025, time.March, 1)

	v, err := NewVacationRequest("ana", date(2025, time.March, 10), date(2025, time.March, 15), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Status != StatusPending {
		t.Fatalf("expected pending, got %s", v.Status)
	}
	if v.RequesterID != "ana" {
		t.Fatalf("unexpected requester: %s", v.RequesterID)
	}
	if v.Days() != 6 {
		t.Fatalf("expected 6 inclusive days, got %d", v.Days())
	}
	if v.RejectionReason != "" || v.DecidedBy != "" {
		t.Fatalf("decision fields must be empty on a new request")
	}
}

func TestNewVacationRequest_EndBeforeStart(t *testing.T) {
	now := date(2025, time.March, 1)

	if _, err := NewVacationRequest("ana", date(2025, time.March, 20), date(2025, time.March, 10), now); err != ErrInvalidDateRange {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestNewVacationRequest_Retroactive(t *testing.T) {
	now := date(2025, time.March, 12)

	if _, err := NewVacationRequest("ana", date(2025, time.March, 10), date(2025, time.March, 15), now); err != ErrInvalidDateRange {
		t.Fatalf("expected ErrInvalidDateRange for retroactive start, got %v", err)
	}
}

func TestNewVacationRequest_StartsToday(t *testing.T) {
	// A request starting on the current day is not retroactive, even when the
	// clock reads late in the day.
	now := time.Date(2025, time.March, 10, 23, 30, 0, 0, time.UTC)

	if _, err := NewVacationRequest("ana", date(2025, time.March, 10), date(2025, time.March, 10), now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewVacationRequest_ZeroDates(t *testing.T) {
	now := date(2025, time.March, 1)

	if _, err := NewVacationRequest("ana", time.Time{}, date(2025, time.March, 15), now); err != ErrInvalidDateRange {
		t.Fatalf("expected ErrInvalidDateRange for zero start, got %v", err)
	}
	if _, err := NewVacationRequest("ana", date(2025, time.March, 10), time.Time{}, now); err != ErrInvalidDateRange {
		t.Fatalf("expected ErrInvalidDateRange for zero end, got %v", err)
	}
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to RequestStatus
		want     bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusPending, false},
		{StatusApproved, StatusRejected, false},
		{StatusApproved, StatusApproved, false},
		{StatusApproved, StatusPending, false},
		{StatusRejected, StatusApproved, false},
		{StatusRejected, StatusPending, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}
