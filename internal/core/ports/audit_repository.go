package ports

import (
	"context"

	"github.com/holidaydesk/vacation-system/internal/core/domain"
)

// AuditRepository persists decision events to the audit trail.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.DecisionEvent) error
}
