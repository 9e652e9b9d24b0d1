package ports

import (
	"context"

	"github.com/holidaydesk/vacation-system/internal/core/domain"
)

// AuthRepository is the identity collaborator: it resolves credentials to
// users and persists new accounts.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
