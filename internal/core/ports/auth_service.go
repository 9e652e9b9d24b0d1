package ports

import (
	"context"

	"github.com/holidaydesk/vacation-system/internal/core/domain"
)

// AuthService is the session engine: registration, login, logout, and
// current-session queries.
type AuthService interface {
	Register(ctx context.Context, username, password, email, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context) error
	CurrentUser() (*domain.User, error)
}
