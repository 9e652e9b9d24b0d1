package service

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/holidaydesk/vacation-system/internal/core/domain"
	"github.com/holidaydesk/vacation-system/internal/core/ports"
)

// AuthService implements registration, login, logout, and current-session
// queries. The session token lives behind the TokenStore port; the session
// user is held in memory for the lifetime of the login.
type AuthService struct {
	repo      ports.AuthRepository
	tokens    ports.TokenStore
	jwtSecret string
	tokenTTL  time.Duration

	mu      sync.Mutex
	current *domain.User
}

func NewAuthService(repo ports.AuthRepository, tokens ports.TokenStore, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, tokens: tokens, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) Register(ctx context.Context, username, password, email, role string) (*domain.User, error) {
	if username == "" || password == "" || email == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Login authenticates the credentials, issues a token, stores it through the
// TokenStore, and records the session user.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	if err := s.tokens.Save(ctx, token); err != nil {
		return "", nil, err
	}

	s.mu.Lock()
	s.current = user
	s.mu.Unlock()

	return token, user, nil
}

// Logout clears the stored token and discards the session user. Clearing an
// absent token is a no-op, so logout always succeeds for the caller.
func (s *AuthService) Logout(ctx context.Context) error {
	err := s.tokens.Clear(ctx)

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	return err
}

// CurrentUser returns the session user, or domain.ErrNoSession when nobody
// is logged in.
func (s *AuthService) CurrentUser() (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, domain.ErrNoSession
	}
	clone := *s.current
	return &clone, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
