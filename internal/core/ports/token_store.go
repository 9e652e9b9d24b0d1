package ports

import "context"

// TokenStore abstracts persistence of the session token. The token is an
// opaque string; the store never inspects it.
type TokenStore interface {
	// Save persists the token, replacing any existing value.
	Save(ctx context.Context, token string) error
	// Clear removes any persisted token. Clearing an absent token is a no-op.
	Clear(ctx context.Context) error
	// Get returns the current token. Absence is a normal result reported via
	// ok=false, never an error.
	Get(ctx context.Context) (token string, ok bool, err error)
}
