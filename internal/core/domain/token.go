package domain

import "errors"

// ErrTokenStorage signals that the token store's backing medium was
// unavailable. Callers may retry; the session itself is not invalidated.
var ErrTokenStorage = errors.New("token storage unavailable")
