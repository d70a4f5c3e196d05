package persistence

import (
	"context"
	"time"
)

// Session is the explicit token -> user mapping that replaces ambient
// request-scoped session state. Core operations receive the resolved
// user ID, never a global session object.
type Session struct {
	Token     string
	UserID    uint64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SessionRepository defines methods to persist session tokens
type SessionRepository interface {
	// Create stores a new session
	//
	// Possible errors:
	// - ErrStorageUnavailable: If the store cannot be reached
	Create(ctx context.Context, session *Session) error

	// GetByToken retrieves a session by token
	//
	// Possible errors:
	// - ErrSessionNotFound: If the token is unknown
	// - ErrStorageUnavailable: If the store cannot be reached
	GetByToken(ctx context.Context, token string) (*Session, error)

	// Delete removes a single session. Unknown tokens are a no-op.
	//
	// Possible errors:
	// - ErrStorageUnavailable: If the store cannot be reached
	Delete(ctx context.Context, token string) error

	// DeleteForUser removes every session belonging to the user
	//
	// Possible errors:
	// - ErrStorageUnavailable: If the store cannot be reached
	DeleteForUser(ctx context.Context, userID uint64) error
}
