package session

import (
	"context"
	"errors"
	"time"

	"github.com/chiahui-lin/savings365/internal/domain/entity"
	errs "github.com/chiahui-lin/savings365/internal/domain/error"
	coreport "github.com/chiahui-lin/savings365/internal/domain/port/core"
	"github.com/chiahui-lin/savings365/internal/domain/port/persistence"
)

// DefaultTTL is how long an issued session stays valid
const DefaultTTL = 30 * 24 * time.Hour

// Manager maps opaque session tokens to users. It replaces ambient
// request-scoped session state: core operations receive a resolved user ID
// and never read the session themselves.
type Manager struct {
	sessionRepo  persistence.SessionRepository
	userRepo     persistence.UserRepository
	codes        coreport.CodeGenerator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	ttl          time.Duration
}

// NewManager creates a new session manager instance
func NewManager(
	sessionRepo persistence.SessionRepository,
	userRepo persistence.UserRepository,
	codes coreport.CodeGenerator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	ttl time.Duration,
) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		sessionRepo:  sessionRepo,
		userRepo:     userRepo,
		codes:        codes,
		timeProvider: timeProvider,
		logger:       logger,
		ttl:          ttl,
	}
}

// Issue creates a session for the user and returns its token
func (m *Manager) Issue(ctx context.Context, userID uint64) (string, error) {
	if userID == 0 {
		return "", errs.ErrInvalidUserID
	}

	now := m.timeProvider.Now()
	sess := &persistence.Session{
		Token:     m.codes.SessionToken(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.sessionRepo.Create(ctx, sess); err != nil {
		return "", err
	}
	return sess.Token, nil
}

// Resolve maps a token to its user. Expired tokens and tokens whose user no
// longer exists are revoked on sight and reported as ErrSessionNotFound, so
// a stale session degrades into a fresh login instead of an error page.
func (m *Manager) Resolve(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, errs.ErrSessionNotFound
	}

	sess, err := m.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if m.timeProvider.Now().After(sess.ExpiresAt) {
		m.revoke(ctx, token)
		return nil, errs.ErrSessionNotFound
	}

	user, err := m.userRepo.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			m.revoke(ctx, token)
			return nil, errs.ErrSessionNotFound
		}
		return nil, err
	}

	return user, nil
}

// Revoke removes a single session; unknown tokens are a no-op
func (m *Manager) Revoke(ctx context.Context, token string) error {
	return m.sessionRepo.Delete(ctx, token)
}

// RevokeAllForUser removes every session of the user
func (m *Manager) RevokeAllForUser(ctx context.Context, userID uint64) error {
	return m.sessionRepo.DeleteForUser(ctx, userID)
}

func (m *Manager) revoke(ctx context.Context, token string) {
	if err := m.sessionRepo.Delete(ctx, token); err != nil {
		m.logger.Warn("Failed to revoke stale session", map[string]any{
			"error": err.Error(),
		})
	}
}
