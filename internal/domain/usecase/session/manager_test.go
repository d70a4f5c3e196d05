package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiahui-lin/savings365/internal/domain/entity"
	errs "github.com/chiahui-lin/savings365/internal/domain/error"
	"github.com/chiahui-lin/savings365/internal/domain/usecase/session"
	"github.com/chiahui-lin/savings365/internal/domain/usecase/usecasetest"
)

type sessionFixture struct {
	store   *usecasetest.Store
	tp      *usecasetest.FixedTimeProvider
	manager *session.Manager
	userID  uint64
}

func newSessionFixture(t *testing.T, ttl time.Duration) *sessionFixture {
	t.Helper()

	store := usecasetest.NewStore()
	tp := usecasetest.NewFixedTimeProvider(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))

	user, err := entity.NewUser("alice", "digest:x", "aaaa1111", 1, tp)
	require.NoError(t, err)
	require.NoError(t, store.Users().Create(context.Background(), user))

	manager := session.NewManager(
		store.Sessions(),
		store.Users(),
		&usecasetest.SequenceCodeGenerator{},
		tp,
		usecasetest.NoopLogger{},
		ttl,
	)
	return &sessionFixture{store: store, tp: tp, manager: manager, userID: user.ID}
}

func TestIssueAndResolve(t *testing.T) {
	f := newSessionFixture(t, time.Hour)

	token, err := f.manager.Issue(context.Background(), f.userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := f.manager.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, f.userID, user.ID)
	assert.Equal(t, "alice", user.Username)
}

func TestResolve_EmptyToken(t *testing.T) {
	f := newSessionFixture(t, time.Hour)

	_, err := f.manager.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, errs.ErrSessionNotFound)
}

func TestResolve_UnknownToken(t *testing.T) {
	f := newSessionFixture(t, time.Hour)

	_, err := f.manager.Resolve(context.Background(), "never-issued")
	assert.ErrorIs(t, err, errs.ErrSessionNotFound)
}

func TestResolve_ExpiredTokenIsRevoked(t *testing.T) {
	f := newSessionFixture(t, time.Hour)

	token, err := f.manager.Issue(context.Background(), f.userID)
	require.NoError(t, err)

	f.tp.Current = f.tp.Current.Add(2 * time.Hour)

	_, err = f.manager.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, errs.ErrSessionNotFound)
	// The stale row is gone, not just rejected
	assert.Equal(t, 0, f.store.SessionCount(f.userID))
}

func TestResolve_DeletedUserIsRevoked(t *testing.T) {
	f := newSessionFixture(t, time.Hour)
	ctx := context.Background()

	token, err := f.manager.Issue(ctx, f.userID)
	require.NoError(t, err)

	require.NoError(t, f.store.Users().Delete(ctx, f.userID))

	_, err = f.manager.Resolve(ctx, token)
	assert.ErrorIs(t, err, errs.ErrSessionNotFound)
	assert.Equal(t, 0, f.store.SessionCount(f.userID))
}

func TestRevoke(t *testing.T) {
	f := newSessionFixture(t, time.Hour)
	ctx := context.Background()

	token, err := f.manager.Issue(ctx, f.userID)
	require.NoError(t, err)

	require.NoError(t, f.manager.Revoke(ctx, token))

	_, err = f.manager.Resolve(ctx, token)
	assert.ErrorIs(t, err, errs.ErrSessionNotFound)

	// Revoking again is a no-op
	assert.NoError(t, f.manager.Revoke(ctx, token))
}

func TestRevokeAllForUser(t *testing.T) {
	f := newSessionFixture(t, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.manager.Issue(ctx, f.userID)
		require.NoError(t, err)
	}
	require.Equal(t, 3, f.store.SessionCount(f.userID))

	require.NoError(t, f.manager.RevokeAllForUser(ctx, f.userID))
	assert.Equal(t, 0, f.store.SessionCount(f.userID))
}

func TestIssue_InvalidUser(t *testing.T) {
	f := newSessionFixture(t, time.Hour)

	_, err := f.manager.Issue(context.Background(), 0)
	assert.ErrorIs(t, err, errs.ErrInvalidUserID)
}

func TestNewManager_DefaultTTL(t *testing.T) {
	f := newSessionFixture(t, 0)

	token, err := f.manager.Issue(context.Background(), f.userID)
	require.NoError(t, err)

	sess, err := f.store.Sessions().GetByToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, f.tp.Current.Add(session.DefaultTTL), sess.ExpiresAt)
}
