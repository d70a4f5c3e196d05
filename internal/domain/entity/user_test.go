package entity

import (
	"testing"
	"time"

	errs "github.com/chiahui-lin/savings365/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	fixedTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tp := &fixedTimeProvider{now: fixedTime}

	t.Run("Valid user creation", func(t *testing.T) {
		user, err := NewUser("alice", "digest", "abcd1234", 2, tp)

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "digest", user.PasswordDigest)
		assert.Equal(t, "abcd1234", user.GroupCode)
		assert.Equal(t, 2, user.Multiplier)
		assert.Equal(t, fixedTime, user.CreatedAt)
		assert.Equal(t, fixedTime, user.UpdatedAt)
	})

	t.Run("Empty username should return error", func(t *testing.T) {
		user, err := NewUser("", "digest", "abcd1234", 1, tp)

		assert.Error(t, err)
		assert.Equal(t, errs.ErrInvalidUsername, err)
		assert.Nil(t, user)
	})

	t.Run("Non-positive multiplier should return error", func(t *testing.T) {
		for _, m := range []int{0, -1, -10} {
			user, err := NewUser("alice", "digest", "abcd1234", m, tp)
			assert.Equal(t, errs.ErrInvalidMultiplier, err)
			assert.Nil(t, user)
		}
	})

	t.Run("Malformed group code should return error", func(t *testing.T) {
		user, err := NewUser("alice", "digest", "short", 1, tp)

		assert.Equal(t, errs.ErrInvalidGroupCode, err)
		assert.Nil(t, user)
	})
}

func TestUserSetMultiplier(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tp := &fixedTimeProvider{now: start}

	user, err := NewUser("alice", "digest", "abcd1234", 1, tp)
	require.NoError(t, err)

	t.Run("Valid change updates field and timestamp", func(t *testing.T) {
		tp.now = start.Add(time.Hour)
		require.NoError(t, user.SetMultiplier(3, tp))
		assert.Equal(t, 3, user.Multiplier)
		assert.Equal(t, start.Add(time.Hour), user.UpdatedAt)
	})

	t.Run("Invalid multiplier is rejected", func(t *testing.T) {
		err := user.SetMultiplier(0, tp)
		assert.Equal(t, errs.ErrInvalidMultiplier, err)
		assert.Equal(t, 3, user.Multiplier)
	})
}

func TestUserTarget(t *testing.T) {
	tp := &fixedTimeProvider{now: time.Now()}

	user, err := NewUser("alice", "digest", "abcd1234", 2, tp)
	require.NoError(t, err)

	assert.Equal(t, int64(133590), user.Target())
}
