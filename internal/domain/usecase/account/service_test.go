package account_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiahui-lin/savings365/internal/domain/entity"
	errs "github.com/chiahui-lin/savings365/internal/domain/error"
	"github.com/chiahui-lin/savings365/internal/domain/port/persistence"
	"github.com/chiahui-lin/savings365/internal/domain/port/usecase"
	"github.com/chiahui-lin/savings365/internal/domain/usecase/account"
	"github.com/chiahui-lin/savings365/internal/domain/usecase/usecasetest"
)

type accountFixture struct {
	store   *usecasetest.Store
	photos  *usecasetest.MemoryPhotoStore
	codes   *usecasetest.SequenceCodeGenerator
	service *account.Service
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()

	store := usecasetest.NewStore()
	photos := usecasetest.NewMemoryPhotoStore()
	codes := &usecasetest.SequenceCodeGenerator{
		Codes: []string{"aaaa1111", "bbbb2222", "cccc3333", "dddd4444", "eeee5555"},
	}
	tp := usecasetest.NewFixedTimeProvider(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))

	service := account.NewService(
		store.UnitOfWork(),
		store.Users(),
		store.Groups(),
		store.Sessions(),
		photos,
		usecasetest.PlainHasher{},
		codes,
		tp,
		usecasetest.NoopLogger{},
	)
	return &accountFixture{store: store, photos: photos, codes: codes, service: service}
}

func (f *accountFixture) register(t *testing.T, req usecase.RegisterRequest) *usecase.RegisterResult {
	t.Helper()
	result, err := f.service.Register(context.Background(), req)
	require.NoError(t, err)
	return result
}

func seedRecord(userID uint64, day int, amount int64, photo string) *entity.SavingRecord {
	return &entity.SavingRecord{
		UserID:    userID,
		DayNumber: day,
		Amount:    amount,
		Photo:     photo,
		SavedOn:   "2025-03-10",
	}
}

func TestRegister_NewGroup(t *testing.T) {
	f := newAccountFixture(t)

	result := f.register(t, usecase.RegisterRequest{
		Username:   "alice",
		Password:   "secret",
		GroupName:  "Family pot",
		Multiplier: 2,
	})

	assert.NotZero(t, result.UserID)
	assert.Equal(t, "aaaa1111", result.GroupCode)
	assert.Equal(t, "Family pot", result.GroupName)

	user, err := f.store.Users().GetByID(context.Background(), result.UserID)
	require.NoError(t, err)
	assert.Equal(t, 2, user.Multiplier)
	assert.NotEqual(t, "secret", user.PasswordDigest)
}

func TestRegister_DefaultGroupName(t *testing.T) {
	f := newAccountFixture(t)

	result := f.register(t, usecase.RegisterRequest{
		Username:   "alice",
		Password:   "secret",
		Multiplier: 1,
	})

	assert.Equal(t, "New savings plan", result.GroupName)
}

func TestRegister_JoinExistingGroup(t *testing.T) {
	f := newAccountFixture(t)

	first := f.register(t, usecase.RegisterRequest{
		Username:   "alice",
		Password:   "secret",
		GroupName:  "Family pot",
		Multiplier: 1,
	})

	second := f.register(t, usecase.RegisterRequest{
		Username:   "bob",
		Password:   "hunter2",
		JoinCode:   first.GroupCode,
		Multiplier: 3,
	})

	assert.Equal(t, first.GroupCode, second.GroupCode)
	assert.Equal(t, "Family pot", second.GroupName)
	assert.Equal(t, 1, f.store.GroupCount())
}

func TestRegister_UnknownJoinCode(t *testing.T) {
	f := newAccountFixture(t)

	_, err := f.service.Register(context.Background(), usecase.RegisterRequest{
		Username:   "alice",
		Password:   "secret",
		JoinCode:   "nope0000",
		Multiplier: 1,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidGroupCode)
	assert.Equal(t, 0, f.store.GroupCount())
}

func TestRegister_DuplicateUsername(t *testing.T) {
	f := newAccountFixture(t)

	f.register(t, usecase.RegisterRequest{Username: "alice", Password: "one", Multiplier: 1})

	_, err := f.service.Register(context.Background(), usecase.RegisterRequest{
		Username:   "alice",
		Password:   "two",
		Multiplier: 1,
	})

	require.Error(t, err)
	assert.True(t, errs.IsDuplicateUsernameError(err))
	// The failed attempt must not leave an empty group behind
	assert.Equal(t, 1, f.store.GroupCount())
}

func TestRegister_InvalidMultiplier(t *testing.T) {
	f := newAccountFixture(t)

	_, err := f.service.Register(context.Background(), usecase.RegisterRequest{
		Username:   "alice",
		Password:   "secret",
		Multiplier: 0,
	})

	assert.ErrorIs(t, err, errs.ErrInvalidMultiplier)
}

func TestRegister_CodeCollisionRetries(t *testing.T) {
	f := newAccountFixture(t)

	// First registration consumes aaaa1111; the generator then offers the
	// taken code again before moving on.
	f.register(t, usecase.RegisterRequest{Username: "alice", Password: "one", Multiplier: 1})

	f.codes.Codes = []string{"aaaa1111", "ffff6666"}
	f.codes.Reset()
	result := f.register(t, usecase.RegisterRequest{Username: "bob", Password: "two", Multiplier: 1})

	assert.Equal(t, "ffff6666", result.GroupCode)
}

func TestRegister_CodeSpaceExhausted(t *testing.T) {
	f := newAccountFixture(t)

	f.register(t, usecase.RegisterRequest{Username: "alice", Password: "one", Multiplier: 1})

	// Every generated code collides with the existing group
	f.codes.Codes = []string{"aaaa1111"}
	f.codes.Reset()
	_, err := f.service.Register(context.Background(), usecase.RegisterRequest{
		Username:   "bob",
		Password:   "two",
		Multiplier: 1,
	})

	assert.ErrorIs(t, err, errs.ErrGroupCodeExhausted)
}

func TestAuthenticate(t *testing.T) {
	f := newAccountFixture(t)
	result := f.register(t, usecase.RegisterRequest{Username: "alice", Password: "secret", Multiplier: 1})

	t.Run("success", func(t *testing.T) {
		user, err := f.service.Authenticate(context.Background(), "alice", "secret")
		require.NoError(t, err)
		assert.Equal(t, result.UserID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.service.Authenticate(context.Background(), "alice", "wrong")
		assert.True(t, errs.IsAuthFailure(err))
	})

	t.Run("unknown user reports the same failure", func(t *testing.T) {
		_, err := f.service.Authenticate(context.Background(), "nobody", "secret")
		assert.True(t, errs.IsAuthFailure(err))
	})
}

func TestChangePassword(t *testing.T) {
	f := newAccountFixture(t)
	result := f.register(t, usecase.RegisterRequest{Username: "alice", Password: "old-pass", Multiplier: 1})

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	require.NoError(t, f.store.Sessions().Create(context.Background(), &persistence.Session{
		Token:     "tok-1",
		UserID:    result.UserID,
		CreatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}))

	err := f.service.ChangePassword(context.Background(), result.UserID, "old-pass", "new-pass")
	require.NoError(t, err)

	_, err = f.service.Authenticate(context.Background(), "alice", "old-pass")
	assert.True(t, errs.IsAuthFailure(err))
	_, err = f.service.Authenticate(context.Background(), "alice", "new-pass")
	assert.NoError(t, err)

	// Every session is revoked so other devices must log in again
	assert.Equal(t, 0, f.store.SessionCount(result.UserID))
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	f := newAccountFixture(t)
	result := f.register(t, usecase.RegisterRequest{Username: "alice", Password: "old-pass", Multiplier: 1})

	err := f.service.ChangePassword(context.Background(), result.UserID, "guess", "new-pass")
	assert.ErrorIs(t, err, errs.ErrWrongOldPassword)

	_, err = f.service.Authenticate(context.Background(), "alice", "old-pass")
	assert.NoError(t, err)
}

func TestRenameGroup(t *testing.T) {
	f := newAccountFixture(t)
	result := f.register(t, usecase.RegisterRequest{
		Username:   "alice",
		Password:   "secret",
		GroupName:  "Old name",
		Multiplier: 1,
	})

	require.NoError(t, f.service.RenameGroup(context.Background(), result.UserID, "Summer trip"))

	group, err := f.store.Groups().GetByCode(context.Background(), result.GroupCode)
	require.NoError(t, err)
	assert.Equal(t, "Summer trip", group.Name)
}

func TestRenameGroup_EmptyNameIgnored(t *testing.T) {
	f := newAccountFixture(t)
	result := f.register(t, usecase.RegisterRequest{
		Username:   "alice",
		Password:   "secret",
		GroupName:  "Old name",
		Multiplier: 1,
	})

	require.NoError(t, f.service.RenameGroup(context.Background(), result.UserID, ""))

	group, err := f.store.Groups().GetByCode(context.Background(), result.GroupCode)
	require.NoError(t, err)
	assert.Equal(t, "Old name", group.Name)
}

func TestSetMultiplier_WipesLedger(t *testing.T) {
	f := newAccountFixture(t)
	result := f.register(t, usecase.RegisterRequest{Username: "alice", Password: "secret", Multiplier: 1})

	records := f.store.Records()
	_, err := records.Upsert(context.Background(), seedRecord(result.UserID, 5, 5, "photo-a.jpg"))
	require.NoError(t, err)
	_, err = records.Upsert(context.Background(), seedRecord(result.UserID, 12, 12, ""))
	require.NoError(t, err)
	_, saveErr := f.photos.Save(context.Background(), "photo-a.jpg", strings.NewReader("jpeg"))
	require.NoError(t, saveErr)

	require.NoError(t, f.service.SetMultiplier(context.Background(), result.UserID, 3))

	remaining, err := records.ListForUser(context.Background(), result.UserID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	user, err := f.store.Users().GetByID(context.Background(), result.UserID)
	require.NoError(t, err)
	assert.Equal(t, 3, user.Multiplier)

	// Orphaned photo files are released with the rows
	assert.False(t, f.photos.Has("photo-a.jpg"))
}

func TestSetMultiplier_UnchangedValueKeepsLedger(t *testing.T) {
	f := newAccountFixture(t)
	result := f.register(t, usecase.RegisterRequest{Username: "alice", Password: "secret", Multiplier: 2})

	records := f.store.Records()
	_, err := records.Upsert(context.Background(), seedRecord(result.UserID, 5, 10, ""))
	require.NoError(t, err)

	require.NoError(t, f.service.SetMultiplier(context.Background(), result.UserID, 2))

	remaining, err := records.ListForUser(context.Background(), result.UserID)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestSetMultiplier_Invalid(t *testing.T) {
	f := newAccountFixture(t)
	result := f.register(t, usecase.RegisterRequest{Username: "alice", Password: "secret", Multiplier: 1})

	err := f.service.SetMultiplier(context.Background(), result.UserID, 0)
	assert.ErrorIs(t, err, errs.ErrInvalidMultiplier)
}

func TestDeleteAccount_Cascades(t *testing.T) {
	f := newAccountFixture(t)
	result := f.register(t, usecase.RegisterRequest{Username: "alice", Password: "secret", Multiplier: 1})

	ctx := context.Background()
	_, err := f.store.Records().Upsert(ctx, seedRecord(result.UserID, 7, 7, "photo-b.jpg"))
	require.NoError(t, err)
	_, saveErr := f.photos.Save(ctx, "photo-b.jpg", strings.NewReader("jpeg"))
	require.NoError(t, saveErr)
	require.NoError(t, f.store.Sessions().Create(ctx, &persistence.Session{Token: "tok", UserID: result.UserID}))

	require.NoError(t, f.service.DeleteAccount(ctx, result.UserID))

	_, err = f.store.Users().GetByID(ctx, result.UserID)
	assert.ErrorIs(t, err, errs.ErrUserNotFound)

	records, err := f.store.Records().ListForUser(ctx, result.UserID)
	require.NoError(t, err)
	assert.Empty(t, records)

	assert.Equal(t, 0, f.store.SessionCount(result.UserID))
	assert.False(t, f.photos.Has("photo-b.jpg"))

	// The group outlives its last member
	_, err = f.store.Groups().GetByCode(ctx, result.GroupCode)
	assert.NoError(t, err)
}
