package ledger_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiahui-lin/savings365/internal/domain/entity"
	errs "github.com/chiahui-lin/savings365/internal/domain/error"
	"github.com/chiahui-lin/savings365/internal/domain/port/usecase"
	"github.com/chiahui-lin/savings365/internal/domain/usecase/ledger"
	"github.com/chiahui-lin/savings365/internal/domain/usecase/usecasetest"
)

type ledgerFixture struct {
	store   *usecasetest.Store
	photos  *usecasetest.MemoryPhotoStore
	tp      *usecasetest.FixedTimeProvider
	service *ledger.Service
	userID  uint64
}

func newLedgerFixture(t *testing.T, multiplier int) *ledgerFixture {
	t.Helper()

	store := usecasetest.NewStore()
	photos := usecasetest.NewMemoryPhotoStore()
	tp := usecasetest.NewFixedTimeProvider(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))

	user, err := entity.NewUser("alice", "digest:secret", "aaaa1111", multiplier, tp)
	require.NoError(t, err)
	require.NoError(t, store.Users().Create(context.Background(), user))

	service := ledger.NewService(
		store.Users(),
		store.Records(),
		photos,
		&usecasetest.SequenceCodeGenerator{},
		tp,
		usecasetest.NoopLogger{},
	)
	return &ledgerFixture{store: store, photos: photos, tp: tp, service: service, userID: user.ID}
}

func TestUpsertDeposit_Create(t *testing.T) {
	f := newLedgerFixture(t, 3)

	result, err := f.service.UpsertDeposit(context.Background(), f.userID, usecase.DepositRequest{
		DayNumber: 42,
		Note:      "coffee money",
		SavedOn:   "2025-02-11",
	})
	require.NoError(t, err)
	assert.True(t, result.Created)

	rec, err := f.store.Records().GetByUserAndDay(context.Background(), f.userID, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(126), rec.Amount)
	assert.Equal(t, "coffee money", rec.Note)
	assert.Equal(t, "2025-02-11", rec.SavedOn)
}

func TestUpsertDeposit_UpdateKeepsAmount(t *testing.T) {
	f := newLedgerFixture(t, 2)
	ctx := context.Background()

	first, err := f.service.UpsertDeposit(ctx, f.userID, usecase.DepositRequest{
		DayNumber: 10,
		Note:      "first",
	})
	require.NoError(t, err)
	require.True(t, first.Created)

	second, err := f.service.UpsertDeposit(ctx, f.userID, usecase.DepositRequest{
		DayNumber: 10,
		Note:      "revised",
		SavedOn:   "2025-01-05",
	})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.RecordID, second.RecordID)

	rec, err := f.store.Records().GetByUserAndDay(ctx, f.userID, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(20), rec.Amount)
	assert.Equal(t, "revised", rec.Note)
	assert.Equal(t, "2025-01-05", rec.SavedOn)
}

func TestUpsertDeposit_EmptySavedOnDefaultsToToday(t *testing.T) {
	f := newLedgerFixture(t, 1)

	_, err := f.service.UpsertDeposit(context.Background(), f.userID, usecase.DepositRequest{
		DayNumber: 1,
	})
	require.NoError(t, err)

	rec, err := f.store.Records().GetByUserAndDay(context.Background(), f.userID, 1)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", rec.SavedOn)
}

func TestUpsertDeposit_MalformedSavedOnDefaultsToToday(t *testing.T) {
	f := newLedgerFixture(t, 1)

	_, err := f.service.UpsertDeposit(context.Background(), f.userID, usecase.DepositRequest{
		DayNumber: 2,
		SavedOn:   "yesterday-ish",
	})
	require.NoError(t, err)

	rec, err := f.store.Records().GetByUserAndDay(context.Background(), f.userID, 2)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", rec.SavedOn)
}

func TestUpsertDeposit_DayOutOfRange(t *testing.T) {
	f := newLedgerFixture(t, 1)

	for _, day := range []int{0, -3, 366} {
		_, err := f.service.UpsertDeposit(context.Background(), f.userID, usecase.DepositRequest{DayNumber: day})
		assert.ErrorIs(t, err, errs.ErrInvalidDay, "day %d", day)
	}
}

func TestUpsertDeposit_UnknownUser(t *testing.T) {
	f := newLedgerFixture(t, 1)

	_, err := f.service.UpsertDeposit(context.Background(), 999, usecase.DepositRequest{DayNumber: 1})
	assert.ErrorIs(t, err, errs.ErrUserNotFound)
}

func TestUpsertDeposit_PhotoStoredAndReplaced(t *testing.T) {
	f := newLedgerFixture(t, 1)
	ctx := context.Background()

	_, err := f.service.UpsertDeposit(ctx, f.userID, usecase.DepositRequest{
		DayNumber: 7,
		Photo:     strings.NewReader("first-jpeg"),
		PhotoExt:  ".jpg",
	})
	require.NoError(t, err)

	rec, err := f.store.Records().GetByUserAndDay(ctx, f.userID, 7)
	require.NoError(t, err)
	firstRef := rec.Photo
	require.NotEmpty(t, firstRef)
	assert.True(t, f.photos.Has(firstRef))

	_, err = f.service.UpsertDeposit(ctx, f.userID, usecase.DepositRequest{
		DayNumber: 7,
		Photo:     strings.NewReader("second-jpeg"),
		PhotoExt:  ".jpg",
	})
	require.NoError(t, err)

	rec, err = f.store.Records().GetByUserAndDay(ctx, f.userID, 7)
	require.NoError(t, err)
	assert.NotEqual(t, firstRef, rec.Photo)
	assert.True(t, f.photos.Has(rec.Photo))
	// The superseded file is gone
	assert.False(t, f.photos.Has(firstRef))
}

func TestUpsertDeposit_UpdateWithoutPhotoKeepsExisting(t *testing.T) {
	f := newLedgerFixture(t, 1)
	ctx := context.Background()

	_, err := f.service.UpsertDeposit(ctx, f.userID, usecase.DepositRequest{
		DayNumber: 8,
		Photo:     strings.NewReader("jpeg"),
		PhotoExt:  ".jpg",
	})
	require.NoError(t, err)

	rec, err := f.store.Records().GetByUserAndDay(ctx, f.userID, 8)
	require.NoError(t, err)
	ref := rec.Photo

	_, err = f.service.UpsertDeposit(ctx, f.userID, usecase.DepositRequest{
		DayNumber: 8,
		Note:      "no new photo",
	})
	require.NoError(t, err)

	rec, err = f.store.Records().GetByUserAndDay(ctx, f.userID, 8)
	require.NoError(t, err)
	assert.Equal(t, ref, rec.Photo)
	assert.True(t, f.photos.Has(ref))
}

func TestDeleteDeposit(t *testing.T) {
	f := newLedgerFixture(t, 1)
	ctx := context.Background()

	_, err := f.service.UpsertDeposit(ctx, f.userID, usecase.DepositRequest{
		DayNumber: 30,
		Photo:     strings.NewReader("jpeg"),
		PhotoExt:  ".jpg",
	})
	require.NoError(t, err)

	rec, err := f.store.Records().GetByUserAndDay(ctx, f.userID, 30)
	require.NoError(t, err)
	ref := rec.Photo

	require.NoError(t, f.service.DeleteDeposit(ctx, f.userID, 30))

	_, err = f.store.Records().GetByUserAndDay(ctx, f.userID, 30)
	assert.ErrorIs(t, err, errs.ErrRecordNotFound)
	assert.False(t, f.photos.Has(ref))

	// Deleting again is a no-op
	assert.NoError(t, f.service.DeleteDeposit(ctx, f.userID, 30))
}

func TestDeleteDeposit_DayOutOfRange(t *testing.T) {
	f := newLedgerFixture(t, 1)

	err := f.service.DeleteDeposit(context.Background(), f.userID, 400)
	assert.ErrorIs(t, err, errs.ErrInvalidDay)
}

func TestListForUser_OrderedByDay(t *testing.T) {
	f := newLedgerFixture(t, 1)
	ctx := context.Background()

	for _, day := range []int{200, 3, 57} {
		_, err := f.service.UpsertDeposit(ctx, f.userID, usecase.DepositRequest{DayNumber: day})
		require.NoError(t, err)
	}

	records, err := f.service.ListForUser(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 3, records[0].DayNumber)
	assert.Equal(t, 57, records[1].DayNumber)
	assert.Equal(t, 200, records[2].DayNumber)
}
