package entity

import (
	"testing"
	"time"

	errs "github.com/chiahui-lin/savings365/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSavingRecord(t *testing.T) {
	fixedTime := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	tp := &fixedTimeProvider{now: fixedTime}

	t.Run("Amount is day times multiplier", func(t *testing.T) {
		rec, err := NewSavingRecord(1, 42, 3, "coffee money", "", "2026-03-15", tp)

		require.NoError(t, err)
		assert.Equal(t, 42, rec.DayNumber)
		assert.Equal(t, int64(126), rec.Amount)
		assert.Equal(t, "coffee money", rec.Note)
		assert.Equal(t, "2026-03-15", rec.SavedOn)
		assert.Equal(t, fixedTime, rec.CreatedAt)
	})

	t.Run("Empty date defaults to today", func(t *testing.T) {
		rec, err := NewSavingRecord(1, 1, 1, "", "", "", tp)

		require.NoError(t, err)
		assert.Equal(t, "2026-03-15", rec.SavedOn)
	})

	t.Run("Day out of range is rejected", func(t *testing.T) {
		for _, day := range []int{0, -1, 366, 1000} {
			rec, err := NewSavingRecord(1, day, 1, "", "", "", tp)
			assert.Equal(t, errs.ErrInvalidDay, err, "day %d", day)
			assert.Nil(t, rec)
		}
	})

	t.Run("Boundary days are accepted", func(t *testing.T) {
		for _, day := range []int{1, 365} {
			rec, err := NewSavingRecord(1, day, 1, "", "", "", tp)
			require.NoError(t, err)
			assert.Equal(t, int64(day), rec.Amount)
		}
	})

	t.Run("Zero user ID is rejected", func(t *testing.T) {
		rec, err := NewSavingRecord(0, 1, 1, "", "", "", tp)
		assert.Equal(t, errs.ErrInvalidUserID, err)
		assert.Nil(t, rec)
	})

	t.Run("Invalid multiplier is rejected", func(t *testing.T) {
		rec, err := NewSavingRecord(1, 1, 0, "", "", "", tp)
		assert.Equal(t, errs.ErrInvalidMultiplier, err)
		assert.Nil(t, rec)
	})
}

func TestNormalizeSavedOn(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"Empty falls back to today", "", "2026-03-15"},
		{"Valid date is kept", "2026-01-02", "2026-01-02"},
		{"Malformed date falls back to today", "15/03/2026", "2026-03-15"},
		{"Garbage falls back to today", "not-a-date", "2026-03-15"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeSavedOn(tc.input, now))
		})
	}
}
