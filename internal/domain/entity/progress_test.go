package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(t *testing.T, userID uint64, day, multiplier int) *SavingRecord {
	t.Helper()
	tp := &fixedTimeProvider{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	rec, err := NewSavingRecord(userID, day, multiplier, "", "", "", tp)
	require.NoError(t, err)
	return rec
}

func TestComputeProgress(t *testing.T) {
	t.Run("Three early days round down to zero percent", func(t *testing.T) {
		records := []*SavingRecord{
			record(t, 1, 1, 1),
			record(t, 1, 2, 1),
			record(t, 1, 3, 1),
		}

		p := ComputeProgress(records, 1)

		assert.Equal(t, int64(6), p.Current)
		assert.Equal(t, AnnualBase, p.Target)
		assert.Equal(t, 0.0, p.Percent)
	})

	t.Run("Full year at multiplier two reaches exactly one hundred percent", func(t *testing.T) {
		records := make([]*SavingRecord, 0, 365)
		for day := MinDayNumber; day <= MaxDayNumber; day++ {
			records = append(records, record(t, 1, day, 2))
		}

		p := ComputeProgress(records, 2)

		assert.Equal(t, int64(133590), p.Current)
		assert.Equal(t, int64(133590), p.Target)
		assert.Equal(t, 100.0, p.Percent)
	})

	t.Run("Empty ledger", func(t *testing.T) {
		p := ComputeProgress(nil, 1)

		assert.Equal(t, int64(0), p.Current)
		assert.Equal(t, AnnualBase, p.Target)
		assert.Equal(t, 0.0, p.Percent)
	})

	t.Run("Non-positive target yields zero percent", func(t *testing.T) {
		// The calculator must not trust the multiplier invariant blindly
		p := ComputeProgress([]*SavingRecord{record(t, 1, 10, 1)}, 0)

		assert.Equal(t, int64(0), p.Target)
		assert.Equal(t, 0.0, p.Percent)
	})

	t.Run("Percent is rounded to one decimal", func(t *testing.T) {
		// 1000/267180*100 = 0.3743... -> 0.4
		records := []*SavingRecord{record(t, 1, 250, 4)}
		p := ComputeProgress(records, 4)

		assert.Equal(t, int64(1000), p.Current)
		assert.InDelta(t, 0.4, p.Percent, 1e-9)
	})
}

func TestAnnualBaseIsSumOfDays(t *testing.T) {
	var sum int64
	for day := MinDayNumber; day <= MaxDayNumber; day++ {
		sum += int64(day)
	}
	assert.Equal(t, AnnualBase, sum)
}

func TestBuildDayGrid(t *testing.T) {
	records := []*SavingRecord{
		record(t, 1, 3, 2),
		record(t, 1, 100, 2),
	}
	records[0].Note = "lunch"
	records[0].SavedOn = "2026-01-03"

	grid := BuildDayGrid(records, 2)

	require.Len(t, grid, 365)

	// Every entry carries the expected amount for its day
	for i, entry := range grid {
		assert.Equal(t, i+1, entry.Day)
		assert.Equal(t, int64(entry.Day)*2, entry.ExpectedAmount)
	}

	assert.True(t, grid[2].Filled)
	assert.Equal(t, "lunch", grid[2].Note)
	assert.Equal(t, "2026-01-03", grid[2].SavedOn)

	assert.True(t, grid[99].Filled)

	assert.False(t, grid[0].Filled)
	assert.Empty(t, grid[0].Note)
	assert.Empty(t, grid[0].SavedOn)
}

func TestGridEntrySerializesSnakeCase(t *testing.T) {
	entry := GridEntry{
		Day:            3,
		ExpectedAmount: 6,
		Filled:         true,
		Note:           "lunch",
		SavedOn:        "2026-01-03",
	}

	payload, err := json.Marshal(entry)
	require.NoError(t, err)

	// The grid rides inside the dashboard payload, so its keys follow the
	// same snake_case convention as every sibling field
	assert.JSONEq(t,
		`{"day":3,"expected_amount":6,"filled":true,"note":"lunch","saved_on":"2026-01-03"}`,
		string(payload))
}
