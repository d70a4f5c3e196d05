package entity

import (
	"github.com/shopspring/decimal"
)

// AnnualBase is the sum of 1..365: the target for a multiplier of 1.
// It encodes the "save day-number dollars every day for a year" rule
// and is a fixed property of the domain, not configuration.
const AnnualBase int64 = 66795

// Progress summarizes a user's position against the annual target
type Progress struct {
	Current int64   // Sum of all recorded amounts
	Target  int64   // AnnualBase * multiplier
	Percent float64 // Current/Target as a percentage, rounded to 1 decimal
}

// GridEntry is one day on the 365-day calendar view
type GridEntry struct {
	Day            int    `json:"day"`             // Day number in [1, 365]
	ExpectedAmount int64  `json:"expected_amount"` // day * multiplier
	Filled         bool   `json:"filled"`          // Whether a deposit exists for this day
	Note           string `json:"note"`            // Note of the deposit, empty when unfilled
	SavedOn        string `json:"saved_on"`        // Deposit date YYYY-MM-DD, empty when unfilled
}

// ComputeProgress derives the current total, target and percentage from a
// user's ledger. The percent guard against a non-positive target is kept even
// though valid data always has multiplier >= 1.
func ComputeProgress(records []*SavingRecord, multiplier int) Progress {
	var current int64
	for _, r := range records {
		current += r.Amount
	}

	target := AnnualBase * int64(multiplier)

	var percent float64
	if target > 0 {
		percent = roundPercent(current, target)
	}

	return Progress{
		Current: current,
		Target:  target,
		Percent: percent,
	}
}

// BuildDayGrid produces the full calendar view: one entry per day 1..365,
// in day order, marking which slots are filled.
func BuildDayGrid(records []*SavingRecord, multiplier int) []GridEntry {
	byDay := make(map[int]*SavingRecord, len(records))
	for _, r := range records {
		byDay[r.DayNumber] = r
	}

	grid := make([]GridEntry, 0, MaxDayNumber)
	for day := MinDayNumber; day <= MaxDayNumber; day++ {
		entry := GridEntry{
			Day:            day,
			ExpectedAmount: int64(day) * int64(multiplier),
		}
		if rec, ok := byDay[day]; ok {
			entry.Filled = true
			entry.Note = rec.Note
			entry.SavedOn = rec.SavedOn
		}
		grid = append(grid, entry)
	}
	return grid
}

// roundPercent computes current/target*100 rounded half-up to 1 decimal.
// decimal keeps the rounding exact; naive float division misrounds
// values like 0.05 at the boundary.
func roundPercent(current, target int64) float64 {
	pct := decimal.NewFromInt(current).
		Div(decimal.NewFromInt(target)).
		Mul(decimal.NewFromInt(100)).
		Round(1)
	f, _ := pct.Float64()
	return f
}
