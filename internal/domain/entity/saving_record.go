package entity

import (
	"time"

	errs "github.com/chiahui-lin/savings365/internal/domain/error"
	coreport "github.com/chiahui-lin/savings365/internal/domain/port/core"
)

// Day number bounds for the 365-day calendar
const (
	MinDayNumber = 1
	MaxDayNumber = 365
)

// SavingRecord represents one filled day slot in a user's ledger.
// At most one record exists per (user, day); the day slot is the natural key.
type SavingRecord struct {
	ID        uint64    // Unique identifier for the record
	UserID    uint64    // Owner of this ledger entry
	DayNumber int       // Day slot in [1, 365]
	Amount    int64     // day_number * multiplier, fixed at creation time
	Note      string    // Optional free-text note
	Photo     string    // Optional opaque reference to a stored photo
	SavedOn   string    // Date the deposit was made, YYYY-MM-DD
	CreatedAt time.Time // When the record was first written
}

// NewSavingRecord creates a ledger entry for the given day. The amount is
// derived from the multiplier at write time and never recomputed afterwards.
func NewSavingRecord(userID uint64, dayNumber, multiplier int, note, photo, savedOn string, timeProvider coreport.TimeProvider) (*SavingRecord, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if err := ValidateDayNumber(dayNumber); err != nil {
		return nil, err
	}
	if err := ValidateMultiplier(multiplier); err != nil {
		return nil, err
	}

	now := timeProvider.Now()
	if savedOn == "" {
		savedOn = now.Format(SavedOnLayout)
	}

	return &SavingRecord{
		UserID:    userID,
		DayNumber: dayNumber,
		Amount:    int64(dayNumber) * int64(multiplier),
		Note:      note,
		Photo:     photo,
		SavedOn:   savedOn,
		CreatedAt: now,
	}, nil
}

// SavedOnLayout is the wire format for deposit dates
const SavedOnLayout = "2006-01-02"

// ValidateDayNumber checks that a day number falls on the 365-day calendar
func ValidateDayNumber(dayNumber int) error {
	if dayNumber < MinDayNumber || dayNumber > MaxDayNumber {
		return errs.ErrInvalidDay
	}
	return nil
}

// NormalizeSavedOn returns the deposit date to store. Empty or malformed
// input falls back to the current date, matching the lenient date handling
// of the deposit form.
func NormalizeSavedOn(savedOn string, now time.Time) string {
	if savedOn == "" {
		return now.Format(SavedOnLayout)
	}
	if _, err := time.Parse(SavedOnLayout, savedOn); err != nil {
		return now.Format(SavedOnLayout)
	}
	return savedOn
}
