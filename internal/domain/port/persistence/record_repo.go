package persistence

import (
	"context"

	"github.com/chiahui-lin/savings365/internal/domain/entity"
)

// UpsertResult reports what an Upsert call did to the day slot
type UpsertResult struct {
	RecordID      uint64 // ID of the created or updated record
	Created       bool   // True when a new slot was filled, false on update
	ReplacedPhoto string // Previous photo reference when the update replaced one
}

// RecordRepository defines essential methods to interact with ledger data
type RecordRepository interface {
	// Upsert writes the (user, day) slot. A missing slot is created with the
	// given amount; an existing slot only has note and saved_on updated, plus
	// photo when the incoming record carries one (an empty photo leaves the
	// stored reference unchanged). Amount and day number are immutable after
	// creation. The unique (user_id, day_number) index is the authoritative
	// guard under concurrent double-submission, not an application-level
	// existence check.
	//
	// Possible errors:
	// - ErrStorageUnavailable: If the store cannot be reached
	Upsert(ctx context.Context, record *entity.SavingRecord) (*UpsertResult, error)

	// GetByUserAndDay retrieves the single slot for (user, day)
	//
	// Possible errors:
	// - ErrRecordNotFound: If the slot is empty
	// - ErrStorageUnavailable: If the store cannot be reached
	GetByUserAndDay(ctx context.Context, userID uint64, dayNumber int) (*entity.SavingRecord, error)

	// DeleteByUserAndDay removes the slot if present. Deleting an empty
	// slot is a no-op, not an error.
	// Returns the removed record's photo reference, if any, so the caller
	// can release the stored file.
	//
	// Possible errors:
	// - ErrStorageUnavailable: If the store cannot be reached
	DeleteByUserAndDay(ctx context.Context, userID uint64, dayNumber int) (removedPhoto string, err error)

	// ClearForUser removes every ledger row for the user and returns the
	// photo references of the removed rows. Used by multiplier changes and
	// account deletion.
	//
	// Possible errors:
	// - ErrStorageUnavailable: If the store cannot be reached
	ClearForUser(ctx context.Context, userID uint64) (removedPhotos []string, err error)

	// ListForUser returns all of the user's records ordered by day number
	//
	// Possible errors:
	// - ErrStorageUnavailable: If the store cannot be reached
	ListForUser(ctx context.Context, userID uint64) ([]*entity.SavingRecord, error)
}
