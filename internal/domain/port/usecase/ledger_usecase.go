package usecase

import (
	"context"
	"io"

	"github.com/chiahui-lin/savings365/internal/domain/entity"
)

// DepositRequest carries the deposit form fields for one day slot
type DepositRequest struct {
	DayNumber int
	Note      string
	SavedOn   string    // YYYY-MM-DD; empty or malformed falls back to today
	Photo     io.Reader // Optional uploaded photo content
	PhotoExt  string    // File extension of the upload, e.g. ".jpg"
}

// DepositResult reports the written slot
type DepositResult struct {
	RecordID uint64
	Created  bool // False when an existing slot was updated
}

// LedgerUseCase defines methods for ledger operations
type LedgerUseCase interface {
	// UpsertDeposit writes the (user, day) slot: first write fixes the amount
	// at day * multiplier, later writes only touch note, date and photo
	UpsertDeposit(ctx context.Context, userID uint64, req DepositRequest) (*DepositResult, error)

	// DeleteDeposit removes the slot if present; deleting an empty slot is a no-op
	DeleteDeposit(ctx context.Context, userID uint64, dayNumber int) error

	// ListForUser returns the user's records ordered by day number
	ListForUser(ctx context.Context, userID uint64) ([]*entity.SavingRecord, error)
}
