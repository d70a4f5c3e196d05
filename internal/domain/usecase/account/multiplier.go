package account

import (
	"context"

	"github.com/chiahui-lin/savings365/internal/domain/entity"
)

// SetMultiplier changes the user's multiplier. A changed value wipes the
// user's entire ledger: recorded amounts are fixed at write time and would
// no longer match day * multiplier. Clear and set run in one transaction so
// a concurrent read never sees old records against the new multiplier.
func (s *Service) SetMultiplier(ctx context.Context, userID uint64, multiplier int) error {
	if err := entity.ValidateMultiplier(multiplier); err != nil {
		return err
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}

	removedPhotos, err := s.setMultiplierInTx(txCtx, userID, multiplier)
	if err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Rollback failed after multiplier error", map[string]any{
				"user_id": userID,
				"error":   rbErr.Error(),
			})
		}
		return err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return err
	}

	// Stored files are released only after the rows are durably gone
	s.removePhotos(ctx, removedPhotos)

	s.logger.Info("Multiplier updated", map[string]any{
		"user_id":    userID,
		"multiplier": multiplier,
	})
	return nil
}

func (s *Service) setMultiplierInTx(txCtx context.Context, userID uint64, multiplier int) ([]string, error) {
	userRepo := s.uow.GetUserRepository(txCtx)
	recordRepo := s.uow.GetRecordRepository(txCtx)

	user, err := userRepo.GetByID(txCtx, userID)
	if err != nil {
		return nil, err
	}

	if user.Multiplier == multiplier {
		// Unchanged value keeps the ledger intact
		return nil, nil
	}

	removedPhotos, err := recordRepo.ClearForUser(txCtx, userID)
	if err != nil {
		return nil, err
	}

	if err := user.SetMultiplier(multiplier, s.timeProvider); err != nil {
		return nil, err
	}
	if err := userRepo.Update(txCtx, user); err != nil {
		return nil, err
	}

	return removedPhotos, nil
}
