package ledger

import (
	"context"

	"github.com/chiahui-lin/savings365/internal/domain/entity"
	errs "github.com/chiahui-lin/savings365/internal/domain/error"
)

// DeleteDeposit removes the (user, day) slot. Deleting an empty slot is a
// no-op so a double-submitted delete cannot fail.
func (s *Service) DeleteDeposit(ctx context.Context, userID uint64, dayNumber int) error {
	if userID == 0 {
		return errs.ErrInvalidUserID
	}
	if err := entity.ValidateDayNumber(dayNumber); err != nil {
		return err
	}

	removedPhoto, err := s.recordRepo.DeleteByUserAndDay(ctx, userID, dayNumber)
	if err != nil {
		return err
	}

	s.discardPhoto(ctx, removedPhoto)

	s.logger.Info("Deposit deleted", map[string]any{
		"user_id":    userID,
		"day_number": dayNumber,
	})
	return nil
}

// ListForUser returns the user's records ordered by day number
func (s *Service) ListForUser(ctx context.Context, userID uint64) ([]*entity.SavingRecord, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	return s.recordRepo.ListForUser(ctx, userID)
}
