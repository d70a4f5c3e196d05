package account

import (
	"context"
)

// DeleteAccount removes the user's ledger rows, the user record and every
// session of the user in one transaction. The group is left in place even if
// this was its last member: groups are not garbage-collected.
func (s *Service) DeleteAccount(ctx context.Context, userID uint64) error {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}

	removedPhotos, err := s.deleteAccountInTx(txCtx, userID)
	if err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Rollback failed after account deletion error", map[string]any{
				"user_id": userID,
				"error":   rbErr.Error(),
			})
		}
		return err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return err
	}

	s.removePhotos(ctx, removedPhotos)

	s.logger.Info("Account deleted", map[string]any{
		"user_id": userID,
	})
	return nil
}

func (s *Service) deleteAccountInTx(txCtx context.Context, userID uint64) ([]string, error) {
	userRepo := s.uow.GetUserRepository(txCtx)
	recordRepo := s.uow.GetRecordRepository(txCtx)
	sessionRepo := s.uow.GetSessionRepository(txCtx)

	removedPhotos, err := recordRepo.ClearForUser(txCtx, userID)
	if err != nil {
		return nil, err
	}

	if err := userRepo.Delete(txCtx, userID); err != nil {
		return nil, err
	}

	if err := sessionRepo.DeleteForUser(txCtx, userID); err != nil {
		return nil, err
	}

	return removedPhotos, nil
}
