package account

import (
	"context"
)

// RenameGroup renames the group the user belongs to. Any member may rename;
// there is no ownership tier. Concurrent renames are last-writer-wins.
func (s *Service) RenameGroup(ctx context.Context, userID uint64, newName string) error {
	if newName == "" {
		// The original form silently ignores empty names
		return nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.groupRepo.Rename(ctx, user.GroupCode, newName); err != nil {
		return err
	}

	s.logger.Info("Group renamed", map[string]any{
		"group_code": user.GroupCode,
		"user_id":    userID,
	})
	return nil
}
