package account

import (
	"context"
	"errors"

	"github.com/chiahui-lin/savings365/internal/domain/entity"
	errs "github.com/chiahui-lin/savings365/internal/domain/error"
)

// Authenticate verifies the credentials and returns the user on success.
// Unknown username and wrong password both collapse into ErrAuthFailure so
// the response shape cannot be used to enumerate usernames. Response timing
// is not equalized between the two paths.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return nil, errs.ErrAuthFailure
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordDigest) {
		s.logger.Warn("Failed login attempt", map[string]any{
			"username": username,
		})
		return nil, errs.ErrAuthFailure
	}

	return user, nil
}

// ChangePassword verifies the old password and stores a digest of the new
// one. All of the user's sessions are revoked so every device has to log in
// again with the new password.
func (s *Service) ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(oldPassword, user.PasswordDigest) {
		return errs.ErrWrongOldPassword
	}

	digest, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	user.SetPasswordDigest(digest, s.timeProvider)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	if err := s.sessionRepo.DeleteForUser(ctx, userID); err != nil {
		s.logger.Error("Failed to revoke sessions after password change", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return err
	}

	s.logger.Info("Password changed", map[string]any{
		"user_id": userID,
	})
	return nil
}
