package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/chiahui-lin/savings365/internal/domain/entity"
	errs "github.com/chiahui-lin/savings365/internal/domain/error"
	"github.com/chiahui-lin/savings365/internal/domain/port/usecase"
)

// Register creates a user and either joins an existing group (non-empty join
// code) or creates a fresh one. Group and user creation happen in one
// transaction so a failed registration never leaves an empty group behind.
func (s *Service) Register(ctx context.Context, req usecase.RegisterRequest) (*usecase.RegisterResult, error) {
	if req.Username == "" {
		return nil, errs.ErrInvalidUsername
	}
	if err := entity.ValidateMultiplier(req.Multiplier); err != nil {
		return nil, errs.NewRegistrationError(req.Username, req.JoinCode, err)
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: hashing password: %s", errs.ErrInternalServer, err.Error())
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.registerInTx(txCtx, req, digest)
	if err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Rollback failed after registration error", map[string]any{
				"username": req.Username,
				"error":    rbErr.Error(),
			})
		}
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", map[string]any{
		"user_id":    result.UserID,
		"username":   req.Username,
		"group_code": result.GroupCode,
		"joined":     req.JoinCode != "",
	})
	return result, nil
}

// registerInTx runs the registration steps against transaction-bound repositories
func (s *Service) registerInTx(txCtx context.Context, req usecase.RegisterRequest, digest string) (*usecase.RegisterResult, error) {
	userRepo := s.uow.GetUserRepository(txCtx)
	groupRepo := s.uow.GetGroupRepository(txCtx)

	// The unique index on username is the authoritative guard; this early
	// check only gives a cleaner error for the common case.
	if _, err := userRepo.GetByUsername(txCtx, req.Username); err == nil {
		return nil, errs.NewRegistrationError(req.Username, req.JoinCode, errs.ErrDuplicateUsername)
	} else if !errors.Is(err, errs.ErrUserNotFound) {
		return nil, err
	}

	var group *entity.Group
	if req.JoinCode != "" {
		existing, err := groupRepo.GetByCode(txCtx, req.JoinCode)
		if err != nil {
			if errors.Is(err, errs.ErrGroupNotFound) {
				return nil, errs.NewRegistrationError(req.Username, req.JoinCode, errs.ErrInvalidGroupCode)
			}
			return nil, err
		}
		group = existing
	} else {
		created, err := s.createGroup(txCtx, req.GroupName)
		if err != nil {
			return nil, err
		}
		group = created
	}

	user, err := entity.NewUser(req.Username, digest, group.Code, req.Multiplier, s.timeProvider)
	if err != nil {
		return nil, errs.NewRegistrationError(req.Username, req.JoinCode, err)
	}
	if err := userRepo.Create(txCtx, user); err != nil {
		if errors.Is(err, errs.ErrDuplicateUsername) {
			return nil, errs.NewRegistrationError(req.Username, req.JoinCode, err)
		}
		return nil, err
	}

	return &usecase.RegisterResult{
		UserID:    user.ID,
		GroupCode: group.Code,
		GroupName: group.Name,
	}, nil
}

// createGroup generates an invite code, verifies it is unused and retries on
// collision before giving up
func (s *Service) createGroup(txCtx context.Context, name string) (*entity.Group, error) {
	groupRepo := s.uow.GetGroupRepository(txCtx)

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := s.codes.GroupCode()

		exists, err := groupRepo.CodeExists(txCtx, code)
		if err != nil {
			return nil, err
		}
		if exists {
			s.logger.Warn("Group invite code collision, regenerating", map[string]any{
				"attempt": attempt + 1,
			})
			continue
		}

		group, err := entity.NewGroup(code, name)
		if err != nil {
			return nil, err
		}
		if err := groupRepo.Create(txCtx, group); err != nil {
			// A concurrent registration can win the code between the check
			// and the insert; treat the constraint hit as another collision.
			if errors.Is(err, errs.ErrConstraintViolation) {
				continue
			}
			return nil, err
		}
		return group, nil
	}

	return nil, errs.ErrGroupCodeExhausted
}
