package dashboard

import (
	"context"
	"errors"

	"github.com/chiahui-lin/savings365/internal/domain/entity"
	errs "github.com/chiahui-lin/savings365/internal/domain/error"
	coreport "github.com/chiahui-lin/savings365/internal/domain/port/core"
	"github.com/chiahui-lin/savings365/internal/domain/port/persistence"
	"github.com/chiahui-lin/savings365/internal/domain/port/usecase"
)

// FallbackPlanName is shown when the user's group record cannot be found.
// A missing group is tolerated on read so an orphaned membership still
// renders a dashboard.
const FallbackPlanName = "My savings plan"

// Service implements the aggregated group views
type Service struct {
	userRepo   persistence.UserRepository
	groupRepo  persistence.GroupRepository
	recordRepo persistence.RecordRepository
	logger     coreport.Logger
}

// NewService creates a new dashboard service instance
func NewService(
	userRepo persistence.UserRepository,
	groupRepo persistence.GroupRepository,
	recordRepo persistence.RecordRepository,
	logger coreport.Logger,
) *Service {
	return &Service{
		userRepo:   userRepo,
		groupRepo:  groupRepo,
		recordRepo: recordRepo,
		logger:     logger,
	}
}

var _ usecase.DashboardUseCase = (*Service)(nil)

// BuildDashboard assembles the canonical read model for the user's view:
// group header, own progress, the ranked leaderboard and the 365-day grid.
// No derived figure is persisted; everything is recomputed per read.
func (s *Service) BuildDashboard(ctx context.Context, userID uint64) (*usecase.Dashboard, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	groupName := FallbackPlanName
	group, err := s.groupRepo.GetByCode(ctx, user.GroupCode)
	switch {
	case err == nil:
		groupName = group.Name
	case errors.Is(err, errs.ErrGroupNotFound):
		s.logger.Warn("User's group is missing, using fallback name", map[string]any{
			"user_id":    userID,
			"group_code": user.GroupCode,
		})
	default:
		return nil, err
	}

	leaderboard, err := s.BuildLeaderboard(ctx, user.GroupCode, userID)
	if err != nil {
		return nil, err
	}

	records, err := s.recordRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	progress := entity.ComputeProgress(records, user.Multiplier)

	return &usecase.Dashboard{
		GroupName:   groupName,
		GroupCode:   user.GroupCode,
		UserName:    user.Username,
		Multiplier:  user.Multiplier,
		Current:     progress.Current,
		Target:      progress.Target,
		Leaderboard: leaderboard,
		Grid:        entity.BuildDayGrid(records, user.Multiplier),
	}, nil
}
