package usecase

import (
	"context"

	"github.com/chiahui-lin/savings365/internal/domain/entity"
)

// LeaderboardEntry is one ranked member of the group view
type LeaderboardEntry struct {
	Name        string  `json:"name"`
	Percent     float64 `json:"percent"`
	Multiplier  int     `json:"multiplier"`
	Target      int64   `json:"target"`
	IsRequester bool    `json:"is_me"`
}

// Dashboard is the canonical read model consumed by the rendering layer.
// It is assembled in one call, independent of transport.
type Dashboard struct {
	GroupName   string             `json:"group_name"`
	GroupCode   string             `json:"group_code"`
	UserName    string             `json:"user_name"`
	Multiplier  int                `json:"multiplier"`
	Current     int64              `json:"current"`
	Target      int64              `json:"target"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	Grid        []entity.GridEntry `json:"grid"`
}

// DashboardUseCase defines methods for the aggregated group views
type DashboardUseCase interface {
	// BuildLeaderboard ranks all members of the group by percent descending.
	// Ties keep member load order (user ID ascending) via stable sort.
	BuildLeaderboard(ctx context.Context, groupCode string, requesterID uint64) ([]LeaderboardEntry, error)

	// BuildDashboard assembles the full dashboard payload for the user
	BuildDashboard(ctx context.Context, userID uint64) (*Dashboard, error)
}
