package dashboard

import (
	"context"
	"sort"

	"github.com/chiahui-lin/savings365/internal/domain/entity"
	"github.com/chiahui-lin/savings365/internal/domain/port/usecase"
)

// BuildLeaderboard ranks every member of the group by percent descending.
// Members load ordered by user ID ascending and the sort is stable, so
// equal percentages keep that order. This is the canonical tie-break.
func (s *Service) BuildLeaderboard(ctx context.Context, groupCode string, requesterID uint64) ([]usecase.LeaderboardEntry, error) {
	members, err := s.userRepo.ListByGroupCode(ctx, groupCode)
	if err != nil {
		return nil, err
	}

	entries := make([]usecase.LeaderboardEntry, 0, len(members))
	for _, member := range members {
		records, err := s.recordRepo.ListForUser(ctx, member.ID)
		if err != nil {
			return nil, err
		}

		progress := entity.ComputeProgress(records, member.Multiplier)
		entries = append(entries, usecase.LeaderboardEntry{
			Name:        member.Username,
			Percent:     progress.Percent,
			Multiplier:  member.Multiplier,
			Target:      progress.Target,
			IsRequester: member.ID == requesterID,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Percent > entries[j].Percent
	})

	return entries, nil
}
