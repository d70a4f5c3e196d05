package dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiahui-lin/savings365/internal/domain/entity"
	"github.com/chiahui-lin/savings365/internal/domain/usecase/dashboard"
	"github.com/chiahui-lin/savings365/internal/domain/usecase/usecasetest"
)

type dashboardFixture struct {
	store   *usecasetest.Store
	tp      *usecasetest.FixedTimeProvider
	service *dashboard.Service
}

func newDashboardFixture(t *testing.T) *dashboardFixture {
	t.Helper()

	store := usecasetest.NewStore()
	tp := usecasetest.NewFixedTimeProvider(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	service := dashboard.NewService(
		store.Users(),
		store.Groups(),
		store.Records(),
		usecasetest.NoopLogger{},
	)
	return &dashboardFixture{store: store, tp: tp, service: service}
}

func (f *dashboardFixture) addGroup(t *testing.T, code, name string) {
	t.Helper()
	group, err := entity.NewGroup(code, name)
	require.NoError(t, err)
	require.NoError(t, f.store.Groups().Create(context.Background(), group))
}

func (f *dashboardFixture) addMember(t *testing.T, username, groupCode string, multiplier int, days ...int) uint64 {
	t.Helper()
	user, err := entity.NewUser(username, "digest:x", groupCode, multiplier, f.tp)
	require.NoError(t, err)
	require.NoError(t, f.store.Users().Create(context.Background(), user))

	for _, day := range days {
		rec, err := entity.NewSavingRecord(user.ID, day, multiplier, "", "", "2025-03-01", f.tp)
		require.NoError(t, err)
		_, err = f.store.Records().Upsert(context.Background(), rec)
		require.NoError(t, err)
	}
	return user.ID
}

func TestBuildLeaderboard_RanksByPercentDescending(t *testing.T) {
	f := newDashboardFixture(t)
	f.addGroup(t, "aaaa1111", "Family pot")

	// alice saves days 100 and 200, bob saves day 50, carol saves nothing
	aliceID := f.addMember(t, "alice", "aaaa1111", 1, 100, 200)
	f.addMember(t, "bob", "aaaa1111", 1, 50)
	f.addMember(t, "carol", "aaaa1111", 1)

	entries, err := f.service.BuildLeaderboard(context.Background(), "aaaa1111", aliceID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "alice", entries[0].Name)
	assert.Equal(t, "bob", entries[1].Name)
	assert.Equal(t, "carol", entries[2].Name)
	assert.True(t, entries[0].IsRequester)
	assert.False(t, entries[1].IsRequester)
	assert.Equal(t, 0.0, entries[2].Percent)
}

func TestBuildLeaderboard_TieKeepsInsertionOrder(t *testing.T) {
	f := newDashboardFixture(t)
	f.addGroup(t, "aaaa1111", "Family pot")

	// Same day and multiplier means identical percentages
	f.addMember(t, "zoe", "aaaa1111", 1, 33)
	f.addMember(t, "adam", "aaaa1111", 1, 33)

	entries, err := f.service.BuildLeaderboard(context.Background(), "aaaa1111", 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// zoe registered first and stays first despite sorting after adam by name
	assert.Equal(t, "zoe", entries[0].Name)
	assert.Equal(t, "adam", entries[1].Name)
}

func TestBuildLeaderboard_PercentUsesOwnTarget(t *testing.T) {
	f := newDashboardFixture(t)
	f.addGroup(t, "aaaa1111", "Family pot")

	// Same absolute savings, different targets: the smaller target ranks higher
	f.addMember(t, "doubler", "aaaa1111", 2, 100) // 200 of 133590
	f.addMember(t, "single", "aaaa1111", 1, 200)  // 200 of 66795

	entries, err := f.service.BuildLeaderboard(context.Background(), "aaaa1111", 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "single", entries[0].Name)
	assert.Equal(t, entity.AnnualBase, entries[0].Target)
	assert.Equal(t, entity.AnnualBase*2, entries[1].Target)
}

func TestBuildDashboard(t *testing.T) {
	f := newDashboardFixture(t)
	f.addGroup(t, "aaaa1111", "Family pot")
	aliceID := f.addMember(t, "alice", "aaaa1111", 2, 1, 2, 3)
	f.addMember(t, "bob", "aaaa1111", 1, 300)

	view, err := f.service.BuildDashboard(context.Background(), aliceID)
	require.NoError(t, err)

	assert.Equal(t, "Family pot", view.GroupName)
	assert.Equal(t, "aaaa1111", view.GroupCode)
	assert.Equal(t, "alice", view.UserName)
	assert.Equal(t, 2, view.Multiplier)
	assert.Equal(t, int64(12), view.Current)
	assert.Equal(t, entity.AnnualBase*2, view.Target)
	assert.Len(t, view.Leaderboard, 2)
	require.Len(t, view.Grid, 365)

	assert.True(t, view.Grid[0].Filled)
	assert.True(t, view.Grid[2].Filled)
	assert.False(t, view.Grid[3].Filled)
	assert.Equal(t, int64(8), view.Grid[3].ExpectedAmount)
}

func TestBuildDashboard_MissingGroupUsesFallbackName(t *testing.T) {
	f := newDashboardFixture(t)

	// Membership points at a group that no longer exists
	aliceID := f.addMember(t, "alice", "gone0000", 1, 10)

	view, err := f.service.BuildDashboard(context.Background(), aliceID)
	require.NoError(t, err)

	assert.Equal(t, dashboard.FallbackPlanName, view.GroupName)
	assert.Equal(t, "gone0000", view.GroupCode)
}
