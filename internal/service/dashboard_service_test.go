package service

import (
	"context"
	"testing"

	"github.com/AdamBeresnev/domino-league/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboardData(t *testing.T) {
	l := newTestLeague(t, MatchRules{})
	ctx := context.Background()
	dashboard := NewDashboardService(store.NewPlayerStore(l.db), store.NewTeamStore(l.db), l.matches)

	data, err := dashboard.GetDashboardData(ctx)
	require.NoError(t, err)
	assert.Zero(t, data.TotalPlayers)
	assert.Nil(t, data.OngoingMatch)
	assert.Empty(t, data.LatestMatches)

	teamA := l.createTeam(t, "A")
	teamB := l.createTeam(t, "B")
	for i := 0; i < 6; i++ {
		_, err := l.matches.CreateMatch(ctx, MatchInput{TeamAID: teamA.ID, TeamBID: teamB.ID})
		require.NoError(t, err)
	}

	data, err = dashboard.GetDashboardData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, data.TotalPlayers)
	assert.Equal(t, 2, data.TotalTeams)
	assert.Equal(t, 6, data.TotalMatches)
	assert.Len(t, data.LatestMatches, dashboardLatestMatches)
	assert.NotNil(t, data.OngoingMatch)
}
