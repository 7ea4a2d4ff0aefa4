package service

import (
	"context"
	"testing"

	"github.com/AdamBeresnev/domino-league/internal/dbtest"
	"github.com/AdamBeresnev/domino-league/internal/league"
	"github.com/AdamBeresnev/domino-league/internal/store"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

type testLeague struct {
	db      *sqlx.DB
	players *PlayerService
	teams   *TeamService
	matches *MatchService
}

func newTestLeague(t *testing.T, rules MatchRules) *testLeague {
	t.Helper()

	db := dbtest.Setup(t)
	playerStore := store.NewPlayerStore(db)
	teamStore := store.NewTeamStore(db)

	return &testLeague{
		db:      db,
		players: NewPlayerService(db, playerStore),
		teams:   NewTeamService(db, teamStore, playerStore),
		matches: NewMatchService(db, store.NewMatchStore(db), teamStore, rules),
	}
}

// createTeam creates two fresh players and pairs them.
func (l *testLeague) createTeam(t *testing.T, name string) *league.Team {
	t.Helper()
	ctx := context.Background()

	p1, err := l.players.CreatePlayer(ctx, name+" one")
	require.NoError(t, err)
	p2, err := l.players.CreatePlayer(ctx, name+" two")
	require.NoError(t, err)

	team, err := l.teams.CreateTeam(ctx, TeamInput{Name: name, Player1ID: p1.ID, Player2ID: p2.ID})
	require.NoError(t, err)
	return team
}

func (l *testLeague) getTeam(t *testing.T, team *league.Team) *league.Team {
	t.Helper()
	fetched, err := l.teams.store.GetTeam(context.Background(), team.ID)
	require.NoError(t, err)
	return fetched
}
