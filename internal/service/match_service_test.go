package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/AdamBeresnev/domino-league/internal/league"
	"github.com/AdamBeresnev/domino-league/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRound_ScenarioToTarget(t *testing.T) {
	l := newTestLeague(t, MatchRules{})
	ctx := context.Background()

	teamA := l.createTeam(t, "Los Tranques")
	teamB := l.createTeam(t, "La Chancleta")

	match, err := l.matches.CreateMatch(ctx, MatchInput{TeamAID: teamA.ID, TeamBID: teamB.ID})
	require.NoError(t, err)
	assert.Equal(t, league.DefaultTargetScore, match.TargetScore)

	_, err = l.matches.AwardBonus(ctx, match.ID, league.SideA)
	require.NoError(t, err)
	_, err = l.matches.AwardBonus(ctx, match.ID, league.SideB)
	require.NoError(t, err)
	result, err := l.matches.RecordRound(ctx, match.ID, 40, 0)
	require.NoError(t, err)

	assert.False(t, result.Finished())
	assert.Equal(t, 70, result.Match.ScoreA)
	assert.Equal(t, 30, result.Match.ScoreB)

	result, err = l.matches.RecordRound(ctx, match.ID, 30, 0)
	require.NoError(t, err)
	require.True(t, result.Finished())
	assert.Equal(t, 4, result.Round.Number)

	data, err := l.matches.GetMatchViewData(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, data.Match.ScoreA)
	assert.Equal(t, 30, data.Match.ScoreB)
	require.NotNil(t, data.Winner())
	assert.Equal(t, teamA.ID, data.Winner().ID)
	assert.NotNil(t, data.Match.FinishedAt)
	assert.Equal(t, league.MatchFinished, data.Match.Status())
	require.Len(t, data.Rounds, 4)

	winner := l.getTeam(t, teamA)
	loser := l.getTeam(t, teamB)
	assert.Equal(t, league.TeamStats{GamesPlayed: 1, GamesWon: 1, PointsFor: 100, PointsAgainst: 30}, winner.TeamStats)
	assert.Equal(t, league.TeamStats{GamesPlayed: 1, GamesLost: 1, PointsFor: 30, PointsAgainst: 100}, loser.TeamStats)
	assert.Equal(t, winner.PointsFor, loser.PointsAgainst)
	assert.Equal(t, winner.PointsAgainst, loser.PointsFor)
}

func TestRecordRound_FinishedMatchIsTerminal(t *testing.T) {
	l := newTestLeague(t, MatchRules{})
	ctx := context.Background()

	teamA := l.createTeam(t, "A")
	teamB := l.createTeam(t, "B")
	match, err := l.matches.CreateMatch(ctx, MatchInput{TeamAID: teamA.ID, TeamBID: teamB.ID, TargetScore: utils.Ptr(50)})
	require.NoError(t, err)

	result, err := l.matches.RecordRound(ctx, match.ID, 0, 60)
	require.NoError(t, err)
	require.True(t, result.Finished())

	_, err = l.matches.RecordRound(ctx, match.ID, 10, 0)
	assert.ErrorIs(t, err, league.ErrMatchAlreadyFinished)

	_, err = l.matches.AwardBonus(ctx, match.ID, league.SideA)
	assert.ErrorIs(t, err, league.ErrMatchAlreadyFinished)

	data, err := l.matches.GetMatchViewData(ctx, match.ID)
	require.NoError(t, err)
	assert.Len(t, data.Rounds, 1)
	assert.Equal(t, 0, data.Match.ScoreA)

	// Stats were applied exactly once
	assert.Equal(t, 1, l.getTeam(t, teamB).GamesPlayed)
	assert.Equal(t, 1, l.getTeam(t, teamA).GamesPlayed)
}

func TestRecordRound_InvalidInput(t *testing.T) {
	l := newTestLeague(t, MatchRules{})
	ctx := context.Background()

	teamA := l.createTeam(t, "A")
	teamB := l.createTeam(t, "B")
	match, err := l.matches.CreateMatch(ctx, MatchInput{TeamAID: teamA.ID, TeamBID: teamB.ID})
	require.NoError(t, err)

	_, err = l.matches.RecordRound(ctx, match.ID, -5, 10)
	assert.ErrorIs(t, err, league.ErrInvalidInput)

	_, err = l.matches.RecordRound(ctx, uuid.New(), 5, 10)
	assert.ErrorIs(t, err, league.ErrNotFound)

	data, err := l.matches.GetMatchViewData(ctx, match.ID)
	require.NoError(t, err)
	assert.Empty(t, data.Rounds)
	assert.Zero(t, data.Match.ScoreB)
}

func TestRecordRound_TieAtTargetStaysOpen(t *testing.T) {
	l := newTestLeague(t, MatchRules{})
	ctx := context.Background()

	teamA := l.createTeam(t, "A")
	teamB := l.createTeam(t, "B")
	match, err := l.matches.CreateMatch(ctx, MatchInput{TeamAID: teamA.ID, TeamBID: teamB.ID})
	require.NoError(t, err)

	result, err := l.matches.RecordRound(ctx, match.ID, 100, 100)
	require.NoError(t, err)
	assert.False(t, result.Finished())
	assert.Zero(t, l.getTeam(t, teamA).GamesPlayed)

	result, err = l.matches.RecordRound(ctx, match.ID, 0, 15)
	require.NoError(t, err)
	require.True(t, result.Finished())
	assert.True(t, result.Match.IsWinner(teamB.ID))
}

// Random round sequences keep the round log and the match score in sync, and
// the match is decided exactly when a side is strictly ahead at or past the
// target.
func TestRecordRound_RoundLogMatchesScore(t *testing.T) {
	l := newTestLeague(t, MatchRules{})
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	teamA := l.createTeam(t, "A")
	teamB := l.createTeam(t, "B")

	for game := 0; game < 5; game++ {
		match, err := l.matches.CreateMatch(ctx, MatchInput{TeamAID: teamA.ID, TeamBID: teamB.ID, TargetScore: utils.Ptr(150)})
		require.NoError(t, err)

		sumA, sumB := 0, 0
		for n := 1; ; n++ {
			a, b := rng.Intn(40), rng.Intn(40)
			result, err := l.matches.RecordRound(ctx, match.ID, a, b)
			require.NoError(t, err)

			sumA += a
			sumB += b
			assert.Equal(t, n, result.Round.Number)
			assert.Equal(t, sumA, result.Match.ScoreA)
			assert.Equal(t, sumB, result.Match.ScoreB)

			decided := max(sumA, sumB) >= 150 && sumA != sumB
			assert.Equal(t, decided, result.Finished(), "round %d: %d-%d", n, sumA, sumB)
			if result.Finished() {
				break
			}
		}

		data, err := l.matches.GetMatchViewData(ctx, match.ID)
		require.NoError(t, err)
		totalA, totalB := 0, 0
		for i, r := range data.Rounds {
			assert.Equal(t, i+1, r.Number)
			totalA += r.PointsA
			totalB += r.PointsB
		}
		assert.Equal(t, data.Match.ScoreA, totalA)
		assert.Equal(t, data.Match.ScoreB, totalB)
	}

	a, b := l.getTeam(t, teamA), l.getTeam(t, teamB)
	assert.Equal(t, 5, a.GamesPlayed)
	assert.Equal(t, 5, b.GamesPlayed)
	assert.Equal(t, 5, a.GamesWon+b.GamesWon)
	assert.Equal(t, a.GamesWon, b.GamesLost)
	assert.Equal(t, a.PointsFor, b.PointsAgainst)
}

func TestRecordRound_ConcurrentRoundsAreSerialized(t *testing.T) {
	l := newTestLeague(t, MatchRules{})
	ctx := context.Background()

	teamA := l.createTeam(t, "A")
	teamB := l.createTeam(t, "B")
	match, err := l.matches.CreateMatch(ctx, MatchInput{TeamAID: teamA.ID, TeamBID: teamB.ID, TargetScore: utils.Ptr(1000)})
	require.NoError(t, err)

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.matches.RecordRound(ctx, match.ID, 5, 3)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	data, err := l.matches.GetMatchViewData(ctx, match.ID)
	require.NoError(t, err)
	require.Len(t, data.Rounds, workers)
	for i, r := range data.Rounds {
		assert.Equal(t, i+1, r.Number)
	}
	assert.Equal(t, 5*workers, data.Match.ScoreA)
	assert.Equal(t, 3*workers, data.Match.ScoreB)
	assert.Zero(t, l.matches.locks.size())
}

func TestRecordRound_RollsBackOnStatsFailure(t *testing.T) {
	l := newTestLeague(t, MatchRules{})
	ctx := context.Background()

	teamA := l.createTeam(t, "A")
	teamB := l.createTeam(t, "B")
	match, err := l.matches.CreateMatch(ctx, MatchInput{TeamAID: teamA.ID, TeamBID: teamB.ID})
	require.NoError(t, err)

	_, err = l.matches.RecordRound(ctx, match.ID, 60, 20)
	require.NoError(t, err)

	_, err = l.db.Exec(`CREATE TRIGGER block_team_stats BEFORE UPDATE ON teams
		BEGIN SELECT RAISE(ABORT, 'team stats are locked'); END;`)
	require.NoError(t, err)

	_, err = l.matches.RecordRound(ctx, match.ID, 50, 0)
	require.Error(t, err)

	data, err := l.matches.GetMatchViewData(ctx, match.ID)
	require.NoError(t, err)
	assert.Len(t, data.Rounds, 1)
	assert.Equal(t, 60, data.Match.ScoreA)
	assert.Nil(t, data.Match.WinnerTeamID)

	_, err = l.db.Exec("DROP TRIGGER block_team_stats")
	require.NoError(t, err)

	result, err := l.matches.RecordRound(ctx, match.ID, 50, 0)
	require.NoError(t, err)
	assert.True(t, result.Finished())
	assert.Equal(t, 2, result.Round.Number)
}

func TestRestartMatch(t *testing.T) {
	l := newTestLeague(t, MatchRules{})
	ctx := context.Background()

	teamA := l.createTeam(t, "A")
	teamB := l.createTeam(t, "B")
	match, err := l.matches.CreateMatch(ctx, MatchInput{TeamAID: teamA.ID, TeamBID: teamB.ID})
	require.NoError(t, err)

	_, err = l.matches.RecordRound(ctx, match.ID, 30, 20)
	require.NoError(t, err)
	_, err = l.matches.RecordRound(ctx, match.ID, 10, 25)
	require.NoError(t, err)

	require.NoError(t, l.matches.RestartMatch(ctx, match.ID))

	data, err := l.matches.GetMatchViewData(ctx, match.ID)
	require.NoError(t, err)
	assert.Empty(t, data.Rounds)
	assert.Zero(t, data.Match.ScoreA)
	assert.Zero(t, data.Match.ScoreB)

	result, err := l.matches.RecordRound(ctx, match.ID, 100, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Round.Number)
	require.True(t, result.Finished())

	err = l.matches.RestartMatch(ctx, match.ID)
	assert.ErrorIs(t, err, league.ErrMatchAlreadyFinished)

	data, err = l.matches.GetMatchViewData(ctx, match.ID)
	require.NoError(t, err)
	assert.Len(t, data.Rounds, 1)
	assert.Equal(t, 100, data.Match.ScoreA)
}

func TestDeleteMatch(t *testing.T) {
	l := newTestLeague(t, MatchRules{})
	ctx := context.Background()

	teamA := l.createTeam(t, "A")
	teamB := l.createTeam(t, "B")

	open, err := l.matches.CreateMatch(ctx, MatchInput{TeamAID: teamA.ID, TeamBID: teamB.ID})
	require.NoError(t, err)
	_, err = l.matches.RecordRound(ctx, open.ID, 20, 10)
	require.NoError(t, err)

	require.NoError(t, l.matches.DeleteMatch(ctx, open.ID))
	_, err = l.matches.GetMatchViewData(ctx, open.ID)
	assert.ErrorIs(t, err, league.ErrNotFound)

	var rounds int
	require.NoError(t, l.db.Get(&rounds, "SELECT COUNT(*) FROM rounds WHERE match_id = ?", open.ID))
	assert.Zero(t, rounds)

	finished, err := l.matches.CreateMatch(ctx, MatchInput{TeamAID: teamA.ID, TeamBID: teamB.ID})
	require.NoError(t, err)
	_, err = l.matches.RecordRound(ctx, finished.ID, 0, 110)
	require.NoError(t, err)

	err = l.matches.DeleteMatch(ctx, finished.ID)
	assert.ErrorIs(t, err, league.ErrMatchAlreadyFinished)

	err = l.matches.DeleteMatch(ctx, uuid.New())
	assert.ErrorIs(t, err, league.ErrNotFound)
}

func TestGlobalReset(t *testing.T) {
	l := newTestLeague(t, MatchRules{SingleOngoingMatch: true})
	ctx := context.Background()

	teamA := l.createTeam(t, "A")
	teamB := l.createTeam(t, "B")
	teamC := l.createTeam(t, "C")

	pairs := [][2]*league.Team{{teamA, teamB}, {teamB, teamC}, {teamC, teamA}}
	for _, p := range pairs {
		match, err := l.matches.CreateMatch(ctx, MatchInput{TeamAID: p[0].ID, TeamBID: p[1].ID})
		require.NoError(t, err)
		result, err := l.matches.RecordRound(ctx, match.ID, 120, 45)
		require.NoError(t, err)
		require.True(t, result.Finished())
	}

	require.NoError(t, l.matches.GlobalReset(ctx))

	matches, err := l.matches.ListMatches(ctx)
	require.NoError(t, err)
	assert.Empty(t, matches)

	var rounds int
	require.NoError(t, l.db.Get(&rounds, "SELECT COUNT(*) FROM rounds"))
	assert.Zero(t, rounds)

	teams, err := l.teams.ListTeams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 3)
	for _, team := range teams {
		assert.Equal(t, league.TeamStats{}, team.TeamStats, team.Name)
	}

	// Teams are free to be deleted again
	require.NoError(t, l.teams.DeleteTeam(ctx, teamA.ID))
}

func TestCreateMatch_Validation(t *testing.T) {
	l := newTestLeague(t, MatchRules{DefaultTargetScore: 200})
	ctx := context.Background()

	teamA := l.createTeam(t, "A")
	teamB := l.createTeam(t, "B")

	_, err := l.matches.CreateMatch(ctx, MatchInput{TeamAID: teamA.ID, TeamBID: teamA.ID})
	assert.ErrorIs(t, err, league.ErrInvalidInput)

	_, err = l.matches.CreateMatch(ctx, MatchInput{TeamAID: teamA.ID, TeamBID: uuid.New()})
	assert.ErrorIs(t, err, league.ErrInvalidInput)

	_, err = l.matches.CreateMatch(ctx, MatchInput{TeamAID: teamA.ID, TeamBID: teamB.ID, TargetScore: utils.Ptr(-10)})
	assert.ErrorIs(t, err, league.ErrInvalidInput)

	_, err = l.matches.CreateMatch(ctx, MatchInput{TeamAID: teamA.ID, TeamBID: teamB.ID, TargetScore: utils.Ptr(0)})
	assert.ErrorIs(t, err, league.ErrInvalidInput)

	match, err := l.matches.CreateMatch(ctx, MatchInput{TeamAID: teamA.ID, TeamBID: teamB.ID})
	require.NoError(t, err)
	assert.Equal(t, 200, match.TargetScore)
}

func TestCreateMatch_SingleOngoingMatch(t *testing.T) {
	l := newTestLeague(t, MatchRules{SingleOngoingMatch: true})
	ctx := context.Background()

	teamA := l.createTeam(t, "A")
	teamB := l.createTeam(t, "B")

	first, err := l.matches.CreateMatch(ctx, MatchInput{TeamAID: teamA.ID, TeamBID: teamB.ID})
	require.NoError(t, err)

	_, err = l.matches.CreateMatch(ctx, MatchInput{TeamAID: teamB.ID, TeamBID: teamA.ID})
	require.Error(t, err)
	assert.ErrorIs(t, err, league.ErrConflict)

	var ongoingErr *OngoingMatchError
	require.True(t, errors.As(err, &ongoingErr))
	assert.Equal(t, first.ID, ongoingErr.MatchID)

	ongoing, err := l.matches.GetOngoingMatch(ctx)
	require.NoError(t, err)
	require.NotNil(t, ongoing)
	assert.Equal(t, first.ID, ongoing.ID)

	_, err = l.matches.RecordRound(ctx, first.ID, 100, 0)
	require.NoError(t, err)

	ongoing, err = l.matches.GetOngoingMatch(ctx)
	require.NoError(t, err)
	assert.Nil(t, ongoing)

	_, err = l.matches.CreateMatch(ctx, MatchInput{TeamAID: teamB.ID, TeamBID: teamA.ID})
	require.NoError(t, err)
}

func TestListMatches(t *testing.T) {
	l := newTestLeague(t, MatchRules{})
	ctx := context.Background()

	teamA := l.createTeam(t, "A")
	teamB := l.createTeam(t, "B")

	for i := 0; i < 3; i++ {
		_, err := l.matches.CreateMatch(ctx, MatchInput{TeamAID: teamA.ID, TeamBID: teamB.ID})
		require.NoError(t, err)
	}

	summaries, err := l.matches.ListMatches(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	for _, s := range summaries {
		assert.Equal(t, "A", s.TeamA.Name)
		assert.Equal(t, "B", s.TeamB.Name)
	}
	assert.False(t, summaries[0].Match.CreatedAt.Before(summaries[2].Match.CreatedAt))

	latest, err := l.matches.ListLatestMatches(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, latest, 2)
}
