package league

import (
	"math"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatch(t *testing.T, target int) *Match {
	t.Helper()
	m, err := NewMatch(uuid.New(), uuid.New(), target, time.Now().UTC())
	require.NoError(t, err)
	return m
}

func TestNewMatch_Validation(t *testing.T) {
	teamID := uuid.New()

	_, err := NewMatch(teamID, teamID, 100, time.Now())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewMatch(teamID, uuid.Nil, 100, time.Now())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewMatch(teamID, uuid.New(), 0, time.Now())
	assert.ErrorIs(t, err, ErrInvalidInput)

	m, err := NewMatch(teamID, uuid.New(), 150, time.Now())
	require.NoError(t, err)
	assert.Equal(t, MatchOpen, m.Status())
	assert.Zero(t, m.ScoreA)
	assert.Zero(t, m.ScoreB)
	assert.Nil(t, m.WinnerTeamID)
}

func TestApplyRound_ReachesTarget(t *testing.T) {
	m := newTestMatch(t, 100)
	now := time.Now().UTC()

	rounds := [][2]int{{30, 0}, {0, 30}, {40, 0}}
	for i, r := range rounds {
		round, outcome, err := m.ApplyRound(i, r[0], r[1], now)
		require.NoError(t, err)
		assert.Nil(t, outcome)
		assert.Equal(t, i+1, round.Number)
		assert.Equal(t, m.ID, round.MatchID)
	}
	assert.Equal(t, 70, m.ScoreA)
	assert.Equal(t, 30, m.ScoreB)
	assert.False(t, m.IsFinished())

	round, outcome, err := m.ApplyRound(len(rounds), 30, 0, now)
	require.NoError(t, err)
	require.NotNil(t, outcome)
	assert.Equal(t, 4, round.Number)
	assert.Equal(t, 100, m.ScoreA)
	assert.Equal(t, 30, m.ScoreB)
	assert.True(t, m.IsWinner(m.TeamAID))
	require.NotNil(t, m.FinishedAt)
	assert.Equal(t, now, *m.FinishedAt)

	assert.Equal(t, m.TeamAID, outcome.WinnerID)
	assert.Equal(t, m.TeamBID, outcome.LoserID)
	assert.Equal(t, TeamStats{GamesPlayed: 1, GamesWon: 1, PointsFor: 100, PointsAgainst: 30}, outcome.WinnerDelta)
	assert.Equal(t, TeamStats{GamesPlayed: 1, GamesLost: 1, PointsFor: 30, PointsAgainst: 100}, outcome.LoserDelta)
}

func TestApplyRound_WinDetection(t *testing.T) {
	testCases := []struct {
		name       string
		rounds     [][2]int
		wantWinner *Side
	}{
		{name: "below target", rounds: [][2]int{{50, 40}, {40, 50}}, wantWinner: nil},
		{name: "side b crosses", rounds: [][2]int{{20, 60}, {10, 45}}, wantWinner: sidePtr(SideB)},
		{name: "both cross, a higher", rounds: [][2]int{{90, 90}, {30, 20}}, wantWinner: sidePtr(SideA)},
		{name: "tie above target stays open", rounds: [][2]int{{60, 60}, {50, 50}}, wantWinner: nil},
		{name: "tie broken by next round", rounds: [][2]int{{100, 100}, {0, 5}}, wantWinner: sidePtr(SideB)},
		{name: "zero round", rounds: [][2]int{{0, 0}}, wantWinner: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestMatch(t, 100)
			for i, r := range tc.rounds {
				_, _, err := m.ApplyRound(i, r[0], r[1], time.Now())
				require.NoError(t, err)
			}
			if tc.wantWinner == nil {
				assert.Nil(t, m.WinnerTeamID)
				assert.Nil(t, m.FinishedAt)
				return
			}
			require.NotNil(t, m.WinnerTeamID)
			assert.Equal(t, m.TeamID(*tc.wantWinner), *m.WinnerTeamID)
		})
	}
}

func TestApplyRound_Rejections(t *testing.T) {
	m := newTestMatch(t, 100)

	_, _, err := m.ApplyRound(0, -1, 10, time.Now())
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, m.ScoreB, "rejected round must not touch the score")

	_, outcome, err := m.ApplyRound(0, 0, 120, time.Now())
	require.NoError(t, err)
	require.NotNil(t, outcome)

	_, outcome, err = m.ApplyRound(1, 10, 0, time.Now())
	assert.ErrorIs(t, err, ErrMatchAlreadyFinished)
	assert.Nil(t, outcome)
	assert.Zero(t, m.ScoreA)
}

func TestApplyRound_PointsCap(t *testing.T) {
	m := newTestMatch(t, 100)

	_, _, err := m.ApplyRound(0, 100, 100, time.Now())
	require.NoError(t, err)

	_, outcome, err := m.ApplyRound(1, math.MaxInt/2+1, 0, time.Now())
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, outcome)
	assert.Equal(t, 100, m.ScoreA)
	assert.Nil(t, m.WinnerTeamID)

	_, _, err = m.ApplyRound(1, 0, MaxRoundPoints+1, time.Now())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, outcome, err = m.ApplyRound(1, MaxRoundPoints, 0, time.Now())
	require.NoError(t, err)
	require.NotNil(t, outcome)
	assert.Equal(t, m.TeamAID, outcome.WinnerID)
	assert.Equal(t, 100+MaxRoundPoints, outcome.WinnerDelta.PointsFor)
	assert.Equal(t, 100, outcome.WinnerDelta.PointsAgainst)
}

func TestRestartAndDelete(t *testing.T) {
	m := newTestMatch(t, 100)
	_, _, err := m.ApplyRound(0, 40, 10, time.Now())
	require.NoError(t, err)

	require.NoError(t, m.CanDelete())
	require.NoError(t, m.Restart())
	assert.Zero(t, m.ScoreA)
	assert.Zero(t, m.ScoreB)

	_, _, err = m.ApplyRound(0, 100, 10, time.Now())
	require.NoError(t, err)

	assert.ErrorIs(t, m.Restart(), ErrMatchAlreadyFinished)
	assert.ErrorIs(t, m.CanDelete(), ErrMatchAlreadyFinished)
	assert.Equal(t, 100, m.ScoreA)
}

func TestBonusRound(t *testing.T) {
	a, b := BonusRound(SideA)
	assert.Equal(t, [2]int{BonusPoints, 0}, [2]int{a, b})

	a, b = BonusRound(SideB)
	assert.Equal(t, [2]int{0, BonusPoints}, [2]int{a, b})
}

func TestNewTeam(t *testing.T) {
	ana, err := NewPlayer("  Ana ", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Ana", ana.Name)
	assert.True(t, ana.Active)

	luis, err := NewPlayer("Luis", time.Now())
	require.NoError(t, err)

	team, err := NewTeam("", ana, luis)
	require.NoError(t, err)
	assert.Equal(t, "Ana & Luis", team.Name)
	assert.True(t, team.HasPlayer(luis.ID))

	_, err = NewTeam("Solo", ana, ana)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewTeam("Half", ana, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewPlayer("   ", time.Now())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewTeam_LongDefaultName(t *testing.T) {
	first, err := NewPlayer(strings.Repeat("a", 60), time.Now())
	require.NoError(t, err)
	second, err := NewPlayer(strings.Repeat("é", MaxNameLength/2), time.Now())
	require.NoError(t, err)

	// 60 + 3 + 100 bytes; the cut lands inside a two-byte rune.
	team, err := NewTeam("", first, second)
	require.NoError(t, err)
	assert.Len(t, team.Name, MaxNameLength-1)
	assert.True(t, utf8.ValidString(team.Name))
	assert.True(t, strings.HasPrefix(team.Name, first.Name+" & é"))

	_, err = NewTeam(strings.Repeat("x", MaxNameLength+1), first, second)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func sidePtr(s Side) *Side {
	return &s
}
