package league

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultTargetScore = 100

	// Points awarded by the one-click shortcuts on the match page
	BonusPoints = 30

	// Upper bound for one side in a single round. A full double-six set
	// holds 168 pips, so this leaves room for house scoring rules while
	// keeping running totals far from integer overflow.
	MaxRoundPoints = 1000
)

// Outcome describes the stat changes a decided match applies to its two teams.
type Outcome struct {
	WinnerID    uuid.UUID
	LoserID     uuid.UUID
	WinnerDelta TeamStats
	LoserDelta  TeamStats
}

// NewMatch validates the pairing and returns an open match with zeroed scores.
func NewMatch(teamAID, teamBID uuid.UUID, targetScore int, now time.Time) (*Match, error) {
	if teamAID == uuid.Nil || teamBID == uuid.Nil {
		return nil, Invalidf("both teams are required")
	}
	if teamAID == teamBID {
		return nil, Invalidf("a team cannot play against itself")
	}
	if targetScore <= 0 {
		return nil, Invalidf("target score must be positive, got %d", targetScore)
	}

	return &Match{
		ID:          uuid.New(),
		TeamAID:     teamAID,
		TeamBID:     teamBID,
		TargetScore: targetScore,
		CreatedAt:   now,
	}, nil
}

// BonusRound returns the points of a shortcut round won outright by side.
func BonusRound(side Side) (pointsA, pointsB int) {
	if side == SideB {
		return 0, BonusPoints
	}
	return BonusPoints, 0
}

// ApplyRound appends round number existingRounds+1 to the match and runs the
// win check. The match is only modified when the round is accepted. A non-nil
// Outcome means this round decided the match.
//
// A tie at or above the target leaves the match open; the next round that
// breaks the tie decides it.
func (m *Match) ApplyRound(existingRounds, pointsA, pointsB int, now time.Time) (Round, *Outcome, error) {
	if m.IsFinished() {
		return Round{}, nil, ErrMatchAlreadyFinished
	}
	if pointsA < 0 || pointsB < 0 {
		return Round{}, nil, Invalidf("points cannot be negative (%d, %d)", pointsA, pointsB)
	}
	if pointsA > MaxRoundPoints || pointsB > MaxRoundPoints {
		return Round{}, nil, Invalidf("a round cannot award more than %d points to one side", MaxRoundPoints)
	}
	if existingRounds < 0 {
		return Round{}, nil, Invalidf("round count cannot be negative")
	}

	round := Round{
		ID:        uuid.New(),
		MatchID:   m.ID,
		Number:    existingRounds + 1,
		PointsA:   pointsA,
		PointsB:   pointsB,
		CreatedAt: now,
	}

	m.ScoreA += pointsA
	m.ScoreB += pointsB

	return round, m.decide(now), nil
}

func (m *Match) decide(now time.Time) *Outcome {
	if m.WinnerTeamID != nil {
		return nil
	}
	if m.ScoreA < m.TargetScore && m.ScoreB < m.TargetScore {
		return nil
	}
	if m.ScoreA == m.ScoreB {
		return nil
	}

	winner, loser := m.TeamAID, m.TeamBID
	winnerScore, loserScore := m.ScoreA, m.ScoreB
	if m.ScoreB > m.ScoreA {
		winner, loser = loser, winner
		winnerScore, loserScore = loserScore, winnerScore
	}

	finishedAt := now
	m.WinnerTeamID = &winner
	m.FinishedAt = &finishedAt

	return &Outcome{
		WinnerID: winner,
		LoserID:  loser,
		WinnerDelta: TeamStats{
			GamesPlayed:   1,
			GamesWon:      1,
			PointsFor:     winnerScore,
			PointsAgainst: loserScore,
		},
		LoserDelta: TeamStats{
			GamesPlayed:   1,
			GamesLost:     1,
			PointsFor:     loserScore,
			PointsAgainst: winnerScore,
		},
	}
}

// Restart puts an open match back to its initial state. Its rounds must be
// discarded by the caller.
func (m *Match) Restart() error {
	if m.IsFinished() {
		return ErrMatchAlreadyFinished
	}
	m.ScoreA = 0
	m.ScoreB = 0
	m.WinnerTeamID = nil
	m.FinishedAt = nil
	return nil
}

// CanDelete reports whether the match may still be removed.
func (m *Match) CanDelete() error {
	if m.IsFinished() {
		return ErrMatchAlreadyFinished
	}
	return nil
}
