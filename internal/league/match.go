package league

import (
	"time"

	"github.com/google/uuid"
)

type MatchStatus string

const (
	MatchOpen     MatchStatus = "open"
	MatchFinished MatchStatus = "finished"
)

type Side string

const (
	SideA Side = "a"
	SideB Side = "b"
)

type Match struct {
	ID      uuid.UUID `db:"id"`
	TeamAID uuid.UUID `db:"team_a_id"`
	TeamBID uuid.UUID `db:"team_b_id"`

	TargetScore int `db:"target_score"`
	ScoreA      int `db:"score_a"`
	ScoreB      int `db:"score_b"`

	// Set once, by the round that decides the match
	WinnerTeamID *uuid.UUID `db:"winner_team_id"`

	CreatedAt  time.Time  `db:"created_at"`
	FinishedAt *time.Time `db:"finished_at"`
}

func (m *Match) Status() MatchStatus {
	if m.IsFinished() {
		return MatchFinished
	}
	return MatchOpen
}

func (m *Match) IsFinished() bool {
	return m.WinnerTeamID != nil
}

func (m *Match) IsWinner(teamID uuid.UUID) bool {
	return m.WinnerTeamID != nil && *m.WinnerTeamID == teamID
}

func (m *Match) HasTeam(teamID uuid.UUID) bool {
	return m.TeamAID == teamID || m.TeamBID == teamID
}

// TeamID returns the team playing on the given side.
func (m *Match) TeamID(side Side) uuid.UUID {
	if side == SideB {
		return m.TeamBID
	}
	return m.TeamAID
}
