package views

import (
	"sort"

	"github.com/AdamBeresnev/domino-league/internal/league"
	"github.com/AdamBeresnev/domino-league/internal/service"
)

// RoundRow is a round with the running score after it was played.
type RoundRow struct {
	league.Round
	TotalA int
	TotalB int
}

func PrepareRoundRows(rounds []league.Round) []RoundRow {
	sorted := make([]league.Round, len(rounds))
	copy(sorted, rounds)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Number < sorted[j].Number
	})

	rows := make([]RoundRow, 0, len(sorted))
	totalA, totalB := 0, 0
	for _, r := range sorted {
		totalA += r.PointsA
		totalB += r.PointsB
		rows = append(rows, RoundRow{Round: r, TotalA: totalA, TotalB: totalB})
	}
	return rows
}

// Progress returns how far score is towards target, capped at 100.
func Progress(score, target int) int {
	if target <= 0 {
		return 0
	}
	pct := score * 100 / target
	if pct > 100 {
		return 100
	}
	return pct
}

func teamMembers(t league.Team, players []league.Player) string {
	var first, second string
	for _, p := range players {
		switch p.ID {
		case t.Player1ID:
			first = p.Name
		case t.Player2ID:
			second = p.Name
		}
	}
	return first + " & " + second
}

func matchStatus(s service.MatchSummary) string {
	switch {
	case s.Match.IsWinner(s.TeamA.ID):
		return "Won by " + s.TeamA.Name
	case s.Match.IsWinner(s.TeamB.ID):
		return "Won by " + s.TeamB.Name
	}
	return "In progress"
}
