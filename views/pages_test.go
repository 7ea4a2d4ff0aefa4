package views

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/AdamBeresnev/domino-league/internal/league"
	"github.com/AdamBeresnev/domino-league/internal/middleware"
	"github.com/AdamBeresnev/domino-league/internal/service"
	"github.com/a-h/templ"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, c.Render(ctx, &sb))
	return sb.String()
}

func TestMatchesPage(t *testing.T) {
	teamA := league.Team{ID: uuid.New(), Name: "Ana & Beto"}
	teamB := league.Team{ID: uuid.New(), Name: "<Carla>"}
	winner := teamB.ID
	finished := service.MatchSummary{
		Match: league.Match{ID: uuid.New(), TeamAID: teamA.ID, TeamBID: teamB.ID, ScoreA: 40, ScoreB: 110, WinnerTeamID: &winner, CreatedAt: time.Now()},
		TeamA: teamA,
		TeamB: teamB,
	}
	open := service.MatchSummary{
		Match: league.Match{ID: uuid.New(), TeamAID: teamA.ID, TeamBID: teamB.ID, ScoreA: 30},
		TeamA: teamA,
		TeamB: teamB,
	}

	body := render(t, context.Background(), MatchesPage([]service.MatchSummary{finished, open}, Nav{}))

	assert.Contains(t, body, "<th>Date</th><th>Teams</th><th>Score</th><th>Status</th>")
	assert.NotContains(t, body, "Fecha")
	assert.Contains(t, body, "<td>40 - 110</td>")
	assert.Contains(t, body, "Won by &lt;Carla&gt;")
	assert.Contains(t, body, "In progress")
	assert.Contains(t, body, `href="/matches/`+finished.Match.ID.String()+`"`)
	assert.NotContains(t, body, `href="/stats"`)

	empty := render(t, context.Background(), MatchesPage(nil, Nav{ShowStats: true}))
	assert.Contains(t, empty, "No matches yet.")
	assert.Contains(t, empty, `href="/stats"`)
}

func TestLayoutFlash(t *testing.T) {
	ctx := context.WithValue(context.Background(), middleware.FlashKey, &middleware.Flash{
		Kind:    middleware.FlashDanger,
		Message: `A player named "Ana" already exists`,
	})

	body := render(t, ctx, PlayersPage(nil, Nav{}))
	assert.Contains(t, body, `<div class="flash" data-kind="danger">A player named &#34;Ana&#34; already exists</div>`)
	assert.Contains(t, body, "<h1>Players</h1>")
}

func TestTeamMembers(t *testing.T) {
	ana := league.Player{ID: uuid.New(), Name: "Ana"}
	beto := league.Player{ID: uuid.New(), Name: "Beto"}
	team := league.Team{Player1ID: beto.ID, Player2ID: ana.ID}

	assert.Equal(t, "Beto & Ana", teamMembers(team, []league.Player{ana, beto}))
}
