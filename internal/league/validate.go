package league

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const MaxNameLength = 100

func NewPlayer(name string, now time.Time) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, Invalidf("player name is required")
	}
	if len(name) > MaxNameLength {
		return nil, Invalidf("player name exceeds %d characters", MaxNameLength)
	}
	return &Player{
		ID:        uuid.New(),
		Name:      name,
		Active:    true,
		CreatedAt: now,
	}, nil
}

// NewTeam pairs two distinct players. An empty name falls back to "P1 & P2".
func NewTeam(name string, player1, player2 *Player) (*Team, error) {
	if player1 == nil || player2 == nil {
		return nil, Invalidf("select both players")
	}
	if player1.ID == player2.ID {
		return nil, Invalidf("a player cannot be repeated in a team")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = truncateName(player1.Name + " & " + player2.Name)
	}
	if len(name) > MaxNameLength {
		return nil, Invalidf("team name exceeds %d characters", MaxNameLength)
	}

	return &Team{
		ID:        uuid.New(),
		Name:      name,
		Player1ID: player1.ID,
		Player2ID: player2.ID,
	}, nil
}

// truncateName cuts s to MaxNameLength bytes without splitting a rune.
func truncateName(s string) string {
	if len(s) <= MaxNameLength {
		return s
	}
	cut := MaxNameLength
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return strings.TrimSpace(s[:cut])
}
