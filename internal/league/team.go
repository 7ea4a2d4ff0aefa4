package league

import "github.com/google/uuid"

// TeamStats are the cumulative results of every finished match a team played.
type TeamStats struct {
	GamesPlayed   int `db:"games_played"`
	GamesWon      int `db:"games_won"`
	GamesLost     int `db:"games_lost"`
	PointsFor     int `db:"points_for"`
	PointsAgainst int `db:"points_against"`
}

func (s TeamStats) PointDiff() int {
	return s.PointsFor - s.PointsAgainst
}

type Team struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Player1ID uuid.UUID `db:"player1_id"`
	Player2ID uuid.UUID `db:"player2_id"`
	TeamStats
}

// HasPlayer reports whether the player is one of the pair.
func (t *Team) HasPlayer(playerID uuid.UUID) bool {
	return t.Player1ID == playerID || t.Player2ID == playerID
}
