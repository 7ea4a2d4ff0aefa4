package league

import (
	"time"

	"github.com/google/uuid"
)

// Round is one scoring hand inside a match. Rounds are never updated.
type Round struct {
	ID        uuid.UUID `db:"id"`
	MatchID   uuid.UUID `db:"match_id"`
	Number    int       `db:"number"`
	PointsA   int       `db:"points_a"`
	PointsB   int       `db:"points_b"`
	CreatedAt time.Time `db:"created_at"`
}
