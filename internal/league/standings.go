package league

import (
	"sort"
	"strings"
)

// SortStandings orders teams by wins, then point difference, then fewer
// games played, then name.
func SortStandings(teams []Team) {
	sort.SliceStable(teams, func(i, j int) bool {
		a, b := teams[i], teams[j]
		if a.GamesWon != b.GamesWon {
			return a.GamesWon > b.GamesWon
		}
		if a.PointDiff() != b.PointDiff() {
			return a.PointDiff() > b.PointDiff()
		}
		if a.GamesPlayed != b.GamesPlayed {
			return a.GamesPlayed < b.GamesPlayed
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
}
