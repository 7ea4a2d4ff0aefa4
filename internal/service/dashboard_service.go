package service

import (
	"context"

	"github.com/AdamBeresnev/domino-league/internal/league"
	"github.com/AdamBeresnev/domino-league/internal/store"
)

const dashboardLatestMatches = 5

type DashboardService struct {
	players *store.PlayerStore
	teams   *store.TeamStore
	matches *MatchService
}

func NewDashboardService(players *store.PlayerStore, teams *store.TeamStore, matches *MatchService) *DashboardService {
	return &DashboardService{players: players, teams: teams, matches: matches}
}

type DashboardData struct {
	TotalPlayers  int
	TotalTeams    int
	TotalMatches  int
	LatestMatches []MatchSummary
	OngoingMatch  *league.Match
}

func (s *DashboardService) GetDashboardData(ctx context.Context) (*DashboardData, error) {
	var data DashboardData
	var err error

	if data.TotalPlayers, err = s.players.CountPlayers(ctx); err != nil {
		return nil, err
	}
	if data.TotalTeams, err = s.teams.CountTeams(ctx); err != nil {
		return nil, err
	}
	if data.TotalMatches, err = s.matches.store.CountMatches(ctx); err != nil {
		return nil, err
	}
	if data.LatestMatches, err = s.matches.ListLatestMatches(ctx, dashboardLatestMatches); err != nil {
		return nil, err
	}
	if data.OngoingMatch, err = s.matches.GetOngoingMatch(ctx); err != nil {
		return nil, err
	}

	return &data, nil
}
