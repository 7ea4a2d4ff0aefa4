package service

import (
	"context"
	"errors"

	"github.com/AdamBeresnev/domino-league/internal/league"
	"github.com/AdamBeresnev/domino-league/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type TeamService struct {
	db      *sqlx.DB
	store   *store.TeamStore
	players *store.PlayerStore
}

func NewTeamService(db *sqlx.DB, store *store.TeamStore, players *store.PlayerStore) *TeamService {
	return &TeamService{db: db, store: store, players: players}
}

type TeamInput struct {
	Name      string
	Player1ID uuid.UUID
	Player2ID uuid.UUID
}

func (s *TeamService) CreateTeam(ctx context.Context, input TeamInput) (*league.Team, error) {
	if input.Player1ID == uuid.Nil || input.Player2ID == uuid.Nil {
		return nil, league.Invalidf("select both players")
	}
	if input.Player1ID == input.Player2ID {
		return nil, league.Invalidf("a player cannot be repeated in a team")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	player1, err := s.getPlayerTx(ctx, tx, input.Player1ID)
	if err != nil {
		return nil, err
	}
	player2, err := s.getPlayerTx(ctx, tx, input.Player2ID)
	if err != nil {
		return nil, err
	}

	team, err := league.NewTeam(input.Name, player1, player2)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateTeamTx(ctx, tx, team); err != nil {
		return nil, err
	}
	return team, tx.Commit()
}

func (s *TeamService) getPlayerTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*league.Player, error) {
	player, err := s.players.GetPlayerTx(ctx, tx, id)
	if errors.Is(err, league.ErrNotFound) {
		return nil, league.Invalidf("player %s does not exist", id)
	}
	return player, err
}

func (s *TeamService) ListTeams(ctx context.Context) ([]league.Team, error) {
	return s.store.ListTeams(ctx)
}

// Standings returns every team ranked by its cumulative stats.
func (s *TeamService) Standings(ctx context.Context) ([]league.Team, error) {
	teams, err := s.store.ListTeams(ctx)
	if err != nil {
		return nil, err
	}
	league.SortStandings(teams)
	return teams, nil
}

// DeleteTeam removes a team that has not played any match.
func (s *TeamService) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := s.store.GetTeamTx(ctx, tx, id); err != nil {
		return err
	}

	matches, err := s.store.CountMatchesForTeamTx(ctx, tx, id)
	if err != nil {
		return err
	}
	if matches > 0 {
		return league.Conflictf("team has %d match(es)", matches)
	}

	if err := s.store.DeleteTeamTx(ctx, tx, id); err != nil {
		return err
	}
	return tx.Commit()
}
