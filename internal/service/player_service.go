package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AdamBeresnev/domino-league/internal/league"
	"github.com/AdamBeresnev/domino-league/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type PlayerService struct {
	db    *sqlx.DB
	store *store.PlayerStore
}

func NewPlayerService(db *sqlx.DB, store *store.PlayerStore) *PlayerService {
	return &PlayerService{db: db, store: store}
}

func (s *PlayerService) CreatePlayer(ctx context.Context, name string) (*league.Player, error) {
	player, err := league.NewPlayer(name, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.store.CreatePlayer(ctx, player); err != nil {
		if errors.Is(err, league.ErrConflict) {
			return nil, fmt.Errorf("%w (%v)", league.Conflictf("a player named %q already exists", player.Name), err)
		}
		return nil, fmt.Errorf("player %q: %w", player.Name, err)
	}
	return player, nil
}

func (s *PlayerService) ListPlayers(ctx context.Context) ([]league.Player, error) {
	return s.store.ListPlayers(ctx)
}

func (s *PlayerService) ListActivePlayers(ctx context.Context) ([]league.Player, error) {
	return s.store.ListActivePlayers(ctx)
}

func (s *PlayerService) ToggleActive(ctx context.Context, id uuid.UUID) error {
	return s.store.ToggleActive(ctx, id)
}

// DeletePlayer removes a player that is not part of any team.
func (s *PlayerService) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := s.store.GetPlayerTx(ctx, tx, id); err != nil {
		return err
	}

	teams, err := s.store.CountTeamsForPlayerTx(ctx, tx, id)
	if err != nil {
		return err
	}
	if teams > 0 {
		return league.Conflictf("player belongs to %d team(s)", teams)
	}

	if err := s.store.DeletePlayerTx(ctx, tx, id); err != nil {
		return err
	}
	return tx.Commit()
}
