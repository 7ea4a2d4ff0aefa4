package store

import (
	"context"

	"github.com/AdamBeresnev/domino-league/internal/league"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type PlayerStore struct {
	db *sqlx.DB
}

const (
	getPlayerQuery         = "SELECT * FROM players WHERE id = ?"
	listPlayersQuery       = "SELECT * FROM players ORDER BY name ASC"
	listActivePlayersQuery = "SELECT * FROM players WHERE active = 1 ORDER BY name ASC"
	createPlayerQuery      = `
		INSERT INTO players (id, name, active, created_at) VALUES
		(:id, :name, :active, :created_at)
	`
	toggleActiveQuery     = "UPDATE players SET active = NOT active WHERE id = ?"
	deletePlayerQuery     = "DELETE FROM players WHERE id = ?"
	countPlayersQuery     = "SELECT COUNT(*) FROM players"
	countPlayerTeamsQuery = `
		SELECT COUNT(*) FROM teams
		WHERE player1_id = ?
		OR player2_id = ?
	`
)

func NewPlayerStore(db *sqlx.DB) *PlayerStore {
	return &PlayerStore{db: db}
}

func (s *PlayerStore) CreatePlayer(ctx context.Context, player *league.Player) error {
	_, err := s.db.NamedExecContext(ctx, createPlayerQuery, player)
	return translateError(err, "create player")
}

func (s *PlayerStore) GetPlayer(ctx context.Context, id uuid.UUID) (*league.Player, error) {
	return getPlayer(ctx, s.db, id)
}

func (s *PlayerStore) GetPlayerTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*league.Player, error) {
	return getPlayer(ctx, tx, id)
}

func getPlayer(ctx context.Context, q sqlx.QueryerContext, id uuid.UUID) (*league.Player, error) {
	var player league.Player
	if err := sqlx.GetContext(ctx, q, &player, getPlayerQuery, id); err != nil {
		return nil, translateError(err, "get player")
	}
	return &player, nil
}

func (s *PlayerStore) ListPlayers(ctx context.Context) ([]league.Player, error) {
	var players []league.Player
	err := s.db.SelectContext(ctx, &players, listPlayersQuery)
	return players, translateError(err, "list players")
}

func (s *PlayerStore) ListActivePlayers(ctx context.Context) ([]league.Player, error) {
	var players []league.Player
	err := s.db.SelectContext(ctx, &players, listActivePlayersQuery)
	return players, translateError(err, "list active players")
}

func (s *PlayerStore) ToggleActive(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, toggleActiveQuery, id)
	if err != nil {
		return translateError(err, "toggle player")
	}
	return checkAffectedRows(result, "toggle player")
}

func (s *PlayerStore) CountPlayers(ctx context.Context) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, countPlayersQuery)
	return count, translateError(err, "count players")
}

func (s *PlayerStore) CountTeamsForPlayerTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (int, error) {
	var count int
	err := tx.GetContext(ctx, &count, countPlayerTeamsQuery, id, id)
	return count, translateError(err, "count player teams")
}

func (s *PlayerStore) DeletePlayerTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error {
	result, err := tx.ExecContext(ctx, deletePlayerQuery, id)
	if err != nil {
		return translateError(err, "delete player")
	}
	return checkAffectedRows(result, "delete player")
}
