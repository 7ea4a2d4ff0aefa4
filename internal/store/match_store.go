package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/AdamBeresnev/domino-league/internal/league"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type MatchStore struct {
	db *sqlx.DB
}

const (
	getMatchQuery          = "SELECT * FROM matches WHERE id = ?"
	listMatchesQuery       = "SELECT * FROM matches ORDER BY created_at DESC"
	listLatestMatchesQuery = "SELECT * FROM matches ORDER BY created_at DESC LIMIT ?"
	countMatchesQuery      = "SELECT COUNT(*) FROM matches"
	getOngoingMatchQuery   = `
		SELECT * FROM matches
		WHERE winner_team_id IS NULL
		ORDER BY created_at DESC
		LIMIT 1
	`
	createMatchQuery = `
		INSERT INTO matches (id, team_a_id, team_b_id, target_score, score_a, score_b, winner_team_id, created_at, finished_at) VALUES
		(:id, :team_a_id, :team_b_id, :target_score, :score_a, :score_b, :winner_team_id, :created_at, :finished_at)
	`
	updateMatchScoreQuery = `
		UPDATE matches SET
		score_a = :score_a,
		score_b = :score_b,
		winner_team_id = :winner_team_id,
		finished_at = :finished_at
		WHERE id = :id
	`
	deleteMatchQuery      = "DELETE FROM matches WHERE id = ?"
	deleteAllMatchesQuery = "DELETE FROM matches"

	createRoundQuery = `
		INSERT INTO rounds (id, match_id, number, points_a, points_b, created_at) VALUES
		(:id, :match_id, :number, :points_a, :points_b, :created_at)
	`
	getRoundsQuery       = "SELECT * FROM rounds WHERE match_id = ? ORDER BY number ASC"
	countRoundsQuery     = "SELECT COUNT(*) FROM rounds WHERE match_id = ?"
	deleteRoundsQuery    = "DELETE FROM rounds WHERE match_id = ?"
	deleteAllRoundsQuery = "DELETE FROM rounds"
)

func NewMatchStore(db *sqlx.DB) *MatchStore {
	return &MatchStore{db: db}
}

func (s *MatchStore) CreateMatchTx(ctx context.Context, tx *sqlx.Tx, match *league.Match) error {
	_, err := tx.NamedExecContext(ctx, createMatchQuery, match)
	return translateError(err, "create match")
}

func (s *MatchStore) GetMatch(ctx context.Context, id uuid.UUID) (*league.Match, error) {
	return getMatch(ctx, s.db, id)
}

func (s *MatchStore) GetMatchTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*league.Match, error) {
	return getMatch(ctx, tx, id)
}

func getMatch(ctx context.Context, q sqlx.QueryerContext, id uuid.UUID) (*league.Match, error) {
	var match league.Match
	if err := sqlx.GetContext(ctx, q, &match, getMatchQuery, id); err != nil {
		return nil, translateError(err, "get match")
	}
	return &match, nil
}

func (s *MatchStore) ListMatches(ctx context.Context) ([]league.Match, error) {
	var matches []league.Match
	err := s.db.SelectContext(ctx, &matches, listMatchesQuery)
	return matches, translateError(err, "list matches")
}

func (s *MatchStore) ListLatestMatches(ctx context.Context, limit int) ([]league.Match, error) {
	var matches []league.Match
	err := s.db.SelectContext(ctx, &matches, listLatestMatchesQuery, limit)
	return matches, translateError(err, "list latest matches")
}

func (s *MatchStore) CountMatches(ctx context.Context) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, countMatchesQuery)
	return count, translateError(err, "count matches")
}

// GetOngoingMatch returns the newest unfinished match, or nil when every
// match is decided.
func (s *MatchStore) GetOngoingMatch(ctx context.Context) (*league.Match, error) {
	return getOngoingMatch(ctx, s.db)
}

func (s *MatchStore) GetOngoingMatchTx(ctx context.Context, tx *sqlx.Tx) (*league.Match, error) {
	return getOngoingMatch(ctx, tx)
}

func getOngoingMatch(ctx context.Context, q sqlx.QueryerContext) (*league.Match, error) {
	var match league.Match
	err := sqlx.GetContext(ctx, q, &match, getOngoingMatchQuery)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translateError(err, "get ongoing match")
	}
	return &match, nil
}

func (s *MatchStore) UpdateMatchScoreTx(ctx context.Context, tx *sqlx.Tx, match *league.Match) error {
	result, err := tx.NamedExecContext(ctx, updateMatchScoreQuery, match)
	if err != nil {
		return translateError(err, "update match")
	}
	return checkAffectedRows(result, "update match")
}

func (s *MatchStore) DeleteMatchTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error {
	result, err := tx.ExecContext(ctx, deleteMatchQuery, id)
	if err != nil {
		return translateError(err, "delete match")
	}
	return checkAffectedRows(result, "delete match")
}

// DeleteAllTx removes every round and match.
func (s *MatchStore) DeleteAllTx(ctx context.Context, tx *sqlx.Tx) error {
	if _, err := tx.ExecContext(ctx, deleteAllRoundsQuery); err != nil {
		return translateError(err, "delete rounds")
	}
	if _, err := tx.ExecContext(ctx, deleteAllMatchesQuery); err != nil {
		return translateError(err, "delete matches")
	}
	return nil
}

func (s *MatchStore) CreateRoundTx(ctx context.Context, tx *sqlx.Tx, round *league.Round) error {
	_, err := tx.NamedExecContext(ctx, createRoundQuery, round)
	return translateError(err, "create round")
}

func (s *MatchStore) CountRoundsTx(ctx context.Context, tx *sqlx.Tx, matchID uuid.UUID) (int, error) {
	var count int
	err := tx.GetContext(ctx, &count, countRoundsQuery, matchID)
	return count, translateError(err, "count rounds")
}

func (s *MatchStore) GetRounds(ctx context.Context, matchID uuid.UUID) ([]league.Round, error) {
	var rounds []league.Round
	err := s.db.SelectContext(ctx, &rounds, getRoundsQuery, matchID)
	return rounds, translateError(err, "get rounds")
}

func (s *MatchStore) DeleteRoundsTx(ctx context.Context, tx *sqlx.Tx, matchID uuid.UUID) error {
	_, err := tx.ExecContext(ctx, deleteRoundsQuery, matchID)
	return translateError(err, "delete rounds")
}
