package store

import (
	"context"

	"github.com/AdamBeresnev/domino-league/internal/league"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type TeamStore struct {
	db *sqlx.DB
}

const (
	getTeamQuery    = "SELECT * FROM teams WHERE id = ?"
	listTeamsQuery  = "SELECT * FROM teams ORDER BY name ASC"
	countTeamsQuery = "SELECT COUNT(*) FROM teams"
	createTeamQuery = `
		INSERT INTO teams (id, name, player1_id, player2_id, games_played, games_won, games_lost, points_for, points_against) VALUES
		(:id, :name, :player1_id, :player2_id, :games_played, :games_won, :games_lost, :points_for, :points_against)
	`
	addTeamStatsQuery = `
		UPDATE teams SET
		games_played = games_played + ?,
		games_won = games_won + ?,
		games_lost = games_lost + ?,
		points_for = points_for + ?,
		points_against = points_against + ?
		WHERE id = ?
	`
	resetTeamStatsQuery = `
		UPDATE teams SET
		games_played = 0,
		games_won = 0,
		games_lost = 0,
		points_for = 0,
		points_against = 0
	`
	deleteTeamQuery       = "DELETE FROM teams WHERE id = ?"
	countTeamMatchesQuery = `
		SELECT COUNT(*) FROM matches
		WHERE team_a_id = ?
		OR team_b_id = ?
	`
)

func NewTeamStore(db *sqlx.DB) *TeamStore {
	return &TeamStore{db: db}
}

func (s *TeamStore) CreateTeamTx(ctx context.Context, tx *sqlx.Tx, team *league.Team) error {
	_, err := tx.NamedExecContext(ctx, createTeamQuery, team)
	return translateError(err, "create team")
}

func (s *TeamStore) GetTeam(ctx context.Context, id uuid.UUID) (*league.Team, error) {
	return getTeam(ctx, s.db, id)
}

func (s *TeamStore) GetTeamTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*league.Team, error) {
	return getTeam(ctx, tx, id)
}

func getTeam(ctx context.Context, q sqlx.QueryerContext, id uuid.UUID) (*league.Team, error) {
	var team league.Team
	if err := sqlx.GetContext(ctx, q, &team, getTeamQuery, id); err != nil {
		return nil, translateError(err, "get team")
	}
	return &team, nil
}

func (s *TeamStore) ListTeams(ctx context.Context) ([]league.Team, error) {
	var teams []league.Team
	err := s.db.SelectContext(ctx, &teams, listTeamsQuery)
	return teams, translateError(err, "list teams")
}

func (s *TeamStore) CountTeams(ctx context.Context) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, countTeamsQuery)
	return count, translateError(err, "count teams")
}

func (s *TeamStore) CountMatchesForTeamTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (int, error) {
	var count int
	err := tx.GetContext(ctx, &count, countTeamMatchesQuery, id, id)
	return count, translateError(err, "count team matches")
}

// AddStatsTx increments the team's cumulative stats by delta.
func (s *TeamStore) AddStatsTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, delta league.TeamStats) error {
	result, err := tx.ExecContext(ctx, addTeamStatsQuery,
		delta.GamesPlayed, delta.GamesWon, delta.GamesLost, delta.PointsFor, delta.PointsAgainst, id)
	if err != nil {
		return translateError(err, "update team stats")
	}
	return checkAffectedRows(result, "update team stats")
}

func (s *TeamStore) ResetAllStatsTx(ctx context.Context, tx *sqlx.Tx) error {
	_, err := tx.ExecContext(ctx, resetTeamStatsQuery)
	return translateError(err, "reset team stats")
}

func (s *TeamStore) DeleteTeamTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) error {
	result, err := tx.ExecContext(ctx, deleteTeamQuery, id)
	if err != nil {
		return translateError(err, "delete team")
	}
	return checkAffectedRows(result, "delete team")
}
