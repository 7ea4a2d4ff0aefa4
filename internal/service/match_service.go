package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/AdamBeresnev/domino-league/internal/league"
	"github.com/AdamBeresnev/domino-league/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type MatchRules struct {
	DefaultTargetScore int
	// Refuse to create a match while another one is unfinished
	SingleOngoingMatch bool
}

type MatchService struct {
	db    *sqlx.DB
	store *store.MatchStore
	teams *store.TeamStore
	rules MatchRules
	locks *matchLocks
	now   func() time.Time
}

func NewMatchService(db *sqlx.DB, store *store.MatchStore, teams *store.TeamStore, rules MatchRules) *MatchService {
	if rules.DefaultTargetScore <= 0 {
		rules.DefaultTargetScore = league.DefaultTargetScore
	}
	return &MatchService{
		db:    db,
		store: store,
		teams: teams,
		rules: rules,
		locks: newMatchLocks(),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// OngoingMatchError is returned by CreateMatch when another match is still
// being played.
type OngoingMatchError struct {
	MatchID uuid.UUID
}

func (e *OngoingMatchError) Error() string {
	return fmt.Sprintf("match %s is still in progress", e.MatchID)
}

func (e *OngoingMatchError) Unwrap() error {
	return league.ErrConflict
}

type MatchInput struct {
	TeamAID uuid.UUID
	TeamBID uuid.UUID
	// nil uses the configured default
	TargetScore *int
}

type RoundResult struct {
	Round   league.Round
	Match   *league.Match
	Outcome *league.Outcome
}

// Finished reports whether the recorded round decided the match.
func (r *RoundResult) Finished() bool {
	return r.Outcome != nil
}

type MatchData struct {
	Match  *league.Match
	TeamA  *league.Team
	TeamB  *league.Team
	Rounds []league.Round
}

func (d *MatchData) Winner() *league.Team {
	switch {
	case d.Match.IsWinner(d.TeamA.ID):
		return d.TeamA
	case d.Match.IsWinner(d.TeamB.ID):
		return d.TeamB
	}
	return nil
}

type MatchSummary struct {
	Match league.Match
	TeamA league.Team
	TeamB league.Team
}

func (s *MatchService) CreateMatch(ctx context.Context, input MatchInput) (*league.Match, error) {
	target := s.rules.DefaultTargetScore
	if input.TargetScore != nil {
		target = *input.TargetScore
	}

	match, err := league.NewMatch(input.TeamAID, input.TeamBID, target, s.now())
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if s.rules.SingleOngoingMatch {
		ongoing, err := s.store.GetOngoingMatchTx(ctx, tx)
		if err != nil {
			return nil, fmt.Errorf("failed to check ongoing match: %w", err)
		}
		if ongoing != nil {
			return nil, &OngoingMatchError{MatchID: ongoing.ID}
		}
	}

	for _, teamID := range []uuid.UUID{match.TeamAID, match.TeamBID} {
		if _, err := s.teams.GetTeamTx(ctx, tx, teamID); err != nil {
			if errors.Is(err, league.ErrNotFound) {
				return nil, league.Invalidf("team %s does not exist", teamID)
			}
			return nil, err
		}
	}

	if err := s.store.CreateMatchTx(ctx, tx, match); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	slog.Info("match created", "match_id", match.ID, "target_score", match.TargetScore)
	return match, nil
}

// RecordRound appends a round to the match and, when the round decides it,
// applies the result to both teams' stats in the same transaction.
func (s *MatchService) RecordRound(ctx context.Context, matchID uuid.UUID, pointsA, pointsB int) (*RoundResult, error) {
	release, err := s.locks.lock(ctx, matchID)
	if err != nil {
		return nil, err
	}
	defer release()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	match, err := s.store.GetMatchTx(ctx, tx, matchID)
	if err != nil {
		return nil, err
	}

	count, err := s.store.CountRoundsTx(ctx, tx, matchID)
	if err != nil {
		return nil, err
	}

	round, outcome, err := match.ApplyRound(count, pointsA, pointsB, s.now())
	if err != nil {
		return nil, fmt.Errorf("record round on match %s: %w", matchID, err)
	}

	if err := s.store.CreateRoundTx(ctx, tx, &round); err != nil {
		return nil, err
	}
	if err := s.store.UpdateMatchScoreTx(ctx, tx, match); err != nil {
		return nil, err
	}

	if outcome != nil {
		if err := s.teams.AddStatsTx(ctx, tx, outcome.WinnerID, outcome.WinnerDelta); err != nil {
			return nil, fmt.Errorf("failed to update winner stats: %w", err)
		}
		if err := s.teams.AddStatsTx(ctx, tx, outcome.LoserID, outcome.LoserDelta); err != nil {
			return nil, fmt.Errorf("failed to update loser stats: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if outcome != nil {
		slog.Info("match finished",
			"match_id", match.ID,
			"winner_team_id", outcome.WinnerID,
			"score_a", match.ScoreA,
			"score_b", match.ScoreB,
			"rounds", round.Number,
		)
	}

	return &RoundResult{Round: round, Match: match, Outcome: outcome}, nil
}

// AwardBonus records a shortcut round of BonusPoints for side.
func (s *MatchService) AwardBonus(ctx context.Context, matchID uuid.UUID, side league.Side) (*RoundResult, error) {
	pointsA, pointsB := league.BonusRound(side)
	return s.RecordRound(ctx, matchID, pointsA, pointsB)
}

func (s *MatchService) RestartMatch(ctx context.Context, matchID uuid.UUID) error {
	release, err := s.locks.lock(ctx, matchID)
	if err != nil {
		return err
	}
	defer release()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	match, err := s.store.GetMatchTx(ctx, tx, matchID)
	if err != nil {
		return err
	}
	if err := match.Restart(); err != nil {
		return fmt.Errorf("restart match %s: %w", matchID, err)
	}

	if err := s.store.DeleteRoundsTx(ctx, tx, matchID); err != nil {
		return err
	}
	if err := s.store.UpdateMatchScoreTx(ctx, tx, match); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *MatchService) DeleteMatch(ctx context.Context, matchID uuid.UUID) error {
	release, err := s.locks.lock(ctx, matchID)
	if err != nil {
		return err
	}
	defer release()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	match, err := s.store.GetMatchTx(ctx, tx, matchID)
	if err != nil {
		return err
	}
	if err := match.CanDelete(); err != nil {
		return fmt.Errorf("delete match %s: %w", matchID, err)
	}

	if err := s.store.DeleteRoundsTx(ctx, tx, matchID); err != nil {
		return err
	}
	if err := s.store.DeleteMatchTx(ctx, tx, matchID); err != nil {
		return err
	}

	return tx.Commit()
}

// GlobalReset deletes every match and round and zeroes all team stats.
func (s *MatchService) GlobalReset(ctx context.Context) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.store.DeleteAllTx(ctx, tx); err != nil {
		return err
	}
	if err := s.teams.ResetAllStatsTx(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	slog.Warn("league reset: all matches deleted and team stats cleared")
	return nil
}

func (s *MatchService) GetMatchViewData(ctx context.Context, matchID uuid.UUID) (*MatchData, error) {
	match, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	teamA, err := s.teams.GetTeam(ctx, match.TeamAID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team A: %w", err)
	}
	teamB, err := s.teams.GetTeam(ctx, match.TeamBID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team B: %w", err)
	}

	rounds, err := s.store.GetRounds(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rounds: %w", err)
	}

	return &MatchData{
		Match:  match,
		TeamA:  teamA,
		TeamB:  teamB,
		Rounds: rounds,
	}, nil
}

func (s *MatchService) GetOngoingMatch(ctx context.Context) (*league.Match, error) {
	return s.store.GetOngoingMatch(ctx)
}

// ListMatches returns every match, newest first, with both teams resolved.
func (s *MatchService) ListMatches(ctx context.Context) ([]MatchSummary, error) {
	matches, err := s.store.ListMatches(ctx)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, matches)
}

func (s *MatchService) ListLatestMatches(ctx context.Context, limit int) ([]MatchSummary, error) {
	matches, err := s.store.ListLatestMatches(ctx, limit)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, matches)
}

func (s *MatchService) summarize(ctx context.Context, matches []league.Match) ([]MatchSummary, error) {
	if len(matches) == 0 {
		return nil, nil
	}

	teams, err := s.teams.ListTeams(ctx)
	if err != nil {
		return nil, err
	}
	teamMap := make(map[uuid.UUID]league.Team, len(teams))
	for _, t := range teams {
		teamMap[t.ID] = t
	}

	summaries := make([]MatchSummary, 0, len(matches))
	for _, m := range matches {
		summaries = append(summaries, MatchSummary{
			Match: m,
			TeamA: teamMap[m.TeamAID],
			TeamB: teamMap[m.TeamBID],
		})
	}
	return summaries, nil
}
