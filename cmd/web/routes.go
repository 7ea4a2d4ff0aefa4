package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/AdamBeresnev/domino-league/internal/config"
	"github.com/AdamBeresnev/domino-league/internal/httputil"
	"github.com/AdamBeresnev/domino-league/internal/league"
	"github.com/AdamBeresnev/domino-league/internal/middleware"
	"github.com/AdamBeresnev/domino-league/internal/service"
	"github.com/AdamBeresnev/domino-league/internal/store"
	"github.com/AdamBeresnev/domino-league/views"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type handlers struct {
	cfg       *config.Config
	flash     *middleware.Flasher
	players   *service.PlayerService
	teams     *service.TeamService
	matches   *service.MatchService
	dashboard *service.DashboardService
	nav       views.Nav
}

func newRouter(cfg *config.Config, dbConn *sqlx.DB, sessionManager *scs.SessionManager) http.Handler {
	playerStore := store.NewPlayerStore(dbConn)
	teamStore := store.NewTeamStore(dbConn)
	matchService := service.NewMatchService(dbConn, store.NewMatchStore(dbConn), teamStore, service.MatchRules{
		DefaultTargetScore: cfg.DefaultTargetScore,
		SingleOngoingMatch: cfg.SingleOngoingMatch,
	})

	h := &handlers{
		cfg:       cfg,
		flash:     middleware.NewFlasher(sessionManager),
		players:   service.NewPlayerService(dbConn, playerStore),
		teams:     service.NewTeamService(dbConn, teamStore, playerStore),
		matches:   matchService,
		dashboard: service.NewDashboardService(playerStore, teamStore, matchService),
		nav:       views.Nav{ShowStats: cfg.ShowStats},
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.LoadFlash(sessionManager))

	// Serve static files
	fileServer := http.FileServer(http.Dir("./static"))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	r.Get("/", h.index)

	r.Get("/players", h.listPlayers)
	r.Post("/players", h.createPlayer)
	r.Post("/players/{id}/toggle_active", h.togglePlayer)
	r.Post("/players/{id}/delete", h.deletePlayer)

	r.Get("/teams", h.listTeams)
	r.Post("/teams", h.createTeam)
	r.Post("/teams/{id}/delete", h.deleteTeam)

	r.Get("/matches", h.listMatches)
	r.Get("/matches/new", h.newMatchForm)
	r.Post("/matches/new", h.createMatch)
	r.Get("/matches/{id}", h.matchDetail)
	r.Post("/matches/{id}", h.matchAction)

	r.Post("/reset_all", h.resetAll)

	if cfg.ShowStats {
		r.Get("/stats", h.stats)
	}

	return r
}

// fail reports err to the user with a flash and redirect when the request
// caused it, and as a 500 otherwise.
func (h *handlers) fail(w http.ResponseWriter, r *http.Request, redirectTo string, msg string, err error) {
	if !httputil.IsUserError(err) {
		httputil.InternalServerError(w, msg, err)
		return
	}
	slog.Warn(msg, "error", err)
	h.flash.Put(r.Context(), middleware.FlashDanger, httputil.UserMessage(err))
	http.Redirect(w, r, redirectTo, http.StatusSeeOther)
}

func (h *handlers) redirectWithFlash(w http.ResponseWriter, r *http.Request, redirectTo string, kind middleware.FlashKind, message string) {
	h.flash.Put(r.Context(), kind, message)
	http.Redirect(w, r, redirectTo, http.StatusSeeOther)
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	data, err := h.dashboard.GetDashboardData(r.Context())
	if err != nil {
		httputil.InternalServerError(w, "Failed to get dashboard", err)
		return
	}
	views.Render(w, r, views.Index(data, h.nav))
}

func (h *handlers) listPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.players.ListPlayers(r.Context())
	if err != nil {
		httputil.InternalServerError(w, "Failed to list players", err)
		return
	}
	views.Render(w, r, views.PlayersPage(players, h.nav))
}

func (h *handlers) createPlayer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.BadRequest(w, "Invalid form data", err)
		return
	}
	if _, err := h.players.CreatePlayer(r.Context(), r.Form.Get("name")); err != nil {
		h.fail(w, r, "/players", "Failed to create player", err)
		return
	}
	h.redirectWithFlash(w, r, "/players", middleware.FlashSuccess, "Player added.")
}

func (h *handlers) togglePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.URLParamUUID(r, "id")
	if err != nil {
		httputil.BadRequest(w, "Invalid player ID", err)
		return
	}
	if err := h.players.ToggleActive(r.Context(), id); err != nil {
		httputil.Error(w, "Failed to toggle player", err)
		return
	}
	http.Redirect(w, r, "/players", http.StatusSeeOther)
}

func (h *handlers) deletePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.URLParamUUID(r, "id")
	if err != nil {
		httputil.BadRequest(w, "Invalid player ID", err)
		return
	}
	if err := h.players.DeletePlayer(r.Context(), id); err != nil {
		h.fail(w, r, "/players", "Failed to delete player", err)
		return
	}
	h.redirectWithFlash(w, r, "/players", middleware.FlashSuccess, "Player deleted.")
}

func (h *handlers) listTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teams.ListTeams(r.Context())
	if err != nil {
		httputil.InternalServerError(w, "Failed to list teams", err)
		return
	}
	players, err := h.players.ListPlayers(r.Context())
	if err != nil {
		httputil.InternalServerError(w, "Failed to list players", err)
		return
	}
	views.Render(w, r, views.TeamsPage(teams, players, h.nav))
}

func (h *handlers) createTeam(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.BadRequest(w, "Invalid form data", err)
		return
	}

	input := service.TeamInput{Name: r.Form.Get("name")}
	var err error
	if input.Player1ID, err = httputil.FormUUID(r, "player1_id"); err != nil {
		h.fail(w, r, "/teams", "Invalid player", err)
		return
	}
	if input.Player2ID, err = httputil.FormUUID(r, "player2_id"); err != nil {
		h.fail(w, r, "/teams", "Invalid player", err)
		return
	}

	if _, err := h.teams.CreateTeam(r.Context(), input); err != nil {
		h.fail(w, r, "/teams", "Failed to create team", err)
		return
	}
	h.redirectWithFlash(w, r, "/teams", middleware.FlashSuccess, "Team created.")
}

func (h *handlers) deleteTeam(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.URLParamUUID(r, "id")
	if err != nil {
		httputil.BadRequest(w, "Invalid team ID", err)
		return
	}
	if err := h.teams.DeleteTeam(r.Context(), id); err != nil {
		h.fail(w, r, "/teams", "Failed to delete team", err)
		return
	}
	h.redirectWithFlash(w, r, "/teams", middleware.FlashSuccess, "Team deleted.")
}

func (h *handlers) listMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matches.ListMatches(r.Context())
	if err != nil {
		httputil.InternalServerError(w, "Failed to list matches", err)
		return
	}
	views.Render(w, r, views.MatchesPage(matches, h.nav))
}

func (h *handlers) newMatchForm(w http.ResponseWriter, r *http.Request) {
	if h.cfg.SingleOngoingMatch {
		ongoing, err := h.matches.GetOngoingMatch(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to check ongoing match", err)
			return
		}
		if ongoing != nil {
			h.redirectToOngoing(w, r, ongoing.ID)
			return
		}
	}

	teams, err := h.teams.ListTeams(r.Context())
	if err != nil {
		httputil.InternalServerError(w, "Failed to list teams", err)
		return
	}
	views.Render(w, r, views.NewMatchPage(teams, h.cfg.DefaultTargetScore, h.nav))
}

func (h *handlers) redirectToOngoing(w http.ResponseWriter, r *http.Request, matchID uuid.UUID) {
	h.redirectWithFlash(w, r, matchURL(matchID), middleware.FlashWarning, "There is already a match in progress.")
}

func (h *handlers) createMatch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.BadRequest(w, "Invalid form data", err)
		return
	}

	var input service.MatchInput
	var err error
	if input.TeamAID, err = httputil.FormUUID(r, "team_a_id"); err != nil {
		h.fail(w, r, "/matches/new", "Invalid team", err)
		return
	}
	if input.TeamBID, err = httputil.FormUUID(r, "team_b_id"); err != nil {
		h.fail(w, r, "/matches/new", "Invalid team", err)
		return
	}
	if input.TargetScore, err = httputil.FormOptionalInt(r, "target_score"); err != nil {
		h.fail(w, r, "/matches/new", "Invalid target score", err)
		return
	}

	match, err := h.matches.CreateMatch(r.Context(), input)
	if err != nil {
		var ongoing *service.OngoingMatchError
		if errors.As(err, &ongoing) {
			h.redirectToOngoing(w, r, ongoing.MatchID)
			return
		}
		h.fail(w, r, "/matches/new", "Failed to create match", err)
		return
	}
	h.redirectWithFlash(w, r, matchURL(match.ID), middleware.FlashSuccess, "Match created.")
}

func (h *handlers) matchDetail(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.URLParamUUID(r, "id")
	if err != nil {
		httputil.BadRequest(w, "Invalid match ID", err)
		return
	}

	data, err := h.matches.GetMatchViewData(r.Context(), id)
	if err != nil {
		if errors.Is(err, league.ErrNotFound) {
			httputil.NotFound(w, "Match not found", err)
			return
		}
		httputil.InternalServerError(w, "Failed to get match data", err)
		return
	}
	views.Render(w, r, views.MatchPage(data, h.cfg.AllowRestart, h.nav))
}

// matchAction dispatches the buttons of the match page.
func (h *handlers) matchAction(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.URLParamUUID(r, "id")
	if err != nil {
		httputil.BadRequest(w, "Invalid match ID", err)
		return
	}
	if err := r.ParseForm(); err != nil {
		httputil.BadRequest(w, "Invalid form data", err)
		return
	}

	ctx := r.Context()
	back := matchURL(id)

	switch action := r.Form.Get("action"); action {
	case "delete":
		if err := h.matches.DeleteMatch(ctx, id); err != nil {
			h.fail(w, r, back, "Failed to delete match", err)
			return
		}
		h.redirectWithFlash(w, r, "/matches", middleware.FlashSuccess, "Match deleted.")

	case "restart":
		if !h.cfg.AllowRestart {
			httputil.NotFound(w, "Restart is disabled", nil)
			return
		}
		if err := h.matches.RestartMatch(ctx, id); err != nil {
			h.fail(w, r, back, "Failed to restart match", err)
			return
		}
		h.redirectWithFlash(w, r, back, middleware.FlashInfo, "Match restarted.")

	case "plus30_a", "plus30_b":
		side := league.SideA
		if action == "plus30_b" {
			side = league.SideB
		}
		result, err := h.matches.AwardBonus(ctx, id, side)
		h.afterRound(w, r, back, result, err)

	case "manual":
		pointsA, err := httputil.FormInt(r, "points_team_a", 0)
		if err != nil {
			h.fail(w, r, back, "Invalid points", err)
			return
		}
		pointsB, err := httputil.FormInt(r, "points_team_b", 0)
		if err != nil {
			h.fail(w, r, back, "Invalid points", err)
			return
		}
		result, err := h.matches.RecordRound(ctx, id, pointsA, pointsB)
		h.afterRound(w, r, back, result, err)

	default:
		h.fail(w, r, back, "Unknown match action", fmt.Errorf("%w: unknown action %q", league.ErrInvalidInput, action))
	}
}

func (h *handlers) afterRound(w http.ResponseWriter, r *http.Request, back string, result *service.RoundResult, err error) {
	if err != nil {
		h.fail(w, r, back, "Failed to record round", err)
		return
	}
	if result.Finished() {
		h.redirectWithFlash(w, r, back, middleware.FlashSuccess, "Match finished!")
		return
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func (h *handlers) resetAll(w http.ResponseWriter, r *http.Request) {
	if err := h.matches.GlobalReset(r.Context()); err != nil {
		httputil.InternalServerError(w, "Failed to reset league", err)
		return
	}
	h.redirectWithFlash(w, r, "/matches", middleware.FlashWarning, "League reset: every match was deleted.")
}

func (h *handlers) stats(w http.ResponseWriter, r *http.Request) {
	standings, err := h.teams.Standings(r.Context())
	if err != nil {
		httputil.InternalServerError(w, "Failed to get standings", err)
		return
	}
	views.Render(w, r, views.StatsPage(standings, h.nav))
}

func matchURL(id uuid.UUID) string {
	return "/matches/" + id.String()
}
