package httpapi

import (
	"net/http"

	"github.com/riskibarqy/league-stats/internal/domain/game"
	"github.com/riskibarqy/league-stats/internal/domain/league"
	"github.com/riskibarqy/league-stats/internal/usecase"
)

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.ListLeagues")
	defer span.End()

	query := listLeaguesQuery{Limit: usecase.DefaultListLimit}
	skip, _, err := queryInt(r, "skip")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	query.Skip = skip
	if limit, ok, err := queryInt(r, "limit"); err != nil {
		writeError(ctx, w, err)
		return
	} else if ok {
		query.Limit = limit
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}
	active, err := queryBool(r, "active")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagues, err := h.leagueService.ListLeagues(ctx, league.ListFilter{
		Active: active,
		Skip:   query.Skip,
		Limit:  query.Limit,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(ctx, leagues, leagueToDTO))
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.GetLeague")
	defer span.End()

	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.leagueService.GetLeague(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(ctx, item))
}

func (h *Handler) ListLeagueTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.ListLeagueTeams")
	defer span.End()

	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.leagueService.ListTeams(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list league teams failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(ctx, teams, teamToDTO))
}

func (h *Handler) ListLeagueStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.ListLeagueStandings")
	defer span.End()

	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.leagueService.ListStandings(ctx, leagueID, r.URL.Query().Get("season"))
	if err != nil {
		h.logger.WarnContext(ctx, "list league standings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(ctx, items, standingToDTO))
}

func (h *Handler) ListLeagueGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "httpapi.Handler.ListLeagueGames")
	defer span.End()

	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	dateFrom, err := queryDate(r, "date_from")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	dateTo, err := queryDate(r, "date_to")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.leagueService.ListGames(ctx, leagueID, game.ListFilter{DateFrom: dateFrom, DateTo: dateTo})
	if err != nil {
		h.logger.WarnContext(ctx, "list league games failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mapSlice(ctx, items, gameToDTO))
}
