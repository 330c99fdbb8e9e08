package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerReadRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /api/leagues/{leagueID}", handler.GetLeague)
	mux.HandleFunc("GET /api/leagues/{leagueID}/teams", handler.ListLeagueTeams)
	mux.HandleFunc("GET /api/leagues/{leagueID}/standings", handler.ListLeagueStandings)
	mux.HandleFunc("GET /api/leagues/{leagueID}/games", handler.ListLeagueGames)

	mux.HandleFunc("GET /api/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /api/teams/{teamID}/players", handler.ListTeamPlayers)
	mux.HandleFunc("GET /api/teams/{teamID}/games", handler.ListTeamGames)
	mux.HandleFunc("GET /api/teams/{teamID}/stats", handler.ListTeamStats)

	mux.HandleFunc("GET /api/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /api/players/{playerID}/stats", handler.ListPlayerStats)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /api/internal/jobs/reconcile-all", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunReconcileAllJob)))
	mux.Handle("POST /api/internal/jobs/reconcile/{leagueID}", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunReconcileLeagueJob)))
}
