package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/competitions", handler.ListCompetitions)
	mux.HandleFunc("GET /v1/competitions/{competitionID}", handler.GetCompetition)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/matches", handler.ListMatchesByCompetition)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/standings.csv", handler.ExportStandingsCSV)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/events", handler.ListMatchEvents)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAdminCompetitionRoutes(mux, handler, verifier)
	registerAdminMatchRoutes(mux, handler, verifier)
	registerAdminEventRoutes(mux, handler, verifier)
}

func registerAdminCompetitionRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/competitions/{competitionID}/matches", RequireAdmin(verifier, http.HandlerFunc(handler.CreateMatch)))
	mux.Handle("POST /v1/competitions/{competitionID}/teams", RequireAdmin(verifier, http.HandlerFunc(handler.RegisterTeam)))
	mux.Handle("POST /v1/competitions/{competitionID}/standings/recalculate", RequireAdmin(verifier, http.HandlerFunc(handler.RecalculateStandings)))
	mux.Handle("POST /v1/standings/recalculate", RequireAdmin(verifier, http.HandlerFunc(handler.RecalculateAllStandings)))
}

func registerAdminMatchRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/matches/{matchID}/start", RequireAdmin(verifier, http.HandlerFunc(handler.StartMatch)))
	mux.Handle("POST /v1/matches/{matchID}/halftime", RequireAdmin(verifier, http.HandlerFunc(handler.HalfTimeMatch)))
	mux.Handle("POST /v1/matches/{matchID}/end", RequireAdmin(verifier, http.HandlerFunc(handler.EndMatch)))
	mux.Handle("POST /v1/matches/{matchID}/postpone", RequireAdmin(verifier, http.HandlerFunc(handler.PostponeMatch)))
	mux.Handle("POST /v1/matches/{matchID}/cancel", RequireAdmin(verifier, http.HandlerFunc(handler.CancelMatch)))
	mux.Handle("POST /v1/matches/{matchID}/reschedule", RequireAdmin(verifier, http.HandlerFunc(handler.RescheduleMatch)))
	mux.Handle("DELETE /v1/matches/{matchID}", RequireAdmin(verifier, http.HandlerFunc(handler.DeleteMatch)))
	mux.Handle("PUT /v1/matches/{matchID}/lineups/{teamID}", RequireAdmin(verifier, http.HandlerFunc(handler.SetLineup)))
}

func registerAdminEventRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/matches/{matchID}/events/goals", RequireAdmin(verifier, http.HandlerFunc(handler.RecordGoal)))
	mux.Handle("POST /v1/matches/{matchID}/events/cards", RequireAdmin(verifier, http.HandlerFunc(handler.RecordCard)))
	mux.Handle("POST /v1/matches/{matchID}/events/substitutions", RequireAdmin(verifier, http.HandlerFunc(handler.RecordSubstitution)))
	mux.Handle("POST /v1/matches/{matchID}/events/penalty-misses", RequireAdmin(verifier, http.HandlerFunc(handler.RecordPenaltyMiss)))
	mux.Handle("DELETE /v1/matches/{matchID}/events/{eventID}", RequireAdmin(verifier, http.HandlerFunc(handler.DeleteMatchEvent)))
}
