package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/riders", handler.ListRiders)
	mux.HandleFunc("GET /v1/constructors", handler.ListConstructors)
	mux.HandleFunc("GET /v1/races", handler.ListRaces)
	mux.HandleFunc("GET /v1/races/{raceID}/dream-team", handler.GetDreamTeam)
	mux.HandleFunc("GET /v1/participants", handler.ListParticipants)
	mux.HandleFunc("GET /v1/participants/{participantID}/team", handler.GetCurrentTeam)
	mux.HandleFunc("PUT /v1/participants/{participantID}/team", handler.SaveTeam)
	mux.HandleFunc("GET /v1/participants/{participantID}/team/history", handler.ListTeamHistory)
	mux.HandleFunc("GET /v1/participants/{participantID}/team/races/{raceID}", handler.GetTeamForRace)
	mux.HandleFunc("GET /v1/participants/{participantID}/scores/races/{raceID}", handler.GetRaceBreakdown)
	mux.HandleFunc("GET /v1/standings", handler.ListStandings)
	mux.HandleFunc("GET /v1/stats", handler.GetLeagueStats)
	mux.HandleFunc("GET /v1/market/status", handler.GetMarketStatus)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/market-adjust", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunMarketAdjustJob)))
	mux.Handle("POST /v1/internal/jobs/results-sync", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunResultsSyncJob)))
	mux.Handle("PUT /v1/internal/settings/market-deadline", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.UpdateMarketDeadline)))
	mux.Handle("DELETE /v1/internal/participants/{participantID}", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RemoveParticipant)))
}
