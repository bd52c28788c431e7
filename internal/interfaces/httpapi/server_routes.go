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
	mux.HandleFunc("GET /v1/entities", handler.ListEntities)
	mux.HandleFunc("GET /v1/goto", handler.Goto)
	mux.HandleFunc("GET /v1/teams/{teamID}/rosters", handler.GetTeamRosters)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/statistics", handler.GetStatistics)
	mux.HandleFunc("GET /v1/meta", handler.GetMeta)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/rescrape", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRescrapeJob)))
}
