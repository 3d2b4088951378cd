package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Brain Arena API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Real-time 1v1 quiz duel backend. Gameplay runs over the /ws/arena WebSocket.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /ws/arena
	getWS, _ := r.NewOperationContext(http.MethodGet, "/ws/arena")
	getWS.SetSummary("Arena WebSocket")
	getWS.SetDescription("Upgrades to the duel connection. Clients send find_match, submit_answer, chat_join, and chat_message frames; the server pushes matchmaking, game, and chat events.")
	getWS.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getWS)

	// GET /api/arena/stats
	getStats, _ := r.NewOperationContext(http.MethodGet, "/api/arena/stats")
	getStats.SetSummary("Engine stats")
	getStats.SetDescription("Returns connected client, active session, and waiting-slot counts.")
	getStats.AddRespStructure(StatsResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getStats)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
