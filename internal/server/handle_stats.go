package server

import (
	"net/http"

	"github.com/focusbrain/arena/internal/arena"
)

// StatsResponse is a point-in-time snapshot of the engine.
type StatsResponse struct {
	ConnectedClients int  `json:"connectedClients"`
	ActiveSessions   int  `json:"activeSessions"`
	PlayerWaiting    bool `json:"playerWaiting"`
}

func handleStats(mm *arena.Matchmaker, gw *arena.Gateway, reg *arena.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, StatsResponse{
			ConnectedClients: gw.Connected(),
			ActiveSessions:   reg.Len(),
			PlayerWaiting:    mm.Waiting(),
		})
	}
}
