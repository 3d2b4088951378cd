package server

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/focusbrain/arena/internal/arena"
	"github.com/focusbrain/arena/internal/chat"
)

// Deps is everything the routes need from the rest of the process.
type Deps struct {
	Matchmaker *arena.Matchmaker
	Gateway    *arena.Gateway
	Registry   *arena.Registry
	Chat       *chat.Service
	DB         *sql.DB
}

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Brain Arena API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, deps.DB))

	r.Get("/ws/arena", handleArenaWS(logger, deps.Matchmaker, deps.Gateway, deps.Chat))
	r.Get("/api/arena/stats", handleStats(deps.Matchmaker, deps.Gateway, deps.Registry))
}
