package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sheikah-slate/relay-server/internal/config"
	"github.com/sheikah-slate/relay-server/internal/relay"
	"github.com/sheikah-slate/relay-server/internal/ws"
)

func SetupRoutes(coord *relay.Coordinator, reg *ws.Registry, cfg config.Config, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(coord, reg, cfg.AllowedOrigins, log))
	return r
}
