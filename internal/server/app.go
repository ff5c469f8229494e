package server

import (
	"context"
	"net/http"

	"github.com/kegliz/feynmansim/internal/config"
	"github.com/kegliz/feynmansim/internal/logger"
	"github.com/kegliz/feynmansim/internal/server/router"
)

type appServer struct {
	logger *logger.Logger
	router *router.Router
	app    *App
}

// NewServer builds a Server exposing circuit execution over HTTP, wired
// with the given engine configuration.
func NewServer(cfg *config.EngineConfig) Server {
	l, r := NewLoggerAndRouter(EngineOptions{Debug: cfg.Debug})
	app := &App{Config: cfg, Log: l}
	s := &appServer{logger: l, router: r, app: app}
	r.SetRoutes(s.routes())
	return s
}

func (s *appServer) routes() []*router.Route {
	return []*router.Route{
		{Name: "health", Method: http.MethodGet, Pattern: "/health", HandlerFunc: s.app.HealthHandler},
		{Name: "circuits.run", Method: http.MethodPost, Pattern: "/v1/circuits/run", HandlerFunc: s.app.RunCircuit},
	}
}

func (s *appServer) Listen(port int, localOnly bool) error {
	s.logger.Info().Int("port", port).Bool("localOnly", localOnly).Msg("starting feynmansim API server")
	return s.router.Start(port, localOnly)
}

func (s *appServer) Shutdown(ctx context.Context) error {
	return s.router.Shutdown(ctx)
}
