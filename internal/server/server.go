package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pageza/mealbook/backend/config"
	"github.com/pageza/mealbook/backend/internal/api"
	"github.com/pageza/mealbook/backend/internal/middleware"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	cfg    *config.Config
}

// New creates a server with the middleware chain and every API route.
// The UI preferences always come from cfg.
func New(cfg *config.Config, deps api.Dependencies) *Server {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.MaxMultipartMemory = 8 << 20

	deps.Preferences = api.Preferences{Theme: cfg.Theme, Glassy: cfg.Glassy}
	api.RegisterRoutes(router, deps)

	return &Server{
		router: router,
		cfg:    cfg,
		http: &http.Server{
			Addr:    cfg.Addr(),
			Handler: router,
		},
	}
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves HTTP until the server is shut down. It returns nil after a
// graceful shutdown.
func (s *Server) Start() error {
	log.Info().Str("component", "server").Str("addr", s.http.Addr).Msg("Starting HTTP server")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server, waiting at most the configured
// shutdown timeout for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()
	return s.http.Shutdown(ctx)
}
