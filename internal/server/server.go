// Package server provides the HTTP server and routing for the
// advisory service.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/aristath/advisor/internal/config"
	"github.com/aristath/advisor/internal/database"
	allocationhandlers "github.com/aristath/advisor/internal/modules/allocation/handlers"
	"github.com/aristath/advisor/internal/modules/questionnaire"
	questionnairehandlers "github.com/aristath/advisor/internal/modules/questionnaire/handlers"
	"github.com/aristath/advisor/internal/modules/session"
	sessionhandlers "github.com/aristath/advisor/internal/modules/session/handlers"
	"github.com/aristath/advisor/internal/modules/simulation"
	simulationhandlers "github.com/aristath/advisor/internal/modules/simulation/handlers"
	"github.com/aristath/advisor/internal/modules/statistics"
	statisticshandlers "github.com/aristath/advisor/internal/modules/statistics/handlers"
)

// Config carries the server's collaborators.
type Config struct {
	Log           zerolog.Logger
	Config        *config.Config
	CacheDB       *database.DB
	Sessions      *session.Manager
	Questionnaire *questionnaire.Service
	Statistics    *statistics.Service
	Simulation    *simulation.Service
	Prices        statisticshandlers.PriceProvider
	Port          int
	DevMode       bool
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	cfg            Config
	systemHandlers *SystemHandlers
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:         chi.NewRouter(),
		log:            cfg.Log.With().Str("component", "server").Logger(),
		cfg:            cfg,
		systemHandlers: NewSystemHandlers(cfg.Log, cfg.CacheDB, cfg.Sessions),
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Router exposes the configured router, mainly for tests.
func (s *Server) Router() chi.Router {
	return s.router
}

func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		sessionhandlers.NewHandler(s.cfg.Sessions, s.log).RegisterRoutes(r)
		questionnairehandlers.NewHandler(s.cfg.Questionnaire, s.cfg.Sessions, s.log).RegisterRoutes(r)
		allocationhandlers.NewHandler(s.cfg.Sessions, s.log).RegisterRoutes(r)
		statisticshandlers.NewHandler(s.cfg.Statistics, s.cfg.Prices, s.cfg.Sessions, s.log).RegisterRoutes(r)
		simulationhandlers.NewHandler(s.cfg.Simulation, s.cfg.Sessions, s.log).RegisterRoutes(r)

		r.Get("/health", s.systemHandlers.HandleHealth)
		r.Get("/system/info", s.systemHandlers.HandleSystemInfo)
	})
}

// Start begins listening for requests
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs each request with its status and duration
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
