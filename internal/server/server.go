// Package server wires the application together: it is the composition
// root where stores, repository, services, handlers, and middleware are
// constructed once and connected to routes.
//
// Everything is explicit dependency injection — there are no package-level
// service singletons. main.go stays minimal: load config, build a logger,
// call New, call Start.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/userverse/userverse/internal/auth"
	"github.com/userverse/userverse/internal/config"
	"github.com/userverse/userverse/internal/github"
	"github.com/userverse/userverse/internal/handler"
	"github.com/userverse/userverse/internal/middleware"
	"github.com/userverse/userverse/internal/model"
	"github.com/userverse/userverse/internal/repository"
	"github.com/userverse/userverse/internal/service"
	"github.com/userverse/userverse/internal/store"
)

// Server owns the router and the auth service (needed to start the
// optional session sweeper alongside the listener).
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	auth   *service.AuthService
}

// New assembles the full dependency graph.
//
// Two independent stores back the system: one for users (owned by the
// repository) and one for sessions (owned by the auth service). They share
// the store implementation but are disjoint tables with no cross-table
// guarantees.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	var scheme repository.PasswordScheme = repository.PlainScheme{}
	if cfg.PasswordScheme == "bcrypt" {
		scheme = repository.NewBcryptScheme()
	}

	users := repository.NewUserRepository(
		store.New[*model.User](),
		repository.LogHooks{Logger: logger},
		scheme,
	)

	authSvc := service.NewAuthService(
		users,
		store.New[*model.Session](),
		service.LogAuthHooks{Logger: logger},
		logger,
	)

	fetcher := github.New(cfg.GitHubAPIBase, cfg.GitHubFetchTimeout, logger)
	userSvc := service.NewUserService(users, fetcher, logger)

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		auth:   authSvc,
	}
	s.setupRoutes(authSvc, userSvc)
	return s, nil
}

// setupRoutes configures middleware and routes.
//
// ROUTE MAP:
// GET    /health             → liveness, public
// GET    /metrics            → Prometheus exposition, public
// POST   /auth/register      → public
// POST   /auth/login         → public
// POST   /auth/logout        → bearer
// GET    /users              → bearer
// GET    /users/{id}         → bearer, self-only
// PATCH  /users/{id}         → bearer, self-only
func (s *Server) setupRoutes(authSvc *service.AuthService, userSvc *service.UserService) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Metrics(func(r *http.Request) string {
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			return rctx.RoutePattern()
		}
		return ""
	}))

	authHandler := handler.NewAuthHandler(authSvc, s.logger)
	userHandler := handler.NewUserHandler(userSvc, s.logger)
	requireAuth := auth.RequireAuth(authSvc)

	s.router.Get("/health", handler.HandleHealth(s.logger))
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.With(requireAuth).Post("/logout", authHandler.HandleLogout)
	})

	s.router.Route("/users", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", userHandler.HandleList)
		r.Get("/{id}", userHandler.HandleGet)
		r.Patch("/{id}", userHandler.HandlePatch)
	})
}

// Router exposes the http.Handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30
// seconds to finish. All state is in memory, so nothing needs flushing —
// data is intentionally lost on restart.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// The sweeper (if enabled) stops when Start returns.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if s.config.SessionSweepInterval > 0 {
		s.auth.StartSweeper(ctx, s.config.SessionSweepInterval)
		s.logger.Info("session sweeper enabled",
			slog.Duration("interval", s.config.SessionSweepInterval))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
