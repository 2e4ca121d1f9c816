// Package server wires the HTTP router, middleware, and all route definitions.
//
// This is the composition root: main.go hands over a Config and a logger,
// and New() assembles the whole dependency chain in one place:
//
//	sqlite.DB → services → handlers → routes
//
// Handlers never touch the database directly and services never touch HTTP.
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

	"github.com/ekaraca/vspecs/internal/auth"
	"github.com/ekaraca/vspecs/internal/handler"
	"github.com/ekaraca/vspecs/internal/middleware"
	sqliteRepo "github.com/ekaraca/vspecs/internal/repository/sqlite"
	"github.com/ekaraca/vspecs/internal/service"
)

// Config holds what the server needs beyond its external clients.
type Config struct {
	Port      int
	DBPath    string
	JWTSecret string
}

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown so the WAL is flushed and the file lock
// released.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database, assembles the dependency chain, and registers all
// routes. The coach and uploader clients are passed in rather than built
// here so tests (and the scraper binary) can share the wiring without
// dragging in HTTP upstreams.
func New(cfg Config, coach handler.CoachClient, uploader handler.ImageUploader, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(coach, uploader); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware and mounts every handler.
//
// Middleware order matters: RequestID and RealIP run first so the logger and
// Recoverer see the enriched request.
func (s *Server) setupRoutes(coach handler.CoachClient, uploader handler.ImageUploader) error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	authService := service.NewAuthService(s.db, s.db, tokens, passwords, s.logger)
	playerService := service.NewPlayerService(s.db, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	userHandler := handler.NewUserHandler(authService, s.logger)
	playerHandler := handler.NewPlayerHandler(playerService, s.logger)
	chatHandler := handler.NewChatHandler(coach, s.logger)
	uploadHandler := handler.NewUploadHandler(uploader, s.logger)

	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"v-specs api is running"}`))
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)

		r.Get("/players", playerHandler.HandleList)
		r.Get("/players/{id}", playerHandler.HandleGetByID)

		r.Post("/chat", chatHandler.HandleChat)
		r.Post("/upload", uploadHandler.HandleUpload)

		// Routes below require a valid session token.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens, s.logger))

			r.Get("/user/profile", userHandler.HandleGetProfile)
			r.Put("/user/profile", userHandler.HandleUpdateProfile)
			r.Post("/user/favorites/{playerID}", userHandler.HandleAddFavorite)
			r.Delete("/user/favorites/{playerID}", userHandler.HandleRemoveFavorite)

			// And these additionally require the admin flag.
			r.Route("/admin", func(r chi.Router) {
				r.Use(auth.RequireAdmin(s.db, s.logger))

				r.Post("/players", playerHandler.HandleCreate)
				r.Put("/players/{id}", playerHandler.HandleUpdate)
				r.Delete("/players/{id}", playerHandler.HandleDelete)
				r.Post("/seed", playerHandler.HandleSeed)
			})
		})
	})

	return nil
}

// Router exposes the configured mux so tests can drive it with httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30s to
// finish, close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
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

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
