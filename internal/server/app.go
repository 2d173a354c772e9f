package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"soundhive/internal/repositories"
	"soundhive/internal/shared"
)

// App bundles the catalog service's repositories, router, and HTTP server.
type App struct {
	cfg    shared.ServerConfig
	db     *sql.DB
	router *BasicRouter
	logger *log.Logger
}

// NewApp builds the catalog service over the given database. The schema is
// expected to be migrated already.
func NewApp(cfg shared.ServerConfig, db *sql.DB, logger *log.Logger) *App {
	router := NewBasicRouter()
	router.Use(RequestLogger(logger))
	router.Use(RateLimit(rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst)))

	router.Handler(NewSongHandler(repositories.NewSongRepository(db)))
	router.Handler(NewUserHandler(repositories.NewUserRepository(db)))
	router.Handler(NewLikedHandler(repositories.NewLikedSongRepository(db)))
	router.Handler(NewPlaylistHandler(repositories.NewPlaylistRepository(db), repositories.NewSongRepository(db)))

	router.Handle(http.MethodGet, "/api/health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}))

	return &App{cfg: cfg, db: db, router: router, logger: logger}
}

// Router exposes the configured router, mainly for tests.
func (a *App) Router() http.Handler {
	return a.router
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	addr := net.JoinHostPort(a.cfg.Host, strconv.Itoa(a.cfg.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("serving catalog API", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	a.logger.Info("server stopped")
	return nil
}
