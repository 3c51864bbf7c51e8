package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/budgetbite/budgetbite/internal/config"
	"github.com/budgetbite/budgetbite/internal/database"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, database, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	db     *pgxpool.Pool
	router *mux.Router
	srv    *http.Server
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}

	// migrations first, so the pool never sees an outdated schema
	if err := database.Migrate(cfg.Database); err != nil {
		return nil, err
	}
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}

	deps := BuildDependencies(PostgresRepositories(db), cfg)
	r := NewRouter(deps, cfg)

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Server.Addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, db: db, router: r, srv: srv}, nil
}

// NewRouter builds the router with middleware and all API routes.
func NewRouter(deps *Dependencies, cfg config.Application) *mux.Router {
	r := mux.NewRouter()
	SetupMiddleware(r, deps, cfg)
	RegisterRoutes(r, deps, cfg)
	return r
}

// Run starts the HTTP server and blocks until it fails or the process is interrupted.
func (a *Application) Run() error {
	defer a.db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", a.srv.Addr)
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return a.srv.Shutdown(shutdownCtx)
}
