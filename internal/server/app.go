// Package server initializes and runs the identity store. It loads
// configuration, opens the PostgreSQL pool, applies migrations, and builds
// the adapter the authentication framework consumes.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/adapter"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	repos   repomanager.RepositoryManager
	adapter adapter.Adapter
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewJSONSlogLogger(os.Stdout, cfg.LogLevel).With("run_id", uuid.NewString())

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	a := adapter.NewPostgresAdapter(db, m, logger)

	return &App{config: cfg, logger: logger, db: db, repos: m, adapter: a}, nil
}

// Adapter exposes the framework-facing capability set built by NewApp.
func (app *App) Adapter() adapter.Adapter {
	return app.adapter
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run probes the store, applies migrations, and then waits for a shutdown
// signal. The adapter itself is passive: the authentication framework drives
// it call by call.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting identity store")

	app.initSignalHandler(cancelFunc)

	pingCtx, pingCancel := context.WithTimeout(ctx, app.config.QueryTimeout)
	defer pingCancel()
	if err := app.db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("db ping error: %w", err)
	}

	if err := app.repos.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	app.logger.Info(ctx, "schema up to date")

	<-ctx.Done()

	app.logger.Info(ctx, "shutting down")
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	return nil
}
