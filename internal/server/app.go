// Package server initializes and runs the scoring service: it wires the
// credential store, authentication services, the loaded model, and the HTTP
// server, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/zenscore/internal/logging"
	"github.com/dmitrijs2005/zenscore/internal/server/config"
	"github.com/dmitrijs2005/zenscore/internal/server/httpapi"
	"github.com/dmitrijs2005/zenscore/internal/server/predictor"
	"github.com/dmitrijs2005/zenscore/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/zenscore/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
	model       predictor.Predictor
	httpServer  *httpapi.Server
}

// NewApp constructs every component explicitly: storage backend, user
// service, model, HTTP server. The model is loaded once here and shared by
// reference; nothing lives in package-level state.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewJSON(cfg.LogLevel)

	var db *sql.DB
	var rm repomanager.RepositoryManager

	if cfg.DatabaseDSN == "" {
		logger.Warn(ctx, "no database DSN configured, using in-memory store")
		rm = repomanager.NewInMemoryRepositoryManager()
	} else {
		var err error
		db, err = sql.Open("pgx", cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db open error: %w", err)
		}
		pg := repomanager.NewPostgresRepositoryManager()
		if err := pg.RunMigrations(ctx, db); err != nil {
			return nil, fmt.Errorf("migration error: %w", err)
		}
		rm = pg
	}

	us := services.NewUserService(db, rm, cfg)

	model, err := predictor.Load(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("model load error: %w", err)
	}
	logger.Info(ctx, "model loaded", "features", len(model.FeatureNames()))

	srv := httpapi.NewServer(cfg, logger, us, model)

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		userService: us,
		model:       model,
		httpServer:  srv,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}
}
