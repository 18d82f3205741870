// Package server wires configuration, storage and the REST API together and
// runs the stories backend until it receives a termination signal.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/friendstories/internal/logging"
	"github.com/dmitrijs2005/friendstories/internal/server/config"
	"github.com/dmitrijs2005/friendstories/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/friendstories/internal/server/rest"
	"github.com/dmitrijs2005/friendstories/internal/server/services"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	userService  *services.UserService
	storyService *services.StoryService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewZerologLogger(os.Stdout, logging.ParseLevel(c.LogLevel))

	db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager(c.SeedOnStart)
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &App{
		config:       c,
		logger:       logger,
		db:           db,
		userService:  services.NewUserService(db, rm),
		storyService: services.NewStoryService(db, rm),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Handler builds the full HTTP handler chain.
func (app *App) Handler() http.Handler {
	metrics := rest.NewMetrics(app.config.MetricsEnabled)
	cache := rest.NewResponseCache(app.config.CacheSizeMB, app.config.CacheTTL)
	api := rest.NewApiController(app.logger, app.userService, app.storyService, app.db, cache, metrics)
	return rest.Chain(api.Routes().Mux(), app.logger.With("module", "access"), metrics)
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.db.Close()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	s := rest.NewHTTPServer(app.config.HTTPAddr, app.Handler(), app.logger, app.config.ShutdownTimeout)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "server stopped", "error", err)
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}
