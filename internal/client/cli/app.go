package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/friendstories/internal/client/client"
	"github.com/dmitrijs2005/friendstories/internal/client/config"
	"github.com/dmitrijs2005/friendstories/internal/client/repositories/repomanager"
	"github.com/dmitrijs2005/friendstories/internal/client/services"
	"github.com/dmitrijs2005/friendstories/internal/client/settings"
	"github.com/dmitrijs2005/friendstories/internal/logging"
	"golang.org/x/term"
)

type App struct {
	config   *config.Config
	db       *sql.DB
	client   client.Client
	sync     *services.SyncService
	feed     *services.FeedService
	settings *settings.Settings
	logger   logging.Logger

	out   io.Writer
	tty   bool
	lines  *lineSource
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, logging.ParseLevel(c.LogLevel))

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	st, err := settings.Load(c.SettingsPath)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	apiClient := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	repos := repomanager.NewSQLiteRepositoryManager()
	library := services.NewLibrary(db, repos, logger)

	return &App{
		config:   c,
		db:       db,
		client:   apiClient,
		sync:     services.NewSyncService(apiClient, db, repos, c.PageLimit, logger),
		feed:     services.NewFeedService(library, st),
		settings: st,
		logger:   logger.With("module", "cli"),
		out:      os.Stdout,
		tty:      term.IsTerminal(int(os.Stdout.Fd())),
	}, nil
}

// Run refreshes the first page, then serves commands from in until EOF or
// exit.
func (a *App) Run(ctx context.Context, in io.Reader) error {
	defer a.db.Close()

	a.lines = newLineSource(readLines(ctx, in))

	fmt.Fprintln(a.out, "Friends' Stories (type 'help' for commands)")
	if err := a.Refresh(ctx); err != nil {
		a.logger.Warn(ctx, "initial sync failed", "error", err)
	}

	runREPL(ctx, a, a.status, a.lines)
	return nil
}

func (a *App) status() string {
	cp, err := a.sync.Checkpoint(context.Background())
	if err != nil || cp.SyncedAt.IsZero() {
		return "offline cache"
	}
	return fmt.Sprintf("%s, page %d", a.settings.Speed(), cp.Cursor)
}
