// Package cli is the terminal frontend of the GeoSick client: an interactive
// shell over the application core (credential store, session manager,
// activity log, auth flow, navigation).
package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/geosick-health/geosick/internal/client/accounts"
	"github.com/geosick-health/geosick/internal/client/activity"
	"github.com/geosick-health/geosick/internal/client/auth"
	"github.com/geosick-health/geosick/internal/client/config"
	"github.com/geosick-health/geosick/internal/client/session"
	"github.com/geosick-health/geosick/internal/client/shell"
	"github.com/geosick-health/geosick/internal/client/storage"
	"github.com/geosick-health/geosick/internal/client/telemetry"
	"github.com/geosick-health/geosick/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	shell     *shell.Shell
	publisher *telemetry.Publisher
	reader    *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	slogger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := storage.OpenSQLite(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err.Error())
		return nil, err
	}

	kv := storage.NewSQLiteKV(db)
	store := accounts.NewStore(kv, logger)
	sessions := session.NewManager(kv, store, logger)
	flow := auth.NewFlow(store, c.AuthMinDelay, logger)

	var (
		tp  *telemetry.Publisher
		pub activity.Publisher
	)
	if c.DirectoryAddr != "" {
		tp = telemetry.NewPublisher(c.DirectoryAddr, logger)
		pub = tp
	}

	sh := shell.New(kv, sessions, flow, pub, logger)

	return &App{
		config:    c,
		logger:    logger,
		shell:     sh,
		publisher: tp,
		reader:    bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	a.shell.Init(ctx)
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.shell.User() != nil
}
