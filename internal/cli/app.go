// Package cli implements the interactive chatkeeper front end. It is the
// stand-in for a rendering layer: every command re-renders from the
// collections the data layer returns.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/chatkeeper/internal/chat"
	"github.com/dmitrijs2005/chatkeeper/internal/config"
	"github.com/dmitrijs2005/chatkeeper/internal/logging"
	"github.com/dmitrijs2005/chatkeeper/internal/models"
	"github.com/dmitrijs2005/chatkeeper/internal/session"
	"github.com/dmitrijs2005/chatkeeper/internal/storage"
)

type App struct {
	config     *config.Config
	sessions   *session.Manager
	controller *chat.Controller
	log        logging.Logger
	db         *sql.DB
	reader     *bufio.Reader

	// lastView is the most recently rendered message list; edit/delete
	// commands address messages by their index in it.
	lastView []models.Message
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	log := logging.NewSlogLogger(slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	db, err := storage.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	store := storage.NewStore(storage.NewSQLiteKV(db), log)
	sessions := session.NewManager(ctx, store, log)
	controller := chat.NewController(sessions, chat.NewMessageStore(store), log)

	return &App{
		config:     c,
		sessions:   sessions,
		controller: controller,
		log:        log,
		db:         db,
		reader:     bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	_, ok := a.sessions.Current()
	return ok
}
