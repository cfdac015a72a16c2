// Package app wires configuration, storage, the render pool, and the
// Telegram handlers into a runnable bot.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/themebot/config"
	"github.com/m3rciful/themebot/database"
	"github.com/m3rciful/themebot/logger"
	"github.com/m3rciful/themebot/render"
	"github.com/m3rciful/themebot/store"
	"github.com/m3rciful/themebot/telegram"
	"github.com/m3rciful/themebot/telegram/handlers"
	"github.com/m3rciful/themebot/telegram/middleware"
)

// App holds the bot's long-lived components.
type App struct {
	cfg      *config.Config
	db       *sqlx.DB
	store    store.Store
	pool     *render.Pool
	counters *middleware.Counters

	// flow is built in OnStart once the bot identity is known.
	flow *handlers.Flow
}

// Bootstrap initializes the logger, connects to the database, applies
// migrations, and builds the draft store and render pool.
func Bootstrap(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config provided")
	}

	if err := logger.Init(logger.Settings{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		KeysOrder:   cfg.Logging.KeysOrder,
		DebugSample: cfg.Logging.DebugSample,
		Dir:         cfg.Logging.Dir,
		File:        cfg.Logging.BotFile,
		Profile:     cfg.Logging.Profile,
	}); err != nil {
		return nil, fmt.Errorf("app: logger init failed: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("app: database initialization failed: %w", err)
	}
	if err := database.RunMigrations(cfg.Database); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("app: migrations failed: %w", err)
	}

	pool := render.NewPool(render.Options{
		Workers:     cfg.Render.Workers,
		QueueSize:   cfg.Render.QueueSize,
		MaxDuration: time.Duration(cfg.Render.TimeoutSeconds) * time.Second,
	})

	return &App{
		cfg:      cfg,
		db:       db,
		store:    store.NewPostgres(db),
		pool:     pool,
		counters: &middleware.Counters{},
	}, nil
}

// TelegramRunOptions builds the run options binding handlers to endpoints.
func (a *App) TelegramRunOptions() telegram.RunOptions {
	reg := telegram.NewRegistry()
	reg.RegisterCommand("/start", telegram.Command{
		Description: "How to build a theme",
		Handler:     handlers.Start(),
	})
	reg.RegisterCommand("/help", telegram.Command{
		Description: "Conversation steps explained",
		Handler:     handlers.Help(),
	})

	routes := []telegram.Route{
		{Endpoint: tele.OnCallback, Handler: func(c tele.Context) error {
			if a.flow == nil {
				return nil
			}
			return handlers.OnCallback(a.flow)(c)
		}},
		{Endpoint: tele.OnPhoto, Handler: handlers.OnPhoto(a.store, a.pool)},
		{Endpoint: tele.OnText, Handler: handlers.NotAPhoto()},
		{Endpoint: tele.OnDocument, Handler: handlers.NotAPhoto()},
	}

	return telegram.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: telegram.DefaultMiddlewares(a.cfg, a.counters),
		Routes:      routes,
		OnStart:     a.onStart,
		OnStop:      a.onStop,
	}
}

func (a *App) onStart(_ context.Context, bot *tele.Bot) error {
	username := ""
	if bot.Me != nil {
		username = bot.Me.Username
	}
	if username == "" {
		return fmt.Errorf("app: bot identity is unknown")
	}

	donateURL := ""
	if a.cfg.Payments.ProviderToken != "" {
		donateURL = fmt.Sprintf("https://t.me/%s?start=donate", username)
	}
	a.flow = handlers.NewFlow(a.store, a.pool, username, donateURL)

	logger.Wire.Info("handlers wired",
		slog.String("event", "wired"),
		slog.String("bot", username),
		slog.Bool("donations", donateURL != ""),
	)
	return nil
}

func (a *App) onStop(context.Context, *tele.Bot) error {
	a.pool.Close()

	callbacks, photos, messages, other := a.counters.Snapshot()
	logger.L.With("component", "app").Info("update totals",
		slog.String("event", "totals"),
		slog.Uint64("callbacks", callbacks),
		slog.Uint64("photos", photos),
		slog.Uint64("messages", messages),
		slog.Uint64("other", other),
	)

	return a.db.Close()
}
