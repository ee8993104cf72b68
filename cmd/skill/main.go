package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"studentenfutter/config"
	"studentenfutter/internal/application"
	"studentenfutter/internal/infra/alexa"
	"studentenfutter/internal/infra/postgres"
	"studentenfutter/internal/infra/pushover"
	"studentenfutter/internal/infra/rabbitmq"
	"studentenfutter/internal/infra/studentenfutter"
	"studentenfutter/internal/locale"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	catalog, err := loadCatalog(cfg.Locale)
	if err != nil {
		logger.Error("loading locales", "error", err)
		os.Exit(1)
	}
	logger.Info("locales loaded", "locales", catalog.Tags(), "default", cfg.Locale.Default)

	menu := studentenfutter.NewClientWithURL(cfg.Menu.BaseURL, cfg.Menu.AuthToken, cfg.MenuTimeout())

	var notifier application.Notifier
	if cfg.Pushover.Enabled {
		notifier = pushover.NewClient(cfg.Pushover.Token, cfg.Pushover.UserKey, "Studentenfutter")
	} else {
		notifier = &application.NoopNotifier{}
	}

	var recorders application.MultiRecorder

	if cfg.Database.Enabled {
		store, err := postgres.Open(ctx, cfg.Database.URL, logger)
		if err != nil {
			logger.Error("opening database", "error", err)
			os.Exit(1)
		}
		defer store.Close()
		recorders = append(recorders, store)
	}

	if cfg.Events.Enabled {
		publisher, err := rabbitmq.Dial(ctx, cfg.Events.URL, cfg.Events.Exchange, logger)
		if err != nil {
			logger.Error("connecting to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		recorders = append(recorders, publisher)
	}

	var recorder application.InvocationRecorder = &application.NoopRecorder{}
	if len(recorders) > 0 {
		recorder = recorders
	}

	skill := application.NewSkill(menu, catalog, notifier, recorder, logger)
	server := alexa.NewServer(cfg.Skill.HTTPAddr, cfg.Skill.AppID, cfg.Skill.AuthToken, skill, logger)

	logger.Info("starting studentenfutter skill",
		"addr", cfg.Skill.HTTPAddr,
		"menu_url", cfg.Menu.BaseURL,
		"app_id_check", cfg.Skill.AppID != "",
		"history", cfg.Database.Enabled,
		"events", cfg.Events.Enabled,
	)

	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("shut down")
}

func loadCatalog(cfg config.LocaleConfig) (*locale.Catalog, error) {
	if cfg.Dir != "" {
		return locale.Load(os.DirFS(cfg.Dir), cfg.Default)
	}
	return locale.Bundled(cfg.Default)
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
