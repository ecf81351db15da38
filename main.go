package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lemurr-coffee/bot"
	"lemurr-coffee/config"
	"lemurr-coffee/db"
	"lemurr-coffee/services"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	// Check for migrate subcommand
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		runMigrate(cfg)
		return
	}

	if cfg.Telegram.Token == "" {
		fmt.Fprintln(os.Stderr, "TOKEN not set")
		os.Exit(1)
	}

	logger, err := newLogger(cfg.App)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.UsesDB() {
		if err := db.Init(ctx, cfg.DB); err != nil {
			logger.Fatal("db", zap.Error(err))
		}
		defer db.Close()

		// Optional auto-migration for fresh databases (AUTO_MIGRATE=1 or "true").
		if cfg.App.AutoMigrate {
			if err := applyMigrations(ctx, logger.Named("migrate")); err != nil {
				logger.Fatal("migrate", zap.Error(err))
			}
		}
	}

	seed, err := services.LoadSeed(ctx, cfg.Seed.Source, cfg.Seed.File)
	if err != nil {
		logger.Fatal("seed", zap.String("source", cfg.Seed.Source), zap.Error(err))
	}
	logger.Info("catalog seeded",
		zap.String("source", cfg.Seed.Source),
		zap.Int("items", len(seed.Items)),
		zap.Int("cities", len(seed.Cities)),
	)
	shop := services.NewShop(seed)

	b, err := bot.New(cfg, shop, logger)
	if err != nil {
		logger.Fatal("bot", zap.Error(err))
	}

	// Start admin panel bot (ADMIN_TOKEN)
	var admin *bot.AdminBot
	if cfg.Telegram.AdminToken != "" {
		admin, err = bot.NewAdminBot(cfg, shop, logger)
		if err != nil {
			logger.Fatal("admin bot", zap.Error(err))
		}
		go admin.Start()
	} else {
		logger.Warn("ADMIN_TOKEN not set, admin panel disabled")
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		if admin != nil {
			admin.Stop()
		}
		b.Stop()
	}()

	b.Start()
}

// newLogger builds a production JSON logger, or a console logger when APP_ENV=development.
func newLogger(app config.AppConfig) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if app.Env == "development" {
		zcfg = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(app.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	zcfg.Level = level
	return zcfg.Build()
}

func runMigrate(cfg *config.Config) {
	logger, err := newLogger(cfg.App)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()
	if err := db.Init(ctx, cfg.DB); err != nil {
		logger.Fatal("db", zap.Error(err))
	}
	defer db.Close()

	if err := applyMigrations(ctx, logger.Named("migrate")); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}
}
