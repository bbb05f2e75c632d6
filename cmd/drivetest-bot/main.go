package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"drivetest-bot/internal/config"
	"drivetest-bot/internal/content"
	"drivetest-bot/internal/exam"
	"drivetest-bot/internal/exam/sqlite"
	"drivetest-bot/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	dbPath := flag.String("db", cfg.DatabasePath, "sqlite database path")
	contentPath := flag.String("content", cfg.ContentPath, "catalog JSON file (generated fixture when empty)")
	flag.Parse()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.BotToken == "" {
		logger.Fatal("BOT_TOKEN is required")
	}

	controller, store, err := buildController(cfg, *dbPath, *contentPath, logger)
	if err != nil {
		logger.Fatal("startup failed", zap.Error(err))
	}
	defer store.Close()

	bot, err := telegram.New(cfg.BotToken, controller, logger)
	if err != nil {
		logger.Fatal("creating bot failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("bot stopped", zap.Error(err))
	}
	logger.Info("shutdown complete")
}

func buildController(cfg *config.Config, dbPath, contentPath string, logger *zap.Logger) (*exam.SessionController, *sqlite.Store, error) {
	store, err := sqlite.New(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	tests, err := content.Load(contentPath, cfg.TotalTests, cfg.QuestionsPerTest)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	catalog, err := exam.NewCatalog(tests, cfg.QuestionsPerTest)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("build catalog: %w", err)
	}

	ctx := context.Background()
	for _, test := range catalog.All() {
		if err := store.Tests.Upsert(ctx, test); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("seed test %s: %w", test.ID, err)
		}
	}
	logger.Info("catalog loaded",
		zap.Int("tests", catalog.Len()),
		zap.Int("questions_per_test", catalog.QuestionsPerTest()))

	tracker := exam.NewTracker(catalog, store.Users, store.Results, cfg.PassingPercentage)
	controller := exam.NewSessionController(catalog, tracker, store.Users, store.Results, logger)
	return controller, store, nil
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
