package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"drivetest-bot/internal/config"
	"drivetest-bot/internal/console"
	"drivetest-bot/internal/content"
	"drivetest-bot/internal/exam"
	"drivetest-bot/internal/exam/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	dbPath := flag.String("db", cfg.DatabasePath, "sqlite database path")
	contentPath := flag.String("content", cfg.ContentPath, "catalog JSON file (generated fixture when empty)")
	userID := flag.String("user", "console", "stable user id for this session")
	name := flag.String("name", "Local User", "display name")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	store, err := sqlite.New(*dbPath)
	if err != nil {
		logger.Fatal("open store failed", zap.Error(err))
	}
	defer store.Close()

	tests, err := content.Load(*contentPath, cfg.TotalTests, cfg.QuestionsPerTest)
	if err != nil {
		logger.Fatal("loading content failed", zap.Error(err))
	}

	catalog, err := exam.NewCatalog(tests, cfg.QuestionsPerTest)
	if err != nil {
		logger.Fatal("building catalog failed", zap.Error(err))
	}

	ctx := context.Background()
	for _, test := range catalog.All() {
		if err := store.Tests.Upsert(ctx, test); err != nil {
			logger.Fatal("seeding catalog failed", zap.String("test_id", test.ID), zap.Error(err))
		}
	}

	tracker := exam.NewTracker(catalog, store.Users, store.Results, cfg.PassingPercentage)
	controller := exam.NewSessionController(catalog, tracker, store.Users, store.Results, logger)

	err = console.Run(ctx, os.Stdin, os.Stdout, controller, console.Config{
		UserID: *userID,
		Name:   *name,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
