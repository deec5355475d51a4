package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"bookshelf/internal/api"
	"bookshelf/internal/backup"
	"bookshelf/internal/command"
	"bookshelf/internal/config"
	"bookshelf/internal/customcommands"
	"bookshelf/internal/db"
	"bookshelf/internal/discord"
	"bookshelf/internal/logger"
	"bookshelf/internal/storage"
	v "bookshelf/internal/version"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		logger.Fatal("Config error: %v", err)
	}

	logger.Init(cfg.LogToFile)
	logger.Info("Starting %s %s...", v.AppName, v.Semver)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		logger.Fatal("Storage error: %v", err)
	}
	defer store.Close()

	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("Database error: %v", err)
	}
	defer database.Close()

	registry := customcommands.NewRegistry()
	commands := customcommands.NewStore(cfg.CommandsPath, registry)
	if err := commands.Load(); err != nil {
		logger.Fatal("Failed to load custom commands: %v", err)
	}
	defer func() {
		if err := commands.Save(); err != nil {
			logger.Store("Failed to save custom commands on exit: %v", err)
		}
	}()

	deps := &command.Deps{
		Config:   cfg,
		Storage:  store,
		DB:       database,
		API:      api.NewClient(cfg.NASAAPIKey),
		Commands: commands,
		Wizards:  customcommands.NewManager(cfg.WizardTimeout),
		Registry: registry,
	}

	var wg sync.WaitGroup
	if runner := backup.New(cfg.BackupURL, cfg.StoragePath, cfg.CommandsPath, cfg.DatabasePath); runner != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runner.Run(ctx)
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		if err := discord.StartBot(ctx, cfg, deps); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info("Received signal %s, shutting down...", s)
		cancel()
	case err := <-errCh:
		if err != nil {
			logger.Error("Discord bot error: %v", err)
		}
		cancel()
	}

	wg.Wait()
	logger.Info("Bot exited cleanly")
}
