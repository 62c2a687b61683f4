package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vidzel/vidzel/pkg/config"
)

// seedWatchCmd represents the seed watch command
var seedWatchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Watch a file and load the seed it points to when modified",
	Long: `Watch a file and load seed data when it changes.

To trigger a load, replace the contents of the watched file with the path
to a seed document. The path must be visible to the process running
"vidzelctl seed watch".

Example:
  vidzelctl seed watch /run/vidzel/seed/load`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := watchSeed(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch seed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	seedCmd.AddCommand(seedWatchCmd)
}

func watchSeed(filename string) error {
	logger, err := newLogger(config.Get().LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	database, err := connectDatabase()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filename); err != nil {
		return fmt.Errorf("failed to watch file %s: %w", filename, err)
	}

	logger.Info("watching for seed changes", zap.String("file", filename))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			content, err := os.ReadFile(filename)
			if err != nil {
				logger.Error("failed to read watched file", zap.Error(err))
				continue
			}
			seedPath := strings.TrimSpace(string(content))
			if seedPath == "" {
				continue
			}

			logger.Info("file modified, loading seed", zap.String("seed", seedPath))
			if _, err := loadSeedFile(context.Background(), database, seedPath, false, logger); err != nil {
				logger.Error("failed to load seed", zap.String("seed", seedPath), zap.Error(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		case <-sigChan:
			logger.Info("shutting down")
			return nil
		}
	}
}
