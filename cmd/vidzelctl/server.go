package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vidzel/vidzel/pkg/audit"
	"github.com/vidzel/vidzel/pkg/blob"
	"github.com/vidzel/vidzel/pkg/config"
	"github.com/vidzel/vidzel/pkg/db"
	"github.com/vidzel/vidzel/pkg/metrics"
	"github.com/vidzel/vidzel/pkg/server"
	"github.com/vidzel/vidzel/pkg/server/endpoints"
	"github.com/vidzel/vidzel/pkg/token"
)

const shutdownTimeout = 10 * time.Second

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8000
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the Vidzel application server",
	Long: `Run the Vidzel application server.

To run the server requires the environment variables VIDZEL_TOKEN_KEY and DATABASE_URL.

By default, database migrations are run on startup. Use --no-migrate to skip.
The server drains in-flight requests for up to 10 seconds on SIGINT or SIGTERM.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Validate required environment first (fail fast)
		key, err := token.KeyFromEnv()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err := requireDatabaseURL(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		cfg := loadConfig()
		logger, err := newLogger(cfg.LogLevel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to build logger: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = logger.Sync() }()
		audit.SetLogger(logger.Named("audit"))

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			logger.Info("running database migrations")
			if err := runMigrations(); err != nil {
				logger.Fatal("migration failed", zap.Error(err))
			}
		}

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		if err := runServer(cfg, key, host, port, logger); err != nil {
			logger.Fatal("server failed", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}

func runServer(cfg *config.VidzelConfig, key []byte, host, port string, logger *zap.Logger) error {
	ctx := context.Background()

	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	signer, err := token.NewSigner(key, cfg.TokenTTL())
	if err != nil {
		return fmt.Errorf("unable to create token signer: %w", err)
	}

	blobs, err := blob.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("unable to open %s blob store: %w", cfg.BlobBackend, err)
	}

	s := server.NewServer(server.Options{
		Config:  cfg,
		Stores:  server.NewGormStores(database),
		Blob:    blobs,
		Signer:  signer,
		Logger:  logger,
		Metrics: metrics.New(),
		Version: version,
		Host:    host,
		Port:    port,
	})
	defer func() { _ = s.Close() }()
	endpoints.RegisterAll(s)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("running server", zap.String("url", fmt.Sprintf("http://%s:%s", host, port)))
		errCh <- s.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-sigChan:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
