// cmd/calee/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"calee/internal/config"
	"calee/internal/recognition"
	"calee/internal/server"
	"calee/internal/storage"
	"calee/internal/uploads"
)

var (
	envFile = flag.String("env-file", ".env", "Path to an optional .env file")
	port    = flag.Int("port", 0, "Port for HTTP (overrides PORT)")
	host    = flag.String("host", "", "Host address (overrides HOST)")
	address = flag.String("address", "", "Address (alias for host)")
	dbPath  = flag.String("db-path", "", "Database path (overrides DATABASE_PATH)")
	version = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Println("calee version 1.0.0")
		os.Exit(0)
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	// Flags override the environment; address is an alias for host.
	if *host != "" {
		cfg.Host = *host
	}
	if *address != "" {
		cfg.Host = *address
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stor, err := storage.NewSQLiteStorage(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer stor.Close()

	if cfg.SeedFoods {
		n, err := stor.SeedFoods(ctx, storage.SeedCatalog)
		if err != nil {
			return fmt.Errorf("failed to seed foods: %w", err)
		}
		if n > 0 {
			logger.Info("seeded food catalog", "foods", n)
		}
	}

	recognizer, err := newRecognizer(ctx, cfg, stor, logger)
	if err != nil {
		return err
	}
	images, err := newImageStore(ctx, cfg)
	if err != nil {
		return err
	}

	srv := server.New(cfg, stor, recognizer, images, logger)

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			return err
		}
		return nil
	}

	logger.Info("shutting down")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	return nil
}

func newRecognizer(ctx context.Context, cfg *config.Config, stor *storage.SQLiteStorage, logger *slog.Logger) (recognition.Recognizer, error) {
	switch cfg.RecognitionBackend {
	case config.RecognitionRekognition:
		r, err := recognition.NewRekognitionFromRegion(ctx, cfg.AWSRegion, stor, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create rekognition client: %w", err)
		}
		return r, nil
	default:
		if cfg.RecognitionAPIKey == "" {
			logger.Warn("RECOGNITION_API_KEY is empty; image recognition calls will be rejected upstream")
		}
		return recognition.NewVisionClient(cfg.RecognitionAPIURL, cfg.RecognitionAPIKey, cfg.RecognitionModel,
			cfg.RecognitionTimeout, recognition.WithLogger(logger)), nil
	}
}

func newImageStore(ctx context.Context, cfg *config.Config) (uploads.Store, error) {
	switch cfg.UploadBackend {
	case config.UploadS3:
		s, err := uploads.NewS3StoreFromRegion(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3PublicURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 store: %w", err)
		}
		return s, nil
	default:
		s, err := uploads.NewLocalStore(cfg.UploadDir, "/uploads")
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}
