package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/musmankhan/cnic-ocr/constants"
	"github.com/musmankhan/cnic-ocr/internal/cache"
	"github.com/musmankhan/cnic-ocr/internal/common"
	"github.com/musmankhan/cnic-ocr/internal/export"
	processor "github.com/musmankhan/cnic-ocr/internal/pipeline"
	"github.com/musmankhan/cnic-ocr/internal/repository"
	"github.com/musmankhan/cnic-ocr/internal/server"
	"github.com/musmankhan/cnic-ocr/internal/vision"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := newProvider(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize vision provider", "error", err)
		os.Exit(1)
	}
	logger.Info("vision provider ready", "engine", provider.Engine())

	// History store: Postgres when DB_URL is set, else SQLite when
	// SQLITE_PATH is set, else disabled.
	var (
		db      *sql.DB
		pool    *pgxpool.Pool
		history repository.ExtractionRepository
	)
	switch {
	case cfg.Database.DSN != "":
		db, pool, err = repository.Open(ctx, repository.Config{
			DSN:             cfg.Database.DSN,
			MaxConns:        cfg.Database.MaxConns,
			MinConns:        cfg.Database.MinConns,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
			MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
			DialTimeout:     cfg.Database.DialTimeout,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		if err := repository.HealthCheck(ctx, db, cfg.Database.DialTimeout, logger); err != nil {
			logger.Error("database health check failed", "error", err)
			os.Exit(1)
		}
	case cfg.Database.SQLitePath != "":
		db, err = repository.OpenSQLite(cfg.Database.SQLitePath, logger)
		if err != nil {
			logger.Error("failed to open sqlite database", "error", err)
			os.Exit(1)
		}
	default:
		logger.Warn("no history store configured, extraction history disabled")
	}
	if db != nil {
		defer repository.Close(db, pool, logger)
		history, err = repository.NewExtractionRepository(ctx, db, logger)
		if err != nil {
			logger.Error("failed to initialize history repository", "error", err)
			os.Exit(1)
		}
	}

	// Result cache is best effort; the service runs without it.
	var rc *cache.ResultCache
	if cfg.Cache.RedisAddr != "" {
		rc, err = cache.NewResultCache(ctx, cfg.Cache.RedisAddr, cfg.Cache.TTL, logger)
		if err != nil {
			logger.Warn("result cache unavailable, continuing without it", "error", err)
			rc = nil
		} else {
			defer func() {
				if err := rc.Close(); err != nil {
					logger.Warn("failed to close cache", "error", err)
				}
			}()
		}
	}

	proc := processor.NewProcessor(provider, history, rc, logger)
	var exporter *export.Service
	if history != nil {
		exporter = export.NewService(history, logger)
	}

	srv := server.New(cfg.Server.Addr, proc, history, exporter, cfg.Server.MaxUploadBytes, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("stopped")
}

func newProvider(cfg *common.Config, logger *slog.Logger) (vision.TextProvider, error) {
	switch cfg.Vision.Engine {
	case constants.EngineGoogleVision:
		return vision.NewGoogleVisionProvider(cfg.Vision.VisionAPIKey, logger), nil
	case constants.EngineTesseract:
		return vision.NewTesseractProvider(cfg.Vision.TesseractLang, logger)
	default:
		return vision.NewGeminiProvider(cfg.Vision.GeminiAPIKey, cfg.Vision.GeminiModel, logger), nil
	}
}
