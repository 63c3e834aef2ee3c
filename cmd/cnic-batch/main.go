package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/musmankhan/cnic-ocr/constants"
	"github.com/musmankhan/cnic-ocr/internal/common"
	"github.com/musmankhan/cnic-ocr/internal/export"
	processor "github.com/musmankhan/cnic-ocr/internal/pipeline"
	"github.com/musmankhan/cnic-ocr/internal/repository"
	"github.com/musmankhan/cnic-ocr/internal/vision"
)

func main() {
	var (
		dir         = flag.String("dir", "", "directory of card images to process (required)")
		out         = flag.String("out", "", "output XLSX file path (defaults to parent directory)")
		sqlitePath  = flag.String("sqlite", ":memory:", "sqlite database for the run's history")
		concurrency = flag.Int("concurrency", 4, "number of images processed in parallel")
	)
	flag.Parse()

	if *dir == "" {
		fmt.Fprintln(os.Stderr, "Error: --dir is required")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "extractions.xlsx")
	}
	if *concurrency < 1 {
		*concurrency = 1
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	provider, err := newProvider(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize vision provider", "error", err)
		os.Exit(1)
	}

	db, err := repository.OpenSQLite(*sqlitePath, logger)
	if err != nil {
		logger.Error("failed to open sqlite database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
	}()
	history, err := repository.NewExtractionRepository(ctx, db, logger)
	if err != nil {
		logger.Error("failed to initialize history repository", "error", err)
		os.Exit(1)
	}

	proc := processor.NewProcessor(provider, history, nil, logger)

	images, err := listImages(*dir)
	if err != nil {
		logger.Error("failed to scan directory", "dir", *dir, "error", err)
		os.Exit(1)
	}
	if len(images) == 0 {
		logger.Warn("no supported images found", "dir", *dir)
	}
	logger.Info("starting batch", "dir", *dir, "images", len(images), "concurrency", *concurrency)

	var processed, failures atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*concurrency)
	for _, path := range images {
		g.Go(func() error {
			image, err := os.ReadFile(path)
			if err != nil {
				logger.Error("failed to read image", "path", path, "error", err)
				failures.Add(1)
				return nil
			}
			ext := constants.NormalizeExt(filepath.Ext(path))
			if _, err := proc.Process(gctx, filepath.Base(path), image, mimeTypeForExt(ext)); err != nil {
				logger.Error("failed to process image", "path", path, "error", err)
				failures.Add(1)
				return nil
			}
			processed.Add(1)
			return nil
		})
	}
	// Workers swallow per-file errors, so this only fails on context cancellation.
	if err := g.Wait(); err != nil {
		logger.Error("batch aborted", "error", err)
		os.Exit(1)
	}

	exporter := export.NewService(history, logger)
	xlsxBytes, err := exporter.ExportExtractionsXLSX(ctx, len(images))
	if err != nil {
		logger.Error("failed to export extractions", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, xlsxBytes, 0644); err != nil {
		logger.Error("failed to write output file", "error", err)
		os.Exit(1)
	}

	logger.Info("batch processing complete",
		"images", len(images),
		"processed", processed.Load(),
		"failures", failures.Load(),
		"output", *out,
	)
}

func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var images []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if constants.IsAllowedExt(filepath.Ext(e.Name())) {
			images = append(images, filepath.Join(dir, e.Name()))
		}
	}
	return images, nil
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

func mimeTypeForExt(ext string) string {
	switch ext {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "bmp":
		return "image/bmp"
	case "tiff":
		return "image/tiff"
	default:
		return "image/png"
	}
}
