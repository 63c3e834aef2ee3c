// Package server exposes the extraction pipeline over a JSON HTTP API.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/musmankhan/cnic-ocr/internal/export"
	processor "github.com/musmankhan/cnic-ocr/internal/pipeline"
	"github.com/musmankhan/cnic-ocr/internal/repository"
)

// Server holds the HTTP surface and its dependencies. History and Exporter
// are optional; without them the history endpoints answer 503.
type Server struct {
	processor      *processor.Processor
	history        repository.ExtractionRepository
	exporter       *export.Service
	maxUploadBytes int64
	logger         *slog.Logger
	httpServer     *http.Server
}

func New(addr string, p *processor.Processor, history repository.ExtractionRepository, exporter *export.Service, maxUploadBytes int64, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		processor:      p,
		history:        history,
		exporter:       exporter,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("POST /api/extract-text", s.handleExtractText)
	mux.HandleFunc("GET /api/extractions", s.handleListExtractions)
	mux.HandleFunc("GET /api/extractions/export", s.handleExportExtractions)
	mux.HandleFunc("/", s.handleNotFound)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the routing table, mainly for tests.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Start blocks serving HTTP until Shutdown or a listener error.
func (s *Server) Start() error {
	s.logger.Info("server.listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests within ctx's deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server.shutting_down")
	return s.httpServer.Shutdown(ctx)
}
