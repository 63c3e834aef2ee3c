package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/musmankhan/cnic-ocr/constants"
)

// handleNotFound keeps unknown routes inside the JSON envelope.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "NOT_FOUND",
		fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path), s.logger)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, "service is healthy", map[string]any{
		"status":  "ok",
		"version": constants.APIVersion,
	}, s.logger)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, "service status", map[string]any{
		"version":            constants.APIVersion,
		"engine":             s.processor.Provider.Engine(),
		"history_enabled":    s.history != nil,
		"cache_enabled":      s.processor.Cache != nil,
		"max_upload_bytes":   s.maxUploadBytes,
		"allowed_extensions": allowedExtList(),
	}, s.logger)
}

func (s *Server) handleExtractText(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	file, header, err := r.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE",
				fmt.Sprintf("upload exceeds %d bytes", s.maxUploadBytes), s.logger)
			return
		}
		writeError(w, http.StatusBadRequest, "MISSING_IMAGE",
			"multipart field 'image' is required", s.logger)
		return
	}
	defer func(file multipart.File) {
		if err := file.Close(); err != nil {
			s.logger.Warn("server.upload.close_error", "error", err)
		}
	}(file)

	ext := constants.NormalizeExt(filepath.Ext(header.Filename))
	if !constants.IsAllowedExt(ext) {
		writeError(w, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE",
			fmt.Sprintf("file type %q is not supported", ext), s.logger)
		return
	}

	image, err := io.ReadAll(file)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE",
				fmt.Sprintf("upload exceeds %d bytes", s.maxUploadBytes), s.logger)
			return
		}
		writeError(w, http.StatusBadRequest, "READ_ERROR", "failed to read upload", s.logger)
		return
	}
	if len(image) == 0 {
		writeError(w, http.StatusBadRequest, "EMPTY_FILE", "uploaded file is empty", s.logger)
		return
	}

	out, err := s.processor.Process(r.Context(), header.Filename, image, mimeTypeForExt(ext))
	if err != nil {
		s.logger.Error("server.extract.error", "filename", header.Filename, "error", err)
		writeError(w, http.StatusBadGateway, "EXTRACTION_FAILED", "text extraction failed", s.logger)
		return
	}

	requestID := uuid.New().String()
	s.logger.Info("server.extract.ok",
		"request_id", requestID,
		"filename", header.Filename,
		"confidence", out.Confidence,
		"cached", out.Cached,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	writeSuccess(w, "extraction complete", map[string]any{
		"extracted_text":  out.RawText,
		"structured_data": out.Record,
		"confidence":      out.Confidence,
		"filled_fields":   out.Filled,
		"total_fields":    out.Total,
		"filename":        header.Filename,
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
		"engine":          out.Engine,
		"cached":          out.Cached,
		"request_id":      requestID,
	}, s.logger)
}

func (s *Server) handleListExtractions(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusServiceUnavailable, "HISTORY_DISABLED",
			"extraction history is not configured", s.logger)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			writeError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a positive integer", s.logger)
			return
		}
		limit = v
	}

	recs, err := s.history.List(r.Context(), limit)
	if err != nil {
		s.logger.Error("server.history.list_error", "error", err)
		writeError(w, http.StatusInternalServerError, "HISTORY_ERROR", "failed to list extractions", s.logger)
		return
	}
	writeSuccess(w, "extraction history", map[string]any{
		"count":       len(recs),
		"extractions": recs,
	}, s.logger)
}

func (s *Server) handleExportExtractions(w http.ResponseWriter, r *http.Request) {
	if s.exporter == nil {
		writeError(w, http.StatusServiceUnavailable, "HISTORY_DISABLED",
			"extraction history is not configured", s.logger)
		return
	}

	data, err := s.exporter.ExportExtractionsXLSX(r.Context(), 0)
	if err != nil {
		s.logger.Error("server.export.error", "error", err)
		writeError(w, http.StatusInternalServerError, "EXPORT_ERROR", "failed to export extractions", s.logger)
		return
	}

	filename := "extractions-" + time.Now().UTC().Format("20060102-150405") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("server.export.write_error", "error", err)
	}
}

func allowedExtList() []string {
	exts := make([]string, 0, len(constants.AllowedExtensions))
	for ext := range constants.AllowedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
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
