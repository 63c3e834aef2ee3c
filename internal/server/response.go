package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// envelope is the fixed JSON shape of every API response.
type envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("server.response.encode_error", "error", err)
	}
}

func writeSuccess(w http.ResponseWriter, message string, data any, logger *slog.Logger) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: message, Data: data}, logger)
}

func writeError(w http.ResponseWriter, status int, code, message string, logger *slog.Logger) {
	writeJSON(w, status, envelope{Success: false, Message: message, ErrorCode: code}, logger)
}
