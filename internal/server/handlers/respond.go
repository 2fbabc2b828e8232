package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/upanishads/sutra-api/internal/server/storage"
)

// errorResponse is the uniform failure envelope. User-caused and system
// failures share the shape; only the status code differs.
type errorResponse struct {
	Detail string `json:"detail"`
}

func sendJSON(logger *slog.Logger, w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

func sendError(logger *slog.Logger, w http.ResponseWriter, detail string, statusCode int) {
	sendJSON(logger, w, errorResponse{Detail: detail}, statusCode)
}

// sendStoreError maps resolver/storage failures onto the HTTP
// taxonomy: NotFound → 404, Duplicate → 409, anything else → 500 with a
// generic body.
func sendStoreError(logger *slog.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		sendError(logger, w, err.Error(), http.StatusNotFound)
	case errors.Is(err, storage.ErrDuplicate):
		sendError(logger, w, err.Error(), http.StatusConflict)
	default:
		logger.Error("storage failure", slog.Any("error", err))
		sendError(logger, w, "internal server error", http.StatusInternalServerError)
	}
}
