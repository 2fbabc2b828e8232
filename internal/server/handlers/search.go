package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/upanishads/sutra-api/internal/server/storage"
)

// SearchHandler serves the substring search over all stored texts.
type SearchHandler struct {
	logger *slog.Logger
	store  storage.Store
}

func NewSearchHandler(logger *slog.Logger, store storage.Store) *SearchHandler {
	return &SearchHandler{logger: logger, store: store}
}

// Search handles GET /search/{term}.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	term := strings.TrimSpace(chi.URLParam(r, "term"))
	if term == "" {
		sendError(h.logger, w, "search term is required", http.StatusBadRequest)
		return
	}

	results, err := h.store.Search(ctx, term)
	if err != nil {
		h.logger.ErrorContext(ctx, "search failed", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}
	sendJSON(h.logger, w, results, http.StatusOK)
}
