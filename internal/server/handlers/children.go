package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/upanishads/sutra-api/internal/models"
	"github.com/upanishads/sutra-api/internal/server/resolver"
	"github.com/upanishads/sutra-api/internal/server/storage"
)

// TextChildHandler serves meanings, transliterations and bhashyams.
// The three entities are identical up to the table they live in, so one
// handler instance per kind covers all of them.
type TextChildHandler struct {
	logger   *slog.Logger
	store    storage.Store
	resolver *resolver.Resolver
	kind     storage.TextChildKind
}

func NewTextChildHandler(logger *slog.Logger, store storage.Store, res *resolver.Resolver, kind storage.TextChildKind) *TextChildHandler {
	return &TextChildHandler{logger: logger, store: store, resolver: res, kind: kind}
}

// langParam reads and validates the lang query parameter.
func langParam(r *http.Request) (models.Language, bool) {
	lang := models.Language(r.URL.Query().Get("lang"))
	return lang, lang.Valid()
}

type createTextChildRequest struct {
	Project  string          `json:"project"`
	Chapter  int             `json:"chapter"`
	Number   int             `json:"number"`
	Language models.Language `json:"language"`
	Text     string          `json:"text"`
}

// Create handles POST /{kind}s.
func (h *TextChildHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createTextChildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !req.Language.Valid() {
		sendError(h.logger, w, "invalid language code", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		sendError(h.logger, w, "text is required", http.StatusBadRequest)
		return
	}

	sutra, err := h.resolver.Sutra(ctx, req.Project, req.Chapter, req.Number)
	if err != nil {
		sendStoreError(h.logger, w, err)
		return
	}

	if err := h.resolver.EnsureUniqueTextChild(ctx, h.kind, sutra.ID, req.Language); err != nil {
		sendStoreError(h.logger, w, err)
		return
	}

	id, err := h.store.CreateTextChild(ctx, h.kind, &models.TextChild{
		SutraID:  sutra.ID,
		Language: req.Language,
		Text:     req.Text,
	})
	if err != nil {
		sendStoreError(h.logger, w, err)
		return
	}

	h.logger.InfoContext(ctx, "child created",
		slog.String("kind", string(h.kind)),
		slog.Int64("sutra_id", sutra.ID),
		slog.String("language", string(req.Language)),
	)
	sendJSON(h.logger, w, map[string]int64{"id": id}, http.StatusCreated)
}

// Get handles GET /{kind}s/{projectName}/{chapter}/{number}?lang=.
func (h *TextChildHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	project, chapter, number, err := sutraPath(r)
	if err != nil {
		sendError(h.logger, w, "chapter and number must be integers", http.StatusBadRequest)
		return
	}
	lang, ok := langParam(r)
	if !ok {
		sendError(h.logger, w, "invalid language code", http.StatusBadRequest)
		return
	}

	sutra, err := h.resolver.Sutra(ctx, project, chapter, number)
	if err != nil {
		sendStoreError(h.logger, w, err)
		return
	}

	child, err := h.resolver.TextChild(ctx, h.kind, sutra.ID, lang)
	if err != nil {
		sendStoreError(h.logger, w, err)
		return
	}
	sendJSON(h.logger, w, child, http.StatusOK)
}

type updateTextChildRequest struct {
	Text string `json:"text"`
}

// Update handles PUT /{kind}s/{projectName}/{chapter}/{number}?lang=.
func (h *TextChildHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	project, chapter, number, err := sutraPath(r)
	if err != nil {
		sendError(h.logger, w, "chapter and number must be integers", http.StatusBadRequest)
		return
	}
	lang, ok := langParam(r)
	if !ok {
		sendError(h.logger, w, "invalid language code", http.StatusBadRequest)
		return
	}

	sutra, err := h.resolver.Sutra(ctx, project, chapter, number)
	if err != nil {
		sendStoreError(h.logger, w, err)
		return
	}

	child, err := h.resolver.TextChild(ctx, h.kind, sutra.ID, lang)
	if err != nil {
		sendStoreError(h.logger, w, err)
		return
	}

	var req updateTextChildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		sendError(h.logger, w, "text is required", http.StatusBadRequest)
		return
	}

	child.Text = req.Text
	if err := h.store.UpdateTextChild(ctx, h.kind, child); err != nil {
		sendStoreError(h.logger, w, err)
		return
	}
	sendJSON(h.logger, w, child, http.StatusOK)
}

// Delete handles DELETE /{kind}s/{projectName}/{chapter}/{number}?lang=.
func (h *TextChildHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	project, chapter, number, err := sutraPath(r)
	if err != nil {
		sendError(h.logger, w, "chapter and number must be integers", http.StatusBadRequest)
		return
	}
	lang, ok := langParam(r)
	if !ok {
		sendError(h.logger, w, "invalid language code", http.StatusBadRequest)
		return
	}

	sutra, err := h.resolver.Sutra(ctx, project, chapter, number)
	if err != nil {
		sendStoreError(h.logger, w, err)
		return
	}

	child, err := h.resolver.TextChild(ctx, h.kind, sutra.ID, lang)
	if err != nil {
		sendStoreError(h.logger, w, err)
		return
	}

	if err := h.store.DeleteTextChild(ctx, h.kind, child.ID); err != nil {
		sendStoreError(h.logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// InterpretationHandler serves school commentaries. Same shape as the
// text children but keyed by (language, philosophy).
type InterpretationHandler struct {
	logger   *slog.Logger
	store    storage.Store
	resolver *resolver.Resolver
}

func NewInterpretationHandler(logger *slog.Logger, store storage.Store, res *resolver.Resolver) *InterpretationHandler {
	return &InterpretationHandler{logger: logger, store: store, resolver: res}
}

func philParam(r *http.Request) (models.Philosophy, bool) {
	phil := models.Philosophy(r.URL.Query().Get("phil"))
	return phil, phil.Valid()
}

type createInterpretationRequest struct {
	Project    string            `json:"project"`
	Chapter    int               `json:"chapter"`
	Number     int               `json:"number"`
	Language   models.Language   `json:"language"`
	Philosophy models.Philosophy `json:"philosophy"`
	Text       string            `json:"text"`
}

// Create handles POST /interpretations.
func (h *InterpretationHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createInterpretationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !req.Language.Valid() {
		sendError(h.logger, w, "invalid language code", http.StatusBadRequest)
		return
	}
	if !req.Philosophy.Valid() {
		sendError(h.logger, w, "invalid philosophy code", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		sendError(h.logger, w, "text is required", http.StatusBadRequest)
		return
	}

	sutra, err := h.resolver.Sutra(ctx, req.Project, req.Chapter, req.Number)
	if err != nil {
		sendStoreError(h.logger, w, err)
		return
	}

	if err := h.resolver.EnsureUniqueInterpretation(ctx, sutra.ID, req.Language, req.Philosophy); err != nil {
		sendStoreError(h.logger, w, err)
		return
	}

	id, err := h.store.CreateInterpretation(ctx, &models.Interpretation{
		SutraID:    sutra.ID,
		Language:   req.Language,
		Philosophy: req.Philosophy,
		Text:       req.Text,
	})
	if err != nil {
		sendStoreError(h.logger, w, err)
		return
	}

	h.logger.InfoContext(ctx, "interpretation created",
		slog.Int64("sutra_id", sutra.ID),
		slog.String("language", string(req.Language)),
		slog.String("philosophy", string(req.Philosophy)),
	)
	sendJSON(h.logger, w, map[string]int64{"id": id}, http.StatusCreated)
}

// resolve walks path and query down to the interpretation record.
func (h *InterpretationHandler) resolve(w http.ResponseWriter, r *http.Request) (*models.Interpretation, bool) {
	ctx := r.Context()

	project, chapter, number, err := sutraPath(r)
	if err != nil {
		sendError(h.logger, w, "chapter and number must be integers", http.StatusBadRequest)
		return nil, false
	}
	lang, ok := langParam(r)
	if !ok {
		sendError(h.logger, w, "invalid language code", http.StatusBadRequest)
		return nil, false
	}
	phil, ok := philParam(r)
	if !ok {
		sendError(h.logger, w, "invalid philosophy code", http.StatusBadRequest)
		return nil, false
	}

	sutra, err := h.resolver.Sutra(ctx, project, chapter, number)
	if err != nil {
		sendStoreError(h.logger, w, err)
		return nil, false
	}

	interp, err := h.resolver.Interpretation(ctx, sutra.ID, lang, phil)
	if err != nil {
		sendStoreError(h.logger, w, err)
		return nil, false
	}
	return interp, true
}

// Get handles GET /interpretations/{projectName}/{chapter}/{number}?lang=&phil=.
func (h *InterpretationHandler) Get(w http.ResponseWriter, r *http.Request) {
	interp, ok := h.resolve(w, r)
	if !ok {
		return
	}
	sendJSON(h.logger, w, interp, http.StatusOK)
}

// Update handles PUT /interpretations/{projectName}/{chapter}/{number}?lang=&phil=.
func (h *InterpretationHandler) Update(w http.ResponseWriter, r *http.Request) {
	interp, ok := h.resolve(w, r)
	if !ok {
		return
	}

	var req updateTextChildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		sendError(h.logger, w, "text is required", http.StatusBadRequest)
		return
	}

	interp.Text = req.Text
	if err := h.store.UpdateInterpretation(r.Context(), interp); err != nil {
		sendStoreError(h.logger, w, err)
		return
	}
	sendJSON(h.logger, w, interp, http.StatusOK)
}

// Delete handles DELETE /interpretations/{projectName}/{chapter}/{number}?lang=&phil=.
func (h *InterpretationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	interp, ok := h.resolve(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteInterpretation(r.Context(), interp.ID); err != nil {
		sendStoreError(h.logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
