package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/upanishads/sutra-api/internal/models"
	"github.com/upanishads/sutra-api/internal/server/resolver"
	"github.com/upanishads/sutra-api/internal/server/storage"
)

// SutraHandler serves verse CRUD on the fully path-qualified form
// /sutras/{project}/{chapter}/{number}, plus the by-id variant.
type SutraHandler struct {
	logger   *slog.Logger
	store    storage.Store
	resolver *resolver.Resolver
}

func NewSutraHandler(logger *slog.Logger, store storage.Store, res *resolver.Resolver) *SutraHandler {
	return &SutraHandler{logger: logger, store: store, resolver: res}
}

// sutraPath pulls the (project, chapter, number) triple out of the URL.
func sutraPath(r *http.Request) (project string, chapter, number int, err error) {
	project = chi.URLParam(r, "projectName")
	chapter, err = strconv.Atoi(chi.URLParam(r, "chapter"))
	if err != nil {
		return "", 0, 0, err
	}
	number, err = strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		return "", 0, 0, err
	}
	return project, chapter, number, nil
}

type createSutraRequest struct {
	Project string `json:"project"`
	Chapter int    `json:"chapter"`
	Number  int    `json:"number"`
	Text    string `json:"text"`
}

// Create handles POST /sutras.
func (h *SutraHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createSutraRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Project) == "" {
		sendError(h.logger, w, "project is required", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		sendError(h.logger, w, "text is required", http.StatusBadRequest)
		return
	}

	project, err := h.resolver.Project(ctx, req.Project)
	if err != nil {
		sendStoreError(h.logger, w, err)
		return
	}

	if err := h.resolver.EnsureUniqueSutra(ctx, project.Name, project.ID, req.Chapter, req.Number); err != nil {
		sendStoreError(h.logger, w, err)
		return
	}

	id, err := h.store.CreateSutra(ctx, &models.Sutra{
		ProjectID: project.ID,
		Chapter:   req.Chapter,
		Number:    req.Number,
		Text:      req.Text,
	})
	if err != nil {
		sendStoreError(h.logger, w, err)
		return
	}

	h.logger.InfoContext(ctx, "sutra created",
		slog.String("project", project.Name),
		slog.Int("chapter", req.Chapter),
		slog.Int("number", req.Number),
	)
	sendJSON(h.logger, w, map[string]int64{"id": id}, http.StatusCreated)
}

// List handles GET /sutras?project=. Returns the id/chapter/number
// projection, not the full texts.
func (h *SutraHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name := r.URL.Query().Get("project")
	if name == "" {
		sendError(h.logger, w, "project query parameter is required", http.StatusBadRequest)
		return
	}

	project, err := h.resolver.Project(ctx, name)
	if err != nil {
		sendStoreError(h.logger, w, err)
		return
	}

	refs, err := h.store.ListSutras(ctx, project.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list sutras", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}
	sendJSON(h.logger, w, refs, http.StatusOK)
}

// Count handles GET /sutras/count?project=.
func (h *SutraHandler) Count(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name := r.URL.Query().Get("project")
	if name == "" {
		sendError(h.logger, w, "project query parameter is required", http.StatusBadRequest)
		return
	}

	project, err := h.resolver.Project(ctx, name)
	if err != nil {
		sendStoreError(h.logger, w, err)
		return
	}

	count, err := h.store.CountSutras(ctx, project.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to count sutras", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}
	sendJSON(h.logger, w, count, http.StatusOK)
}

// Get handles GET /sutras/{projectName}/{chapter}/{number}.
func (h *SutraHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, chapter, number, err := sutraPath(r)
	if err != nil {
		sendError(h.logger, w, "chapter and number must be integers", http.StatusBadRequest)
		return
	}

	sutra, err := h.resolver.Sutra(r.Context(), project, chapter, number)
	if err != nil {
		sendStoreError(h.logger, w, err)
		return
	}
	sendJSON(h.logger, w, sutra, http.StatusOK)
}

// GetByID handles GET /sutras/by-id/{sutraID}.
func (h *SutraHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "sutraID"), 10, 64)
	if err != nil {
		sendError(h.logger, w, "invalid sutra ID", http.StatusBadRequest)
		return
	}

	sutra, err := h.resolver.SutraByID(r.Context(), id)
	if err != nil {
		sendStoreError(h.logger, w, err)
		return
	}
	sendJSON(h.logger, w, sutra, http.StatusOK)
}

type updateSutraRequest struct {
	Text string `json:"text"`
}

// Update handles PUT /sutras/{projectName}/{chapter}/{number}. The
// addressing triple is immutable; only the text changes. Returns the
// updated resource.
func (h *SutraHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	project, chapter, number, err := sutraPath(r)
	if err != nil {
		sendError(h.logger, w, "chapter and number must be integers", http.StatusBadRequest)
		return
	}

	sutra, err := h.resolver.Sutra(ctx, project, chapter, number)
	if err != nil {
		sendStoreError(h.logger, w, err)
		return
	}

	var req updateSutraRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		sendError(h.logger, w, "text is required", http.StatusBadRequest)
		return
	}

	sutra.Text = req.Text
	if err := h.store.UpdateSutra(ctx, sutra); err != nil {
		sendStoreError(h.logger, w, err)
		return
	}
	sendJSON(h.logger, w, sutra, http.StatusOK)
}

// Delete handles DELETE /sutras/{projectName}/{chapter}/{number},
// cascading to the sutra's children.
func (h *SutraHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	project, chapter, number, err := sutraPath(r)
	if err != nil {
		sendError(h.logger, w, "chapter and number must be integers", http.StatusBadRequest)
		return
	}

	sutra, err := h.resolver.Sutra(ctx, project, chapter, number)
	if err != nil {
		sendStoreError(h.logger, w, err)
		return
	}

	if err := h.store.DeleteSutra(ctx, sutra.ID); err != nil {
		sendStoreError(h.logger, w, err)
		return
	}

	h.logger.InfoContext(ctx, "sutra deleted",
		slog.String("project", project),
		slog.Int("chapter", chapter),
		slog.Int("number", number),
	)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteByID handles DELETE /sutras/by-id/{sutraID}.
func (h *SutraHandler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "sutraID"), 10, 64)
	if err != nil {
		sendError(h.logger, w, "invalid sutra ID", http.StatusBadRequest)
		return
	}

	sutra, err := h.resolver.SutraByID(r.Context(), id)
	if err != nil {
		sendStoreError(h.logger, w, err)
		return
	}

	if err := h.store.DeleteSutra(r.Context(), sutra.ID); err != nil {
		sendStoreError(h.logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
