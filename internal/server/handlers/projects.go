package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/upanishads/sutra-api/internal/models"
	"github.com/upanishads/sutra-api/internal/server/resolver"
	"github.com/upanishads/sutra-api/internal/server/storage"
	"github.com/upanishads/sutra-api/internal/validation"
)

// ProjectHandler serves the scripture-collection endpoints.
type ProjectHandler struct {
	logger   *slog.Logger
	store    storage.Store
	resolver *resolver.Resolver
}

func NewProjectHandler(logger *slog.Logger, store storage.Store, res *resolver.Resolver) *ProjectHandler {
	return &ProjectHandler{logger: logger, store: store, resolver: res}
}

type projectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Img         string `json:"img"`
}

// Create handles POST /projects.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validation.ValidateProjectName(req.Name); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.store.CreateProject(ctx, &models.Project{
		Name:        req.Name,
		Description: req.Description,
		Img:         req.Img,
	})
	if err != nil {
		sendStoreError(h.logger, w, err)
		return
	}

	h.logger.InfoContext(ctx, "project created", slog.String("name", req.Name), slog.Int64("id", id))
	sendJSON(h.logger, w, map[string]int64{"id": id}, http.StatusCreated)
}

// List handles GET /projects.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.ListProjects(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list projects", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}
	sendJSON(h.logger, w, projects, http.StatusOK)
}

// Get handles GET /projects/{projectName}.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, err := h.resolver.Project(r.Context(), chi.URLParam(r, "projectName"))
	if err != nil {
		sendStoreError(h.logger, w, err)
		return
	}
	sendJSON(h.logger, w, project, http.StatusOK)
}

// Update handles PUT /projects/{projectName}. Returns the updated
// resource.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	project, err := h.resolver.Project(ctx, chi.URLParam(r, "projectName"))
	if err != nil {
		sendStoreError(h.logger, w, err)
		return
	}

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validation.ValidateProjectName(req.Name); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	project.Name = req.Name
	project.Description = req.Description
	project.Img = req.Img

	if err := h.store.UpdateProject(ctx, project); err != nil {
		sendStoreError(h.logger, w, err)
		return
	}
	sendJSON(h.logger, w, project, http.StatusOK)
}

// Delete handles DELETE /projects/{projectName}. The project's sutras
// and their children go with it.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	project, err := h.resolver.Project(ctx, chi.URLParam(r, "projectName"))
	if err != nil {
		sendStoreError(h.logger, w, err)
		return
	}

	if err := h.store.DeleteProject(ctx, project.ID); err != nil {
		sendStoreError(h.logger, w, err)
		return
	}

	h.logger.InfoContext(ctx, "project deleted", slog.String("name", project.Name))
	w.WriteHeader(http.StatusNoContent)
}
