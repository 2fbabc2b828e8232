package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/upanishads/sutra-api/internal/models"
	"github.com/upanishads/sutra-api/internal/server/resolver"
	"github.com/upanishads/sutra-api/internal/server/storage"
)

// maxAudioUpload caps the in-memory portion of a multipart parse.
const maxAudioUpload = 32 << 20

// AudioHandler serves recording uploads. Files land under the static
// directory at {project}/{mode}/sutra_{chapter}_{number}{ext} and the
// row stores the URL path they are served from.
type AudioHandler struct {
	logger    *slog.Logger
	store     storage.Store
	resolver  *resolver.Resolver
	staticDir string
}

func NewAudioHandler(logger *slog.Logger, store storage.Store, res *resolver.Resolver, staticDir string) *AudioHandler {
	return &AudioHandler{logger: logger, store: store, resolver: res, staticDir: staticDir}
}

func modeParam(r *http.Request, key string) (models.Mode, bool) {
	mode := models.Mode(r.URL.Query().Get(key))
	return mode, mode.Valid()
}

// saveUpload writes the uploaded file for a sutra/mode pair and returns
// the URL path it will be served under.
func (h *AudioHandler) saveUpload(file multipart.File, header *multipart.FileHeader, project string, mode models.Mode, chapter, number int) (string, error) {
	ext := filepath.Ext(header.Filename)
	name := fmt.Sprintf("sutra_%d_%d%s", chapter, number, ext)
	dir := filepath.Join(h.staticDir, project, string(mode))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create audio dir: %w", err)
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create audio file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("write audio file: %w", err)
	}
	return fmt.Sprintf("static/%s/%s/%s", project, mode, name), nil
}

// removeFile deletes a stored recording from disk. A missing file is
// not an error; the row is the source of truth.
func (h *AudioHandler) removeFile(urlPath string) {
	rel, err := filepath.Rel("static", filepath.FromSlash(urlPath))
	if err != nil {
		return
	}
	if err := os.Remove(filepath.Join(h.staticDir, rel)); err != nil && !os.IsNotExist(err) {
		h.logger.Warn("failed to remove audio file", slog.String("path", urlPath), slog.Any("error", err))
	}
}

// Create handles POST /audio/{projectName}/{chapter}/{number}?mode= as
// a multipart form with a "file" part.
func (h *AudioHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	project, chapter, number, err := sutraPath(r)
	if err != nil {
		sendError(h.logger, w, "chapter and number must be integers", http.StatusBadRequest)
		return
	}
	mode, ok := modeParam(r, "mode")
	if !ok {
		sendError(h.logger, w, "invalid mode", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxAudioUpload); err != nil {
		sendError(h.logger, w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		sendError(h.logger, w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	sutra, err := h.resolver.Sutra(ctx, project, chapter, number)
	if err != nil {
		sendStoreError(h.logger, w, err)
		return
	}

	if err := h.resolver.EnsureUniqueAudio(ctx, sutra.ID, mode); err != nil {
		sendStoreError(h.logger, w, err)
		return
	}

	urlPath, err := h.saveUpload(file, header, project, mode, chapter, number)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to store audio file", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	id, err := h.store.CreateAudio(ctx, &models.Audio{
		SutraID:  sutra.ID,
		Mode:     mode,
		FilePath: urlPath,
	})
	if err != nil {
		sendStoreError(h.logger, w, err)
		return
	}

	h.logger.InfoContext(ctx, "audio uploaded",
		slog.Int64("sutra_id", sutra.ID),
		slog.String("mode", string(mode)),
		slog.String("path", urlPath),
	)
	sendJSON(h.logger, w, map[string]int64{"id": id}, http.StatusCreated)
}

// resolve walks path and query down to the audio record.
func (h *AudioHandler) resolve(w http.ResponseWriter, r *http.Request) (*models.Audio, string, bool) {
	ctx := r.Context()

	project, chapter, number, err := sutraPath(r)
	if err != nil {
		sendError(h.logger, w, "chapter and number must be integers", http.StatusBadRequest)
		return nil, "", false
	}
	mode, ok := modeParam(r, "mode")
	if !ok {
		sendError(h.logger, w, "invalid mode", http.StatusBadRequest)
		return nil, "", false
	}

	sutra, err := h.resolver.Sutra(ctx, project, chapter, number)
	if err != nil {
		sendStoreError(h.logger, w, err)
		return nil, "", false
	}

	audio, err := h.resolver.Audio(ctx, sutra.ID, mode)
	if err != nil {
		sendStoreError(h.logger, w, err)
		return nil, "", false
	}
	return audio, project, true
}

// Get handles GET /audio/{projectName}/{chapter}/{number}?mode=.
func (h *AudioHandler) Get(w http.ResponseWriter, r *http.Request) {
	audio, _, ok := h.resolve(w, r)
	if !ok {
		return
	}
	sendJSON(h.logger, w, audio, http.StatusOK)
}

// Update handles PUT /audio/{projectName}/{chapter}/{number}?mode=,
// replacing the stored file.
func (h *AudioHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	audio, project, ok := h.resolve(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxAudioUpload); err != nil {
		sendError(h.logger, w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		sendError(h.logger, w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	chapter, _ := strconv.Atoi(chi.URLParam(r, "chapter"))
	number, _ := strconv.Atoi(chi.URLParam(r, "number"))

	h.removeFile(audio.FilePath)

	urlPath, err := h.saveUpload(file, header, project, audio.Mode, chapter, number)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to store audio file", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	audio.FilePath = urlPath
	if err := h.store.UpdateAudio(ctx, audio); err != nil {
		sendStoreError(h.logger, w, err)
		return
	}
	sendJSON(h.logger, w, audio, http.StatusOK)
}

// Delete handles DELETE /audio/{projectName}/{chapter}/{number}?mode=.
func (h *AudioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	audio, _, ok := h.resolve(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteAudio(ctx, audio.ID); err != nil {
		sendStoreError(h.logger, w, err)
		return
	}
	h.removeFile(audio.FilePath)
	w.WriteHeader(http.StatusNoContent)
}
