package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/upanishads/sutra-api/internal/auth"
	"github.com/upanishads/sutra-api/internal/models"
	"github.com/upanishads/sutra-api/internal/server/storage"
	"github.com/upanishads/sutra-api/internal/validation"
)

// UserHandler serves the admin-only user management endpoints.
type UserHandler struct {
	logger *slog.Logger
	users  storage.UserStore
	hasher *auth.Hasher
}

func NewUserHandler(logger *slog.Logger, users storage.UserStore, hasher *auth.Hasher) *UserHandler {
	return &UserHandler{logger: logger, users: users, hasher: hasher}
}

type createUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	PhoneNo   string `json:"phone_no"`
	IsAdmin   bool   `json:"is_admin"`
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.FirstName) == "" {
		sendError(h.logger, w, "first_name is required", http.StatusBadRequest)
		return
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	id, err := h.users.CreateUser(ctx, &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		IsAdmin:      req.IsAdmin,
		PhoneNo:      req.PhoneNo,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			sendError(h.logger, w, "User already exists", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user created", slog.Int64("user_id", id))
	sendJSON(h.logger, w, map[string]int64{"id": id}, http.StatusCreated)
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list users", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}
	sendJSON(h.logger, w, users, http.StatusOK)
}

// Get handles GET /users/{userID}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		sendError(h.logger, w, "invalid user ID", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			sendError(h.logger, w, "User not found", http.StatusNotFound)
			return
		}
		sendStoreError(h.logger, w, err)
		return
	}
	sendJSON(h.logger, w, user, http.StatusOK)
}

// Delete handles DELETE /users/{userID}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		sendError(h.logger, w, "invalid user ID", http.StatusBadRequest)
		return
	}

	if err := h.users.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			sendError(h.logger, w, "User not found", http.StatusNotFound)
			return
		}
		sendStoreError(h.logger, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
