package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/upanishads/sutra-api/internal/auth"
	"github.com/upanishads/sutra-api/internal/server/jwt"
	"github.com/upanishads/sutra-api/internal/server/storage"
)

const refreshCookieName = "refresh_token"

// AuthHandler serves login, refresh and logout.
type AuthHandler struct {
	logger     *slog.Logger
	users      storage.UserStore
	tokens     *jwt.Service
	hasher     *auth.Hasher
	production bool
}

func NewAuthHandler(logger *slog.Logger, users storage.UserStore, tokens *jwt.Service, hasher *auth.Hasher, production bool) *AuthHandler {
	return &AuthHandler{
		logger:     logger,
		users:      users,
		tokens:     tokens,
		hasher:     hasher,
		production: production,
	}
}

// tokenResponse is the body returned by login and refresh.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login handles POST /auth/login. Credentials arrive form-encoded as
// username/password, where username is the email. Bad credentials get
// 403 with no hint whether the account exists.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		sendError(h.logger, w, "invalid form body", http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		sendError(h.logger, w, "username and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			sendError(h.logger, w, "Invalid Credentials", http.StatusForbidden)
			return
		}
		h.logger.ErrorContext(ctx, "failed to load user for login", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if !h.hasher.Verify(password, user.PasswordHash) {
		h.logger.WarnContext(ctx, "login failed", slog.Int64("user_id", user.ID))
		sendError(h.logger, w, "Invalid Credentials", http.StatusForbidden)
		return
	}

	accessToken, err := h.tokens.IssueAccessToken(user.ID, user.IsAdmin)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue access token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}
	refreshToken, err := h.tokens.IssueRefreshToken(user.ID, user.IsAdmin)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue refresh token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.setRefreshCookie(w, refreshToken)

	h.logger.InfoContext(ctx, "user logged in", slog.Int64("user_id", user.ID))
	sendJSON(h.logger, w, tokenResponse{AccessToken: accessToken, TokenType: "bearer"}, http.StatusOK)
}

// Refresh handles POST /auth/refresh. It reads the refresh cookie and
// issues a fresh access token. Any failure clears the cookie and ends
// the request quietly with no content.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cookie, err := r.Cookie(refreshCookieName)
	if err != nil {
		h.clearRefreshCookie(w)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	ident, err := h.tokens.Verify(cookie.Value)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid refresh token", slog.Any("error", err))
		h.clearRefreshCookie(w)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	user, err := h.users.GetUserByID(ctx, ident.UserID)
	if err != nil {
		h.clearRefreshCookie(w)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	accessToken, err := h.tokens.IssueAccessToken(user.ID, user.IsAdmin)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue access token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, tokenResponse{AccessToken: accessToken, TokenType: "bearer"}, http.StatusOK)
}

// Logout handles POST /auth/logout. Tokens are stateless, so logout
// only clears the refresh cookie; outstanding access tokens stay valid
// until they expire.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearRefreshCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokens.RefreshTTL().Seconds()),
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
