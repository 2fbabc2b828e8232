package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/upanishads/sutra-api/internal/models"
	"github.com/upanishads/sutra-api/internal/server/jwt"
	"github.com/upanishads/sutra-api/internal/server/storage"
)

type ctxKeyUser struct{}

// WithUser stores the authenticated user in the context.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, ctxKeyUser{}, u)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(ctxKeyUser{}).(*models.User)
	return u, ok
}

// authenticate extracts the bearer token, verifies it and loads the
// user. A token whose user no longer exists is rejected.
func authenticate(r *http.Request, users storage.UserStore, tokens *jwt.Service) (*models.User, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errors.New("missing token")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errors.New("invalid token format")
	}

	ident, err := tokens.Verify(parts[1])
	if err != nil {
		return nil, err
	}

	user, err := users.GetUserByID(r.Context(), ident.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errors.New("user no longer exists")
		}
		return nil, err
	}
	return user, nil
}

// RequireUser rejects requests without a valid bearer token and injects
// the resolved user into the context. No identity is cached across
// requests.
func RequireUser(logger *slog.Logger, users storage.UserStore, tokens *jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := authenticate(r, users, tokens)
			if err != nil {
				logger.Warn("unauthorized request",
					"method", r.Method,
					"path", r.URL.Path,
					"reason", err,
				)
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireAdmin is RequireUser plus an admin check. A valid non-admin
// token gets 403, distinct from the 401 of a bad token.
func RequireAdmin(logger *slog.Logger, users storage.UserStore, tokens *jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := authenticate(r, users, tokens)
			if err != nil {
				logger.Warn("unauthorized request",
					"method", r.Method,
					"path", r.URL.Path,
					"reason", err,
				)
				unauthorized(w)
				return
			}
			if !user.IsAdmin {
				logger.Warn("forbidden request",
					"method", r.Method,
					"path", r.URL.Path,
					"user_id", user.ID,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"detail":"Not an admin"}`))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
}
