package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/upanishads/sutra-api/internal/models"
	"github.com/upanishads/sutra-api/internal/server/jwt"
	"github.com/upanishads/sutra-api/internal/server/storage"
)

// fakeUserStore serves a fixed set of users keyed by id.
type fakeUserStore struct {
	users map[int64]*models.User
}

func (f *fakeUserStore) CreateUser(_ context.Context, _ *models.User) (int64, error) {
	panic("not used")
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, _ string) (*models.User, error) {
	panic("not used")
}

func (f *fakeUserStore) ListUsers(_ context.Context) ([]models.User, error) { panic("not used") }

func (f *fakeUserStore) DeleteUser(_ context.Context, _ int64) error { panic("not used") }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okHandler(t *testing.T, wantUserID int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, wantUserID, u.ID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireUser(t *testing.T) {
	tokens := jwt.NewService("test-secret", time.Hour, 24*time.Hour)
	users := &fakeUserStore{users: map[int64]*models.User{
		1: {ID: 1, Email: "user@example.com"},
	}}

	mw := RequireUser(testLogger(), users, tokens)

	validToken, err := tokens.IssueAccessToken(1, false)
	require.NoError(t, err)

	t.Run("valid token passes and injects the user", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+validToken)

		mw(okHandler(t, 1)).ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	rejected := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not.a.token"},
	}
	for _, tc := range rejected {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			mw(okHandler(t, 1)).ServeHTTP(rec, req)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			require.JSONEq(t, `{"detail":"Could not validate credentials"}`, rec.Body.String())
		})
	}

	t.Run("expired token", func(t *testing.T) {
		expired := jwt.NewService("test-secret", -time.Minute, 24*time.Hour)
		token, err := expired.IssueAccessToken(1, false)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		mw(okHandler(t, 1)).ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token of a deleted user", func(t *testing.T) {
		token, err := tokens.IssueAccessToken(42, false)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		mw(okHandler(t, 42)).ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	tokens := jwt.NewService("test-secret", time.Hour, 24*time.Hour)
	users := &fakeUserStore{users: map[int64]*models.User{
		1: {ID: 1, Email: "user@example.com", IsAdmin: false},
		2: {ID: 2, Email: "admin@example.com", IsAdmin: true},
	}}

	mw := RequireAdmin(testLogger(), users, tokens)

	t.Run("admin passes", func(t *testing.T) {
		token, err := tokens.IssueAccessToken(2, true)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		mw(okHandler(t, 2)).ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("valid non-admin gets 403, not 401", func(t *testing.T) {
		token, err := tokens.IssueAccessToken(1, false)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		mw(okHandler(t, 1)).ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.JSONEq(t, `{"detail":"Not an admin"}`, rec.Body.String())
	})

	t.Run("bad token still gets 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		req.Header.Set("Authorization", "Bearer nope")

		mw(okHandler(t, 1)).ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("admin flag is read from the store, not the token", func(t *testing.T) {
		// A token claiming admin for a non-admin user must not escalate.
		token, err := tokens.IssueAccessToken(1, true)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		mw(okHandler(t, 1)).ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}
