package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/upanishads/sutra-api/internal/auth"
	"github.com/upanishads/sutra-api/internal/models"
	"github.com/upanishads/sutra-api/internal/server/jwt"
	"github.com/upanishads/sutra-api/internal/server/storage/sqlite"
)

// testEnv is a full server over an in-memory database with one admin
// and one regular user pre-created.
type testEnv struct {
	srv        *httptest.Server
	store      *sqlite.Storage
	tokens     *jwt.Service
	adminToken string
	userToken  string
}

const (
	testAdminEmail = "admin@example.com"
	testUserEmail  = "user@example.com"
	testPassword   = "s3cret-password"
)

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	store, err := sqlite.New(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := jwt.NewService("test-secret", time.Hour, 24*time.Hour)
	hasher := auth.NewHasher()

	hash, err := hasher.Hash(testPassword)
	require.NoError(t, err)

	adminID, err := store.CreateUser(ctx, &models.User{
		FirstName: "Admin", Email: testAdminEmail, PasswordHash: hash, IsAdmin: true,
	})
	require.NoError(t, err)
	userID, err := store.CreateUser(ctx, &models.User{
		FirstName: "User", Email: testUserEmail, PasswordHash: hash,
	})
	require.NoError(t, err)

	adminToken, err := tokens.IssueAccessToken(adminID, true)
	require.NoError(t, err)
	userToken, err := tokens.IssueAccessToken(userID, false)
	require.NoError(t, err)

	router := NewRouter(RouterConfig{
		Logger:    logger,
		Store:     store,
		Tokens:    tokens,
		Hasher:    hasher,
		StaticDir: t.TempDir(),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testEnv{
		srv:        srv,
		store:      store,
		tokens:     tokens,
		adminToken: adminToken,
		userToken:  userToken,
	}
}

// do sends a JSON request with an optional bearer token.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, e.srv.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestProjectEndpoints(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]string{"name": "kena", "description": "Kena Upanishad"}

	t.Run("unauthenticated create is rejected", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/projects", "", body)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()

		resp = env.do(t, http.MethodGet, "/projects", "", nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		projects := decodeBody[[]models.Project](t, resp)
		require.Empty(t, projects)
	})

	t.Run("regular user can create", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/projects", env.userToken, body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		created := decodeBody[map[string]int64](t, resp)
		require.Positive(t, created["id"])
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/projects", env.userToken, body)
		defer resp.Body.Close()
		require.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("public read", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/projects/kena", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		p := decodeBody[models.Project](t, resp)
		require.Equal(t, "kena", p.Name)
		require.Equal(t, "Kena Upanishad", p.Description)
	})

	t.Run("update returns the updated resource", func(t *testing.T) {
		resp := env.do(t, http.MethodPut, "/projects/kena", env.userToken,
			map[string]string{"name": "kena", "description": "updated"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		p := decodeBody[models.Project](t, resp)
		require.Equal(t, "updated", p.Description)
	})

	t.Run("delete is admin-only", func(t *testing.T) {
		resp := env.do(t, http.MethodDelete, "/projects/kena", env.userToken, nil)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
		resp.Body.Close()

		resp = env.do(t, http.MethodDelete, "/projects/kena", env.adminToken, nil)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		resp.Body.Close()

		resp = env.do(t, http.MethodGet, "/projects/kena", "", nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestSutraEndpoints(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/projects", env.adminToken,
		map[string]string{"name": "kena"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	create := map[string]any{"project": "kena", "chapter": 1, "number": 1, "text": "first verse"}

	t.Run("create", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/sutras", env.userToken, create)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("duplicate triple conflicts with the key in the message", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/sutras", env.userToken, create)
		require.Equal(t, http.StatusConflict, resp.StatusCode)
		body := decodeBody[map[string]string](t, resp)
		require.Contains(t, body["detail"], "kena/1/1")
	})

	t.Run("create in missing project is 404", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/sutras", env.userToken,
			map[string]any{"project": "isha", "chapter": 1, "number": 1, "text": "x"})
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("public get by triple", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/sutras/kena/1/1", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		s := decodeBody[models.Sutra](t, resp)
		require.Equal(t, "first verse", s.Text)
	})

	t.Run("list and count", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/sutras", env.userToken,
			map[string]any{"project": "kena", "chapter": 1, "number": 2, "text": "second verse"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()

		resp = env.do(t, http.MethodGet, "/sutras?project=kena", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		refs := decodeBody[[]models.SutraRef](t, resp)
		require.Len(t, refs, 2)

		resp = env.do(t, http.MethodGet, "/sutras/count?project=kena", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		count := decodeBody[int64](t, resp)
		require.EqualValues(t, 2, count)
	})

	t.Run("list without project param is 400", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/sutras", "", nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("update text", func(t *testing.T) {
		resp := env.do(t, http.MethodPut, "/sutras/kena/1/1", env.userToken,
			map[string]string{"text": "revised verse"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		s := decodeBody[models.Sutra](t, resp)
		require.Equal(t, "revised verse", s.Text)
	})

	t.Run("get by id round-trips", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/sutras/kena/1/1", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		s := decodeBody[models.Sutra](t, resp)

		resp = env.do(t, http.MethodGet, "/sutras/by-id/"+strconv.FormatInt(s.ID, 10), "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		byID := decodeBody[models.Sutra](t, resp)
		require.Equal(t, s, byID)
	})

	t.Run("delete is admin-only and cascades", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/meanings", env.userToken,
			map[string]any{"project": "kena", "chapter": 1, "number": 1, "language": "en", "text": "meaning"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()

		resp = env.do(t, http.MethodDelete, "/sutras/kena/1/1", env.userToken, nil)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
		resp.Body.Close()

		resp = env.do(t, http.MethodDelete, "/sutras/kena/1/1", env.adminToken, nil)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
		resp.Body.Close()

		resp = env.do(t, http.MethodGet, "/sutras/kena/1/1", "", nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()

		resp = env.do(t, http.MethodGet, "/meanings/kena/1/1?lang=en", "", nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})
}
