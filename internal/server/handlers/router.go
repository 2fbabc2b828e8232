package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/upanishads/sutra-api/internal/auth"
	"github.com/upanishads/sutra-api/internal/server/jwt"
	"github.com/upanishads/sutra-api/internal/server/middleware"
	"github.com/upanishads/sutra-api/internal/server/resolver"
	"github.com/upanishads/sutra-api/internal/server/storage"
)

// loginRateLimit throttles credential guessing on /auth/login.
const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

// RouterConfig carries everything the route tree depends on.
type RouterConfig struct {
	Logger      *slog.Logger
	Store       storage.Store
	Tokens      *jwt.Service
	Hasher      *auth.Hasher
	StaticDir   string
	CORSOrigins []string
	Production  bool
}

// NewRouter builds the full route tree. Reads are public; writes
// require a valid access token and deletes require an admin.
func NewRouter(cfg RouterConfig) http.Handler {
	res := resolver.New(cfg.Store)

	authH := NewAuthHandler(cfg.Logger, cfg.Store, cfg.Tokens, cfg.Hasher, cfg.Production)
	userH := NewUserHandler(cfg.Logger, cfg.Store, cfg.Hasher)
	projectH := NewProjectHandler(cfg.Logger, cfg.Store, res)
	sutraH := NewSutraHandler(cfg.Logger, cfg.Store, res)
	meaningH := NewTextChildHandler(cfg.Logger, cfg.Store, res, storage.KindMeaning)
	translitH := NewTextChildHandler(cfg.Logger, cfg.Store, res, storage.KindTransliteration)
	bhashyamH := NewTextChildHandler(cfg.Logger, cfg.Store, res, storage.KindBhashyam)
	interpH := NewInterpretationHandler(cfg.Logger, cfg.Store, res)
	audioH := NewAudioHandler(cfg.Logger, cfg.Store, res, cfg.StaticDir)
	searchH := NewSearchHandler(cfg.Logger, cfg.Store)

	requireUser := middleware.RequireUser(cfg.Logger, cfg.Store, cfg.Tokens)
	requireAdmin := middleware.RequireAdmin(cfg.Logger, cfg.Store, cfg.Tokens)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/auth", func(r chi.Router) {
		r.With(middleware.RateLimit(loginRateLimit, loginRateWindow, cfg.Logger)).
			Post("/login", authH.Login)
		r.Post("/refresh", authH.Refresh)
		r.Post("/logout", authH.Logout)
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(requireAdmin)
		r.Post("/", userH.Create)
		r.Get("/", userH.List)
		r.Get("/{userID}", userH.Get)
		r.Delete("/{userID}", userH.Delete)
	})

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", projectH.List)
		r.Get("/{projectName}", projectH.Get)
		r.With(requireUser).Post("/", projectH.Create)
		r.With(requireUser).Put("/{projectName}", projectH.Update)
		r.With(requireAdmin).Delete("/{projectName}", projectH.Delete)
	})

	r.Route("/sutras", func(r chi.Router) {
		r.Get("/", sutraH.List)
		r.Get("/count", sutraH.Count)
		r.Get("/by-id/{sutraID}", sutraH.GetByID)
		r.Get("/{projectName}/{chapter}/{number}", sutraH.Get)
		r.With(requireUser).Post("/", sutraH.Create)
		r.With(requireUser).Put("/{projectName}/{chapter}/{number}", sutraH.Update)
		r.With(requireAdmin).Delete("/{projectName}/{chapter}/{number}", sutraH.Delete)
		r.With(requireAdmin).Delete("/by-id/{sutraID}", sutraH.DeleteByID)
	})

	mountChild := func(path string, h *TextChildHandler) {
		r.Route(path, func(r chi.Router) {
			r.Get("/{projectName}/{chapter}/{number}", h.Get)
			r.With(requireUser).Post("/", h.Create)
			r.With(requireUser).Put("/{projectName}/{chapter}/{number}", h.Update)
			r.With(requireAdmin).Delete("/{projectName}/{chapter}/{number}", h.Delete)
		})
	}
	mountChild("/meanings", meaningH)
	mountChild("/transliterations", translitH)
	mountChild("/bhashyams", bhashyamH)

	r.Route("/interpretations", func(r chi.Router) {
		r.Get("/{projectName}/{chapter}/{number}", interpH.Get)
		r.With(requireUser).Post("/", interpH.Create)
		r.With(requireUser).Put("/{projectName}/{chapter}/{number}", interpH.Update)
		r.With(requireAdmin).Delete("/{projectName}/{chapter}/{number}", interpH.Delete)
	})

	r.Route("/audio", func(r chi.Router) {
		r.Get("/{projectName}/{chapter}/{number}", audioH.Get)
		r.With(requireUser).Post("/{projectName}/{chapter}/{number}", audioH.Create)
		r.With(requireUser).Put("/{projectName}/{chapter}/{number}", audioH.Update)
		r.With(requireAdmin).Delete("/{projectName}/{chapter}/{number}", audioH.Delete)
	})

	r.Get("/search/{term}", searchH.Search)

	fileServer := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
	r.Get("/static/*", fileServer.ServeHTTP)

	return r
}
