package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sevigo/a11y-warden/internal/config"
	"github.com/sevigo/a11y-warden/internal/core"
	"github.com/sevigo/a11y-warden/internal/server/handler"
)

// NewRouter creates and configures a new HTTP router with middleware and API routes.
func NewRouter(cfg *config.Config, analyzer handler.Analyzer, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Configure middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{handler.ReviewIDHeader, middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", handler.NewHealthHandler(cfg.AnthropicConfigured()).Handle)

	policy := handler.ErrorPolicy{
		StrictStatusCodes: cfg.Server.StrictStatusCodes,
		IncludeStack:      cfg.IsDevelopment(),
	}
	general := handler.NewReviewHandler(analyzer, core.ProfileGeneral, policy, logger)
	accessibility := handler.NewReviewHandler(analyzer, core.ProfileAccessibility, policy, logger)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequestSize(cfg.Server.MaxBodyBytes))
		r.Post("/analyze-patches", general.Handle)
		r.Post("/analyze-patches/accessibility", accessibility.Handle)
	})

	return r
}
