// Package app initializes and orchestrates the main components of the A11y Warden relay.
// It wires together the configuration, server, and review services.
package app

import (
	"context"
	"log/slog"

	"github.com/sevigo/a11y-warden/internal/config"
	"github.com/sevigo/a11y-warden/internal/server"
)

// App holds the main application components.
type App struct {
	ctx    context.Context
	cfg    *config.Config
	server *server.Server
	logger *slog.Logger
}

// NewApp assembles the application from already constructed components.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, srv *server.Server) *App {
	logger.Info("A11y Warden application initialized",
		"llm_provider", cfg.AI.LLMProvider,
		"generator_model", cfg.AI.GeneratorModel,
		"fixture_mode", cfg.AI.SkipRequest,
		"response_mode", cfg.Review.ResponseMode,
		"environment", cfg.Environment)

	return &App{
		ctx:    ctx,
		cfg:    cfg,
		server: srv,
		logger: logger,
	}
}

// Start runs the HTTP server.
func (a *App) Start() error {
	a.logger.Info("starting A11y Warden",
		"server_port", a.cfg.Server.Port,
		"anthropic_configured", a.cfg.AnthropicConfigured())

	if err := a.server.Start(); err != nil {
		a.logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts down the application cleanly.
func (a *App) Stop() error {
	a.logger.Info("shutting down A11y Warden")

	if err := a.server.Stop(); err != nil {
		a.logger.Error("A11y Warden stopped with errors", "error", err)
		return err
	}

	a.logger.Info("A11y Warden stopped successfully")
	return nil
}
