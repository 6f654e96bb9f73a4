package wire

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/wire"

	"github.com/sevigo/a11y-warden/internal/app"
	"github.com/sevigo/a11y-warden/internal/config"
	"github.com/sevigo/a11y-warden/internal/core"
	"github.com/sevigo/a11y-warden/internal/llm"
	"github.com/sevigo/a11y-warden/internal/logger"
	"github.com/sevigo/a11y-warden/internal/prompt"
	"github.com/sevigo/a11y-warden/internal/review"
	"github.com/sevigo/a11y-warden/internal/server"
	"github.com/sevigo/a11y-warden/internal/server/handler"
)

var AppSet = wire.NewSet(
	app.NewApp,
	server.NewServer,
	config.LoadConfig,
	prompt.NewComposer,
	review.NewService,
	provideSlogLogger,
	provideReference,
	provideCompleter,
	provideReviewOptions,
	wire.Bind(new(handler.Analyzer), new(*review.Service)),
)

func provideSlogLogger(cfg *config.Config) *slog.Logger {
	// A nil writer lets the logger resolve LOG_OUTPUT itself.
	l := logger.NewLogger(cfg.Logging, nil)
	slog.SetDefault(l)
	return l
}

func provideReference(cfg *config.Config, logger *slog.Logger) (prompt.Reference, error) {
	res, err := prompt.LoadReference(cfg.Review.PromptSectionsFile)
	if err != nil {
		return prompt.Reference{}, fmt.Errorf("failed to load prompt sections: %w", err)
	}
	logger.Info("prompt reference loaded", "source", res.Source, "path", res.Path)
	return res.Reference, nil
}

func provideCompleter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (core.Completer, error) {
	return llm.NewCompleter(ctx, cfg, logger)
}

func provideReviewOptions(cfg *config.Config) review.Options {
	return review.Options{
		Provider:            providerName(cfg),
		DefaultSystemPrompt: cfg.Review.DefaultSystemPrompt,
		MaxTokens:           cfg.Review.MaxTokens,
		Mode:                cfg.Review.ResponseMode,
	}
}

func providerName(cfg *config.Config) string {
	if cfg.AI.SkipRequest {
		return "fixture"
	}
	return cfg.AI.LLMProvider
}
