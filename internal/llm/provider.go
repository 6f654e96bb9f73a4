// Package llm adapts remote completion services to core.Completer.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/sevigo/goframe/llms/gemini"
	"github.com/sevigo/goframe/llms/ollama"

	"github.com/sevigo/a11y-warden/internal/config"
	"github.com/sevigo/a11y-warden/internal/core"
)

// NewCompleter creates the completer selected by the configuration.
// Fixture mode wins over any provider setting.
func NewCompleter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (core.Completer, error) {
	if cfg.AI.SkipRequest {
		logger.Warn("fixture mode enabled, completion requests will not leave the process")
		return NewFixtureCompleter(), nil
	}

	switch cfg.AI.LLMProvider {
	case config.ProviderAnthropic:
		logger.Info("Using Anthropic LLM provider", "model", cfg.AI.GeneratorModel, "configured", cfg.AnthropicConfigured())
		return NewAnthropicCompleter(cfg.AI.AnthropicAPIKey, cfg.AI.GeneratorModel), nil

	case config.ProviderGemini:
		logger.Info("Using Gemini LLM provider", "model", cfg.AI.GeneratorModel)
		if cfg.AI.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is not set in environment for gemini provider")
		}
		model, err := gemini.New(ctx,
			gemini.WithModel(cfg.AI.GeneratorModel),
			gemini.WithAPIKey(cfg.AI.GeminiAPIKey),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini model: %w", err)
		}
		return NewModelCompleter(model), nil

	case config.ProviderOllama:
		logger.Info("Using Ollama LLM provider", "model", cfg.AI.GeneratorModel, "host", cfg.AI.OllamaHost)
		model, err := ollama.New(
			ollama.WithServerURL(cfg.AI.OllamaHost),
			ollama.WithHTTPClient(newOllamaHTTPClient()),
			ollama.WithModel(cfg.AI.GeneratorModel),
			ollama.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama model: %w", err)
		}
		return NewModelCompleter(model), nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.AI.LLMProvider)
	}
}

// newOllamaHTTPClient creates an HTTP client for local models. The client sets
// no overall timeout; a review lasts as long as the model needs.
func newOllamaHTTPClient() *http.Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &http.Client{Transport: transport}
}
