package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/sevigo/a11y-warden/internal/core"
	"github.com/sevigo/a11y-warden/internal/logger"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderOllama    = "ollama"

	EnvDevelopment = "development"
)

// Config holds the application's configuration values.
type Config struct {
	Environment string
	Server      ServerConfig
	AI          AIConfig
	Review      ReviewConfig
	Logging     logger.Config
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port              string
	MaxBodyBytes      int64
	StrictStatusCodes bool
}

// AIConfig selects and configures the completion service.
type AIConfig struct {
	LLMProvider     string
	GeneratorModel  string
	AnthropicAPIKey string
	GeminiAPIKey    string
	OllamaHost      string
	SkipRequest     bool
}

// ReviewConfig holds the defaults applied to every review request.
type ReviewConfig struct {
	MaxTokens           int64
	DefaultSystemPrompt string
	ResponseMode        core.ResponseMode
	PromptSectionsFile  string
}

// LoadConfig reads configuration from environment variables and a .env file,
// sets sensible defaults, and validates the result. It uses the Viper
// library to handle configuration loading and precedence.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "production")
	v.SetDefault("PORT", "3000")
	v.SetDefault("MAX_BODY_BYTES", 50<<20)
	v.SetDefault("STRICT_STATUS_CODES", false)
	v.SetDefault("LLM_PROVIDER", ProviderAnthropic)
	v.SetDefault("MODEL_NAME", "claude-sonnet-4-5")
	v.SetDefault("OLLAMA_HOST", "http://localhost:11434")
	v.SetDefault("SKIP_REQUEST", false)
	v.SetDefault("MAX_TOKENS", 4096)
	v.SetDefault("SYSTEM_PROMPT", "You are a helpful assistant analyzing git patches.")
	v.SetDefault("RESPONSE_MODE", string(core.ResponseRaw))
	v.SetDefault("PROMPT_SECTIONS_FILE", "prompt-sections.yml")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_OUTPUT", "stdout")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			slog.Error("failed to read config file", "error", err)
		}
	}

	mode, err := core.ParseResponseMode(v.GetString("RESPONSE_MODE"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Environment: strings.ToLower(v.GetString("APP_ENV")),
		Server: ServerConfig{
			Port:              v.GetString("PORT"),
			MaxBodyBytes:      v.GetInt64("MAX_BODY_BYTES"),
			StrictStatusCodes: v.GetBool("STRICT_STATUS_CODES"),
		},
		AI: AIConfig{
			LLMProvider:     strings.ToLower(v.GetString("LLM_PROVIDER")),
			GeneratorModel:  v.GetString("MODEL_NAME"),
			AnthropicAPIKey: v.GetString("ANTHROPIC_API_KEY"),
			GeminiAPIKey:    v.GetString("GEMINI_API_KEY"),
			OllamaHost:      v.GetString("OLLAMA_HOST"),
			SkipRequest:     v.GetBool("SKIP_REQUEST"),
		},
		Review: ReviewConfig{
			MaxTokens:           v.GetInt64("MAX_TOKENS"),
			DefaultSystemPrompt: v.GetString("SYSTEM_PROMPT"),
			ResponseMode:        mode,
			PromptSectionsFile:  v.GetString("PROMPT_SECTIONS_FILE"),
		},
		Logging: logger.Config{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
			Output: v.GetString("LOG_OUTPUT"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the application cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT must be set")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.Server.MaxBodyBytes)
	}
	if c.Review.MaxTokens <= 0 {
		return fmt.Errorf("MAX_TOKENS must be positive, got %d", c.Review.MaxTokens)
	}

	switch c.AI.LLMProvider {
	case ProviderAnthropic, ProviderOllama:
	case ProviderGemini:
		if c.AI.GeminiAPIKey == "" && !c.AI.SkipRequest {
			return fmt.Errorf("GEMINI_API_KEY must be set for the gemini provider")
		}
	default:
		return fmt.Errorf("unsupported LLM provider: %s", c.AI.LLMProvider)
	}
	return nil
}

// IsDevelopment reports whether error responses may carry stack traces.
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// AnthropicConfigured reports whether a completion credential is present.
func (c *Config) AnthropicConfigured() bool {
	return c.AI.AnthropicAPIKey != ""
}
