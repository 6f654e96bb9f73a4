package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/a11y-warden/internal/core"
)

// clearRelayEnv blanks every variable LoadConfig reads so defaults do not
// depend on the caller's shell. Viper treats empty variables as unset.
func clearRelayEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "PORT", "MAX_BODY_BYTES", "STRICT_STATUS_CODES",
		"LLM_PROVIDER", "MODEL_NAME", "ANTHROPIC_API_KEY", "GEMINI_API_KEY", "OLLAMA_HOST",
		"SKIP_REQUEST", "MAX_TOKENS", "SYSTEM_PROMPT", "RESPONSE_MODE", "PROMPT_SECTIONS_FILE",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	clearRelayEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, int64(50<<20), cfg.Server.MaxBodyBytes)
	assert.False(t, cfg.Server.StrictStatusCodes)
	assert.Equal(t, ProviderAnthropic, cfg.AI.LLMProvider)
	assert.False(t, cfg.AI.SkipRequest)
	assert.Equal(t, int64(4096), cfg.Review.MaxTokens)
	assert.Equal(t, "You are a helpful assistant analyzing git patches.", cfg.Review.DefaultSystemPrompt)
	assert.Equal(t, core.ResponseRaw, cfg.Review.ResponseMode)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.IsDevelopment())
	assert.False(t, cfg.AnthropicConfigured())
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	clearRelayEnv(t)
	t.Setenv("PORT", "8088")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("SKIP_REQUEST", "true")
	t.Setenv("MAX_TOKENS", "1024")
	t.Setenv("RESPONSE_MODE", "findings")
	t.Setenv("STRICT_STATUS_CODES", "true")
	t.Setenv("APP_ENV", "Development")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8088", cfg.Server.Port)
	assert.True(t, cfg.AnthropicConfigured())
	assert.True(t, cfg.AI.SkipRequest)
	assert.Equal(t, int64(1024), cfg.Review.MaxTokens)
	assert.Equal(t, core.ResponseFindings, cfg.Review.ResponseMode)
	assert.True(t, cfg.Server.StrictStatusCodes)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	clearRelayEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=4000\nLLM_PROVIDER=ollama\n"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "4000", cfg.Server.Port)
	assert.Equal(t, ProviderOllama, cfg.AI.LLMProvider)
}

func TestLoadConfig_InvalidResponseMode(t *testing.T) {
	t.Chdir(t.TempDir())
	clearRelayEnv(t)
	t.Setenv("RESPONSE_MODE", "xml")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server: ServerConfig{Port: "3000", MaxBodyBytes: 1 << 20},
			AI:     AIConfig{LLMProvider: ProviderAnthropic},
			Review: ReviewConfig{MaxTokens: 4096},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "Valid config", mutate: func(*Config) {}},
		{name: "Missing port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: true},
		{name: "Zero body limit", mutate: func(c *Config) { c.Server.MaxBodyBytes = 0 }, wantErr: true},
		{name: "Negative max tokens", mutate: func(c *Config) { c.Review.MaxTokens = -1 }, wantErr: true},
		{name: "Unknown provider", mutate: func(c *Config) { c.AI.LLMProvider = "openai" }, wantErr: true},
		{name: "Gemini without key", mutate: func(c *Config) { c.AI.LLMProvider = ProviderGemini }, wantErr: true},
		{
			name: "Gemini without key in fixture mode",
			mutate: func(c *Config) {
				c.AI.LLMProvider = ProviderGemini
				c.AI.SkipRequest = true
			},
		},
		{name: "Ollama needs no key", mutate: func(c *Config) { c.AI.LLMProvider = ProviderOllama }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
