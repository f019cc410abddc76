package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "textsense.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ProviderLexicon, cfg.Sentiment.Provider)
	assert.Equal(t, 10, cfg.Keywords.MaxKeywords)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9000"
  rate_limit_rps: 5
sentiment:
  provider: ollama
  ollama_model: llama3.2
  timeout: 45s
keywords:
  max_keywords: 7
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 5.0, cfg.Server.RateLimitRPS)
	assert.Equal(t, ProviderOllama, cfg.Sentiment.Provider)
	assert.Equal(t, "llama3.2", cfg.Sentiment.OllamaModel)
	assert.Equal(t, 45*time.Second, cfg.Sentiment.Timeout)
	assert.Equal(t, 7, cfg.Keywords.MaxKeywords)
	assert.Equal(t, "debug", cfg.Log.Level)

	// untouched settings keep their defaults
	assert.Equal(t, "http://localhost:11434", cfg.Sentiment.OllamaURL)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestEnvOverridesYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9000"
keywords:
  max_keywords: 7
`)
	t.Setenv("PORT", "9100")
	t.Setenv("MAX_KEYWORDS", "3")
	t.Setenv("SENTIMENT_TIMEOUT", "2m")
	t.Setenv("TRACING_ENABLED", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, 3, cfg.Keywords.MaxKeywords)
	assert.Equal(t, 2*time.Minute, cfg.Sentiment.Timeout)
	assert.True(t, cfg.Tracing.Enabled)
}

func TestUseOllamaFlag(t *testing.T) {
	t.Setenv("USE_OLLAMA", "true")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ProviderOllama, cfg.Sentiment.Provider)

	t.Setenv("SENTIMENT_PROVIDER", "lexicon")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, ProviderLexicon, cfg.Sentiment.Provider, "SENTIMENT_PROVIDER wins over USE_OLLAMA")
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed YAML", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server: [unclosed"))
		assert.Error(t, err)
	})

	t.Run("malformed env", func(t *testing.T) {
		t.Setenv("MAX_KEYWORDS", "many")
		_, err := Load("")
		assert.ErrorContains(t, err, "MAX_KEYWORDS")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"unknown provider", func(c *Config) { c.Sentiment.Provider = "magic" }, "unknown sentiment provider"},
		{"zero keywords", func(c *Config) { c.Keywords.MaxKeywords = 0 }, "max keywords"},
		{"bad threshold", func(c *Config) { c.Sentiment.Breaker.FailureThreshold = 1.5 }, "failure threshold"},
		{"zero min requests", func(c *Config) { c.Sentiment.Breaker.MinRequests = 0 }, "min requests"},
		{"unknown log level", func(c *Config) { c.Log.Level = "verbose" }, "log level"},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }, "log format"},
		{"negative rate", func(c *Config) { c.Server.RateLimitRPS = -1 }, "rate limit"},
		{"ollama without timeout", func(c *Config) {
			c.Sentiment.Provider = ProviderOllama
			c.Sentiment.Timeout = 0
		}, "sentiment timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
