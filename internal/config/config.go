// Package config loads service configuration from defaults, an optional YAML
// file and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Sentiment providers
const (
	ProviderLexicon = "lexicon"
	ProviderOllama  = "ollama"
)

// Config is the complete service configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Sentiment SentimentConfig `yaml:"sentiment"`
	Keywords  KeywordsConfig  `yaml:"keywords"`
	Tracing   TracingConfig   `yaml:"tracing"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps"`
	RateLimitBurst  int           `yaml:"rate_limit_burst"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

// SentimentConfig selects and configures the sentiment classifier
type SentimentConfig struct {
	Provider    string        `yaml:"provider"`
	OllamaURL   string        `yaml:"ollama_url"`
	OllamaModel string        `yaml:"ollama_model"`
	Timeout     time.Duration `yaml:"timeout"`
	Breaker     BreakerConfig `yaml:"breaker"`
}

// BreakerConfig tunes the circuit breaker around remote classifiers
type BreakerConfig struct {
	MinRequests      uint32        `yaml:"min_requests"`
	FailureThreshold float64       `yaml:"failure_threshold"`
	Interval         time.Duration `yaml:"interval"`
	OpenTimeout      time.Duration `yaml:"open_timeout"`
}

// KeywordsConfig configures keyword extraction
type KeywordsConfig struct {
	MaxKeywords int `yaml:"max_keywords"`
}

// TracingConfig configures OpenTelemetry export
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"service_name"`
}

// LogConfig configures the process logger
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    420 * time.Second, // 7 minutes for model-backed sentiment
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RateLimitRPS:    0,
			RateLimitBurst:  20,
			AllowedOrigins:  []string{"*"},
		},
		Sentiment: SentimentConfig{
			Provider:    ProviderLexicon,
			OllamaURL:   "http://localhost:11434",
			OllamaModel: "gpt-oss:20b",
			Timeout:     360 * time.Second,
			Breaker: BreakerConfig{
				MinRequests:      5,
				FailureThreshold: 0.6,
				Interval:         60 * time.Second,
				OpenTimeout:      30 * time.Second,
			},
		},
		Keywords: KeywordsConfig{
			MaxKeywords: 10,
		},
		Tracing: TracingConfig{
			Enabled:     false,
			Endpoint:    "localhost:4317",
			ServiceName: "textsense",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is not empty) and the environment, then validates it
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays environment variables on the configuration
func (c *Config) applyEnv() error {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Sentiment.Provider = getEnv("SENTIMENT_PROVIDER", c.Sentiment.Provider)
	c.Sentiment.OllamaURL = getEnv("OLLAMA_URL", c.Sentiment.OllamaURL)
	c.Sentiment.OllamaModel = getEnv("OLLAMA_MODEL", c.Sentiment.OllamaModel)
	c.Tracing.Endpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", c.Tracing.Endpoint)
	c.Tracing.Enabled = getEnvBool("TRACING_ENABLED", c.Tracing.Enabled)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)

	// USE_OLLAMA is kept for deployments that predate SENTIMENT_PROVIDER
	if os.Getenv("SENTIMENT_PROVIDER") == "" && os.Getenv("USE_OLLAMA") != "" {
		if getEnvBool("USE_OLLAMA", false) {
			c.Sentiment.Provider = ProviderOllama
		} else {
			c.Sentiment.Provider = ProviderLexicon
		}
	}

	var errs []error
	if v := os.Getenv("SENTIMENT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("SENTIMENT_TIMEOUT: %w", err))
		} else {
			c.Sentiment.Timeout = d
		}
	}
	if v := os.Getenv("MAX_KEYWORDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("MAX_KEYWORDS: %w", err))
		} else {
			c.Keywords.MaxKeywords = n
		}
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("RATE_LIMIT_RPS: %w", err))
		} else {
			c.Server.RateLimitRPS = f
		}
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("RATE_LIMIT_BURST: %w", err))
		} else {
			c.Server.RateLimitBurst = n
		}
	}
	return errors.Join(errs...)
}

// Validate reports every invalid setting
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("server port is required"))
	}
	if c.Server.RateLimitRPS < 0 {
		errs = append(errs, fmt.Errorf("rate limit must not be negative, got %v", c.Server.RateLimitRPS))
	}
	if c.Server.RateLimitRPS > 0 && c.Server.RateLimitBurst < 1 {
		errs = append(errs, fmt.Errorf("rate limit burst must be at least 1, got %d", c.Server.RateLimitBurst))
	}

	switch c.Sentiment.Provider {
	case ProviderLexicon:
	case ProviderOllama:
		if c.Sentiment.OllamaURL == "" {
			errs = append(errs, errors.New("ollama URL is required for the ollama provider"))
		}
		if c.Sentiment.Timeout <= 0 {
			errs = append(errs, fmt.Errorf("sentiment timeout must be positive, got %v", c.Sentiment.Timeout))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown sentiment provider %q", c.Sentiment.Provider))
	}

	if t := c.Sentiment.Breaker.FailureThreshold; t <= 0 || t > 1 {
		errs = append(errs, fmt.Errorf("breaker failure threshold must be in (0,1], got %v", t))
	}
	if c.Sentiment.Breaker.MinRequests == 0 {
		errs = append(errs, errors.New("breaker min requests must be at least 1"))
	}

	if c.Keywords.MaxKeywords < 1 {
		errs = append(errs, fmt.Errorf("max keywords must be greater than zero, got %d", c.Keywords.MaxKeywords))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
