package sentiment

import (
	"fmt"
	"log/slog"

	"github.com/zombar/textsense/internal/config"
	"github.com/zombar/textsense/internal/ollama"
)

// FromConfig builds the classifier selected by cfg.Provider. Remote
// classifiers are wrapped in a Breaker.
func FromConfig(cfg config.SentimentConfig, logger *slog.Logger) (Classifier, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Provider {
	case config.ProviderLexicon, "":
		logger.Info("using lexicon sentiment classifier")
		return NewLexicon(), nil

	case config.ProviderOllama:
		client, err := ollama.New(cfg.OllamaURL, cfg.OllamaModel,
			ollama.WithTimeout(cfg.Timeout),
			ollama.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Ollama client: %w", err)
		}
		logger.Info("using ollama sentiment classifier", "url", cfg.OllamaURL, "model", client.Model())
		return NewBreaker("ollama-sentiment", client, cfg.Breaker, logger), nil

	default:
		return nil, fmt.Errorf("unknown sentiment provider %q", cfg.Provider)
	}
}
