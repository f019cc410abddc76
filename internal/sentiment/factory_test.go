package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zombar/textsense/internal/config"
)

func TestFromConfig(t *testing.T) {
	cfg := config.Default().Sentiment

	classifier, err := FromConfig(cfg, quietLogger())
	require.NoError(t, err)
	assert.IsType(t, &Lexicon{}, classifier)

	cfg.Provider = config.ProviderOllama
	classifier, err = FromConfig(cfg, quietLogger())
	require.NoError(t, err)
	assert.IsType(t, &Breaker{}, classifier)

	cfg.Provider = "unknown"
	_, err = FromConfig(cfg, quietLogger())
	assert.Error(t, err)

	cfg.Provider = config.ProviderOllama
	cfg.OllamaURL = "://bad"
	_, err = FromConfig(cfg, quietLogger())
	assert.Error(t, err)
}
