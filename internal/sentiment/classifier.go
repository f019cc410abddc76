// Package sentiment provides the sentiment classifiers used by the analyzer:
// a rule-based lexicon classifier, and a circuit breaker for remote ones.
package sentiment

import (
	"context"

	"github.com/zombar/textsense/internal/models"
)

// Classifier scores the overall sentiment of a text on the five label scale.
// Initialize must succeed before ClassifySentiment is used; Shutdown releases
// whatever Initialize acquired.
type Classifier interface {
	Initialize(ctx context.Context) error
	ClassifySentiment(ctx context.Context, text string) (models.SentimentResult, error)
	Shutdown(ctx context.Context) error
}
