package sentiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sony/gobreaker"

	"github.com/zombar/textsense/internal/config"
	"github.com/zombar/textsense/internal/models"
)

// Breaker guards a classifier with a circuit breaker. Once enough calls fail
// it rejects further calls with ErrSentimentUnavailable until the open
// timeout has passed.
type Breaker struct {
	inner  Classifier
	cb     *gobreaker.CircuitBreaker
	logger *slog.Logger
}

// NewBreaker wraps inner in a circuit breaker named name
func NewBreaker(name string, inner Classifier, cfg config.BreakerConfig, logger *slog.Logger) *Breaker {
	if logger == nil {
		logger = slog.Default()
	}

	b := &Breaker{inner: inner, logger: logger}
	b.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.Interval,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
		IsSuccessful: func(err error) bool {
			// rejected input and cancelled callers say nothing about the backend
			return err == nil ||
				errors.Is(err, models.ErrInvalidInput) ||
				errors.Is(err, context.Canceled)
		},
	})
	return b
}

// Initialize initializes the wrapped classifier
func (b *Breaker) Initialize(ctx context.Context) error {
	return b.inner.Initialize(ctx)
}

// Shutdown shuts the wrapped classifier down
func (b *Breaker) Shutdown(ctx context.Context) error {
	return b.inner.Shutdown(ctx)
}

// State returns the current breaker state
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

// ClassifySentiment calls the wrapped classifier unless the breaker is open
func (b *Breaker) ClassifySentiment(ctx context.Context, text string) (models.SentimentResult, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.ClassifySentiment(ctx, text)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return models.SentimentResult{}, fmt.Errorf("%w: %v", models.ErrSentimentUnavailable, err)
		}
		return models.SentimentResult{}, err
	}
	return out.(models.SentimentResult), nil
}
