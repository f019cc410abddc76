package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/zombar/textsense/internal/metrics"
	"github.com/zombar/textsense/internal/models"
	"github.com/zombar/textsense/pkg/tracing"
)

// Stage names used for spans and metrics
const (
	StageStatistics = "statistics"
	StageKeywords   = "keywords"
	StageSentiment  = "sentiment"
)

// SentimentClassifier classifies the overall sentiment of a text
type SentimentClassifier interface {
	ClassifySentiment(ctx context.Context, text string) (models.SentimentResult, error)
}

// Analyzer runs the statistics, keyword and sentiment analyses for a text and
// merges them into one result. It holds no per-request state and is safe for
// concurrent use.
type Analyzer struct {
	classifier  SentimentClassifier
	stopWords   StopWordSet
	maxKeywords int
	metrics     *metrics.Collector
	logger      *slog.Logger
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithMaxKeywords sets the keyword limit used by Analyse
func WithMaxKeywords(n int) Option {
	return func(a *Analyzer) {
		a.maxKeywords = n
	}
}

// WithStopWords replaces the base stop word set used by Analyse
func WithStopWords(s StopWordSet) Option {
	return func(a *Analyzer) {
		a.stopWords = s
	}
}

// WithMetrics records analysis metrics on c
func WithMetrics(c *metrics.Collector) Option {
	return func(a *Analyzer) {
		a.metrics = c
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = l
	}
}

// New creates an Analyzer that delegates sentiment to classifier
func New(classifier SentimentClassifier, opts ...Option) *Analyzer {
	a := &Analyzer{
		classifier:  classifier,
		stopWords:   BaseStopWords(),
		maxKeywords: DefaultMaxKeywords,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// StopWords returns the stop word set used by Analyse
func (a *Analyzer) StopWords() StopWordSet {
	return a.stopWords
}

// Analyse runs the three analyses concurrently and returns their combined
// result. The first failure aborts the whole analysis; no partial result is
// returned.
func (a *Analyzer) Analyse(ctx context.Context, text string) (*models.TextSenseResult, error) {
	start := time.Now()

	ctx, span := tracing.StartSpan(ctx, "textsense.analyse", attribute.Int("text.length", len(text)))
	defer span.End()

	if strings.TrimSpace(text) == "" {
		err := fmt.Errorf("%w: text must not be blank", models.ErrInvalidInput)
		a.fail(span, err)
		return nil, err
	}

	var result models.TextSenseResult
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.runStage(gctx, StageStatistics, func(context.Context) error {
			stats, err := AnalyzeStatistics(text)
			result.Statistics = stats
			return err
		})
	})

	g.Go(func() error {
		return a.runStage(gctx, StageKeywords, func(context.Context) error {
			keywords, err := ExtractKeywords(text, a.maxKeywords, a.stopWords)
			result.Keywords = keywords
			return err
		})
	})

	g.Go(func() error {
		return a.runStage(gctx, StageSentiment, func(stageCtx context.Context) error {
			sentiment, err := a.classifier.ClassifySentiment(stageCtx, text)
			result.Sentiment = sentiment
			return err
		})
	})

	if err := g.Wait(); err != nil {
		a.fail(span, err)
		a.logger.Warn("text analysis failed",
			"error", err,
			"text_length", len(text),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	a.metrics.RecordAnalysis(metrics.OutcomeSuccess)
	a.metrics.RecordSentiment(result.Sentiment.Label.String())
	a.metrics.ObserveKeywords(len(result.Keywords))

	span.SetAttributes(
		attribute.Int("statistics.word_count", result.Statistics.WordCount),
		attribute.Int("statistics.sentence_count", result.Statistics.SentenceCount),
		attribute.Int("keywords.count", len(result.Keywords)),
		attribute.String("sentiment.label", result.Sentiment.Label.String()),
	)

	a.logger.Debug("text analysis completed",
		"text_length", len(text),
		"word_count", result.Statistics.WordCount,
		"keywords", len(result.Keywords),
		"sentiment", result.Sentiment.Label.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &result, nil
}

// Statistics returns the text statistics of text
func (a *Analyzer) Statistics(ctx context.Context, text string) (models.TextStatistics, error) {
	var stats models.TextStatistics
	err := a.runStage(ctx, StageStatistics, func(context.Context) error {
		var err error
		stats, err = AnalyzeStatistics(text)
		return err
	})
	return stats, err
}

// Keywords ranks up to maxKeywords keywords of text with their counts. extra
// is merged into the analyzer's stop words for this call only.
func (a *Analyzer) Keywords(ctx context.Context, text string, maxKeywords int, extra []string) ([]models.WordFrequency, error) {
	stopWords := a.stopWords
	if len(extra) > 0 {
		stopWords = stopWords.WithExtra(extra...)
	}

	var ranked []models.WordFrequency
	err := a.runStage(ctx, StageKeywords, func(context.Context) error {
		var err error
		ranked, err = ExtractKeywordFrequencies(text, maxKeywords, stopWords)
		return err
	})
	return ranked, err
}

// runStage runs fn inside a child span and records its duration
func (a *Analyzer) runStage(ctx context.Context, stage string, fn func(context.Context) error) error {
	ctx, span := tracing.StartSpan(ctx, "textsense."+stage)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	a.metrics.ObserveStage(stage, time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("%s: %w", stage, err)
	}
	return nil
}

// fail marks span as failed and counts the failure by kind
func (a *Analyzer) fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	a.metrics.RecordAnalysis(outcomeOf(err))
}

// outcomeOf maps an error to its metrics outcome label
func outcomeOf(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return metrics.OutcomeInvalidInput
	case errors.Is(err, models.ErrSentimentUnavailable):
		return metrics.OutcomeSentimentUnavailable
	default:
		return metrics.OutcomeFailure
	}
}
