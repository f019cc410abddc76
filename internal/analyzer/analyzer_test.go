package analyzer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/zombar/textsense/internal/metrics"
	"github.com/zombar/textsense/internal/models"
)

// fakeClassifier returns a fixed result and remembers the texts it saw
type fakeClassifier struct {
	mu     sync.Mutex
	result models.SentimentResult
	err    error
	seen   []string
}

func (f *fakeClassifier) ClassifySentiment(ctx context.Context, text string) (models.SentimentResult, error) {
	f.mu.Lock()
	f.seen = append(f.seen, text)
	f.mu.Unlock()
	if f.err != nil {
		return models.SentimentResult{}, f.err
	}
	return f.result, nil
}

func positiveClassifier() *fakeClassifier {
	return &fakeClassifier{result: models.SentimentResult{Score: 3, Label: models.Positive}}
}

func TestAnalyse(t *testing.T) {
	classifier := positiveClassifier()
	a := New(classifier)

	text := "The quick brown fox jumps. It runs fast, fast, fast!"
	result, err := a.Analyse(context.Background(), text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Statistics.SentenceCount != 2 {
		t.Errorf("expected 2 sentences, got %d", result.Statistics.SentenceCount)
	}
	if result.Statistics.WordCount != 10 {
		t.Errorf("expected 10 words, got %d", result.Statistics.WordCount)
	}
	if len(result.Keywords) == 0 || result.Keywords[0] != "fast" {
		t.Errorf("expected fast to rank first, got %v", result.Keywords)
	}
	if result.Sentiment.Label != models.Positive || result.Sentiment.Score != 3 {
		t.Errorf("expected classifier result to be passed through, got %+v", result.Sentiment)
	}
	if len(classifier.seen) != 1 || classifier.seen[0] != text {
		t.Errorf("expected classifier to see the original text once, got %v", classifier.seen)
	}
}

func TestAnalyseRejectsBlankText(t *testing.T) {
	classifier := positiveClassifier()
	a := New(classifier)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := a.Analyse(context.Background(), text)
		if !errors.Is(err, models.ErrInvalidInput) {
			t.Errorf("Analyse(%q): expected ErrInvalidInput, got %v", text, err)
		}
	}
	if len(classifier.seen) != 0 {
		t.Errorf("classifier should not be called for blank text, got %d calls", len(classifier.seen))
	}
}

func TestAnalyseIsIdempotent(t *testing.T) {
	a := New(positiveClassifier())
	text := "Dr. Smith arrived. He left. The garden was lovely and the garden was quiet."

	first, err := a.Analyse(context.Background(), text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := a.Analyse(context.Background(), text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Statistics != second.Statistics {
		t.Errorf("statistics differ: %+v vs %+v", first.Statistics, second.Statistics)
	}
	if strings.Join(first.Keywords, ",") != strings.Join(second.Keywords, ",") {
		t.Errorf("keywords differ: %v vs %v", first.Keywords, second.Keywords)
	}
	if first.Sentiment != second.Sentiment {
		t.Errorf("sentiment differs: %+v vs %+v", first.Sentiment, second.Sentiment)
	}
}

func TestAnalysePropagatesSentimentFailure(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		outcome string
	}{
		{"unavailable", models.ErrSentimentUnavailable, metrics.OutcomeSentimentUnavailable},
		{"failure", models.ErrAnalysisFailure, metrics.OutcomeFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector := metrics.New("test", prometheus.NewRegistry())
			a := New(&fakeClassifier{err: tt.err}, WithMetrics(collector))

			result, err := a.Analyse(context.Background(), "A perfectly ordinary sentence.")
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
			if result != nil {
				t.Errorf("expected no partial result, got %+v", result)
			}
			if got := testutil.ToFloat64(collector.AnalysesTotal.WithLabelValues(tt.outcome)); got != 1 {
				t.Errorf("expected one %s outcome, got %v", tt.outcome, got)
			}
		})
	}
}

func TestAnalyseRecordsMetrics(t *testing.T) {
	collector := metrics.New("test", prometheus.NewRegistry())
	a := New(positiveClassifier(), WithMetrics(collector))

	if _, err := a.Analyse(context.Background(), "Sunny days are lovely days."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := testutil.ToFloat64(collector.AnalysesTotal.WithLabelValues(metrics.OutcomeSuccess)); got != 1 {
		t.Errorf("expected one successful analysis, got %v", got)
	}
	if got := testutil.ToFloat64(collector.SentimentLabels.WithLabelValues("Positive")); got != 1 {
		t.Errorf("expected one Positive label, got %v", got)
	}
	if got := testutil.CollectAndCount(collector.StageDuration); got != 3 {
		t.Errorf("expected 3 stage series, got %d", got)
	}
}

func TestAnalyseOptions(t *testing.T) {
	a := New(positiveClassifier(),
		WithMaxKeywords(2),
		WithStopWords(BaseStopWords().WithExtra("dog")),
	)

	result, err := a.Analyse(context.Background(), "dog cat dog bird cat fish dog")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"cat", "bird"}
	if strings.Join(result.Keywords, ",") != strings.Join(expected, ",") {
		t.Errorf("expected %v, got %v", expected, result.Keywords)
	}
}

func TestAnalyzerKeywords(t *testing.T) {
	a := New(positiveClassifier())

	ranked, err := a.Keywords(context.Background(), "apple banana apple cherry banana apple", 5, []string{"CHERRY"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []models.WordFrequency{{Word: "apple", Count: 3}, {Word: "banana", Count: 2}}
	if len(ranked) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, ranked)
	}
	for i := range expected {
		if ranked[i] != expected[i] {
			t.Errorf("position %d: expected %+v, got %+v", i, expected[i], ranked[i])
		}
	}

	if a.StopWords().IsStopWord("cherry") {
		t.Error("per-call stop words must not leak into the analyzer's set")
	}
}

func TestAnalyzerStatistics(t *testing.T) {
	a := New(positiveClassifier())

	stats, err := a.Statistics(context.Background(), "Hello world. Bye.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.WordCount != 3 || stats.SentenceCount != 2 || stats.CharacterCount != 15 {
		t.Errorf("unexpected statistics: %+v", stats)
	}
}

func TestAnalyseConcurrentUse(t *testing.T) {
	a := New(positiveClassifier())

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := a.Analyse(context.Background(), "Concurrent calls share nothing. Each gets its own result.")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}
}
