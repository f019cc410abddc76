package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New("textsense", reg)

	c.RecordAnalysis(OutcomeSuccess)
	c.RecordAnalysis(OutcomeSuccess)
	c.RecordAnalysis(OutcomeInvalidInput)
	c.RecordSentiment("Positive")
	c.ObserveKeywords(4)
	c.ObserveStage("keywords", 3*time.Millisecond)
	c.ObserveHTTP("POST", "/api/analyse", 200, 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.AnalysesTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.AnalysesTotal.WithLabelValues(OutcomeInvalidInput)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.SentimentLabels.WithLabelValues("Positive")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("POST", "/api/analyse", "200")))

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, expected := range []string{
		"textsense_analyses_total",
		"textsense_analysis_stage_duration_seconds",
		"textsense_sentiment_labels_total",
		"textsense_keywords_extracted",
		"textsense_http_requests_total",
		"textsense_http_request_duration_seconds",
	} {
		assert.True(t, names[expected], "expected metric %s", expected)
	}
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector

	assert.NotPanics(t, func() {
		c.RecordAnalysis(OutcomeFailure)
		c.RecordSentiment("Neutral")
		c.ObserveKeywords(1)
		c.ObserveStage("statistics", time.Millisecond)
		c.ObserveHTTP("GET", "/health", 200, time.Millisecond)
	})
}
