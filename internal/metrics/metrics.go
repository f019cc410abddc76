package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis outcomes recorded by RecordAnalysis
const (
	OutcomeSuccess              = "success"
	OutcomeInvalidInput         = "invalid_input"
	OutcomeSentimentUnavailable = "sentiment_unavailable"
	OutcomeFailure              = "failure"
)

// Collector holds the Prometheus metrics of the service.
// All recording methods are safe to call on a nil *Collector.
type Collector struct {
	// Analysis metrics
	AnalysesTotal     *prometheus.CounterVec
	StageDuration     *prometheus.HistogramVec
	SentimentLabels   *prometheus.CounterVec
	KeywordsExtracted prometheus.Histogram

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates the collector and registers its metrics with reg
func New(namespace string, reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		AnalysesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "analyses_total",
				Help:      "Total number of text analyses by outcome",
			},
			[]string{"outcome"},
		),
		StageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "analysis_stage_duration_seconds",
				Help:      "Duration of each analysis stage",
				Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5, 30, 120},
			},
			[]string{"stage"},
		),
		SentimentLabels: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sentiment_labels_total",
				Help:      "Sentiment classifications by label",
			},
			[]string{"label"},
		),
		KeywordsExtracted: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "keywords_extracted",
				Help:      "Number of keywords returned per analysis",
				Buckets:   prometheus.LinearBuckets(0, 2, 11),
			},
		),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// ObserveStage records how long one analysis stage took
func (c *Collector) ObserveStage(stage string, d time.Duration) {
	if c == nil {
		return
	}
	c.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordAnalysis counts a finished analysis
func (c *Collector) RecordAnalysis(outcome string) {
	if c == nil {
		return
	}
	c.AnalysesTotal.WithLabelValues(outcome).Inc()
}

// RecordSentiment counts a sentiment label
func (c *Collector) RecordSentiment(label string) {
	if c == nil {
		return
	}
	c.SentimentLabels.WithLabelValues(label).Inc()
}

// ObserveKeywords records the size of a keyword list
func (c *Collector) ObserveKeywords(n int) {
	if c == nil {
		return
	}
	c.KeywordsExtracted.Observe(float64(n))
}

// ObserveHTTP records one served request
func (c *Collector) ObserveHTTP(method, route string, status int, d time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
