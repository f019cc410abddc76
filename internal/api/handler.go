package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/zombar/textsense/internal/analyzer"
	"github.com/zombar/textsense/internal/metrics"
	"github.com/zombar/textsense/internal/models"
	"github.com/zombar/textsense/pkg/logging"
)

const (
	// MaxTextLength is the longest accepted text, in characters
	MaxTextLength = 300

	maxBodyBytes = 64 << 10
)

// Config configures the HTTP layer
type Config struct {
	// RateLimitRPS limits analysis requests per second across all clients.
	// Zero disables rate limiting.
	RateLimitRPS   float64
	RateLimitBurst int
	AllowedOrigins []string
}

// Handler handles HTTP requests
type Handler struct {
	analyzer *analyzer.Analyzer
	validate *validator.Validate
	metrics  *metrics.Collector
	logger   *slog.Logger
	limiter  *rate.Limiter
	router   chi.Router
}

type analyseRequest struct {
	Text string `json:"text" validate:"notblank,max=300"`
}

type keywordsRequest struct {
	Text          string   `json:"text" validate:"notblank,max=300"`
	MaxKeywords   *int     `json:"maxKeywords"`
	StopWords     []string `json:"stopWords" validate:"max=100,dive,max=50"`
	WithFrequency bool     `json:"withFrequency"`
}

// NewHandler creates a new API handler with CORS support and metrics
func NewHandler(a *analyzer.Analyzer, cfg Config, collector *metrics.Collector, logger *slog.Logger) http.Handler {
	h := newHandler(a, cfg, collector, logger)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{logging.RequestIDHeader},
	})

	return c.Handler(h.router)
}

func newHandler(a *analyzer.Analyzer, cfg Config, collector *metrics.Collector, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	h := &Handler{
		analyzer: a,
		validate: newValidator(),
		metrics:  collector,
		logger:   logger,
	}
	if cfg.RateLimitRPS > 0 {
		burst := cfg.RateLimitBurst
		if burst < 1 {
			burst = 1
		}
		h.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), burst)
	}

	h.setupRoutes()
	return h
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// setupRoutes configures all API routes
func (h *Handler) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.instrument)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", h.handleHealth)
	r.Get("/api/stopwords", h.handleStopWords)

	r.Group(func(r chi.Router) {
		r.Use(h.rateLimit)

		r.Get("/analyse", h.handleAnalyse)
		r.Post("/analyse", h.handleAnalyse)
		r.Post("/api/analyse", h.handleAnalyse)
		r.Post("/api/keywords", h.handleKeywords)
		r.Post("/api/statistics", h.handleStatistics)
	})

	h.router = r
}

// instrument records request metrics by route pattern
func (h *Handler) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		h.metrics.ObserveHTTP(r.Method, route, status, time.Since(start))
	})
}

// rateLimit rejects requests beyond the configured rate with 429
func (h *Handler) rateLimit(next http.Handler) http.Handler {
	if h.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.limiter.Allow() {
			respondError(w, "Rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth handles health check requests
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleAnalyse runs the full analysis of a text
func (h *Handler) handleAnalyse(w http.ResponseWriter, r *http.Request) {
	var req analyseRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.analyzer.Analyse(r.Context(), req.Text)
	if err != nil {
		h.respondAnalysisError(w, r, err)
		return
	}

	respondJSON(w, result, http.StatusOK)
}

// handleKeywords extracts keywords, optionally with their counts
func (h *Handler) handleKeywords(w http.ResponseWriter, r *http.Request) {
	var req keywordsRequest
	if !h.decode(w, r, &req) {
		return
	}

	maxKeywords := analyzer.DefaultMaxKeywords
	if req.MaxKeywords != nil {
		maxKeywords = *req.MaxKeywords
	}

	ranked, err := h.analyzer.Keywords(r.Context(), req.Text, maxKeywords, req.StopWords)
	if err != nil {
		h.respondAnalysisError(w, r, err)
		return
	}

	if req.WithFrequency {
		respondJSON(w, map[string]interface{}{"keywords": ranked}, http.StatusOK)
		return
	}

	keywords := make([]string, len(ranked))
	for i, wf := range ranked {
		keywords[i] = wf.Word
	}
	respondJSON(w, map[string]interface{}{"keywords": keywords}, http.StatusOK)
}

// handleStatistics returns the text statistics only
func (h *Handler) handleStatistics(w http.ResponseWriter, r *http.Request) {
	var req analyseRequest
	if !h.decode(w, r, &req) {
		return
	}

	stats, err := h.analyzer.Statistics(r.Context(), req.Text)
	if err != nil {
		h.respondAnalysisError(w, r, err)
		return
	}

	respondJSON(w, stats, http.StatusOK)
}

// handleStopWords lists the base stop words
func (h *Handler) handleStopWords(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]interface{}{
		"stopWords": h.analyzer.StopWords().Words(),
	}, http.StatusOK)
}

// decode reads and validates a JSON request body into dst. It writes the
// error response and returns false when the body is unusable.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return false
		}
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		respondError(w, formatValidationError(err), http.StatusBadRequest)
		return false
	}
	return true
}

// respondAnalysisError maps analysis errors to HTTP statuses
func (h *Handler) respondAnalysisError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logging.HTTPErrorLogger(h.logger, status, err, r)
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Analysis failed"
	}
	respondError(w, message, status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrSentimentUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// formatValidationError formats validation errors into readable messages
func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatFieldError(e))
	}
	return strings.Join(messages, "; ")
}

// formatFieldError formats a single field validation error
func formatFieldError(e validator.FieldError) string {
	field := e.Field()

	switch e.Tag() {
	case "notblank":
		return fmt.Sprintf("%s must not be blank", field)
	case "max":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at most %s entries", field, e.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}
