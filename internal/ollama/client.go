package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/zombar/textsense/internal/models"
)

const (
	DefaultURL     = "http://localhost:11434"
	DefaultModel   = "gpt-oss:20b"
	DefaultTimeout = 360 * time.Second
)

// Client classifies sentiment with a model served by Ollama
type Client struct {
	client     *api.Client
	httpClient *http.Client
	model      string
	timeout    time.Duration
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithTimeout bounds every generation request
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithHTTPClient replaces the HTTP client used to reach Ollama
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a new Ollama client
func New(ollamaURL, model string, opts ...Option) (*Client, error) {
	if ollamaURL == "" {
		ollamaURL = DefaultURL
	}
	if model == "" {
		model = DefaultModel
	}

	baseURL, err := url.Parse(ollamaURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}

	c := &Client{
		httpClient: http.DefaultClient,
		model:      model,
		timeout:    DefaultTimeout,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.client = api.NewClient(baseURL, c.httpClient)
	return c, nil
}

// Model returns the model name used for generation
func (c *Client) Model() string {
	return c.model
}

// Initialize checks that the Ollama server is reachable and that the
// configured model is installed
func (c *Client) Initialize(ctx context.Context) error {
	if err := c.client.Heartbeat(ctx); err != nil {
		return fmt.Errorf("%w: ollama unreachable: %v", models.ErrSentimentUnavailable, err)
	}
	if _, err := c.client.Show(ctx, &api.ShowRequest{Model: c.model}); err != nil {
		return fmt.Errorf("%w: model %s not available: %v", models.ErrSentimentUnavailable, c.model, err)
	}

	c.logger.Info("ollama sentiment classifier ready", "model", c.model)
	return nil
}

// Shutdown releases nothing; the underlying HTTP client is shared
func (c *Client) Shutdown(ctx context.Context) error {
	return nil
}

// GenerateResponse generates a response from the LLM
func (c *Client) GenerateResponse(ctx context.Context, prompt string) (string, error) {
	c.logger.Debug("ollama request", "model", c.model, "timeout", c.timeout.String())

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := &api.GenerateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: new(bool), // false
		Format: json.RawMessage(`"json"`),
	}

	var response strings.Builder
	err := c.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		response.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		c.logger.Warn("ollama generation failed", "model", c.model, "error", err)
		return "", fmt.Errorf("generation failed: %w", err)
	}

	result := strings.TrimSpace(response.String())
	c.logger.Debug("ollama response received", "chars", len(result))
	return result, nil
}

// ClassifySentiment asks the model for a 0-4 sentiment score of text
func (c *Client) ClassifySentiment(ctx context.Context, text string) (models.SentimentResult, error) {
	if strings.TrimSpace(text) == "" {
		return models.SentimentResult{}, fmt.Errorf("%w: text must not be blank", models.ErrInvalidInput)
	}

	prompt := fmt.Sprintf(`Classify the overall sentiment of the following text on a five point scale:

0 = Very Negative
1 = Negative
2 = Neutral
3 = Positive
4 = Very Positive

Return ONLY a JSON object of the form {"score": <0-4>, "label": "<label>"}, nothing else.

Text:
%s`, text)

	response, err := c.GenerateResponse(ctx, prompt)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return models.SentimentResult{}, err
		}
		return models.SentimentResult{}, fmt.Errorf("%w: %v", models.ErrSentimentUnavailable, err)
	}

	score, err := parseSentimentScore(response)
	if err != nil {
		return models.SentimentResult{}, fmt.Errorf("%w: %v", models.ErrAnalysisFailure, err)
	}
	return models.NewSentimentResult(score)
}

// sentimentAnswer is the JSON object the model is asked to return
type sentimentAnswer struct {
	Score *int   `json:"score"`
	Label string `json:"label"`
}

// parseSentimentScore extracts the score from the model's answer. The label
// is used only when the score is missing.
func parseSentimentScore(response string) (int, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start < 0 || end <= start {
		return 0, fmt.Errorf("no JSON object found in response")
	}

	var answer sentimentAnswer
	if err := json.Unmarshal([]byte(response[start:end+1]), &answer); err != nil {
		return 0, fmt.Errorf("failed to parse sentiment JSON: %w", err)
	}

	if answer.Score != nil {
		if _, ok := models.LabelFromScore(*answer.Score); !ok {
			return 0, fmt.Errorf("score %d out of range", *answer.Score)
		}
		return *answer.Score, nil
	}

	label, ok := models.ParseLabel(answer.Label)
	if !ok {
		return 0, fmt.Errorf("no usable score or label in response")
	}
	return label.Score(), nil
}
