// Package oracle is the client for the external AI reasoning service. The
// service is a black box: it receives pet intake data and returns a ranked
// differential diagnosis, and separately returns veterinary detail for a
// single diagnosis.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mkotula/petscope/pkg/models"
	"golang.org/x/time/rate"
)

// ErrModelUnavailable signals that the upstream model is temporarily down
// (HTTP 503 or an equivalent upstream error). Callers map it to a friendlier
// message than a generic failure.
var ErrModelUnavailable = errors.New("model temporarily unavailable")

// ErrBadResponse signals that the model's reply could not be parsed as the
// expected JSON contract.
var ErrBadResponse = errors.New("unparseable model response")

// Disclaimer accompanies every diagnosis result.
const Disclaimer = "This is not veterinary advice. Please consult a licensed veterinarian for accurate diagnosis and treatment."

const (
	defaultBaseURL     = "https://openrouter.ai/api/v1"
	defaultModel       = "meta-llama/llama-3.3-8b-instruct:free"
	defaultTemperature = 0.15
	defaultMaxAttempts = 2
	detailCacheSize    = 128
)

// Config holds oracle client settings.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	// MaxAttempts bounds transport-level retries per call.
	MaxAttempts int
	// RequestsPerMinute throttles outgoing calls; 0 disables throttling.
	RequestsPerMinute int
}

// Client calls the chat-completions endpoint of the reasoning service. It is
// safe for concurrent use.
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	maxAttempts int
	httpClient  *http.Client
	limiter     *rate.Limiter
	details     *detailCache
	backoff     func(attempt int) time.Duration
}

// NewClient creates an oracle client, filling in defaults for unset fields.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 1)
	}

	return &Client{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxAttempts: cfg.MaxAttempts,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		limiter:     limiter,
		details:     newDetailCache(detailCacheSize),
		backoff:     backoffDelay,
	}
}

// Configured reports whether an API key is set. An unconfigured client cannot
// serve diagnoses; the health endpoint surfaces this.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Diagnose submits the collected intake responses and returns the ranked
// differential diagnosis.
func (c *Client) Diagnose(ctx context.Context, responses map[string]string) (*models.DiagnosisResult, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("%w: no API key configured", ErrModelUnavailable)
	}

	content, err := c.complete(ctx, diagnosisPrompt(responses))
	if err != nil {
		return nil, err
	}

	result, err := decodeDiagnosis(content)
	if err != nil {
		return nil, err
	}
	result.Disclaimer = Disclaimer
	return result, nil
}

// VeterinaryDetails fetches supplementary detail for a single diagnosis.
// Results are cached per diagnosis/species/breed.
func (c *Client) VeterinaryDetails(ctx context.Context, diagnosis, species, breed string) (*models.VeterinaryDetail, error) {
	if diagnosis == "" {
		return nil, fmt.Errorf("diagnosis is required")
	}
	if !c.Configured() {
		return nil, fmt.Errorf("%w: no API key configured", ErrModelUnavailable)
	}
	if species == "" {
		species = "Unknown"
	}
	if breed == "" {
		breed = "Mixed"
	}

	key := detailKey(diagnosis, species, breed)
	if cached, ok := c.details.get(key); ok {
		return cached, nil
	}

	content, err := c.complete(ctx, detailsPrompt(diagnosis, species, breed))
	if err != nil {
		return nil, err
	}

	detail, err := decodeDetail(content)
	if err != nil {
		return nil, err
	}
	c.details.put(key, detail)
	return detail, nil
}

// Chat-completions wire types.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *chatError   `json:"error,omitempty"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// complete sends a single-turn prompt, retrying on transport errors and 5xx
// with exponential backoff. A 503 maps to ErrModelUnavailable.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			wait := c.backoff(attempt)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(wait):
			}
		}

		content, retryable, err := c.completeOnce(ctx, prompt)
		if err == nil {
			return content, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}
	}

	return "", lastErr
}

func (c *Client) completeOnce(ctx context.Context, prompt string) (content string, retryable bool, err error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", false, err
	}

	reqBody := chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.temperature,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", false, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusServiceUnavailable:
		return "", false, fmt.Errorf("%w: %s", ErrModelUnavailable, strings.TrimSpace(string(body)))
	case resp.StatusCode >= 500:
		return "", true, fmt.Errorf("oracle API error (%d): %s", resp.StatusCode, string(body))
	case resp.StatusCode != http.StatusOK:
		return "", false, fmt.Errorf("oracle API error (%d): %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", false, fmt.Errorf("failed to parse response: %w", err)
	}
	if chatResp.Error != nil {
		return "", false, fmt.Errorf("oracle API error (%d): %s", chatResp.Error.Code, chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", false, fmt.Errorf("%w: no response choices", ErrBadResponse)
	}

	return chatResp.Choices[0].Message.Content, false, nil
}

// backoffDelay grows exponentially from 2s and caps at 5s, matching the
// original service's retry policy.
func backoffDelay(attempt int) time.Duration {
	delay := 2 * time.Second << (attempt - 2)
	if delay > 5*time.Second {
		delay = 5 * time.Second
	}
	return delay
}
