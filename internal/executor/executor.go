package executor

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

	"go.uber.org/zap"

	"github.com/studiowebux/metawrite/internal/config"
	"github.com/studiowebux/metawrite/internal/types"
)

// GeneratePath is the service route for article generation
const GeneratePath = "/generate_article"

// ErrMalformedResponse is wrapped when a success response cannot be decoded
var ErrMalformedResponse = errors.New("malformed response")

// APIError is returned for non-2xx responses
type APIError struct {
	StatusCode int
	Detail     string
	Body       string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("generation service returned %d", e.StatusCode)
}

// Config configures a Client
type Config struct {
	Endpoint  string
	Timeout   time.Duration
	UserAgent string
}

// Client talks to the article-generation service
type Client struct {
	endpoint  string
	userAgent string
	client    *http.Client
	logger    *zap.Logger
}

// New creates a Client. A zero Timeout means no timeout and an empty
// Endpoint means config.DefaultEndpoint.
func New(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = config.DefaultEndpoint
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "metawrite"
	}

	return &Client{
		endpoint:  strings.TrimRight(cfg.Endpoint, "/"),
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: cfg.Timeout},
		logger:    logger,
	}
}

// Endpoint returns the base address requests are sent to
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Generate asks the service for an article about query.
// The query is forwarded verbatim, including the empty string.
func (c *Client) Generate(ctx context.Context, query string) (*types.Article, error) {
	startTime := time.Now()

	body, err := json.Marshal(types.GenerateRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+GeneratePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("sending generation request",
		zap.String("url", httpReq.URL.String()),
		zap.Int("query_len", len(query)))

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Warn("generation request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.Info("generation response",
		zap.Int("status", resp.StatusCode),
		zap.Int("size", len(respBody)),
		zap.String("duration", FormatDuration(time.Since(startTime).Milliseconds())))

	if !IsSuccessStatus(resp.StatusCode) {
		return nil, newAPIError(resp.StatusCode, respBody)
	}

	var article types.Article
	if err := json.Unmarshal(respBody, &article); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return &article, nil
}

// newAPIError builds an APIError, extracting detail when the body is JSON
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Body:       string(body),
	}

	var payload types.ErrorPayload
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Detail = payload.Message()
	}

	return apiErr
}

// FormatDuration formats duration in milliseconds to human-readable string
func FormatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	seconds := float64(ms) / 1000.0
	return fmt.Sprintf("%.2fs", seconds)
}

// IsSuccessStatus returns true if status code is 2xx
func IsSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}
