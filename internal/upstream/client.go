package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retail-kit/backoffice-console/internal/config"
)

const maxBodyBytes = 1 << 20

// RejectionError is an explicit refusal from the platform API: a response
// was received and it said no. Message is the upstream's own text, verbatim.
type RejectionError struct {
	Status  int
	Message string
}

func (e *RejectionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream rejected (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("upstream rejected (%d)", e.Status)
}

// TransportError is a network-level failure: no usable response arrived.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("upstream unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client talks to the retail platform API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient builds a platform API client.
func NewClient(cfg config.UpstreamConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout()},
		logger:  logger,
	}
}

// do issues a request and decodes the enveloped response into out.
// Non-2xx statuses become RejectionError; network failures TransportError.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("upstream request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &TransportError{Err: err}
	}

	c.logger.Debug("upstream request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RejectionError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}
	return decodeEnvelope(raw, resp.StatusCode, out)
}

// Ping checks upstream reachability via the platform health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health/live", "", nil, nil)
}
