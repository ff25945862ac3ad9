package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/andray-nkhatel/meeting-room-frontend/config"
	"github.com/andray-nkhatel/meeting-room-frontend/pkg/apperrors"
	"github.com/andray-nkhatel/meeting-room-frontend/pkg/logger"
	"github.com/andray-nkhatel/meeting-room-frontend/pkg/metrics"
	"go.uber.org/zap"
)

const maxErrorBodyBytes = 8 * 1024

// Client is the typed client for the remote booking API. It must be
// constructed once and shared by every caller, since the authenticating
// interceptor is attached to the transport at construction. The client never
// retries; failures surface to the caller as-is.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds the shared API client.
func NewClient(cfg config.UpstreamConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		http: &http.Client{
			Timeout:   timeout,
			Transport: newAuthTransport(nil),
		},
	}
}

// get performs a GET request and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, operation, path string, query url.Values, out any) error {
	return c.send(ctx, operation, http.MethodGet, path, query, nil, out)
}

// send performs one round-trip against the upstream API, mapping non-2xx
// statuses onto the error taxonomy and recording metrics per operation.
func (c *Client) send(ctx context.Context, operation, method, path string, query url.Values, body, out any) error {
	start := time.Now()
	err := c.do(ctx, method, path, query, body, out)
	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.UpstreamRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.UpstreamRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.LogAPICall(ctx, "booking-api", operation, "error", duration, zap.Error(err))
		return err
	}

	metrics.UpstreamRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.UpstreamRequestTotal.WithLabelValues(operation, "success").Inc()
	logger.LogAPICall(ctx, "booking-api", operation, "success", duration)
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// A 401 intercepted by the transport arrives here wrapped in
		// *url.Error; unwrapping via errors.Is still matches the sentinel.
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return apperrors.NewUpstreamError(resp.StatusCode, string(bytes.TrimSpace(message)))
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
