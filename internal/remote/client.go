package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"rentdesk/internal/domain"
	"rentdesk/internal/logger"
)

// maxErrorBody bounds how much of a failed response body ends up in errors.
const maxErrorBody = 512

// jsonClient issues JSON requests against one sibling service.
type jsonClient struct {
	service string
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func newJSONClient(service, baseURL string, timeout time.Duration, log *zap.Logger) jsonClient {
	return jsonClient{
		service: service,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     logger.OrNop(log).With(zap.String("upstream", service)),
	}
}

// do sends body (when non-nil) to path and decodes a 2xx answer into out.
// Transport failures yield a RemoteError with Status 0, non-2xx answers one
// carrying the status code.
func (c *jsonClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshaling request: %w", c.service, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: creating request: %w", c.service, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn("upstream unreachable", zap.String("path", path), zap.Error(err))
		return &domain.RemoteError{Service: c.service, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.RemoteError{Service: c.service, Err: fmt.Errorf("reading response: %w", err)}
	}

	c.log.Debug("upstream call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.RemoteError{
			Service: c.service,
			Status:  resp.StatusCode,
			Err:     errors.New(truncate(string(respBody), maxErrorBody)),
		}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &domain.RemoteError{
			Service: c.service,
			Status:  resp.StatusCode,
			Err:     fmt.Errorf("decoding response: %w", err),
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// rangeRequest is the body the contracts service expects for range queries.
type rangeRequest struct {
	Start string `json:"fechaInicio"`
	End   string `json:"fechaFin"`
}

func newRangeRequest(start, end time.Time) rangeRequest {
	return rangeRequest{Start: start.Format(dateLayout), End: end.Format(dateLayout)}
}
