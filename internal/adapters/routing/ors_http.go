package routing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// Route lookups sit behind the estimator's own timeout and fallback, so
// the retry budget here is deliberately small.
const (
	maxRouteAttempts = 3
	initialBackoff   = 200 * time.Millisecond
)

// orsAPIError carries a non-2xx response so the retry loop can tell
// transient statuses from hard rejections.
type orsAPIError struct {
	Status int
	Body   string
}

func (e *orsAPIError) Error() string {
	return fmt.Sprintf("ors api status %d: %s", e.Status, e.Body)
}

// postWithRetry sends the JSON payload to the given ORS endpoint,
// retrying transient failures with exponential backoff. The request is
// rebuilt per attempt from the same payload bytes; context cancellation
// wins over any remaining attempts.
func (o *ORSRouteProvider) postWithRetry(ctx context.Context, url string, payload []byte) (*http.Response, error) {
	backoff := initialBackoff
	var lastErr error

	for attempt := 1; attempt <= maxRouteAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := o.post(ctx, url, payload)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err) || attempt == maxRouteAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}

	return nil, lastErr
}

func (o *ORSRouteProvider) post(ctx context.Context, url string, payload []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", o.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &orsAPIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	return resp, nil
}

// Rate limiting and server-side failures are worth another attempt;
// client errors are not.
func retryable(err error) bool {
	var ae *orsAPIError
	if errors.As(err, &ae) {
		switch ae.Status {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
