// Package batch talks to the external computation engine that derives
// analytics for a committed portfolio. The engine owns its own retries and
// provider fallbacks; this client only reports the terminal outcome.
package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	ErrBatchFailed  = errors.New("batch computation failed")
	ErrBatchTimeout = errors.New("batch computation timed out")
)

// Runner triggers one synchronous batch computation. Implementations must
// respect the context deadline and return ErrBatchTimeout when it lapses.
type Runner interface {
	Run(ctx context.Context, userID uint, portfolioID uint) error
}

type triggerRequest struct {
	UserID      uint `json:"user_id"`
	PortfolioID uint `json:"portfolio_id"`
}

// HTTPRunner invokes the batch engine over its HTTP trigger endpoint.
type HTTPRunner struct {
	endpoint string
	client   *http.Client
}

func NewHTTPRunner(endpoint string, requestTimeout time.Duration) *HTTPRunner {
	return &HTTPRunner{
		endpoint: endpoint,
		client:   &http.Client{Timeout: requestTimeout},
	}
}

func (runner *HTTPRunner) Run(ctx context.Context, userID uint, portfolioID uint) error {
	payload, err := json.Marshal(triggerRequest{UserID: userID, PortfolioID: portfolioID})
	if err != nil {
		return fmt.Errorf("encode batch trigger: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, runner.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build batch trigger: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := runner.client.Do(request)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ErrBatchTimeout
		}
		return ErrBatchFailed
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return ErrBatchFailed
	}
	return nil
}
