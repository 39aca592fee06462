package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Import wait policy: a fixed-interval poll with a hard total budget.
const (
	DefaultImportPollInterval = 2 * time.Second
	DefaultImportMaxWait      = 300 * time.Second
)

// Operation is a long-running Gemini operation, as returned by the upload
// endpoint and the operation poll endpoint.
type Operation struct {
	Name  string          `json:"name"`
	Done  bool            `json:"done"`
	Error *OperationError `json:"error,omitempty"`
}

// OperationError is the server-side failure of a finished operation.
type OperationError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GetOperation fetches the current state of a long-running operation by its
// resource name.
func (c *Client) GetOperation(ctx context.Context, apiKey, name string) (*Operation, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		"GET",
		fmt.Sprintf("%s/v1beta/%s", c.BaseURL, name),
		nil,
	)
	if err != nil {
		return nil, err
	}

	req.Header.Set("x-goog-api-key", apiKey)

	res, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var op Operation
	err = json.Unmarshal(resBody, &op)
	if err != nil {
		return nil, err
	}

	return &op, nil
}

// WaitForImport polls op at pollInterval until it reports done, the maxWait
// budget is spent, or ctx is cancelled. Non-positive durations fall back to
// the defaults.
//
// It returns true only when the operation was confirmed done. Budget
// exhaustion and poll transport errors both return (false, nil): the import
// may still finish in the background, and the caller decides whether to
// proceed optimistically. Only ctx cancellation comes back as an error.
func (c *Client) WaitForImport(
	ctx context.Context,
	apiKey string,
	op *Operation,
	pollInterval time.Duration,
	maxWait time.Duration,
) (bool, error) {
	if op == nil {
		return false, nil
	}
	if op.Done {
		return true, nil
	}
	if pollInterval <= 0 {
		pollInterval = DefaultImportPollInterval
	}
	if maxWait <= 0 {
		maxWait = DefaultImportMaxWait
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	budget := time.NewTimer(maxWait)
	defer budget.Stop()

	current := op
	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-budget.C:
			return false, nil
		case <-ticker.C:
			refreshed, err := c.GetOperation(ctx, apiKey, current.Name)
			if err != nil {
				if ctx.Err() != nil {
					return false, ctx.Err()
				}
				// polling stops on the first failed poll; the server may
				// still complete the import on its own
				return false, nil
			}
			current = refreshed
			if current.Done {
				return true, nil
			}
		}
	}
}
