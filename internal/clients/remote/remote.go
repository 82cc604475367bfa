package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// StatusError carries the HTTP status of a downstream rejection so the
// fallback layer can tell authoritative business errors (404, 409) from
// availability failures.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote returned %d: %s", e.Code, e.Body)
}

// IsBusiness reports whether err is an authoritative rejection that must
// propagate to the caller unchanged instead of degrading to a default.
func IsBusiness(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && (se.Code == http.StatusNotFound || se.Code == http.StatusConflict)
}

// Client is the shared HTTP base of every downstream accessor. It owns the
// per-call timeout and the retry budget; callers treat retry exhaustion the
// same as an immediate failure.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries uint64
}

func New(baseURL string, timeout time.Duration, maxRetries uint64) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
	}
}

func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, dest any) error {
	return c.do(ctx, func() error {
		u := c.baseURL + path
		if len(query) > 0 {
			u += "?" + query.Encode()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if err = checkStatus(resp); err != nil {
			return err
		}

		if dest == nil {
			return nil
		}
		if err = json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return backoff.Permanent(err)
		}

		return nil
	})
}

func (c *Client) PostJSON(ctx context.Context, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	return c.do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(string(payload)))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		return checkStatus(resp)
	})
}

func (c *Client) do(ctx context.Context, operation func() error) error {
	return backoff.Retry(
		operation,
		backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx),
	)
}

// IDs renders a batch-lookup key set as the shared "?ids=1,2,3" query.
func IDs(ids []int64) url.Values {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}

	return url.Values{"ids": []string{strings.Join(parts, ",")}}
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	statusErr := &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}

	// 5xx is worth the retry budget, everything else is final.
	if resp.StatusCode < http.StatusInternalServerError {
		return backoff.Permanent(statusErr)
	}

	return statusErr
}
