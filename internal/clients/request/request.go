package request

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"eventflow/internal/clients/remote"
	"eventflow/internal/lib/logger/sl"
)

type Counter interface {
	CountConfirmed(ctx context.Context, eventID int64) (int64, error)
	CountConfirmedBatch(ctx context.Context, eventIDs []int64) (map[int64]int64, error)
}

type Client struct {
	remote *remote.Client
}

func New(baseURL string, timeout time.Duration, maxRetries uint64) *Client {
	return &Client{remote: remote.New(baseURL, timeout, maxRetries)}
}

func (c *Client) CountConfirmed(ctx context.Context, eventID int64) (int64, error) {
	const op = "clients.request.CountConfirmed"

	query := url.Values{
		"eventId": []string{strconv.FormatInt(eventID, 10)},
		"status":  []string{"CONFIRMED"},
	}

	var count int64
	if err := c.remote.GetJSON(ctx, "/requests/count", query, &count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return count, nil
}

func (c *Client) CountConfirmedBatch(ctx context.Context, eventIDs []int64) (map[int64]int64, error) {
	const op = "clients.request.CountConfirmedBatch"

	if len(eventIDs) == 0 {
		return map[int64]int64{}, nil
	}

	counts := make(map[int64]int64, len(eventIDs))
	if err := c.remote.GetJSON(ctx, "/requests/count/confirmed", remote.IDs(eventIDs), &counts); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return counts, nil
}

// Fallback: an unreachable request counter means the event reads as having
// no confirmed participants. That keeps every listing and single-event read
// alive while the request service is down.
type Fallback struct {
	next Counter
	log  *slog.Logger
}

func NewFallback(next Counter, log *slog.Logger) *Fallback {
	return &Fallback{next: next, log: log}
}

func (f *Fallback) CountConfirmed(ctx context.Context, eventID int64) (int64, error) {
	count, err := f.next.CountConfirmed(ctx, eventID)
	if err == nil || remote.IsBusiness(err) {
		return count, err
	}

	f.log.Warn("request service unreachable, defaulting confirmed count to 0", sl.Err(err))

	return 0, nil
}

func (f *Fallback) CountConfirmedBatch(ctx context.Context, eventIDs []int64) (map[int64]int64, error) {
	counts, err := f.next.CountConfirmedBatch(ctx, eventIDs)
	if err == nil || remote.IsBusiness(err) {
		return counts, err
	}

	f.log.Warn("request service unreachable, defaulting confirmed counts to 0", sl.Err(err))

	zeroes := make(map[int64]int64, len(eventIDs))
	for _, id := range eventIDs {
		zeroes[id] = 0
	}

	return zeroes, nil
}
