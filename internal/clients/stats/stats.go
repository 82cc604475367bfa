package stats

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

const timeLayout = "2006-01-02 15:04:05"

// statsEpoch bounds the view-count query from below; hits older than the
// system itself do not exist.
var statsEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Hit is one recorded access event.
type Hit struct {
	App       string    `json:"app"`
	URI       string    `json:"uri"`
	IP        string    `json:"ip"`
	Timestamp time.Time `json:"timestamp"`
}

type viewStats struct {
	App  string `json:"app"`
	URI  string `json:"uri"`
	Hits int64  `json:"hits"`
}

// EventPath is the resource path a public event read is recorded under and
// view counts are keyed by.
func EventPath(eventID int64) string {
	return "/events/" + strconv.FormatInt(eventID, 10)
}

type Accessor interface {
	RecordHit(ctx context.Context, hit Hit) error
	GetViewCounts(ctx context.Context, paths []string) (map[string]int64, error)
	GetViewCount(ctx context.Context, eventID int64) (int64, error)
}

type Client struct {
	remote *remote.Client
}

func New(baseURL string, timeout time.Duration, maxRetries uint64) *Client {
	return &Client{remote: remote.New(baseURL, timeout, maxRetries)}
}

func (c *Client) RecordHit(ctx context.Context, hit Hit) error {
	const op = "clients.stats.RecordHit"

	if err := c.remote.PostJSON(ctx, "/hit", hit); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (c *Client) GetViewCounts(ctx context.Context, paths []string) (map[string]int64, error) {
	const op = "clients.stats.GetViewCounts"

	if len(paths) == 0 {
		return map[string]int64{}, nil
	}

	query := url.Values{
		"start":  []string{statsEpoch.Format(timeLayout)},
		"end":    []string{time.Now().Format(timeLayout)},
		"uris":   paths,
		"unique": []string{"true"},
	}

	var stats []viewStats
	if err := c.remote.GetJSON(ctx, "/stats", query, &stats); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	counts := make(map[string]int64, len(stats))
	for _, s := range stats {
		counts[s.URI] = s.Hits
	}

	return counts, nil
}

func (c *Client) GetViewCount(ctx context.Context, eventID int64) (int64, error) {
	const op = "clients.stats.GetViewCount"

	path := EventPath(eventID)

	counts, err := c.GetViewCounts(ctx, []string{path})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return counts[path], nil
}

// Fallback: the statistics service is never load-bearing. Hit recording is
// best-effort, view counts degrade to zero.
type Fallback struct {
	next Accessor
	log  *slog.Logger
}

func NewFallback(next Accessor, log *slog.Logger) *Fallback {
	return &Fallback{next: next, log: log}
}

func (f *Fallback) RecordHit(ctx context.Context, hit Hit) error {
	err := f.next.RecordHit(ctx, hit)
	if err == nil || remote.IsBusiness(err) {
		return err
	}

	f.log.Warn("stats service unreachable, hit dropped", sl.Err(err))

	return nil
}

func (f *Fallback) GetViewCounts(ctx context.Context, paths []string) (map[string]int64, error) {
	counts, err := f.next.GetViewCounts(ctx, paths)
	if err == nil || remote.IsBusiness(err) {
		return counts, err
	}

	f.log.Warn("stats service unreachable, defaulting views to 0", sl.Err(err))

	return map[string]int64{}, nil
}

func (f *Fallback) GetViewCount(ctx context.Context, eventID int64) (int64, error) {
	count, err := f.next.GetViewCount(ctx, eventID)
	if err == nil || remote.IsBusiness(err) {
		return count, err
	}

	f.log.Warn("stats service unreachable, defaulting views to 0", sl.Err(err))

	return 0, nil
}
