package comment

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"eventflow/internal/clients/remote"
	"eventflow/internal/lib/logger/sl"
	"eventflow/internal/models"
)

// Lister returns an event's non-deleted comments, newest first. Ordering
// and soft-delete filtering belong to the comment service.
type Lister interface {
	GetCommentsForEvent(ctx context.Context, eventID int64) ([]models.Comment, error)
}

type Client struct {
	remote *remote.Client
}

func New(baseURL string, timeout time.Duration, maxRetries uint64) *Client {
	return &Client{remote: remote.New(baseURL, timeout, maxRetries)}
}

func (c *Client) GetCommentsForEvent(ctx context.Context, eventID int64) ([]models.Comment, error) {
	const op = "clients.comment.GetCommentsForEvent"

	var comments []models.Comment
	if err := c.remote.GetJSON(ctx, "/comments/events/"+strconv.FormatInt(eventID, 10), nil, &comments); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return comments, nil
}

// Fallback: comments degrade silently to an empty list.
type Fallback struct {
	next Lister
	log  *slog.Logger
}

func NewFallback(next Lister, log *slog.Logger) *Fallback {
	return &Fallback{next: next, log: log}
}

func (f *Fallback) GetCommentsForEvent(ctx context.Context, eventID int64) ([]models.Comment, error) {
	comments, err := f.next.GetCommentsForEvent(ctx, eventID)
	if err == nil || remote.IsBusiness(err) {
		return comments, err
	}

	f.log.Warn("comment service unreachable, returning no comments", sl.Err(err))

	return []models.Comment{}, nil
}
