package event

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"eventflow/internal/clients/remote"
	"eventflow/internal/lib/logger/sl"
	"eventflow/internal/models"
)

// Accessor is the event client the other services of the system consume,
// e.g. the category service checking whether a category is still
// referenced before deleting it.
type Accessor interface {
	GetEventByID(ctx context.Context, id int64) (*models.EventFull, error)
	ExistsByCategory(ctx context.Context, categoryID int64) (bool, error)
	GetEventsByIDs(ctx context.Context, ids []int64) ([]models.EventShort, error)
}

type Client struct {
	remote *remote.Client
}

func New(baseURL string, timeout time.Duration, maxRetries uint64) *Client {
	return &Client{remote: remote.New(baseURL, timeout, maxRetries)}
}

func (c *Client) GetEventByID(ctx context.Context, id int64) (*models.EventFull, error) {
	const op = "clients.event.GetEventByID"

	var event models.EventFull
	if err := c.remote.GetJSON(ctx, "/events/"+strconv.FormatInt(id, 10), nil, &event); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &event, nil
}

func (c *Client) ExistsByCategory(ctx context.Context, categoryID int64) (bool, error) {
	const op = "clients.event.ExistsByCategory"

	var exists bool
	path := "/events/category/" + strconv.FormatInt(categoryID, 10) + "/exists"
	if err := c.remote.GetJSON(ctx, path, url.Values{}, &exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

func (c *Client) GetEventsByIDs(ctx context.Context, ids []int64) ([]models.EventShort, error) {
	const op = "clients.event.GetEventsByIDs"

	if len(ids) == 0 {
		return []models.EventShort{}, nil
	}

	var events []models.EventShort
	if err := c.remote.GetJSON(ctx, "/events/by-ids", remote.IDs(ids), &events); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}

// Fallback: event lookups degrade to empty values so consumers like the
// category deletion check never block on this service being down.
type Fallback struct {
	next Accessor
	log  *slog.Logger
}

func NewFallback(next Accessor, log *slog.Logger) *Fallback {
	return &Fallback{next: next, log: log}
}

func (f *Fallback) GetEventByID(ctx context.Context, id int64) (*models.EventFull, error) {
	event, err := f.next.GetEventByID(ctx, id)
	if err == nil || remote.IsBusiness(err) {
		return event, err
	}

	f.log.Warn("event service unreachable, returning empty event", sl.Err(err))

	return &models.EventFull{}, nil
}

func (f *Fallback) ExistsByCategory(ctx context.Context, categoryID int64) (bool, error) {
	exists, err := f.next.ExistsByCategory(ctx, categoryID)
	if err == nil || remote.IsBusiness(err) {
		return exists, err
	}

	f.log.Warn("event service unreachable, assuming no events in category", sl.Err(err))

	return false, nil
}

func (f *Fallback) GetEventsByIDs(ctx context.Context, ids []int64) ([]models.EventShort, error) {
	events, err := f.next.GetEventsByIDs(ctx, ids)
	if err == nil || remote.IsBusiness(err) {
		return events, err
	}

	f.log.Warn("event service unreachable, returning no events", sl.Err(err))

	return []models.EventShort{}, nil
}
