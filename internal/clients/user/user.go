package user

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"eventflow/internal/clients/remote"
	"eventflow/internal/domain"
	"eventflow/internal/lib/logger/sl"
	"eventflow/internal/models"
)

// PlaceholderName stands in for an author whose identity the user service
// could not supply. Comments still render with it; nothing else does.
const PlaceholderName = "Unknown"

type Getter interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserName(ctx context.Context, id int64) (string, error)
	GetUsersByIDs(ctx context.Context, ids []int64) (map[int64]models.User, error)
}

type Client struct {
	remote *remote.Client
}

func New(baseURL string, timeout time.Duration, maxRetries uint64) *Client {
	return &Client{remote: remote.New(baseURL, timeout, maxRetries)}
}

func (c *Client) GetUser(ctx context.Context, id int64) (*models.User, error) {
	const op = "clients.user.GetUser"

	var u models.User
	if err := c.remote.GetJSON(ctx, "/users/"+strconv.FormatInt(id, 10), nil, &u); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &u, nil
}

func (c *Client) GetUserName(ctx context.Context, id int64) (string, error) {
	const op = "clients.user.GetUserName"

	var name string
	if err := c.remote.GetJSON(ctx, "/users/"+strconv.FormatInt(id, 10)+"/name", nil, &name); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return name, nil
}

func (c *Client) GetUsersByIDs(ctx context.Context, ids []int64) (map[int64]models.User, error) {
	const op = "clients.user.GetUsersByIDs"

	if len(ids) == 0 {
		return map[int64]models.User{}, nil
	}

	users := make(map[int64]models.User, len(ids))
	if err := c.remote.GetJSON(ctx, "/users/by-ids", remote.IDs(ids), &users); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return users, nil
}

// Fallback: identity lookups have no safe default, so availability failures
// surface as ErrUnavailable. The name lookup is the one exception - it
// degrades to PlaceholderName so comment rendering never blocks on the
// user service.
type Fallback struct {
	next Getter
	log  *slog.Logger
}

func NewFallback(next Getter, log *slog.Logger) *Fallback {
	return &Fallback{next: next, log: log}
}

func (f *Fallback) GetUser(ctx context.Context, id int64) (*models.User, error) {
	u, err := f.next.GetUser(ctx, id)
	if err == nil || remote.IsBusiness(err) {
		return u, err
	}

	f.log.Warn("user service unreachable", sl.Err(err))

	return nil, domain.Unavailable("user service")
}

func (f *Fallback) GetUserName(ctx context.Context, id int64) (string, error) {
	name, err := f.next.GetUserName(ctx, id)
	if err == nil || remote.IsBusiness(err) {
		return name, err
	}

	f.log.Warn("user service unreachable, using placeholder name", sl.Err(err))

	return PlaceholderName, nil
}

func (f *Fallback) GetUsersByIDs(ctx context.Context, ids []int64) (map[int64]models.User, error) {
	users, err := f.next.GetUsersByIDs(ctx, ids)
	if err == nil || remote.IsBusiness(err) {
		return users, err
	}

	f.log.Warn("user service unreachable", sl.Err(err))

	return nil, domain.Unavailable("user service")
}
