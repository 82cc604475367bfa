package category

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

// Getter is the category accessor the engine consumes.
type Getter interface {
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	GetCategoriesByIDs(ctx context.Context, ids []int64) (map[int64]models.Category, error)
}

type Client struct {
	remote *remote.Client
}

func New(baseURL string, timeout time.Duration, maxRetries uint64) *Client {
	return &Client{remote: remote.New(baseURL, timeout, maxRetries)}
}

func (c *Client) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	const op = "clients.category.GetCategory"

	var category models.Category
	if err := c.remote.GetJSON(ctx, "/categories/"+strconv.FormatInt(id, 10), nil, &category); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &category, nil
}

func (c *Client) GetCategoriesByIDs(ctx context.Context, ids []int64) (map[int64]models.Category, error) {
	const op = "clients.category.GetCategoriesByIDs"

	if len(ids) == 0 {
		return map[int64]models.Category{}, nil
	}

	categories := make(map[int64]models.Category, len(ids))
	if err := c.remote.GetJSON(ctx, "/categories/by-ids", remote.IDs(ids), &categories); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return categories, nil
}

// Fallback applies the degradation policy: 404/409 from the category
// service are authoritative and re-raised unchanged; any other failure
// becomes ErrUnavailable, because the engine cannot assemble an event view
// without category data.
type Fallback struct {
	next Getter
	log  *slog.Logger
}

func NewFallback(next Getter, log *slog.Logger) *Fallback {
	return &Fallback{next: next, log: log}
}

func (f *Fallback) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	category, err := f.next.GetCategory(ctx, id)
	if err == nil || remote.IsBusiness(err) {
		return category, err
	}

	f.log.Warn("category service unreachable", sl.Err(err))

	return nil, domain.Unavailable("category service")
}

func (f *Fallback) GetCategoriesByIDs(ctx context.Context, ids []int64) (map[int64]models.Category, error) {
	categories, err := f.next.GetCategoriesByIDs(ctx, ids)
	if err == nil || remote.IsBusiness(err) {
		return categories, err
	}

	f.log.Warn("category service unreachable", sl.Err(err))

	return nil, domain.Unavailable("category service")
}
