// Package query parses the listing query strings shared by the public and
// admin event endpoints.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"eventflow/internal/domain"
	"eventflow/internal/models"
	"eventflow/internal/storage"
)

// TimeLayout is the timestamp format of the range parameters.
const TimeLayout = "2006-01-02 15:04:05"

// Filter reads an EventsFilter from the request query. Absent parameters
// stay zero-valued and impose no constraint.
func Filter(q url.Values) (storage.EventsFilter, error) {
	filter := storage.EventsFilter{
		Text:          q.Get("text"),
		OnlyAvailable: q.Get("onlyAvailable") == "true",
	}

	var err error
	if filter.Users, err = int64s(q.Get("users")); err != nil {
		return filter, domain.Validation("invalid users parameter")
	}
	if filter.Categories, err = int64s(q.Get("categories")); err != nil {
		return filter, domain.Validation("invalid categories parameter")
	}

	for _, s := range split(q.Get("states")) {
		filter.States = append(filter.States, models.EventState(s))
	}

	if v := q.Get("paid"); v != "" {
		paid, err := strconv.ParseBool(v)
		if err != nil {
			return filter, domain.Validation("invalid paid parameter")
		}
		filter.Paid = &paid
	}

	if filter.RangeStart, err = timePtr(q.Get("rangeStart")); err != nil {
		return filter, domain.Validation("invalid rangeStart parameter")
	}
	if filter.RangeEnd, err = timePtr(q.Get("rangeEnd")); err != nil {
		return filter, domain.Validation("invalid rangeEnd parameter")
	}

	if filter.RangeStart != nil && filter.RangeEnd != nil && filter.RangeEnd.Before(*filter.RangeStart) {
		return filter, domain.Validation("rangeEnd is before rangeStart")
	}

	return filter, nil
}

// Page reads from/size paging, falling back to the defaults on absence.
func Page(q url.Values) (storage.Page, error) {
	page := storage.DefaultPage()

	if v := q.Get("from"); v != "" {
		from, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return page, domain.Validation("invalid from parameter")
		}
		page.From = from
	}

	if v := q.Get("size"); v != "" {
		size, err := strconv.ParseUint(v, 10, 64)
		if err != nil || size == 0 {
			return page, domain.Validation("invalid size parameter")
		}
		page.Size = size
	}

	return page, nil
}

// IDs reads the mandatory ids parameter of the batch lookup.
func IDs(q url.Values) ([]int64, error) {
	ids, err := int64s(q.Get("ids"))
	if err != nil || len(ids) == 0 {
		return nil, domain.Validation("ids parameter is required")
	}

	return ids, nil
}

func int64s(raw string) ([]int64, error) {
	parts := split(raw)
	if len(parts) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", p, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func split(raw string) []string {
	if raw == "" {
		return nil
	}

	var parts []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	return parts
}

func timePtr(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	t, err := time.Parse(TimeLayout, raw)
	if err != nil {
		return nil, err
	}

	return &t, nil
}
