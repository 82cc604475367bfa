package postgres

import (
	sq "github.com/Masterminds/squirrel"

	"eventflow/internal/models"
	"eventflow/internal/storage"
)

// buildEventsQuery translates an EventsFilter into a select over the events
// table. Public listings see PUBLISHED events only and are ordered by event
// date ascending; admin listings see every state and keep the caller's
// paging order. The "only available" constraint needs confirmed-request
// counts from the request service, so it is applied by the engine as a
// post-filter on the returned page, never here.
func buildEventsQuery(filter storage.EventsFilter, admin bool) sq.SelectBuilder {
	query := builder.
		Select(eventColumns...).
		From("events")

	if admin {
		if len(filter.Users) > 0 {
			query = query.Where(sq.Eq{"initiator_id": filter.Users})
		}
		if len(filter.States) > 0 {
			query = query.Where(sq.Eq{"state": filter.States})
		}
	} else {
		query = query.
			Where(sq.Eq{"state": models.StatePublished}).
			OrderBy("event_date ASC")

		if filter.Text != "" {
			pattern := "%" + filter.Text + "%"
			query = query.Where(sq.Or{
				sq.ILike{"annotation": pattern},
				sq.ILike{"description": pattern},
			})
		}
		if filter.Paid != nil {
			query = query.Where(sq.Eq{"paid": *filter.Paid})
		}
	}

	if len(filter.Categories) > 0 {
		query = query.Where(sq.Eq{"category_id": filter.Categories})
	}
	if filter.RangeStart != nil {
		query = query.Where(sq.GtOrEq{"event_date": *filter.RangeStart})
	}
	if filter.RangeEnd != nil {
		query = query.Where(sq.LtOrEq{"event_date": *filter.RangeEnd})
	}

	return query
}
