package event

import (
	"context"

	"golang.org/x/sync/errgroup"

	"eventflow/internal/clients/stats"
	"eventflow/internal/models"
)

// batchData is one page worth of remote state, fetched in a single fan-out.
type batchData struct {
	categories map[int64]models.Category
	users      map[int64]models.User
	confirmed  map[int64]int64
	views      map[string]int64
}

// fetchBatch resolves the remote data for a page of events: categories and
// initiators by distinct id, confirmed-request counts by event id, view
// counts by the per-event resource path. The four fetches are independent
// and run concurrently; all must finish (or fall back) before any view is
// assembled. A key missing from a batch answer degrades to a zero value at
// view-assembly time instead of failing the page.
func (s *Service) fetchBatch(ctx context.Context, events []models.Event) (*batchData, error) {
	data := &batchData{
		categories: map[int64]models.Category{},
		users:      map[int64]models.User{},
		confirmed:  map[int64]int64{},
		views:      map[string]int64{},
	}

	if len(events) == 0 {
		return data, nil
	}

	eventIDs := make([]int64, 0, len(events))
	paths := make([]string, 0, len(events))
	categoryIDs := distinct(events, func(e models.Event) int64 { return e.CategoryID })
	userIDs := distinct(events, func(e models.Event) int64 { return e.InitiatorID })

	for _, e := range events {
		eventIDs = append(eventIDs, e.ID)
		paths = append(paths, stats.EventPath(e.ID))
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		categories, err := s.categories.GetCategoriesByIDs(gctx, categoryIDs)
		if err != nil {
			return err
		}
		data.categories = categories
		return nil
	})

	g.Go(func() error {
		users, err := s.users.GetUsersByIDs(gctx, userIDs)
		if err != nil {
			return err
		}
		data.users = users
		return nil
	})

	g.Go(func() error {
		confirmed, err := s.requests.CountConfirmedBatch(gctx, eventIDs)
		if err != nil {
			return err
		}
		data.confirmed = confirmed
		return nil
	})

	g.Go(func() error {
		views, err := s.stats.GetViewCounts(gctx, paths)
		if err != nil {
			return err
		}
		data.views = views
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return data, nil
}

func (s *Service) assembleShorts(ctx context.Context, events []models.Event) ([]models.EventShort, error) {
	data, err := s.fetchBatch(ctx, events)
	if err != nil {
		return nil, err
	}

	shorts := make([]models.EventShort, 0, len(events))
	for i := range events {
		shorts = append(shorts, newShortView(&events[i], data))
	}

	return shorts, nil
}

// assembleFull builds the single-event view: the short fields plus location
// and the ordered comment list. All five remote fetches run under one
// barrier.
func (s *Service) assembleFull(ctx context.Context, event *models.Event) (*models.EventFull, error) {
	var (
		cat       models.Category
		initiator models.User
		confirmed int64
		views     int64
		comments  []models.Comment
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c, err := s.categories.GetCategory(gctx, event.CategoryID)
		if err != nil {
			return err
		}
		cat = *c
		return nil
	})

	g.Go(func() error {
		u, err := s.users.GetUser(gctx, event.InitiatorID)
		if err != nil {
			return err
		}
		initiator = *u
		return nil
	})

	g.Go(func() error {
		var err error
		confirmed, err = s.requests.CountConfirmed(gctx, event.ID)
		return err
	})

	g.Go(func() error {
		var err error
		views, err = s.stats.GetViewCount(gctx, event.ID)
		return err
	})

	g.Go(func() error {
		var err error
		comments, err = s.comments.GetCommentsForEvent(gctx, event.ID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	location, err := s.store.GetLocation(ctx, event.LocationID)
	if err != nil {
		return nil, err
	}

	full := newFullView(event, cat, initiator, *location)
	full.ConfirmedRequests = confirmed
	full.Views = views
	full.Comments = comments

	return &full, nil
}

// assembleFullFromBatch reuses page-level batch data and only fetches what
// the batch cannot carry: the location row and the comment list.
func (s *Service) assembleFullFromBatch(ctx context.Context, event *models.Event, data *batchData) (*models.EventFull, error) {
	comments, err := s.comments.GetCommentsForEvent(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	location, err := s.store.GetLocation(ctx, event.LocationID)
	if err != nil {
		return nil, err
	}

	full := newFullView(event, data.categories[event.CategoryID], data.users[event.InitiatorID], *location)
	full.ConfirmedRequests = data.confirmed[event.ID]
	full.Views = data.views[stats.EventPath(event.ID)]
	full.Comments = comments

	return &full, nil
}

func newShortView(event *models.Event, data *batchData) models.EventShort {
	return models.EventShort{
		ID:                event.ID,
		Annotation:        event.Annotation,
		Category:          data.categories[event.CategoryID],
		ConfirmedRequests: data.confirmed[event.ID],
		EventDate:         event.EventDate,
		Initiator:         data.users[event.InitiatorID],
		Paid:              event.Paid,
		Title:             event.Title,
		Views:             data.views[stats.EventPath(event.ID)],
	}
}

func newFullView(event *models.Event, cat models.Category, initiator models.User, location models.Location) models.EventFull {
	return models.EventFull{
		ID:                event.ID,
		Annotation:        event.Annotation,
		Category:          cat,
		Comments:          []models.Comment{},
		CreatedOn:         event.CreatedOn,
		Description:       event.Description,
		EventDate:         event.EventDate,
		Initiator:         initiator,
		Location:          location,
		Paid:              event.Paid,
		ParticipantLimit:  event.ParticipantLimit,
		PublishedOn:       event.PublishedOn,
		RequestModeration: event.RequestModeration,
		State:             event.State,
		Title:             event.Title,
	}
}

func distinct(events []models.Event, key func(models.Event) int64) []int64 {
	seen := make(map[int64]struct{}, len(events))
	ids := make([]int64, 0, len(events))
	for _, e := range events {
		id := key(e)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return ids
}
