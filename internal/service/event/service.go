package event

import (
	"context"
	"log/slog"
	"time"

	"eventflow/internal/clients/category"
	"eventflow/internal/clients/comment"
	"eventflow/internal/clients/request"
	"eventflow/internal/clients/stats"
	"eventflow/internal/clients/user"
	"eventflow/internal/domain"
	"eventflow/internal/lib/logger/sl"
	"eventflow/internal/models"
	"eventflow/internal/storage"
)

// Lead times for the event date. Creation and owner edits need the full
// window; an admin publishing (or re-dating a published event) needs one
// hour from the decision point.
const (
	ownerLeadTime   = 2 * time.Hour
	publishLeadTime = time.Hour
)

// Source identifier the stats service records hits under.
const appName = "event-service"

// EventStore owns the persisted event and location rows.
type EventStore interface {
	SaveEvent(ctx context.Context, event *models.Event) (int64, error)
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	UpdateEvent(ctx context.Context, event *models.Event) error
	ListByInitiator(ctx context.Context, initiatorID int64, page storage.Page) ([]models.Event, error)
	ListFiltered(ctx context.Context, filter storage.EventsFilter, admin bool, page storage.Page) ([]models.Event, error)
	ListByIDs(ctx context.Context, ids []int64) ([]models.Event, error)
	ExistsByCategory(ctx context.Context, categoryID int64) (bool, error)
	FindOrCreateLocation(ctx context.Context, lat, lon float64) (*models.Location, error)
	GetLocation(ctx context.Context, id int64) (*models.Location, error)
}

// Service is the lifecycle and aggregation engine: it owns the event state
// machine and composes event views from the store and the downstream
// accessors. The accessors arrive already wrapped in their fallbacks.
type Service struct {
	log        *slog.Logger
	store      EventStore
	categories category.Getter
	users      user.Getter
	requests   request.Counter
	comments   comment.Lister
	stats      stats.Accessor
}

func New(
	log *slog.Logger,
	store EventStore,
	categories category.Getter,
	users user.Getter,
	requests request.Counter,
	comments comment.Lister,
	statsAccessor stats.Accessor,
) *Service {
	return &Service{
		log:        log,
		store:      store,
		categories: categories,
		users:      users,
		requests:   requests,
		comments:   comments,
		stats:      statsAccessor,
	}
}

func (s *Service) Create(ctx context.Context, userID int64, dto models.NewEvent) (*models.EventFull, error) {
	const op = "service.event.Create"

	log := s.log.With(slog.String("op", op), slog.Int64("user_id", userID))

	if err := checkLeadTime(dto.EventDate, time.Now(), ownerLeadTime); err != nil {
		return nil, err
	}

	initiator, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	cat, err := s.categories.GetCategory(ctx, dto.CategoryID)
	if err != nil {
		return nil, err
	}

	location, err := s.store.FindOrCreateLocation(ctx, dto.Location.Lat, dto.Location.Lon)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		Annotation:        dto.Annotation,
		CategoryID:        dto.CategoryID,
		CreatedOn:         time.Now(),
		Description:       dto.Description,
		EventDate:         dto.EventDate,
		InitiatorID:       userID,
		LocationID:        location.ID,
		Paid:              dto.Paid,
		ParticipantLimit:  dto.ParticipantLimit,
		RequestModeration: dto.RequestModeration,
		State:             models.StatePending,
		Title:             dto.Title,
	}

	event.ID, err = s.store.SaveEvent(ctx, event)
	if err != nil {
		return nil, err
	}

	log.Info("event created", slog.Int64("event_id", event.ID))

	// A fresh event has no requests, views or comments yet; skip the fan-out.
	full := newFullView(event, *cat, *initiator, *location)

	return &full, nil
}

// UpdateByOwner applies an owner's patch. Published events are frozen for
// their owner; PUBLISH_EVENT and REJECT_EVENT are not owner actions and are
// deliberately accepted as no-ops rather than rejected.
func (s *Service) UpdateByOwner(ctx context.Context, userID, eventID int64, patch models.EventPatch) (*models.EventFull, error) {
	const op = "service.event.UpdateByOwner"

	log := s.log.With(slog.String("op", op), slog.Int64("event_id", eventID))

	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	event, err := s.getOwnedEvent(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}

	if event.State == models.StatePublished {
		return nil, domain.Conflict("published event cannot be changed by its owner")
	}

	if patch.EventDate != nil {
		if err = checkLeadTime(*patch.EventDate, time.Now(), ownerLeadTime); err != nil {
			return nil, err
		}
	}

	var newState *models.EventState
	if patch.StateAction != nil {
		switch *patch.StateAction {
		case models.ActionSendToReview:
			newState = statePtr(models.StatePending)
		case models.ActionCancelReview:
			newState = statePtr(models.StateCanceled)
		case models.ActionPublishEvent, models.ActionRejectEvent:
			// not an owner action, ignored
		}
	}

	if err = s.applyPatch(ctx, event, patch, newState, nil); err != nil {
		return nil, err
	}

	log.Info("event updated by owner", slog.String("state", string(event.State)))

	return s.assembleFull(ctx, event)
}

// UpdateByAdmin applies a moderator's patch. PUBLISH_EVENT needs a PENDING
// event, REJECT_EVENT anything not yet published; SEND_TO_REVIEW and
// CANCEL_REVIEW are not admin actions and are accepted as no-ops.
func (s *Service) UpdateByAdmin(ctx context.Context, eventID int64, patch models.EventPatch) (*models.EventFull, error) {
	const op = "service.event.UpdateByAdmin"

	log := s.log.With(slog.String("op", op), slog.Int64("event_id", eventID))

	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	action := patch.StateAction

	if action != nil {
		switch *action {
		case models.ActionPublishEvent:
			if event.State != models.StatePending {
				return nil, domain.Conflict("only a PENDING event can be published, current state is %s", event.State)
			}
		case models.ActionRejectEvent:
			if event.State == models.StatePublished {
				return nil, domain.Conflict("published event cannot be rejected")
			}
		}
	}

	if patch.EventDate != nil {
		if err = s.checkAdminDate(*patch.EventDate, action, event); err != nil {
			return nil, err
		}
	}

	var newState *models.EventState
	var publishedOn *time.Time
	if action != nil {
		switch *action {
		case models.ActionPublishEvent:
			newState = statePtr(models.StatePublished)
			now := time.Now()
			publishedOn = &now
		case models.ActionRejectEvent:
			newState = statePtr(models.StateCanceled)
		case models.ActionSendToReview, models.ActionCancelReview:
			// not an admin action, ignored
		}
	}

	if err = s.applyPatch(ctx, event, patch, newState, publishedOn); err != nil {
		return nil, err
	}

	log.Info("event updated by admin", slog.String("state", string(event.State)))

	return s.assembleFull(ctx, event)
}

// checkAdminDate guards a new event date supplied with an admin update: a
// publication needs an hour of lead time from now, a re-dated published
// event an hour from its original publication.
func (s *Service) checkAdminDate(newDate time.Time, action *models.StateAction, event *models.Event) error {
	if action != nil && *action == models.ActionPublishEvent {
		return checkLeadTime(newDate, time.Now(), publishLeadTime)
	}

	if event.State == models.StatePublished && event.PublishedOn != nil {
		if newDate.Before(event.PublishedOn.Add(publishLeadTime)) {
			return domain.Validation("event date must be at least %s after publication", publishLeadTime)
		}
	}

	return nil
}

// applyPatch merges the patch into the event and persists it. A nil patch
// field leaves the stored value untouched.
func (s *Service) applyPatch(ctx context.Context, event *models.Event, patch models.EventPatch, state *models.EventState, publishedOn *time.Time) error {
	if patch.Annotation != nil {
		event.Annotation = *patch.Annotation
	}
	if patch.CategoryID != nil {
		event.CategoryID = *patch.CategoryID
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.EventDate != nil {
		event.EventDate = *patch.EventDate
	}
	if patch.Location != nil {
		location, err := s.store.FindOrCreateLocation(ctx, patch.Location.Lat, patch.Location.Lon)
		if err != nil {
			return err
		}
		event.LocationID = location.ID
	}
	if patch.Paid != nil {
		event.Paid = *patch.Paid
	}
	if patch.ParticipantLimit != nil {
		event.ParticipantLimit = *patch.ParticipantLimit
	}
	if patch.RequestModeration != nil {
		event.RequestModeration = *patch.RequestModeration
	}
	if patch.Title != nil {
		event.Title = *patch.Title
	}
	if state != nil {
		event.State = *state
	}
	if publishedOn != nil {
		event.PublishedOn = publishedOn
	}

	return s.store.UpdateEvent(ctx, event)
}

func (s *Service) GetByOwner(ctx context.Context, userID, eventID int64) (*models.EventFull, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	event, err := s.getOwnedEvent(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}

	return s.assembleFull(ctx, event)
}

func (s *Service) GetByAdmin(ctx context.Context, eventID int64) (*models.EventFull, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return s.assembleFull(ctx, event)
}

// GetPublic serves the public single-event read: only published events are
// visible, and each read records a hit. A failed hit never fails the read.
func (s *Service) GetPublic(ctx context.Context, eventID int64, requestPath, callerAddr string) (*models.EventFull, error) {
	const op = "service.event.GetPublic"

	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.State != models.StatePublished {
		return nil, domain.NotFound("event %d is not published", eventID)
	}

	full, err := s.assembleFull(ctx, event)
	if err != nil {
		return nil, err
	}

	s.recordHit(ctx, op, requestPath, callerAddr)

	return full, nil
}

func (s *Service) ListByOwner(ctx context.Context, userID int64, page storage.Page) ([]models.EventShort, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	events, err := s.store.ListByInitiator(ctx, userID, page)
	if err != nil {
		return nil, err
	}

	return s.assembleShorts(ctx, events)
}

// ListPublic serves the public filtered listing (published events only,
// event date ascending) and records a hit for the listing itself.
func (s *Service) ListPublic(ctx context.Context, filter storage.EventsFilter, page storage.Page, requestPath, callerAddr string) ([]models.EventShort, error) {
	const op = "service.event.ListPublic"

	s.recordHit(ctx, op, requestPath, callerAddr)

	events, err := s.store.ListFiltered(ctx, filter, false, page)
	if err != nil {
		return nil, err
	}

	data, err := s.fetchBatch(ctx, events)
	if err != nil {
		return nil, err
	}

	if filter.OnlyAvailable {
		events = onlyAvailable(events, data.confirmed)
	}

	shorts := make([]models.EventShort, 0, len(events))
	for i := range events {
		shorts = append(shorts, newShortView(&events[i], data))
	}

	return shorts, nil
}

func (s *Service) ListByAdmin(ctx context.Context, filter storage.EventsFilter, page storage.Page) ([]models.EventFull, error) {
	events, err := s.store.ListFiltered(ctx, filter, true, page)
	if err != nil {
		return nil, err
	}

	data, err := s.fetchBatch(ctx, events)
	if err != nil {
		return nil, err
	}

	fulls := make([]models.EventFull, 0, len(events))
	for i := range events {
		full, err := s.assembleFullFromBatch(ctx, &events[i], data)
		if err != nil {
			return nil, err
		}
		fulls = append(fulls, *full)
	}

	return fulls, nil
}

func (s *Service) GetByIDs(ctx context.Context, ids []int64) ([]models.EventShort, error) {
	events, err := s.store.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	return s.assembleShorts(ctx, events)
}

func (s *Service) ExistsByCategory(ctx context.Context, categoryID int64) (bool, error) {
	return s.store.ExistsByCategory(ctx, categoryID)
}

func (s *Service) getOwnedEvent(ctx context.Context, eventID, userID int64) (*models.Event, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.InitiatorID != userID {
		// someone else's event is invisible in the owner scope
		return nil, domain.NotFound("event %d", eventID)
	}

	return event, nil
}

func (s *Service) recordHit(ctx context.Context, op, requestPath, callerAddr string) {
	err := s.stats.RecordHit(ctx, stats.Hit{
		App:       appName,
		URI:       requestPath,
		IP:        callerAddr,
		Timestamp: time.Now(),
	})
	if err != nil {
		s.log.Warn("failed to record hit", slog.String("op", op), sl.Err(err))
	}
}

func checkLeadTime(date, from time.Time, lead time.Duration) error {
	if date.Before(from.Add(lead)) {
		return domain.Validation("event date must be at least %s in the future", lead)
	}

	return nil
}

func statePtr(state models.EventState) *models.EventState {
	return &state
}

func onlyAvailable(events []models.Event, confirmed map[int64]int64) []models.Event {
	available := make([]models.Event, 0, len(events))
	for _, e := range events {
		if e.ParticipantLimit == 0 || confirmed[e.ID] < e.ParticipantLimit {
			available = append(available, e)
		}
	}

	return available
}
