package event

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventflow/internal/clients/remote"
	"eventflow/internal/clients/request"
	"eventflow/internal/clients/stats"
	"eventflow/internal/domain"
	"eventflow/internal/lib/logger/handlers/slogdiscard"
	"eventflow/internal/models"
	"eventflow/internal/storage"
)

// fakeStore is an in-memory EventStore.
type fakeStore struct {
	events    map[int64]*models.Event
	locations map[int64]*models.Location
	nextEvent int64
	nextLoc   int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events:    map[int64]*models.Event{},
		locations: map[int64]*models.Location{},
	}
}

func (f *fakeStore) SaveEvent(_ context.Context, event *models.Event) (int64, error) {
	f.nextEvent++
	saved := *event
	saved.ID = f.nextEvent
	f.events[saved.ID] = &saved
	return saved.ID, nil
}

func (f *fakeStore) GetEvent(_ context.Context, id int64) (*models.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, domain.NotFound("event %d", id)
	}
	copied := *event
	return &copied, nil
}

func (f *fakeStore) UpdateEvent(_ context.Context, event *models.Event) error {
	if _, ok := f.events[event.ID]; !ok {
		return domain.NotFound("event %d", event.ID)
	}
	copied := *event
	f.events[event.ID] = &copied
	return nil
}

func (f *fakeStore) ListByInitiator(_ context.Context, initiatorID int64, _ storage.Page) ([]models.Event, error) {
	var events []models.Event
	for _, e := range f.events {
		if e.InitiatorID == initiatorID {
			events = append(events, *e)
		}
	}
	return events, nil
}

func (f *fakeStore) ListFiltered(_ context.Context, filter storage.EventsFilter, admin bool, _ storage.Page) ([]models.Event, error) {
	var events []models.Event
	for _, e := range f.events {
		if !admin && e.State != models.StatePublished {
			continue
		}
		events = append(events, *e)
	}
	return events, nil
}

func (f *fakeStore) ListByIDs(_ context.Context, ids []int64) ([]models.Event, error) {
	var events []models.Event
	for _, id := range ids {
		if e, ok := f.events[id]; ok {
			events = append(events, *e)
		}
	}
	return events, nil
}

func (f *fakeStore) ExistsByCategory(_ context.Context, categoryID int64) (bool, error) {
	for _, e := range f.events {
		if e.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) FindOrCreateLocation(_ context.Context, lat, lon float64) (*models.Location, error) {
	for _, l := range f.locations {
		if l.Lat == lat && l.Lon == lon {
			return l, nil
		}
	}
	f.nextLoc++
	loc := &models.Location{ID: f.nextLoc, Lat: lat, Lon: lon}
	f.locations[loc.ID] = loc
	return loc, nil
}

func (f *fakeStore) GetLocation(_ context.Context, id int64) (*models.Location, error) {
	loc, ok := f.locations[id]
	if !ok {
		return nil, domain.NotFound("location %d", id)
	}
	return loc, nil
}

// fakeCategories answers every lookup with a fixed category, or the
// configured error.
type fakeCategories struct {
	err error
}

func (f *fakeCategories) GetCategory(_ context.Context, id int64) (*models.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Category{ID: id, Name: "concerts"}, nil
}

func (f *fakeCategories) GetCategoriesByIDs(_ context.Context, ids []int64) (map[int64]models.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	categories := make(map[int64]models.Category, len(ids))
	for _, id := range ids {
		categories[id] = models.Category{ID: id, Name: "concerts"}
	}
	return categories, nil
}

type fakeUsers struct {
	err error
}

func (f *fakeUsers) GetUser(_ context.Context, id int64) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{ID: id, Name: "alex"}, nil
}

func (f *fakeUsers) GetUserName(_ context.Context, id int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "alex", nil
}

func (f *fakeUsers) GetUsersByIDs(_ context.Context, ids []int64) (map[int64]models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	users := make(map[int64]models.User, len(ids))
	for _, id := range ids {
		users[id] = models.User{ID: id, Name: "alex"}
	}
	return users, nil
}

type fakeRequests struct {
	counts map[int64]int64
	err    error
}

func (f *fakeRequests) CountConfirmed(_ context.Context, eventID int64) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[eventID], nil
}

func (f *fakeRequests) CountConfirmedBatch(_ context.Context, eventIDs []int64) (map[int64]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	counts := make(map[int64]int64, len(eventIDs))
	for _, id := range eventIDs {
		counts[id] = f.counts[id]
	}
	return counts, nil
}

type fakeComments struct {
	comments []models.Comment
}

func (f *fakeComments) GetCommentsForEvent(_ context.Context, _ int64) ([]models.Comment, error) {
	return f.comments, nil
}

type fakeStats struct {
	hits    []stats.Hit
	hitErr  error
	viewMap map[string]int64
}

func (f *fakeStats) RecordHit(_ context.Context, hit stats.Hit) error {
	if f.hitErr != nil {
		return f.hitErr
	}
	f.hits = append(f.hits, hit)
	return nil
}

func (f *fakeStats) GetViewCounts(_ context.Context, paths []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(paths))
	for _, p := range paths {
		counts[p] = f.viewMap[p]
	}
	return counts, nil
}

func (f *fakeStats) GetViewCount(_ context.Context, eventID int64) (int64, error) {
	return f.viewMap[stats.EventPath(eventID)], nil
}

type fixture struct {
	service    *Service
	store      *fakeStore
	categories *fakeCategories
	users      *fakeUsers
	requests   *fakeRequests
	comments   *fakeComments
	stats      *fakeStats
}

func newFixture() *fixture {
	f := &fixture{
		store:      newFakeStore(),
		categories: &fakeCategories{},
		users:      &fakeUsers{},
		requests:   &fakeRequests{counts: map[int64]int64{}},
		comments:   &fakeComments{},
		stats:      &fakeStats{viewMap: map[string]int64{}},
	}

	f.service = New(
		slogdiscard.NewDiscardLogger(),
		f.store,
		f.categories,
		f.users,
		f.requests,
		f.comments,
		f.stats,
	)

	return f
}

func validNewEvent() models.NewEvent {
	return models.NewEvent{
		Annotation:        "an annotation long enough to be valid",
		CategoryID:        1,
		Description:       "a description long enough to be valid",
		EventDate:         time.Now().Add(3 * time.Hour),
		Location:          models.Coordinates{Lat: 55.75, Lon: 37.62},
		Paid:              false,
		ParticipantLimit:  0,
		RequestModeration: true,
		Title:             "a concert",
	}
}

func (f *fixture) mustCreate(t *testing.T) *models.EventFull {
	t.Helper()

	full, err := f.service.Create(context.Background(), 7, validNewEvent())
	require.NoError(t, err)

	return full
}

func TestCreate(t *testing.T) {
	f := newFixture()

	full := f.mustCreate(t)

	assert.Equal(t, models.StatePending, full.State)
	assert.Nil(t, full.PublishedOn)
	assert.False(t, full.CreatedOn.IsZero())
	assert.Equal(t, int64(0), full.ConfirmedRequests)
	assert.Equal(t, int64(0), full.Views)
	assert.Empty(t, full.Comments)
	assert.Equal(t, "concerts", full.Category.Name)
	assert.Equal(t, "alex", full.Initiator.Name)
}

func TestCreate_LeadTimeTooShort(t *testing.T) {
	f := newFixture()

	dto := validNewEvent()
	dto.EventDate = time.Now().Add(30 * time.Minute)

	_, err := f.service.Create(context.Background(), 7, dto)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateByOwner_PublishedIsFrozen(t *testing.T) {
	f := newFixture()

	full := f.mustCreate(t)
	publish(t, f, full.ID)

	title := "new title"
	_, err := f.service.UpdateByOwner(context.Background(), 7, full.ID, models.EventPatch{Title: &title})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateByOwner_PartialPatchKeepsOtherFields(t *testing.T) {
	f := newFixture()

	full := f.mustCreate(t)
	before := *f.store.events[full.ID]

	title := "retitled"
	_, err := f.service.UpdateByOwner(context.Background(), 7, full.ID, models.EventPatch{Title: &title})
	require.NoError(t, err)

	after := *f.store.events[full.ID]
	assert.Equal(t, "retitled", after.Title)

	after.Title = before.Title
	assert.Equal(t, before, after, "patching title must not touch any other field")
}

func TestUpdateByOwner_StateActions(t *testing.T) {
	testCases := []struct {
		name      string
		fromState models.EventState
		action    models.StateAction
		wantState models.EventState
	}{
		{"send to review from pending", models.StatePending, models.ActionSendToReview, models.StatePending},
		{"cancel review", models.StatePending, models.ActionCancelReview, models.StateCanceled},
		{"send to review resurrects canceled", models.StateCanceled, models.ActionSendToReview, models.StatePending},
		{"publish is not an owner action", models.StatePending, models.ActionPublishEvent, models.StatePending},
		{"reject is not an owner action", models.StateCanceled, models.ActionRejectEvent, models.StateCanceled},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()

			full := f.mustCreate(t)
			f.store.events[full.ID].State = tc.fromState

			action := tc.action
			updated, err := f.service.UpdateByOwner(context.Background(), 7, full.ID, models.EventPatch{StateAction: &action})
			require.NoError(t, err)

			assert.Equal(t, tc.wantState, updated.State)
		})
	}
}

func TestUpdateByOwner_ForeignEventIsInvisible(t *testing.T) {
	f := newFixture()

	full := f.mustCreate(t)

	title := "hijacked"
	_, err := f.service.UpdateByOwner(context.Background(), 8, full.ID, models.EventPatch{Title: &title})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func publish(t *testing.T, f *fixture, eventID int64) *models.EventFull {
	t.Helper()

	action := models.ActionPublishEvent
	full, err := f.service.UpdateByAdmin(context.Background(), eventID, models.EventPatch{StateAction: &action})
	require.NoError(t, err)

	return full
}

func TestUpdateByAdmin_Publish(t *testing.T) {
	f := newFixture()

	full := f.mustCreate(t)
	published := publish(t, f, full.ID)

	assert.Equal(t, models.StatePublished, published.State)
	require.NotNil(t, published.PublishedOn)
	assert.WithinDuration(t, time.Now(), *published.PublishedOn, time.Minute)
}

func TestUpdateByAdmin_PublishRequiresPending(t *testing.T) {
	for _, state := range []models.EventState{models.StatePublished, models.StateCanceled} {
		t.Run(string(state), func(t *testing.T) {
			f := newFixture()

			full := f.mustCreate(t)
			f.store.events[full.ID].State = state

			action := models.ActionPublishEvent
			_, err := f.service.UpdateByAdmin(context.Background(), full.ID, models.EventPatch{StateAction: &action})
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrConflict)
		})
	}
}

func TestUpdateByAdmin_RejectPublishedFails(t *testing.T) {
	f := newFixture()

	full := f.mustCreate(t)
	publish(t, f, full.ID)

	action := models.ActionRejectEvent
	_, err := f.service.UpdateByAdmin(context.Background(), full.ID, models.EventPatch{StateAction: &action})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateByAdmin_RejectPending(t *testing.T) {
	f := newFixture()

	full := f.mustCreate(t)

	action := models.ActionRejectEvent
	updated, err := f.service.UpdateByAdmin(context.Background(), full.ID, models.EventPatch{StateAction: &action})
	require.NoError(t, err)

	assert.Equal(t, models.StateCanceled, updated.State)
	assert.Nil(t, updated.PublishedOn)
}

func TestUpdateByAdmin_PublishDateLeadTime(t *testing.T) {
	testCases := []struct {
		name    string
		date    time.Time
		wantErr bool
	}{
		{"less than an hour away", time.Now().Add(30 * time.Minute), true},
		{"just over an hour away", time.Now().Add(time.Hour + time.Second), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()

			full := f.mustCreate(t)

			action := models.ActionPublishEvent
			date := tc.date
			_, err := f.service.UpdateByAdmin(context.Background(), full.ID, models.EventPatch{
				StateAction: &action,
				EventDate:   &date,
			})

			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrValidation)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestUpdateByAdmin_RedateAfterPublication(t *testing.T) {
	f := newFixture()

	full := f.mustCreate(t)
	published := publish(t, f, full.ID)

	tooEarly := published.PublishedOn.Add(30 * time.Minute)
	_, err := f.service.UpdateByAdmin(context.Background(), full.ID, models.EventPatch{EventDate: &tooEarly})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	lateEnough := published.PublishedOn.Add(2 * time.Hour)
	_, err = f.service.UpdateByAdmin(context.Background(), full.ID, models.EventPatch{EventDate: &lateEnough})
	require.NoError(t, err)
}

func TestPublishedOnMatchesState(t *testing.T) {
	f := newFixture()

	full := f.mustCreate(t)
	assert.Nil(t, full.PublishedOn, "PENDING event must have no publication time")

	published := publish(t, f, full.ID)
	assert.NotNil(t, published.PublishedOn, "PUBLISHED event must carry its publication time")
}

func TestGetPublic_OnlyPublished(t *testing.T) {
	f := newFixture()

	full := f.mustCreate(t)

	_, err := f.service.GetPublic(context.Background(), full.ID, "/events/1", "10.0.0.1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetPublic_RecordsHit(t *testing.T) {
	f := newFixture()

	full := f.mustCreate(t)
	publish(t, f, full.ID)

	_, err := f.service.GetPublic(context.Background(), full.ID, "/events/1", "10.0.0.1")
	require.NoError(t, err)

	require.Len(t, f.stats.hits, 1)
	assert.Equal(t, "/events/1", f.stats.hits[0].URI)
	assert.Equal(t, "10.0.0.1", f.stats.hits[0].IP)
}

func TestGetPublic_HitFailureDoesNotFailRead(t *testing.T) {
	f := newFixture()

	full := f.mustCreate(t)
	publish(t, f, full.ID)

	f.stats.hitErr = errors.New("stats is down")

	_, err := f.service.GetPublic(context.Background(), full.ID, "/events/1", "10.0.0.1")
	require.NoError(t, err)
}

func TestGetPublic_CategoryNotFoundPropagates(t *testing.T) {
	f := newFixture()

	full := f.mustCreate(t)
	publish(t, f, full.ID)

	statusErr := &remote.StatusError{Code: http.StatusNotFound, Body: "no such category"}
	f.categories.err = statusErr

	_, err := f.service.GetPublic(context.Background(), full.ID, "/events/1", "10.0.0.1")
	require.Error(t, err)

	var got *remote.StatusError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, http.StatusNotFound, got.Code)
}

func TestListPublic_RequestServiceDownDefaultsToZero(t *testing.T) {
	f := newFixture()

	full := f.mustCreate(t)
	publish(t, f, full.ID)

	// route the engine through the real fallback over a dead counter
	f.service.requests = request.NewFallback(
		&fakeRequests{err: errors.New("connection refused")},
		slogdiscard.NewDiscardLogger(),
	)

	shorts, err := f.service.ListPublic(context.Background(), storage.EventsFilter{}, storage.DefaultPage(), "/events", "10.0.0.1")
	require.NoError(t, err)
	require.Len(t, shorts, 1)
	assert.Equal(t, int64(0), shorts[0].ConfirmedRequests)
}

func TestListPublic_OnlyAvailable(t *testing.T) {
	f := newFixture()

	first := f.mustCreate(t)
	publish(t, f, first.ID)
	f.store.events[first.ID].ParticipantLimit = 2
	f.requests.counts[first.ID] = 2 // full

	second := f.mustCreate(t)
	publish(t, f, second.ID)
	f.store.events[second.ID].ParticipantLimit = 0 // unlimited

	shorts, err := f.service.ListPublic(context.Background(),
		storage.EventsFilter{OnlyAvailable: true}, storage.DefaultPage(), "/events", "10.0.0.1")
	require.NoError(t, err)

	require.Len(t, shorts, 1)
	assert.Equal(t, second.ID, shorts[0].ID)
}

func TestLifecycleEndToEnd(t *testing.T) {
	f := newFixture()

	// request counter offline for the whole scenario
	f.service.requests = request.NewFallback(
		&fakeRequests{err: errors.New("connection refused")},
		slogdiscard.NewDiscardLogger(),
	)

	created, err := f.service.Create(context.Background(), 7, validNewEvent())
	require.NoError(t, err)
	assert.Equal(t, models.StatePending, created.State)

	published := publish(t, f, created.ID)
	assert.Equal(t, models.StatePublished, published.State)
	assert.NotNil(t, published.PublishedOn)

	shorts, err := f.service.ListPublic(context.Background(), storage.EventsFilter{}, storage.DefaultPage(), "/events", "10.0.0.1")
	require.NoError(t, err)

	require.Len(t, shorts, 1)
	assert.Equal(t, created.ID, shorts[0].ID)
	assert.Equal(t, int64(0), shorts[0].ConfirmedRequests)
	assert.Equal(t, int64(0), shorts[0].Views)
}

func TestGetByOwner(t *testing.T) {
	f := newFixture()

	full := f.mustCreate(t)

	got, err := f.service.GetByOwner(context.Background(), 7, full.ID)
	require.NoError(t, err)
	assert.Equal(t, full.ID, got.ID)

	_, err = f.service.GetByOwner(context.Background(), 8, full.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExistsByCategory(t *testing.T) {
	f := newFixture()

	f.mustCreate(t)

	exists, err := f.service.ExistsByCategory(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = f.service.ExistsByCategory(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, exists)
}
