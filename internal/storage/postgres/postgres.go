package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"eventflow/internal/config"
	"eventflow/internal/domain"
	"eventflow/internal/models"
	"eventflow/internal/storage"
)

// Querier is the subset of pgxpool.Pool the storage needs. pgxmock
// satisfies it in tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Storage struct {
	db Querier
}

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var eventColumns = []string{
	"id", "annotation", "category_id", "created_on", "description",
	"event_date", "initiator_id", "location_id", "paid", "participant_limit",
	"published_on", "request_moderation", "state", "title",
}

func Connect(ctx context.Context, dbCfg *config.Database) (*pgxpool.Pool, error) {
	const op = "storage.postgres.Connect"

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return pool, nil
}

func New(db Querier) *Storage {
	return &Storage{db: db}
}

func (s *Storage) SaveEvent(ctx context.Context, event *models.Event) (int64, error) {
	const op = "storage.postgres.SaveEvent"

	query, args, err := builder.
		Insert("events").
		Columns(eventColumns[1:]...).
		Values(
			event.Annotation,
			event.CategoryID,
			event.CreatedOn,
			event.Description,
			event.EventDate,
			event.InitiatorID,
			event.LocationID,
			event.Paid,
			event.ParticipantLimit,
			event.PublishedOn,
			event.RequestModeration,
			event.State,
			event.Title,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var id int64
	if err = s.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	const op = "storage.postgres.GetEvent"

	query, args, err := builder.
		Select(eventColumns...).
		From("events").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var event models.Event
	if err = pgxscan.Get(ctx, s.db, &event, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, domain.NotFound("event %d", id)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &event, nil
}

// UpdateEvent writes the full patched row back. The engine owns the patch
// semantics; by the time the event gets here every field is final.
func (s *Storage) UpdateEvent(ctx context.Context, event *models.Event) error {
	const op = "storage.postgres.UpdateEvent"

	query, args, err := builder.
		Update("events").
		Set("annotation", event.Annotation).
		Set("category_id", event.CategoryID).
		Set("description", event.Description).
		Set("event_date", event.EventDate).
		Set("location_id", event.LocationID).
		Set("paid", event.Paid).
		Set("participant_limit", event.ParticipantLimit).
		Set("published_on", event.PublishedOn).
		Set("request_moderation", event.RequestModeration).
		Set("state", event.State).
		Set("title", event.Title).
		Where(sq.Eq{"id": event.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("event %d", event.ID)
	}

	return nil
}

func (s *Storage) ListByInitiator(ctx context.Context, initiatorID int64, page storage.Page) ([]models.Event, error) {
	const op = "storage.postgres.ListByInitiator"

	query, args, err := builder.
		Select(eventColumns...).
		From("events").
		Where(sq.Eq{"initiator_id": initiatorID}).
		OrderBy("created_on DESC").
		Offset(page.From).
		Limit(page.Size).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var events []models.Event
	if err = pgxscan.Select(ctx, s.db, &events, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}

func (s *Storage) ListFiltered(ctx context.Context, filter storage.EventsFilter, admin bool, page storage.Page) ([]models.Event, error) {
	const op = "storage.postgres.ListFiltered"

	query, args, err := buildEventsQuery(filter, admin).
		Offset(page.From).
		Limit(page.Size).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var events []models.Event
	if err = pgxscan.Select(ctx, s.db, &events, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}

func (s *Storage) ListByIDs(ctx context.Context, ids []int64) ([]models.Event, error) {
	const op = "storage.postgres.ListByIDs"

	if len(ids) == 0 {
		return []models.Event{}, nil
	}

	query, args, err := builder.
		Select(eventColumns...).
		From("events").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var events []models.Event
	if err = pgxscan.Select(ctx, s.db, &events, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}

func (s *Storage) ExistsByCategory(ctx context.Context, categoryID int64) (bool, error) {
	const op = "storage.postgres.ExistsByCategory"

	query := `SELECT EXISTS (SELECT 1 FROM events WHERE category_id = $1)`

	var exists bool
	if err := s.db.QueryRow(ctx, query, categoryID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}
