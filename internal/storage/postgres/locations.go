package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"eventflow/internal/domain"
	"eventflow/internal/models"
)

// FindOrCreateLocation deduplicates coordinates into a stable location row.
// The insert goes through ON CONFLICT DO NOTHING against the unique
// (lat, lon) index, so two concurrent calls for the same pair converge on
// one row instead of racing a read-then-write.
func (s *Storage) FindOrCreateLocation(ctx context.Context, lat, lon float64) (*models.Location, error) {
	const op = "storage.postgres.FindOrCreateLocation"

	insert, args, err := builder.
		Insert("locations").
		Columns("lat", "lon").
		Values(lat, lon).
		Suffix("ON CONFLICT (lat, lon) DO NOTHING").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err = s.db.Exec(ctx, insert, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := builder.
		Select("id", "lat", "lon").
		From("locations").
		Where(sq.Eq{"lat": lat, "lon": lon}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var location models.Location
	if err = pgxscan.Get(ctx, s.db, &location, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &location, nil
}

func (s *Storage) GetLocation(ctx context.Context, id int64) (*models.Location, error) {
	const op = "storage.postgres.GetLocation"

	query, args, err := builder.
		Select("id", "lat", "lon").
		From("locations").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var location models.Location
	if err = pgxscan.Get(ctx, s.db, &location, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, domain.NotFound("location %d", id)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &location, nil
}
