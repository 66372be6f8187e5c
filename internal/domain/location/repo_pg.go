package location

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veasna/clinic/internal/platform/apperr"
	"github.com/veasna/clinic/internal/platform/db"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgRepository struct {
	pool *pgxpool.Pool
}

func NewPGRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

func (r *pgRepository) conn(ctx context.Context) querier {
	if tx, ok := db.TxFromContext(ctx); ok {
		return tx
	}
	return r.pool
}

const locationCols = `id, name, is_active, created_at`

func scanLocation(row pgx.Row) (Location, error) {
	var l Location
	err := row.Scan(&l.ID, &l.Name, &l.IsActive, &l.CreatedAt)
	return l, err
}

func (r *pgRepository) Create(ctx context.Context, name string) (Location, error) {
	l, err := scanLocation(r.conn(ctx).QueryRow(ctx, `
		INSERT INTO locations (name, is_active)
		VALUES ($1, TRUE)
		RETURNING `+locationCols,
		name))
	if err != nil {
		return Location{}, db.Translate(err, "a location with this name already exists")
	}
	return l, nil
}

func (r *pgRepository) GetByID(ctx context.Context, id int64) (Location, error) {
	l, err := scanLocation(r.conn(ctx).QueryRow(ctx, `
		SELECT `+locationCols+` FROM locations WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Location{}, apperr.NotFound("location not found")
	}
	if err != nil {
		return Location{}, apperr.Internal(err)
	}
	return l, nil
}

func (r *pgRepository) List(ctx context.Context, includeInactive bool) ([]Location, error) {
	q := `SELECT ` + locationCols + ` FROM locations`
	if !includeInactive {
		q += ` WHERE is_active`
	}
	q += ` ORDER BY name`

	rows, err := r.conn(ctx).Query(ctx, q)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer rows.Close()

	var out []Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *pgRepository) Rename(ctx context.Context, id int64, name string) (Location, error) {
	l, err := scanLocation(r.conn(ctx).QueryRow(ctx, `
		UPDATE locations SET name = $2 WHERE id = $1
		RETURNING `+locationCols,
		id, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return Location{}, apperr.NotFound("location not found")
	}
	if err != nil {
		return Location{}, db.Translate(err, "a location with this name already exists")
	}
	return l, nil
}

func (r *pgRepository) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE locations SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("location not found")
	}
	return nil
}
