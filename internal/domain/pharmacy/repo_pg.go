package pharmacy

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

const itemCols = `id, name, stock_level, last_updated_by, last_updated`

const duplicateNameMsg = "an item with this name already exists"

func scanItem(row pgx.Row) (Item, error) {
	var i Item
	err := row.Scan(&i.ID, &i.Name, &i.StockLevel, &i.LastUpdatedBy, &i.LastUpdatedAt)
	return i, err
}

func nullableUser(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func (r *pgRepository) Create(ctx context.Context, name string, stockLevel int64, updatedBy int64) (Item, error) {
	i, err := scanItem(r.conn(ctx).QueryRow(ctx, `
		INSERT INTO pharmacy (name, stock_level, last_updated_by)
		VALUES ($1, $2, $3)
		RETURNING `+itemCols,
		name, stockLevel, nullableUser(updatedBy)))
	if err != nil {
		return Item{}, db.Translate(err, duplicateNameMsg)
	}
	return i, nil
}

func (r *pgRepository) List(ctx context.Context) ([]Item, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+itemCols+` FROM pharmacy ORDER BY name ASC`)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (r *pgRepository) Update(ctx context.Context, id int64, in UpdateInput, updatedBy int64) (Item, error) {
	i, err := scanItem(r.conn(ctx).QueryRow(ctx, `
		UPDATE pharmacy SET
			name = COALESCE($2, name),
			stock_level = GREATEST(0, COALESCE($3, stock_level)),
			last_updated_by = $4,
			last_updated = NOW()
		WHERE id = $1
		RETURNING `+itemCols,
		id, in.Name, in.StockLevel, nullableUser(updatedBy)))
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, apperr.NotFound("item not found")
	}
	if err != nil {
		return Item{}, db.Translate(err, duplicateNameMsg)
	}
	return i, nil
}

func (r *pgRepository) Adjust(ctx context.Context, id int64, delta int64, updatedBy int64) (Item, error) {
	i, err := scanItem(r.conn(ctx).QueryRow(ctx, `
		UPDATE pharmacy SET
			stock_level = GREATEST(0, stock_level + $2),
			last_updated_by = $3,
			last_updated = NOW()
		WHERE id = $1
		RETURNING `+itemCols,
		id, delta, nullableUser(updatedBy)))
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, apperr.NotFound("item not found")
	}
	if err != nil {
		return Item{}, apperr.Internal(err)
	}
	return i, nil
}

func (r *pgRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM pharmacy WHERE id = $1`, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("item not found")
	}
	return nil
}
