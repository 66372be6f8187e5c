package user

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

// conn returns the enclosing transaction when one is carried by ctx, else the
// pool.
func (r *pgRepository) conn(ctx context.Context) querier {
	if tx, ok := db.TxFromContext(ctx); ok {
		return tx
	}
	return r.pool
}

func (r *pgRepository) Upsert(ctx context.Context, username string) (User, error) {
	var u User
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO users (username, is_active)
		VALUES ($1, TRUE)
		ON CONFLICT (username) DO UPDATE SET is_active = TRUE
		RETURNING id, username, is_active, created_at`,
		username,
	).Scan(&u.ID, &u.Username, &u.IsActive, &u.CreatedAt)
	if err != nil {
		return User{}, db.Translate(err, "could not save user")
	}
	return u, nil
}

func (r *pgRepository) GetByID(ctx context.Context, id int64) (User, error) {
	var u User
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, username, is_active, created_at
		FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Username, &u.IsActive, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, apperr.NotFound("user not found")
	}
	if err != nil {
		return User{}, apperr.Internal(err)
	}
	return u, nil
}

func (r *pgRepository) List(ctx context.Context) ([]User, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, username, is_active, created_at
		FROM users
		WHERE is_active
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.IsActive, &u.CreatedAt); err != nil {
			return nil, apperr.Internal(err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *pgRepository) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE users SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}
