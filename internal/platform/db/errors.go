package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/veasna/clinic/internal/platform/apperr"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeTooManyConnections  = "53300"
)

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation, optionally on a specific constraint name.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != codeUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// Translate maps low-level database errors onto the application taxonomy.
// Repositories call it on every write path; msg is the client-facing message
// used for constraint conflicts.
func Translate(err error, msg string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(msg).Wrap(err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return apperr.Conflict(msg).Wrap(err)
		case codeForeignKeyViolation:
			return apperr.Invalid(msg).Wrap(err)
		case codeCheckViolation:
			return apperr.Invalid(msg).Wrap(err)
		case codeTooManyConnections:
			return apperr.Exhausted("database is at capacity, retry shortly").Wrap(err)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.Exhausted("database operation timed out").Wrap(err)
	}

	return apperr.Internal(err)
}
