package visit

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veasna/clinic/internal/platform/apperr"
	"github.com/veasna/clinic/internal/platform/db"
	"github.com/veasna/clinic/pkg/date"
)

const duplicateQueueMsg = "duplicate queue number for this location and date"

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

const visitCols = `id, patient_id, location_id, visit_date, queue_no,
	last_updated_by, last_updated_at, created_at`

func scanVisit(row pgx.Row) (Visit, error) {
	var v Visit
	err := row.Scan(&v.ID, &v.PatientID, &v.LocationID, &v.VisitDate, &v.QueueNo,
		&v.LastUpdatedBy, &v.LastUpdatedAt, &v.CreatedAt)
	return v, err
}

func nullableUser(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func (r *pgRepository) Create(ctx context.Context, in ResolveInput, updatedBy int64) (Visit, error) {
	v, err := scanVisit(r.conn(ctx).QueryRow(ctx, `
		INSERT INTO visits (patient_id, location_id, visit_date, queue_no, last_updated_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+visitCols,
		in.PatientID, in.LocationID, in.VisitDate, in.QueueNo, nullableUser(updatedBy)))
	if err != nil {
		return Visit{}, db.Translate(err, duplicateQueueMsg)
	}
	return v, nil
}

func (r *pgRepository) GetByID(ctx context.Context, id int64) (Visit, error) {
	v, err := scanVisit(r.conn(ctx).QueryRow(ctx, `
		SELECT `+visitCols+` FROM visits WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Visit{}, apperr.NotFound("visit not found")
	}
	if err != nil {
		return Visit{}, apperr.Internal(err)
	}
	return v, nil
}

func (r *pgRepository) FindByNaturalKey(ctx context.Context, patientID, locationID int64, day date.Date, queueNo string) (*Visit, error) {
	v, err := scanVisit(r.conn(ctx).QueryRow(ctx, `
		SELECT `+visitCols+`
		FROM visits
		WHERE patient_id = $1 AND location_id = $2 AND visit_date = $3 AND queue_no = $4`,
		patientID, locationID, day, queueNo))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &v, nil
}

func (r *pgRepository) FindByDay(ctx context.Context, patientID, locationID int64, day date.Date) (*Visit, error) {
	v, err := scanVisit(r.conn(ctx).QueryRow(ctx, `
		SELECT `+visitCols+`
		FROM visits
		WHERE patient_id = $1 AND location_id = $2 AND visit_date = $3
		ORDER BY created_at DESC
		LIMIT 1`,
		patientID, locationID, day))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &v, nil
}

func (r *pgRepository) SetQueueNo(ctx context.Context, id int64, queueNo string, updatedBy int64) (Visit, error) {
	v, err := scanVisit(r.conn(ctx).QueryRow(ctx, `
		UPDATE visits
		SET queue_no = $2, last_updated_by = $3, last_updated_at = NOW()
		WHERE id = $1
		RETURNING `+visitCols,
		id, queueNo, nullableUser(updatedBy)))
	if errors.Is(err, pgx.ErrNoRows) {
		return Visit{}, apperr.NotFound("visit not found")
	}
	if err != nil {
		return Visit{}, db.Translate(err, duplicateQueueMsg)
	}
	return v, nil
}

// ListByLocationAndDate orders by the queue token as text, then patient name.
// Callers wanting numeric order must zero-pad their tokens; this matches how
// the queue screens have always sorted.
func (r *pgRepository) ListByLocationAndDate(ctx context.Context, locationID int64, day date.Date) ([]QueueEntry, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT v.id, p.id, v.queue_no, p.english_name, p.khmer_name, p.sex,
			p.date_of_birth, l.name, v.created_at
		FROM visits v
		JOIN patients p  ON p.id = v.patient_id
		JOIN locations l ON l.id = v.location_id
		WHERE v.location_id = $1 AND v.visit_date = $2
		ORDER BY v.queue_no ASC, p.english_name ASC`,
		locationID, day)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer rows.Close()

	var out []QueueEntry
	for rows.Next() {
		var e QueueEntry
		if err := rows.Scan(&e.VisitID, &e.PatientID, &e.QueueNo, &e.EnglishName,
			&e.KhmerName, &e.Sex, &e.DateOfBirth, &e.LocationName, &e.CreatedAt,
		); err != nil {
			return nil, apperr.Internal(err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *pgRepository) PatientHeader(ctx context.Context, patientID int64) (PatientHeader, error) {
	var h PatientHeader
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, english_name, khmer_name, date_of_birth, sex
		FROM patients WHERE id = $1`, patientID,
	).Scan(&h.ID, &h.EnglishName, &h.KhmerName, &h.DateOfBirth, &h.Sex)
	if errors.Is(err, pgx.ErrNoRows) {
		return PatientHeader{}, apperr.NotFound("patient not found")
	}
	if err != nil {
		return PatientHeader{}, apperr.Internal(err)
	}
	return h, nil
}
