package patient

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

const patientCols = `
	p.id, p.face_id, p.english_name, p.khmer_name, p.date_of_birth, p.sex,
	p.phone_number, p.address, p.location_id, l.name, p.queue_no,
	p.last_updated_by, p.last_updated_at, p.created_at`

func scanPatient(row pgx.Row) (Patient, error) {
	var p Patient
	err := row.Scan(
		&p.ID, &p.FaceID, &p.EnglishName, &p.KhmerName, &p.DateOfBirth, &p.Sex,
		&p.PhoneNumber, &p.Address, &p.LocationID, &p.LocationName, &p.QueueNo,
		&p.LastUpdatedBy, &p.LastUpdatedAt, &p.CreatedAt,
	)
	return p, err
}

func (r *pgRepository) Create(ctx context.Context, in CreateInput, updatedBy int64) (Patient, error) {
	var id int64
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patients
			(face_id, english_name, khmer_name, date_of_birth, sex,
			 phone_number, address, location_id, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		in.FaceID, in.EnglishName, in.KhmerName, in.DateOfBirth, in.Sex,
		in.PhoneNumber, in.Address, in.LocationID, nullableUser(updatedBy),
	).Scan(&id)
	if err != nil {
		return Patient{}, db.Translate(err, "referenced location does not exist")
	}
	return r.GetByID(ctx, id)
}

func (r *pgRepository) GetByID(ctx context.Context, id int64) (Patient, error) {
	p, err := scanPatient(r.conn(ctx).QueryRow(ctx, `
		SELECT `+patientCols+`
		FROM patients p
		LEFT JOIN locations l ON l.id = p.location_id
		WHERE p.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Patient{}, apperr.NotFound("patient not found")
	}
	if err != nil {
		return Patient{}, apperr.Internal(err)
	}
	return p, nil
}

func (r *pgRepository) Update(ctx context.Context, id int64, in UpdateInput, updatedBy int64) (Patient, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patients SET
			face_id         = COALESCE($2, face_id),
			english_name    = COALESCE($3, english_name),
			khmer_name      = COALESCE($4, khmer_name),
			date_of_birth   = COALESCE($5, date_of_birth),
			sex             = COALESCE($6, sex),
			phone_number    = COALESCE($7, phone_number),
			address         = COALESCE($8, address),
			location_id     = COALESCE($9, location_id),
			last_updated_by = $10,
			last_updated_at = NOW()
		WHERE id = $1`,
		id, in.FaceID, in.EnglishName, in.KhmerName, in.DateOfBirth, in.Sex,
		in.PhoneNumber, in.Address, in.LocationID, nullableUser(updatedBy),
	)
	if err != nil {
		return Patient{}, db.Translate(err, "referenced location does not exist")
	}
	if tag.RowsAffected() == 0 {
		return Patient{}, apperr.NotFound("patient not found")
	}
	return r.GetByID(ctx, id)
}

func (r *pgRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("patient not found")
	}
	return nil
}

func (r *pgRepository) ListByLocation(ctx context.Context, locationID int64, limit, offset int) ([]Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM patients WHERE location_id = $1`, locationID,
	).Scan(&total); err != nil {
		return nil, 0, apperr.Internal(err)
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+patientCols+`
		FROM patients p
		JOIN locations l ON l.id = p.location_id
		WHERE p.location_id = $1
		ORDER BY p.english_name ASC
		LIMIT $2 OFFSET $3`, locationID, limit, offset)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	defer rows.Close()
	out, err := collectPatients(rows)
	return out, total, err
}

func (r *pgRepository) Search(ctx context.Context, q string, limit int) ([]Patient, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+patientCols+`
		FROM patients p
		LEFT JOIN locations l ON l.id = p.location_id
		WHERE p.english_name ILIKE $1 OR p.khmer_name ILIKE $1
		ORDER BY p.english_name ASC
		LIMIT $2`,
		"%"+q+"%", limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer rows.Close()
	return collectPatients(rows)
}

func collectPatients(rows pgx.Rows) ([]Patient, error) {
	var out []Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *pgRepository) VisitSummaries(ctx context.Context, patientID int64) ([]VisitSummary, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT
			v.id, v.queue_no, v.visit_date, l.name, v.last_updated_at,
			vt.id IS NOT NULL,
			pc.id IS NOT NULL,
			s.id  IS NOT NULL,
			pt.id IS NOT NULL,
			c.id  IS NOT NULL
		FROM visits v
		LEFT JOIN locations l            ON l.id = v.location_id
		LEFT JOIN vitals vt              ON vt.visit_id = v.id
		LEFT JOIN presenting_complaint pc ON pc.visit_id = v.id
		LEFT JOIN seva s                 ON s.visit_id = v.id
		LEFT JOIN physiotherapy pt       ON pt.visit_id = v.id
		LEFT JOIN consultation c         ON c.visit_id = v.id
		WHERE v.patient_id = $1
		ORDER BY v.visit_date DESC, v.created_at DESC`, patientID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer rows.Close()

	var out []VisitSummary
	for rows.Next() {
		var vs VisitSummary
		if err := rows.Scan(
			&vs.VisitID, &vs.QueueNo, &vs.VisitDate, &vs.LocationName, &vs.LastUpdatedAt,
			&vs.HasVitals, &vs.HasPresentingComplaint, &vs.HasSeva,
			&vs.HasPhysiotherapy, &vs.HasConsultation,
		); err != nil {
			return nil, apperr.Internal(err)
		}
		out = append(out, vs)
	}
	return out, rows.Err()
}

func (r *pgRepository) SetQueueNo(ctx context.Context, id int64, queueNo string) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE patients SET queue_no = $2, last_updated_at = NOW() WHERE id = $1`,
		id, queueNo)
	if err != nil {
		return apperr.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("patient not found")
	}
	return nil
}

// nullableUser maps the anonymous identity (id 0) to NULL so the FK to users
// is not violated in permissive mode.
func nullableUser(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}
