package record

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

const noVisitMsg = "referenced visit does not exist"

// nullableUser maps the anonymous identity to NULL for the users FK.
func nullableUser(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

// --- vitals ---

func (r *pgRepository) UpsertVitals(ctx context.Context, visitID int64, in VitalsInput, updatedBy int64) (Vitals, error) {
	var v Vitals
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO vitals
			(visit_id, height, weight, bmi, below_3rd_percentile,
			 bp_systolic, bp_diastolic, temperature, notes, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (visit_id) DO UPDATE SET
			height = EXCLUDED.height,
			weight = EXCLUDED.weight,
			bmi = EXCLUDED.bmi,
			below_3rd_percentile = EXCLUDED.below_3rd_percentile,
			bp_systolic = EXCLUDED.bp_systolic,
			bp_diastolic = EXCLUDED.bp_diastolic,
			temperature = EXCLUDED.temperature,
			notes = EXCLUDED.notes,
			last_updated_by = EXCLUDED.last_updated_by,
			last_updated_at = NOW()
		RETURNING id, visit_id, height, weight, bmi, below_3rd_percentile,
			bp_systolic, bp_diastolic, temperature, notes,
			last_updated_by, last_updated_at, created_at`,
		visitID, in.Height, in.Weight, in.BMI, in.Below3rdPercentile,
		in.BPSystolic, in.BPDiastolic, in.Temperature, in.Notes, nullableUser(updatedBy),
	).Scan(&v.ID, &v.VisitID, &v.Height, &v.Weight, &v.BMI, &v.Below3rdPercentile,
		&v.BPSystolic, &v.BPDiastolic, &v.Temperature, &v.Notes,
		&v.LastUpdatedBy, &v.LastUpdatedAt, &v.CreatedAt)
	if err != nil {
		return Vitals{}, db.Translate(err, noVisitMsg)
	}
	return v, nil
}

func (r *pgRepository) GetVitals(ctx context.Context, visitID int64) (*Vitals, error) {
	var v Vitals
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, visit_id, height, weight, bmi, below_3rd_percentile,
			bp_systolic, bp_diastolic, temperature, notes,
			last_updated_by, last_updated_at, created_at
		FROM vitals WHERE visit_id = $1`, visitID,
	).Scan(&v.ID, &v.VisitID, &v.Height, &v.Weight, &v.BMI, &v.Below3rdPercentile,
		&v.BPSystolic, &v.BPDiastolic, &v.Temperature, &v.Notes,
		&v.LastUpdatedBy, &v.LastUpdatedAt, &v.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &v, nil
}

// --- hef ---

func (r *pgRepository) UpsertHEF(ctx context.Context, visitID int64, in HEFInput, updatedBy int64) (HEF, error) {
	var h HEF
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO hef (visit_id, know_of_hef, has_hef, notes, last_updated_by)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (visit_id) DO UPDATE SET
			know_of_hef = EXCLUDED.know_of_hef,
			has_hef = EXCLUDED.has_hef,
			notes = EXCLUDED.notes,
			last_updated_by = EXCLUDED.last_updated_by,
			last_updated_at = NOW()
		RETURNING id, visit_id, know_of_hef, has_hef, notes,
			last_updated_by, last_updated_at, created_at`,
		visitID, in.KnowOfHEF, in.HasHEF, in.Notes, nullableUser(updatedBy),
	).Scan(&h.ID, &h.VisitID, &h.KnowOfHEF, &h.HasHEF, &h.Notes,
		&h.LastUpdatedBy, &h.LastUpdatedAt, &h.CreatedAt)
	if err != nil {
		return HEF{}, db.Translate(err, noVisitMsg)
	}
	return h, nil
}

func (r *pgRepository) GetHEF(ctx context.Context, visitID int64) (*HEF, error) {
	var h HEF
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, visit_id, know_of_hef, has_hef, notes,
			last_updated_by, last_updated_at, created_at
		FROM hef WHERE visit_id = $1`, visitID,
	).Scan(&h.ID, &h.VisitID, &h.KnowOfHEF, &h.HasHEF, &h.Notes,
		&h.LastUpdatedBy, &h.LastUpdatedAt, &h.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &h, nil
}

// --- visual acuity ---

func (r *pgRepository) UpsertVisualAcuity(ctx context.Context, visitID int64, in VisualAcuityInput, updatedBy int64) (VisualAcuity, error) {
	var va VisualAcuity
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO visual_acuity
			(visit_id, left_with_pinhole, left_without_pinhole,
			 right_with_pinhole, right_without_pinhole, notes, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (visit_id) DO UPDATE SET
			left_with_pinhole = EXCLUDED.left_with_pinhole,
			left_without_pinhole = EXCLUDED.left_without_pinhole,
			right_with_pinhole = EXCLUDED.right_with_pinhole,
			right_without_pinhole = EXCLUDED.right_without_pinhole,
			notes = EXCLUDED.notes,
			last_updated_by = EXCLUDED.last_updated_by,
			last_updated_at = NOW()
		RETURNING id, visit_id, left_with_pinhole, left_without_pinhole,
			right_with_pinhole, right_without_pinhole, notes,
			last_updated_by, last_updated_at, created_at`,
		visitID, in.LeftWithPinhole, in.LeftWithoutPinhole,
		in.RightWithPinhole, in.RightWithoutPinhole, in.Notes, nullableUser(updatedBy),
	).Scan(&va.ID, &va.VisitID, &va.LeftWithPinhole, &va.LeftWithoutPinhole,
		&va.RightWithPinhole, &va.RightWithoutPinhole, &va.Notes,
		&va.LastUpdatedBy, &va.LastUpdatedAt, &va.CreatedAt)
	if err != nil {
		return VisualAcuity{}, db.Translate(err, noVisitMsg)
	}
	return va, nil
}

func (r *pgRepository) GetVisualAcuity(ctx context.Context, visitID int64) (*VisualAcuity, error) {
	var va VisualAcuity
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, visit_id, left_with_pinhole, left_without_pinhole,
			right_with_pinhole, right_without_pinhole, notes,
			last_updated_by, last_updated_at, created_at
		FROM visual_acuity WHERE visit_id = $1`, visitID,
	).Scan(&va.ID, &va.VisitID, &va.LeftWithPinhole, &va.LeftWithoutPinhole,
		&va.RightWithPinhole, &va.RightWithoutPinhole, &va.Notes,
		&va.LastUpdatedBy, &va.LastUpdatedAt, &va.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &va, nil
}

// --- presenting complaint ---

func (r *pgRepository) UpsertPresentingComplaint(ctx context.Context, visitID int64, in PresentingComplaintInput, updatedBy int64) (PresentingComplaint, error) {
	var pc PresentingComplaint
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO presenting_complaint
			(visit_id, history, red_flags, systems_review, drug_allergies, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (visit_id) DO UPDATE SET
			history = EXCLUDED.history,
			red_flags = EXCLUDED.red_flags,
			systems_review = EXCLUDED.systems_review,
			drug_allergies = EXCLUDED.drug_allergies,
			last_updated_by = EXCLUDED.last_updated_by,
			last_updated_at = NOW()
		RETURNING id, visit_id, history, red_flags, systems_review, drug_allergies,
			last_updated_by, last_updated_at, created_at`,
		visitID, in.History, in.RedFlags, in.SystemsReview, in.DrugAllergies, nullableUser(updatedBy),
	).Scan(&pc.ID, &pc.VisitID, &pc.History, &pc.RedFlags, &pc.SystemsReview,
		&pc.DrugAllergies, &pc.LastUpdatedBy, &pc.LastUpdatedAt, &pc.CreatedAt)
	if err != nil {
		return PresentingComplaint{}, db.Translate(err, noVisitMsg)
	}
	return pc, nil
}

func (r *pgRepository) GetPresentingComplaint(ctx context.Context, visitID int64) (*PresentingComplaint, error) {
	var pc PresentingComplaint
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, visit_id, history, red_flags, systems_review, drug_allergies,
			last_updated_by, last_updated_at, created_at
		FROM presenting_complaint WHERE visit_id = $1`, visitID,
	).Scan(&pc.ID, &pc.VisitID, &pc.History, &pc.RedFlags, &pc.SystemsReview,
		&pc.DrugAllergies, &pc.LastUpdatedBy, &pc.LastUpdatedAt, &pc.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &pc, nil
}

// --- history ---

func (r *pgRepository) UpsertHistory(ctx context.Context, visitID int64, in HistoryInput, updatedBy int64) (History, error) {
	var h History
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO history
			(visit_id, past, drug_and_treatment, family, social, systems_review, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (visit_id) DO UPDATE SET
			past = EXCLUDED.past,
			drug_and_treatment = EXCLUDED.drug_and_treatment,
			family = EXCLUDED.family,
			social = EXCLUDED.social,
			systems_review = EXCLUDED.systems_review,
			last_updated_by = EXCLUDED.last_updated_by,
			last_updated_at = NOW()
		RETURNING id, visit_id, past, drug_and_treatment, family, social, systems_review,
			last_updated_by, last_updated_at, created_at`,
		visitID, in.Past, in.DrugAndTreatment, in.Family, in.Social,
		in.SystemsReview, nullableUser(updatedBy),
	).Scan(&h.ID, &h.VisitID, &h.Past, &h.DrugAndTreatment, &h.Family, &h.Social,
		&h.SystemsReview, &h.LastUpdatedBy, &h.LastUpdatedAt, &h.CreatedAt)
	if err != nil {
		return History{}, db.Translate(err, noVisitMsg)
	}
	return h, nil
}

func (r *pgRepository) GetHistory(ctx context.Context, visitID int64) (*History, error) {
	var h History
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, visit_id, past, drug_and_treatment, family, social, systems_review,
			last_updated_by, last_updated_at, created_at
		FROM history WHERE visit_id = $1`, visitID,
	).Scan(&h.ID, &h.VisitID, &h.Past, &h.DrugAndTreatment, &h.Family, &h.Social,
		&h.SystemsReview, &h.LastUpdatedBy, &h.LastUpdatedAt, &h.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &h, nil
}

// --- seva ---

func (r *pgRepository) UpsertSeva(ctx context.Context, visitID int64, in SevaInput, updatedBy int64) (Seva, error) {
	var s Seva
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO seva
			(visit_id, left_with_pinhole_new, right_with_pinhole_new,
			 left_without_pinhole_new, right_without_pinhole_new,
			 diagnosis, date_of_referral, notes, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (visit_id) DO UPDATE SET
			left_with_pinhole_new = EXCLUDED.left_with_pinhole_new,
			right_with_pinhole_new = EXCLUDED.right_with_pinhole_new,
			left_without_pinhole_new = EXCLUDED.left_without_pinhole_new,
			right_without_pinhole_new = EXCLUDED.right_without_pinhole_new,
			diagnosis = EXCLUDED.diagnosis,
			date_of_referral = EXCLUDED.date_of_referral,
			notes = EXCLUDED.notes,
			last_updated_by = EXCLUDED.last_updated_by,
			last_updated_at = NOW()
		RETURNING id, visit_id, left_with_pinhole_new, right_with_pinhole_new,
			left_without_pinhole_new, right_without_pinhole_new,
			diagnosis, date_of_referral, notes,
			last_updated_by, last_updated_at, created_at`,
		visitID, in.LeftWithPinhole, in.RightWithPinhole,
		in.LeftWithoutPinhole, in.RightWithoutPinhole,
		in.Diagnosis, in.DateOfReferral, in.Notes, nullableUser(updatedBy),
	).Scan(&s.ID, &s.VisitID, &s.LeftWithPinhole, &s.RightWithPinhole,
		&s.LeftWithoutPinhole, &s.RightWithoutPinhole,
		&s.Diagnosis, &s.DateOfReferral, &s.Notes,
		&s.LastUpdatedBy, &s.LastUpdatedAt, &s.CreatedAt)
	if err != nil {
		return Seva{}, db.Translate(err, noVisitMsg)
	}
	return s, nil
}

func (r *pgRepository) GetSeva(ctx context.Context, visitID int64) (*Seva, error) {
	var s Seva
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, visit_id, left_with_pinhole_new, right_with_pinhole_new,
			left_without_pinhole_new, right_without_pinhole_new,
			diagnosis, date_of_referral, notes,
			last_updated_by, last_updated_at, created_at
		FROM seva WHERE visit_id = $1`, visitID,
	).Scan(&s.ID, &s.VisitID, &s.LeftWithPinhole, &s.RightWithPinhole,
		&s.LeftWithoutPinhole, &s.RightWithoutPinhole,
		&s.Diagnosis, &s.DateOfReferral, &s.Notes,
		&s.LastUpdatedBy, &s.LastUpdatedAt, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &s, nil
}

// --- physiotherapy + painpoints ---

func (r *pgRepository) UpsertPhysiotherapy(ctx context.Context, visitID int64, in PhysiotherapyInput, updatedBy int64) (Physiotherapy, error) {
	var p Physiotherapy
	err := db.WithTx(ctx, r.pool, func(ctx context.Context) error {
		q := r.conn(ctx)

		err := q.QueryRow(ctx, `
			INSERT INTO physiotherapy (visit_id, notes, last_updated_by)
			VALUES ($1, $2, $3)
			ON CONFLICT (visit_id) DO UPDATE SET
				notes = EXCLUDED.notes,
				last_updated_by = EXCLUDED.last_updated_by,
				last_updated_at = NOW()
			RETURNING id, visit_id, notes, last_updated_by, last_updated_at, created_at`,
			visitID, in.Notes, nullableUser(updatedBy),
		).Scan(&p.ID, &p.VisitID, &p.Notes, &p.LastUpdatedBy, &p.LastUpdatedAt, &p.CreatedAt)
		if err != nil {
			return db.Translate(err, noVisitMsg)
		}

		// Full replace: the submitted set is the new truth.
		if _, err := q.Exec(ctx,
			`DELETE FROM painpoints WHERE physiotherapy_id = $1`, p.ID); err != nil {
			return apperr.Internal(err)
		}
		p.Painpoints = make([]Painpoint, 0, len(in.Painpoints))
		for _, pp := range in.Painpoints {
			var saved Painpoint
			err := q.QueryRow(ctx, `
				INSERT INTO painpoints (physiotherapy_id, x_coord, y_coord, last_updated_by)
				VALUES ($1, $2, $3, $4)
				RETURNING id, x_coord, y_coord`,
				p.ID, pp.XCoord, pp.YCoord, nullableUser(updatedBy),
			).Scan(&saved.ID, &saved.XCoord, &saved.YCoord)
			if err != nil {
				return apperr.Internal(err)
			}
			p.Painpoints = append(p.Painpoints, saved)
		}
		return nil
	})
	if err != nil {
		return Physiotherapy{}, err
	}
	return p, nil
}

func (r *pgRepository) GetPhysiotherapy(ctx context.Context, visitID int64) (*Physiotherapy, error) {
	var p Physiotherapy
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, visit_id, notes, last_updated_by, last_updated_at, created_at
		FROM physiotherapy WHERE visit_id = $1`, visitID,
	).Scan(&p.ID, &p.VisitID, &p.Notes, &p.LastUpdatedBy, &p.LastUpdatedAt, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, x_coord, y_coord
		FROM painpoints WHERE physiotherapy_id = $1
		ORDER BY id`, p.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer rows.Close()

	p.Painpoints = []Painpoint{}
	for rows.Next() {
		var pp Painpoint
		if err := rows.Scan(&pp.ID, &pp.XCoord, &pp.YCoord); err != nil {
			return nil, apperr.Internal(err)
		}
		p.Painpoints = append(p.Painpoints, pp)
	}
	return &p, rows.Err()
}

// --- consultation ---

func (r *pgRepository) UpsertConsultation(ctx context.Context, visitID int64, in ConsultationInput, updatedBy int64) (Consultation, error) {
	var c Consultation
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO consultation (visit_id, notes, prescription, require_referral, last_updated_by)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (visit_id) DO UPDATE SET
			notes = EXCLUDED.notes,
			prescription = EXCLUDED.prescription,
			require_referral = EXCLUDED.require_referral,
			last_updated_by = EXCLUDED.last_updated_by,
			last_updated_at = NOW()
		RETURNING id, visit_id, notes, prescription, require_referral,
			last_updated_by, last_updated_at, created_at`,
		visitID, in.Notes, in.Prescription, in.RequireReferral, nullableUser(updatedBy),
	).Scan(&c.ID, &c.VisitID, &c.Notes, &c.Prescription, &c.RequireReferral,
		&c.LastUpdatedBy, &c.LastUpdatedAt, &c.CreatedAt)
	if err != nil {
		return Consultation{}, db.Translate(err, noVisitMsg)
	}
	return c, nil
}

func (r *pgRepository) GetConsultation(ctx context.Context, visitID int64) (*ConsultationDetail, error) {
	var d ConsultationDetail
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, visit_id, notes, prescription, require_referral,
			last_updated_by, last_updated_at, created_at
		FROM consultation WHERE visit_id = $1`, visitID,
	).Scan(&d.ID, &d.VisitID, &d.Notes, &d.Prescription, &d.RequireReferral,
		&d.LastUpdatedBy, &d.LastUpdatedAt, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}

	ref, err := r.GetReferral(ctx, visitID)
	if err != nil {
		return nil, err
	}
	d.Referral = ref
	return &d, nil
}

// --- referral ---

func (r *pgRepository) UpsertReferral(ctx context.Context, visitID int64, in ReferralInput, updatedBy int64) (Referral, error) {
	var ref Referral
	// consultation_id is kept in step with the visit's consultation so the
	// legacy by-consultation lookup keeps working.
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO referral
			(visit_id, consultation_id, referral_date, referral_type,
			 illness, duration, reason, last_updated_by)
		VALUES ($1, (SELECT id FROM consultation WHERE visit_id = $1),
			$2, $3, $4, $5, $6, $7)
		ON CONFLICT (visit_id) DO UPDATE SET
			consultation_id = EXCLUDED.consultation_id,
			referral_date = EXCLUDED.referral_date,
			referral_type = EXCLUDED.referral_type,
			illness = EXCLUDED.illness,
			duration = EXCLUDED.duration,
			reason = EXCLUDED.reason,
			last_updated_by = EXCLUDED.last_updated_by,
			last_updated_at = NOW()
		RETURNING id, visit_id, doctor_id, consultation_id, referral_date,
			referral_type, illness, duration, reason,
			last_updated_by, last_updated_at, created_at`,
		visitID, in.ReferralDate, in.ReferralType,
		in.Illness, in.Duration, in.Reason, nullableUser(updatedBy),
	).Scan(&ref.ID, &ref.VisitID, &ref.DoctorID, &ref.ConsultationID, &ref.ReferralDate,
		&ref.ReferralType, &ref.Illness, &ref.Duration, &ref.Reason,
		&ref.LastUpdatedBy, &ref.LastUpdatedAt, &ref.CreatedAt)
	if err != nil {
		return Referral{}, db.Translate(err, noVisitMsg)
	}
	return ref, nil
}

func (r *pgRepository) GetReferral(ctx context.Context, visitID int64) (*Referral, error) {
	return r.getReferral(ctx, `visit_id`, visitID)
}

func (r *pgRepository) GetReferralByConsultation(ctx context.Context, consultationID int64) (*Referral, error) {
	return r.getReferral(ctx, `consultation_id`, consultationID)
}

func (r *pgRepository) getReferral(ctx context.Context, keyCol string, key int64) (*Referral, error) {
	var ref Referral
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, visit_id, doctor_id, consultation_id, referral_date,
			referral_type, illness, duration, reason,
			last_updated_by, last_updated_at, created_at
		FROM referral WHERE `+keyCol+` = $1`, key,
	).Scan(&ref.ID, &ref.VisitID, &ref.DoctorID, &ref.ConsultationID, &ref.ReferralDate,
		&ref.ReferralType, &ref.Illness, &ref.Duration, &ref.Reason,
		&ref.LastUpdatedBy, &ref.LastUpdatedAt, &ref.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &ref, nil
}

func (r *pgRepository) ReferralsByDate(ctx context.Context, day date.Date) ([]ReferralRow, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT p.english_name, p.khmer_name, p.sex, p.date_of_birth, p.address, v.queue_no,
			r.referral_date, r.referral_type, r.illness, r.duration, r.reason
		FROM referral r
		JOIN visits v   ON v.id = r.visit_id
		JOIN patients p ON p.id = v.patient_id
		WHERE v.visit_date = $1
		ORDER BY p.english_name ASC`, day)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer rows.Close()

	var out []ReferralRow
	for rows.Next() {
		var row ReferralRow
		if err := rows.Scan(&row.PatientName, &row.KhmerName, &row.Sex, &row.DateOfBirth, &row.Address, &row.QueueNo,
			&row.ReferralDate, &row.ReferralType, &row.Illness, &row.Duration, &row.Reason,
		); err != nil {
			return nil, apperr.Internal(err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
