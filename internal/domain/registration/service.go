package registration

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/veasna/clinic/internal/domain/patient"
	"github.com/veasna/clinic/internal/domain/record"
	"github.com/veasna/clinic/internal/domain/visit"
	"github.com/veasna/clinic/internal/platform/apperr"
)

// TxRunner runs fn atomically. Production wires db.WithTx over the pool;
// tests substitute a pass-through.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	tx       TxRunner
	patients *patient.Service
	visits   *visit.Service
	records  *record.Service
	logger   zerolog.Logger
}

func NewService(tx TxRunner, patients *patient.Service, visits *visit.Service, records *record.Service, logger zerolog.Logger) *Service {
	return &Service{tx: tx, patients: patients, visits: visits, records: records, logger: logger}
}

// Create registers a new patient with optional visit, vitals and HEF. Vitals
// and HEF are visit-scoped, so supplying them without visit data is a
// validation error. Everything runs in one transaction.
func (s *Service) Create(ctx context.Context, req CreateRequest, updatedBy int64) (Result, error) {
	if req.Patient == nil {
		return Result{}, apperr.InvalidField("patient", "patient is required")
	}
	if err := requireVisitFor(req.Visit, req.Vitals, req.HEF); err != nil {
		return Result{}, err
	}

	var result Result
	err := s.tx(ctx, func(ctx context.Context) error {
		p, err := s.patients.Create(ctx, *req.Patient, updatedBy)
		if err != nil {
			return err
		}
		result.Patient = p

		if req.Visit != nil {
			if err := s.applyVisit(ctx, p.ID, req, &result, updatedBy, false); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	s.logger.Info().Int64("patient_id", result.Patient.ID).Msg("registration created")
	return result, nil
}

// Update applies a composite update to an existing patient. The visit section
// targets the patient's visit for that location and day, overwriting its
// queue token, or creates one if the day has no visit yet.
func (s *Service) Update(ctx context.Context, patientID int64, req UpdateRequest, updatedBy int64) (Result, error) {
	if req.Patient == nil && req.Visit == nil && req.Vitals == nil && req.HEF == nil {
		return Result{}, apperr.Invalid("nothing to update")
	}
	if err := requireVisitFor(req.Visit, req.Vitals, req.HEF); err != nil {
		return Result{}, err
	}

	var result Result
	err := s.tx(ctx, func(ctx context.Context) error {
		var err error
		if req.Patient != nil {
			result.Patient, err = s.patients.Update(ctx, patientID, *req.Patient, updatedBy)
		} else {
			d, derr := s.patients.Get(ctx, patientID)
			result.Patient, err = d.Patient, derr
		}
		if err != nil {
			return err
		}

		if req.Visit != nil {
			create := CreateRequest{Visit: req.Visit, Vitals: req.Vitals, HEF: req.HEF}
			if err := s.applyVisit(ctx, patientID, create, &result, updatedBy, true); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	s.logger.Info().Int64("patient_id", patientID).Msg("registration updated")
	return result, nil
}

// applyVisit resolves or upserts the visit, writes the visit-scoped records,
// and mirrors the queue token onto the patient.
func (s *Service) applyVisit(ctx context.Context, patientID int64, req CreateRequest, result *Result, updatedBy int64, reuseDayVisit bool) error {
	in := visit.ResolveInput{
		PatientID:  patientID,
		LocationID: req.Visit.LocationID,
		VisitDate:  req.Visit.VisitDate,
		QueueNo:    req.Visit.QueueNo,
	}

	var v visit.Visit
	var err error
	if reuseDayVisit {
		v, err = s.visits.UpsertDayVisit(ctx, in, updatedBy)
	} else {
		v, err = s.visits.Resolve(ctx, in, updatedBy)
	}
	if err != nil {
		return err
	}
	result.Visit = &v

	if req.Vitals != nil {
		vt, err := s.records.UpsertVitals(ctx, v.ID, *req.Vitals, updatedBy)
		if err != nil {
			return err
		}
		result.Vitals = &vt
	}
	if req.HEF != nil {
		h, err := s.records.UpsertHEF(ctx, v.ID, *req.HEF, updatedBy)
		if err != nil {
			return err
		}
		result.HEF = &h
	}

	if err := s.visits.MirrorQueueNo(ctx, patientID, v.QueueNo); err != nil {
		return err
	}
	result.Patient.QueueNo = &v.QueueNo
	return nil
}

// Delete removes the patient; the schema cascades through visits, records,
// referrals and painpoints.
func (s *Service) Delete(ctx context.Context, patientID int64) error {
	return s.patients.Delete(ctx, patientID)
}

func requireVisitFor(v *VisitInput, vitals *record.VitalsInput, hef *record.HEFInput) error {
	if v != nil {
		return nil
	}
	if vitals != nil {
		return apperr.InvalidField("visit", "vitals require visit data")
	}
	if hef != nil {
		return apperr.InvalidField("visit", "hef requires visit data")
	}
	return nil
}
