package visit

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/veasna/clinic/internal/domain/patient"
	"github.com/veasna/clinic/internal/domain/record"
	"github.com/veasna/clinic/internal/platform/apperr"
	"github.com/veasna/clinic/pkg/date"
)

type Service struct {
	repo     Repository
	patients patient.Repository
	records  record.Repository
	logger   zerolog.Logger
}

func NewService(repo Repository, patients patient.Repository, records record.Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, patients: patients, records: records, logger: logger}
}

// Resolve returns the visit for the given natural key, creating it if none
// exists. Resubmitting identical registration data returns the same visit id
// without creating a duplicate row. A concurrent create racing on the same
// key loses at the database unique constraint and surfaces as a conflict.
func (s *Service) Resolve(ctx context.Context, in ResolveInput, updatedBy int64) (Visit, error) {
	if in.PatientID == 0 {
		return Visit{}, apperr.InvalidField("patient_id", "patient_id is required")
	}
	if in.LocationID == 0 {
		return Visit{}, apperr.InvalidField("location_id", "location_id is required")
	}
	token, err := NormalizeQueueToken(in.QueueNo)
	if err != nil {
		return Visit{}, err
	}
	in.QueueNo = token
	if in.VisitDate.IsZero() {
		in.VisitDate = date.Today()
	}

	existing, err := s.repo.FindByNaturalKey(ctx, in.PatientID, in.LocationID, in.VisitDate, in.QueueNo)
	if err != nil {
		return Visit{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	v, err := s.repo.Create(ctx, in, updatedBy)
	if err != nil {
		return Visit{}, err
	}
	s.logger.Info().Int64("visit_id", v.ID).Int64("patient_id", v.PatientID).
		Str("queue_no", v.QueueNo).Msg("visit created")
	return v, nil
}

// UpsertDayVisit targets the patient's visit for a location and day whatever
// its current token: an existing visit gets the new token written over the
// old one, otherwise a fresh visit is created. Used by the composite update
// flow, which addresses the clinic day rather than the exact token. The
// caller is responsible for mirroring the token onto the patient.
func (s *Service) UpsertDayVisit(ctx context.Context, in ResolveInput, updatedBy int64) (Visit, error) {
	if in.PatientID == 0 {
		return Visit{}, apperr.InvalidField("patient_id", "patient_id is required")
	}
	if in.LocationID == 0 {
		return Visit{}, apperr.InvalidField("location_id", "location_id is required")
	}
	token, err := NormalizeQueueToken(in.QueueNo)
	if err != nil {
		return Visit{}, err
	}
	in.QueueNo = token
	if in.VisitDate.IsZero() {
		in.VisitDate = date.Today()
	}

	existing, err := s.repo.FindByDay(ctx, in.PatientID, in.LocationID, in.VisitDate)
	if err != nil {
		return Visit{}, err
	}
	if existing != nil {
		if existing.QueueNo == token {
			return *existing, nil
		}
		return s.repo.SetQueueNo(ctx, existing.ID, token, updatedBy)
	}
	return s.repo.Create(ctx, in, updatedBy)
}

// SetQueueNumber renormalizes and writes the token on the visit, then mirrors
// it onto the owning patient. A mirror failure fails the whole call even
// though the visit row changed; the caller retries and the mirror converges.
func (s *Service) SetQueueNumber(ctx context.Context, visitID int64, rawToken string, updatedBy int64) (Visit, error) {
	token, err := NormalizeQueueToken(rawToken)
	if err != nil {
		return Visit{}, err
	}

	v, err := s.repo.SetQueueNo(ctx, visitID, token, updatedBy)
	if err != nil {
		return Visit{}, err
	}
	if err := s.patients.SetQueueNo(ctx, v.PatientID, token); err != nil {
		return Visit{}, err
	}

	s.logger.Info().Int64("visit_id", v.ID).Str("queue_no", token).Msg("queue number updated")
	return v, nil
}

func (s *Service) Queue(ctx context.Context, locationID int64, day date.Date) ([]QueueEntry, error) {
	if locationID == 0 {
		return nil, apperr.InvalidField("location_id", "location_id is required")
	}
	if day.IsZero() {
		return nil, apperr.InvalidField("visit_date", "visit_date is required")
	}
	return s.repo.ListByLocationAndDate(ctx, locationID, day)
}

// Detail assembles the full visit view: the visit row, the patient header,
// and every clinical record attached to the visit.
func (s *Service) Detail(ctx context.Context, visitID int64) (Detail, error) {
	v, err := s.repo.GetByID(ctx, visitID)
	if err != nil {
		return Detail{}, err
	}
	header, err := s.repo.PatientHeader(ctx, v.PatientID)
	if err != nil {
		return Detail{}, err
	}

	d := Detail{Visit: v, Patient: header}
	if d.Records.Vitals, err = s.records.GetVitals(ctx, visitID); err != nil {
		return Detail{}, err
	}
	if d.Records.HEF, err = s.records.GetHEF(ctx, visitID); err != nil {
		return Detail{}, err
	}
	if d.Records.VisualAcuity, err = s.records.GetVisualAcuity(ctx, visitID); err != nil {
		return Detail{}, err
	}
	if d.Records.PresentingComplaint, err = s.records.GetPresentingComplaint(ctx, visitID); err != nil {
		return Detail{}, err
	}
	if d.Records.History, err = s.records.GetHistory(ctx, visitID); err != nil {
		return Detail{}, err
	}
	if d.Records.Seva, err = s.records.GetSeva(ctx, visitID); err != nil {
		return Detail{}, err
	}
	if d.Records.Physiotherapy, err = s.records.GetPhysiotherapy(ctx, visitID); err != nil {
		return Detail{}, err
	}
	if d.Records.Consultation, err = s.records.GetConsultation(ctx, visitID); err != nil {
		return Detail{}, err
	}
	if d.Records.Referral, err = s.records.GetReferral(ctx, visitID); err != nil {
		return Detail{}, err
	}
	return d, nil
}

// MirrorQueueNo writes the denormalized token onto the patient. Exposed for
// the composite registration flow, which runs it inside its transaction.
func (s *Service) MirrorQueueNo(ctx context.Context, patientID int64, token string) error {
	return s.patients.SetQueueNo(ctx, patientID, token)
}
