package record

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/veasna/clinic/internal/platform/apperr"
	"github.com/veasna/clinic/pkg/date"
)

// ReferralTypes is the closed set of facilities the clinic refers to.
var ReferralTypes = []string{
	"MongKol Borey Hospital",
	"Optometrist",
	"Dentist",
	"Poipet Referral Hospital",
	"Bong Bondol",
	"SEVA",
	"WSAudiology",
}

func validReferralType(t string) bool {
	for _, known := range ReferralTypes {
		if t == known {
			return true
		}
	}
	return false
}

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) UpsertVitals(ctx context.Context, visitID int64, in VitalsInput, updatedBy int64) (Vitals, error) {
	if in.Height != nil && *in.Height < 0 {
		return Vitals{}, apperr.InvalidField("height", "height must not be negative")
	}
	if in.Weight != nil && *in.Weight < 0 {
		return Vitals{}, apperr.InvalidField("weight", "weight must not be negative")
	}
	return s.repo.UpsertVitals(ctx, visitID, in, updatedBy)
}

func (s *Service) GetVitals(ctx context.Context, visitID int64) (*Vitals, error) {
	return s.repo.GetVitals(ctx, visitID)
}

func (s *Service) UpsertHEF(ctx context.Context, visitID int64, in HEFInput, updatedBy int64) (HEF, error) {
	if in.KnowOfHEF == nil {
		return HEF{}, apperr.InvalidField("know_of_hef", "know_of_hef is required")
	}
	if in.HasHEF == nil {
		return HEF{}, apperr.InvalidField("has_hef", "has_hef is required")
	}
	return s.repo.UpsertHEF(ctx, visitID, in, updatedBy)
}

func (s *Service) GetHEF(ctx context.Context, visitID int64) (*HEF, error) {
	return s.repo.GetHEF(ctx, visitID)
}

func (s *Service) UpsertVisualAcuity(ctx context.Context, visitID int64, in VisualAcuityInput, updatedBy int64) (VisualAcuity, error) {
	return s.repo.UpsertVisualAcuity(ctx, visitID, in, updatedBy)
}

func (s *Service) GetVisualAcuity(ctx context.Context, visitID int64) (*VisualAcuity, error) {
	return s.repo.GetVisualAcuity(ctx, visitID)
}

func (s *Service) UpsertPresentingComplaint(ctx context.Context, visitID int64, in PresentingComplaintInput, updatedBy int64) (PresentingComplaint, error) {
	return s.repo.UpsertPresentingComplaint(ctx, visitID, in, updatedBy)
}

func (s *Service) GetPresentingComplaint(ctx context.Context, visitID int64) (*PresentingComplaint, error) {
	return s.repo.GetPresentingComplaint(ctx, visitID)
}

func (s *Service) UpsertHistory(ctx context.Context, visitID int64, in HistoryInput, updatedBy int64) (History, error) {
	return s.repo.UpsertHistory(ctx, visitID, in, updatedBy)
}

func (s *Service) GetHistory(ctx context.Context, visitID int64) (*History, error) {
	return s.repo.GetHistory(ctx, visitID)
}

func (s *Service) UpsertSeva(ctx context.Context, visitID int64, in SevaInput, updatedBy int64) (Seva, error) {
	return s.repo.UpsertSeva(ctx, visitID, in, updatedBy)
}

func (s *Service) GetSeva(ctx context.Context, visitID int64) (*Seva, error) {
	return s.repo.GetSeva(ctx, visitID)
}

func (s *Service) UpsertPhysiotherapy(ctx context.Context, visitID int64, in PhysiotherapyInput, updatedBy int64) (Physiotherapy, error) {
	return s.repo.UpsertPhysiotherapy(ctx, visitID, in, updatedBy)
}

func (s *Service) GetPhysiotherapy(ctx context.Context, visitID int64) (*Physiotherapy, error) {
	return s.repo.GetPhysiotherapy(ctx, visitID)
}

func (s *Service) UpsertConsultation(ctx context.Context, visitID int64, in ConsultationInput, updatedBy int64) (Consultation, error) {
	return s.repo.UpsertConsultation(ctx, visitID, in, updatedBy)
}

func (s *Service) GetConsultation(ctx context.Context, visitID int64) (*ConsultationDetail, error) {
	return s.repo.GetConsultation(ctx, visitID)
}

func (s *Service) UpsertReferral(ctx context.Context, visitID int64, in ReferralInput, updatedBy int64) (Referral, error) {
	if in.ReferralType == "" {
		return Referral{}, apperr.InvalidField("referral_type", "referral_type is required")
	}
	if !validReferralType(in.ReferralType) {
		return Referral{}, apperr.InvalidField("referral_type",
			"referral_type must be one of the known facilities")
	}
	return s.repo.UpsertReferral(ctx, visitID, in, updatedBy)
}

func (s *Service) GetReferral(ctx context.Context, visitID int64) (*Referral, error) {
	return s.repo.GetReferral(ctx, visitID)
}

func (s *Service) GetReferralByConsultation(ctx context.Context, consultationID int64) (*Referral, error) {
	return s.repo.GetReferralByConsultation(ctx, consultationID)
}

func (s *Service) ReferralsByDate(ctx context.Context, day date.Date) ([]ReferralRow, error) {
	return s.repo.ReferralsByDate(ctx, day)
}
