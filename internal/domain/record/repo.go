package record

import (
	"context"

	"github.com/veasna/clinic/pkg/date"
)

// Repository is the persistence surface for every clinical record type. All
// upserts are keyed by visit_id; all Get methods return nil when the visit
// has no row of that type yet.
type Repository interface {
	UpsertVitals(ctx context.Context, visitID int64, in VitalsInput, updatedBy int64) (Vitals, error)
	GetVitals(ctx context.Context, visitID int64) (*Vitals, error)

	UpsertHEF(ctx context.Context, visitID int64, in HEFInput, updatedBy int64) (HEF, error)
	GetHEF(ctx context.Context, visitID int64) (*HEF, error)

	UpsertVisualAcuity(ctx context.Context, visitID int64, in VisualAcuityInput, updatedBy int64) (VisualAcuity, error)
	GetVisualAcuity(ctx context.Context, visitID int64) (*VisualAcuity, error)

	UpsertPresentingComplaint(ctx context.Context, visitID int64, in PresentingComplaintInput, updatedBy int64) (PresentingComplaint, error)
	GetPresentingComplaint(ctx context.Context, visitID int64) (*PresentingComplaint, error)

	UpsertHistory(ctx context.Context, visitID int64, in HistoryInput, updatedBy int64) (History, error)
	GetHistory(ctx context.Context, visitID int64) (*History, error)

	UpsertSeva(ctx context.Context, visitID int64, in SevaInput, updatedBy int64) (Seva, error)
	GetSeva(ctx context.Context, visitID int64) (*Seva, error)

	// UpsertPhysiotherapy replaces the painpoint set wholesale inside one
	// transaction, so readers never observe a half-replaced set.
	UpsertPhysiotherapy(ctx context.Context, visitID int64, in PhysiotherapyInput, updatedBy int64) (Physiotherapy, error)
	GetPhysiotherapy(ctx context.Context, visitID int64) (*Physiotherapy, error)

	UpsertConsultation(ctx context.Context, visitID int64, in ConsultationInput, updatedBy int64) (Consultation, error)
	GetConsultation(ctx context.Context, visitID int64) (*ConsultationDetail, error)

	UpsertReferral(ctx context.Context, visitID int64, in ReferralInput, updatedBy int64) (Referral, error)
	GetReferral(ctx context.Context, visitID int64) (*Referral, error)
	GetReferralByConsultation(ctx context.Context, consultationID int64) (*Referral, error)
	ReferralsByDate(ctx context.Context, day date.Date) ([]ReferralRow, error)
}
