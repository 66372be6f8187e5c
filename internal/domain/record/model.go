// Package record implements the clinical record store: one upserted row per
// visit for each form section (vitals, HEF, visual acuity, presenting
// complaint, history, SEVA, physiotherapy with painpoints, consultation,
// referral). The first write for a visit creates the row; every later write
// replaces it in place and bumps last_updated_at.
package record

import (
	"time"

	"github.com/veasna/clinic/pkg/date"
)

// audit is embedded in every record type.
type audit struct {
	LastUpdatedBy *int64    `json:"last_updated_by"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
	CreatedAt     time.Time `json:"created_at"`
}

type Vitals struct {
	ID                 int64    `json:"id"`
	VisitID            int64    `json:"visit_id"`
	Height             *float64 `json:"height"`
	Weight             *float64 `json:"weight"`
	BMI                *float64 `json:"bmi"`
	Below3rdPercentile *bool    `json:"below_3rd_percentile"`
	BPSystolic         *int     `json:"bp_systolic"`
	BPDiastolic        *int     `json:"bp_diastolic"`
	Temperature        *float64 `json:"temperature"`
	Notes              *string  `json:"notes"`
	audit
}

type VitalsInput struct {
	Height             *float64 `json:"height"`
	Weight             *float64 `json:"weight"`
	BMI                *float64 `json:"bmi"`
	Below3rdPercentile *bool    `json:"below_3rd_percentile"`
	BPSystolic         *int     `json:"bp_systolic"`
	BPDiastolic        *int     `json:"bp_diastolic"`
	Temperature        *float64 `json:"temperature"`
	Notes              *string  `json:"notes"`
}

// HEF is the health-equity-fund awareness questionnaire.
type HEF struct {
	ID        int64   `json:"id"`
	VisitID   int64   `json:"visit_id"`
	KnowOfHEF bool    `json:"know_of_hef"`
	HasHEF    bool    `json:"has_hef"`
	Notes     *string `json:"notes"`
	audit
}

type HEFInput struct {
	KnowOfHEF *bool   `json:"know_of_hef"`
	HasHEF    *bool   `json:"has_hef"`
	Notes     *string `json:"notes"`
}

type VisualAcuity struct {
	ID                  int64   `json:"id"`
	VisitID             int64   `json:"visit_id"`
	LeftWithPinhole     *string `json:"left_with_pinhole"`
	LeftWithoutPinhole  *string `json:"left_without_pinhole"`
	RightWithPinhole    *string `json:"right_with_pinhole"`
	RightWithoutPinhole *string `json:"right_without_pinhole"`
	Notes               *string `json:"notes"`
	audit
}

type VisualAcuityInput struct {
	LeftWithPinhole     *string `json:"left_with_pinhole"`
	LeftWithoutPinhole  *string `json:"left_without_pinhole"`
	RightWithPinhole    *string `json:"right_with_pinhole"`
	RightWithoutPinhole *string `json:"right_without_pinhole"`
	Notes               *string `json:"notes"`
}

type PresentingComplaint struct {
	ID            int64   `json:"id"`
	VisitID       int64   `json:"visit_id"`
	History       *string `json:"history"`
	RedFlags      *string `json:"red_flags"`
	SystemsReview *string `json:"systems_review"`
	DrugAllergies *string `json:"drug_allergies"`
	audit
}

type PresentingComplaintInput struct {
	History       *string `json:"history"`
	RedFlags      *string `json:"red_flags"`
	SystemsReview *string `json:"systems_review"`
	DrugAllergies *string `json:"drug_allergies"`
}

type History struct {
	ID               int64   `json:"id"`
	VisitID          int64   `json:"visit_id"`
	Past             *string `json:"past"`
	DrugAndTreatment *string `json:"drug_and_treatment"`
	Family           *string `json:"family"`
	Social           *string `json:"social"`
	SystemsReview    *string `json:"systems_review"`
	audit
}

type HistoryInput struct {
	Past             *string `json:"past"`
	DrugAndTreatment *string `json:"drug_and_treatment"`
	Family           *string `json:"family"`
	Social           *string `json:"social"`
	SystemsReview    *string `json:"systems_review"`
}

// Seva is the vision-referral assessment, distinct from the general visual
// acuity screen.
type Seva struct {
	ID                  int64      `json:"id"`
	VisitID             int64      `json:"visit_id"`
	LeftWithPinhole     *string    `json:"left_with_pinhole_new"`
	RightWithPinhole    *string    `json:"right_with_pinhole_new"`
	LeftWithoutPinhole  *string    `json:"left_without_pinhole_new"`
	RightWithoutPinhole *string    `json:"right_without_pinhole_new"`
	Diagnosis           *string    `json:"diagnosis"`
	DateOfReferral      *date.Date `json:"date_of_referral"`
	Notes               *string    `json:"notes"`
	audit
}

type SevaInput struct {
	LeftWithPinhole     *string    `json:"left_with_pinhole_new"`
	RightWithPinhole    *string    `json:"right_with_pinhole_new"`
	LeftWithoutPinhole  *string    `json:"left_without_pinhole_new"`
	RightWithoutPinhole *string    `json:"right_without_pinhole_new"`
	Diagnosis           *string    `json:"diagnosis"`
	DateOfReferral      *date.Date `json:"date_of_referral"`
	Notes               *string    `json:"notes"`
}

type Painpoint struct {
	ID     int64   `json:"id"`
	XCoord float64 `json:"x_coord"`
	YCoord float64 `json:"y_coord"`
}

type Physiotherapy struct {
	ID         int64       `json:"id"`
	VisitID    int64       `json:"visit_id"`
	Notes      *string     `json:"notes"`
	Painpoints []Painpoint `json:"painpoints"`
	audit
}

type PainpointInput struct {
	XCoord float64 `json:"x_coord"`
	YCoord float64 `json:"y_coord"`
}

type PhysiotherapyInput struct {
	Notes *string `json:"notes"`
	// Painpoints replace the stored set wholesale on every upsert.
	Painpoints []PainpointInput `json:"painpoints"`
}

type Consultation struct {
	ID              int64   `json:"id"`
	VisitID         int64   `json:"visit_id"`
	Notes           *string `json:"notes"`
	Prescription    *string `json:"prescription"`
	RequireReferral *bool   `json:"require_referral"`
	audit
}

type ConsultationInput struct {
	Notes           *string `json:"notes"`
	Prescription    *string `json:"prescription"`
	RequireReferral *bool   `json:"require_referral"`
}

// ConsultationDetail is the consultation joined to the visit's referral, the
// shape the consultation screen reads.
type ConsultationDetail struct {
	Consultation
	Referral *Referral `json:"referral"`
}

type Referral struct {
	ID             int64      `json:"id"`
	VisitID        int64      `json:"visit_id"`
	DoctorID       *int64     `json:"doctor_id"`
	ConsultationID *int64     `json:"consultation_id"`
	ReferralDate   *date.Date `json:"referral_date"`
	ReferralType   string     `json:"referral_type"`
	Illness        *string    `json:"illness"`
	Duration       *string    `json:"duration"`
	Reason         *string    `json:"reason"`
	audit
}

type ReferralInput struct {
	ReferralDate *date.Date `json:"referral_date"`
	ReferralType string     `json:"referral_type"`
	Illness      *string    `json:"illness"`
	Duration     *string    `json:"duration"`
	Reason       *string    `json:"reason"`
}

// ReferralRow is one line of the referrals-by-date report: the referral
// joined to its visit and patient.
type ReferralRow struct {
	PatientName  string     `json:"patient_name"`
	KhmerName    *string    `json:"khmer_name"`
	Sex          *string    `json:"sex"`
	DateOfBirth  *date.Date `json:"date_of_birth"`
	Address      *string    `json:"address"`
	QueueNo      string     `json:"queue_no"`
	ReferralDate *date.Date `json:"referral_date"`
	ReferralType string     `json:"referral_type"`
	Illness      *string    `json:"illness"`
	Duration     *string    `json:"duration"`
	Reason       *string    `json:"reason"`
}
