// Package visit implements the visit resolver and the queue manager: the
// get-or-create protocol keyed by (patient, location, date, queue token),
// queue token normalization, and the queue-number mirror onto the patient.
package visit

import (
	"time"

	"github.com/veasna/clinic/internal/domain/record"
	"github.com/veasna/clinic/pkg/date"
)

type Visit struct {
	ID            int64     `json:"id"`
	PatientID     int64     `json:"patient_id"`
	LocationID    int64     `json:"location_id"`
	VisitDate     date.Date `json:"visit_date"`
	QueueNo       string    `json:"queue_no"`
	LastUpdatedBy *int64    `json:"last_updated_by"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// ResolveInput is the natural key a visit is resolved or created under.
// VisitDate defaults to today when zero.
type ResolveInput struct {
	PatientID  int64     `json:"patient_id"`
	LocationID int64     `json:"location_id"`
	VisitDate  date.Date `json:"visit_date"`
	QueueNo    string    `json:"queue_no"`
}

// QueueEntry is one row of the walk-in queue screen: the visit joined to its
// patient and location.
type QueueEntry struct {
	VisitID      int64      `json:"visit_id"`
	PatientID    int64      `json:"patient_id"`
	QueueNo      string     `json:"queue_no"`
	EnglishName  string     `json:"english_name"`
	KhmerName    *string    `json:"khmer_name"`
	Sex          *string    `json:"sex"`
	DateOfBirth  *date.Date `json:"date_of_birth"`
	LocationName string     `json:"location_name"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Records bundles every clinical record attached to a visit.
type Records struct {
	Vitals              *record.Vitals              `json:"vitals"`
	HEF                 *record.HEF                 `json:"hef"`
	VisualAcuity        *record.VisualAcuity        `json:"visual_acuity"`
	PresentingComplaint *record.PresentingComplaint `json:"presenting_complaint"`
	History             *record.History             `json:"history"`
	Seva                *record.Seva                `json:"seva"`
	Physiotherapy       *record.Physiotherapy       `json:"physiotherapy"`
	Consultation        *record.ConsultationDetail  `json:"consultation"`
	Referral            *record.Referral            `json:"referral"`
}

// PatientHeader is the slice of patient demographics shown atop the visit
// detail screen.
type PatientHeader struct {
	ID          int64      `json:"id"`
	EnglishName string     `json:"english_name"`
	KhmerName   *string    `json:"khmer_name"`
	DateOfBirth *date.Date `json:"date_of_birth"`
	Sex         *string    `json:"sex"`
}

// Detail is the complete visit view: the visit row, its patient header, and
// every attached record.
type Detail struct {
	Visit   Visit         `json:"visit"`
	Patient PatientHeader `json:"patient"`
	Records Records       `json:"records"`
}
