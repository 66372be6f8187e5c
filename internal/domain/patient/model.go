// Package patient implements the patient registry: CRUD over demographics,
// location-scoped listing, name search, and the patient detail view with its
// visit history.
package patient

import (
	"time"

	"github.com/veasna/clinic/pkg/date"
)

type Patient struct {
	ID           int64      `json:"id"`
	FaceID       *string    `json:"face_id"`
	EnglishName  string     `json:"english_name"`
	KhmerName    *string    `json:"khmer_name"`
	DateOfBirth  *date.Date `json:"date_of_birth"`
	Sex          *string    `json:"sex"`
	PhoneNumber  *string    `json:"phone_number"`
	Address      *string    `json:"address"`
	LocationID   int64      `json:"location_id"`
	LocationName string     `json:"location_name,omitempty"`
	// QueueNo mirrors the queue token of the patient's most recent visit.
	// It is denormalized for fast queue screens and is not authoritative.
	QueueNo       *string   `json:"queue_no"`
	LastUpdatedBy *int64    `json:"last_updated_by"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateInput carries the fields accepted at registration time.
type CreateInput struct {
	FaceID      *string    `json:"face_id"`
	EnglishName string     `json:"english_name"`
	KhmerName   *string    `json:"khmer_name"`
	DateOfBirth *date.Date `json:"date_of_birth"`
	Sex         *string    `json:"sex"`
	PhoneNumber *string    `json:"phone_number"`
	Address     *string    `json:"address"`
	LocationID  int64      `json:"location_id"`
}

// UpdateInput carries a partial update; nil fields keep their stored values.
type UpdateInput struct {
	FaceID      *string    `json:"face_id"`
	EnglishName *string    `json:"english_name"`
	KhmerName   *string    `json:"khmer_name"`
	DateOfBirth *date.Date `json:"date_of_birth"`
	Sex         *string    `json:"sex"`
	PhoneNumber *string    `json:"phone_number"`
	Address     *string    `json:"address"`
	LocationID  *int64     `json:"location_id"`
}

func (in UpdateInput) isEmpty() bool {
	return in.FaceID == nil && in.EnglishName == nil && in.KhmerName == nil &&
		in.DateOfBirth == nil && in.Sex == nil && in.PhoneNumber == nil &&
		in.Address == nil && in.LocationID == nil
}

// VisitSummary is one row of the patient detail's visit list, with presence
// flags telling the client which form sections already hold data.
type VisitSummary struct {
	VisitID                int64     `json:"visit_id"`
	QueueNo                string    `json:"queue_no"`
	VisitDate              date.Date `json:"visit_date"`
	LocationName           string    `json:"location_name"`
	LastUpdatedAt          time.Time `json:"last_updated_at"`
	HasVitals              bool      `json:"has_vitals"`
	HasPresentingComplaint bool      `json:"has_presenting_complaint"`
	HasSeva                bool      `json:"has_seva"`
	HasPhysiotherapy       bool      `json:"has_physiotherapy"`
	HasConsultation        bool      `json:"has_consultation"`
}

// Detail is the patient header plus its visit history.
type Detail struct {
	Patient Patient        `json:"patient"`
	Visits  []VisitSummary `json:"visits"`
}
