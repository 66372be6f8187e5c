package visit

import (
	"context"

	"github.com/veasna/clinic/pkg/date"
)

type Repository interface {
	// Create inserts a visit. A unique-constraint race on the natural key
	// surfaces as a conflict error.
	Create(ctx context.Context, in ResolveInput, updatedBy int64) (Visit, error)
	GetByID(ctx context.Context, id int64) (Visit, error)
	// FindByNaturalKey returns nil when no visit exists for the key.
	FindByNaturalKey(ctx context.Context, patientID, locationID int64, day date.Date, queueNo string) (*Visit, error)
	// FindByDay locates the patient's visit at a location on a given day
	// regardless of its queue token; nil when none exists.
	FindByDay(ctx context.Context, patientID, locationID int64, day date.Date) (*Visit, error)
	SetQueueNo(ctx context.Context, id int64, queueNo string, updatedBy int64) (Visit, error)
	ListByLocationAndDate(ctx context.Context, locationID int64, day date.Date) ([]QueueEntry, error)
	PatientHeader(ctx context.Context, patientID int64) (PatientHeader, error)
}
