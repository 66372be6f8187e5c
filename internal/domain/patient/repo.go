package patient

import "context"

type Repository interface {
	Create(ctx context.Context, in CreateInput, updatedBy int64) (Patient, error)
	GetByID(ctx context.Context, id int64) (Patient, error)
	// Update applies a COALESCE merge: nil input fields keep stored values.
	Update(ctx context.Context, id int64, in UpdateInput, updatedBy int64) (Patient, error)
	// Delete removes the patient; visits and their records go with it via
	// the schema's cascading foreign keys.
	Delete(ctx context.Context, id int64) error
	// ListByLocation returns one page of patients plus the total count.
	ListByLocation(ctx context.Context, locationID int64, limit, offset int) ([]Patient, int, error)
	Search(ctx context.Context, q string, limit int) ([]Patient, error)
	VisitSummaries(ctx context.Context, patientID int64) ([]VisitSummary, error)
	// SetQueueNo writes the denormalized queue mirror.
	SetQueueNo(ctx context.Context, id int64, queueNo string) error
}
