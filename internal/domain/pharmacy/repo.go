package pharmacy

import "context"

type Repository interface {
	Create(ctx context.Context, name string, stockLevel int64, updatedBy int64) (Item, error)
	List(ctx context.Context) ([]Item, error)
	// Update applies a COALESCE merge and clamps the stock level at zero.
	Update(ctx context.Context, id int64, in UpdateInput, updatedBy int64) (Item, error)
	// Adjust shifts the stock level by delta, clamped at zero, in a single
	// UPDATE so concurrent adjustments serialize on the row.
	Adjust(ctx context.Context, id int64, delta int64, updatedBy int64) (Item, error)
	Delete(ctx context.Context, id int64) error
}
