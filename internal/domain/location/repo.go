package location

import "context"

type Repository interface {
	Create(ctx context.Context, name string) (Location, error)
	GetByID(ctx context.Context, id int64) (Location, error)
	List(ctx context.Context, includeInactive bool) ([]Location, error)
	Rename(ctx context.Context, id int64, name string) (Location, error)
	Deactivate(ctx context.Context, id int64) error
}
