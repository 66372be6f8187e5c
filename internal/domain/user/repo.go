package user

import "context"

// Repository is the persistence surface for user accounts.
type Repository interface {
	// Upsert creates the account if it does not exist, or reactivates it if
	// it was deactivated, and returns the current row either way.
	Upsert(ctx context.Context, username string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	List(ctx context.Context) ([]User, error)
	Deactivate(ctx context.Context, id int64) error
}
