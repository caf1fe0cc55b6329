package domain

import "context"

// EmployeeStore defines the data-access operations behind the HTTP handlers.
// Each call runs exactly one autocommitted statement in its own session.
// Ids are opaque strings; an id that matches nothing is not an error except
// for GetByID.
type EmployeeStore interface {
	List(ctx context.Context) ([]Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	Create(ctx context.Context, in EmployeeInput) (int64, error)
	UpdateByID(ctx context.Context, id string, in EmployeeInput) error
	DeleteByID(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
