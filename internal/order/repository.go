package order

import (
	"context"
	"errors"
)

// ErrNotFound indicates the requested order does not exist.
var ErrNotFound = errors.New("order: not found")

// ErrInvalidTransition is returned when a status change violates the
// lifecycle.
var ErrInvalidTransition = errors.New("order: invalid status transition")

// ListFilter narrows and pages the admin order listing. Search matches email,
// first and last name, case-insensitively.
type ListFilter struct {
	Status  *Status
	Search  string
	Page    int
	PerPage int
}

// Repository is the persistence boundary for orders. Create is not
// idempotent: callers must guarantee exactly one call per completed checkout.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Order, error)
	GetByID(ctx context.Context, id int64) (Order, error)
	List(ctx context.Context, filter ListFilter) ([]Order, int, error)
	UpdateStatus(ctx context.Context, id int64, target Status) (Order, error)
}
