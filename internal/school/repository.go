package school

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a school does not exist.
	ErrNotFound = errors.New("school not found")

	// ErrDuplicateName is returned when a school with the same name exists.
	ErrDuplicateName = errors.New("duplicate school name")
)

// Repository persists schools.
type Repository interface {
	// Create stores a new school. It returns ErrDuplicateName when a school
	// with the same name (case-insensitive) already exists.
	Create(ctx context.Context, s School) error

	// Get returns the school with id or ErrNotFound.
	Get(ctx context.Context, id string) (School, error)

	// List returns all schools ordered by creation time.
	List(ctx context.Context) ([]School, error)

	// FindByName returns the school with name (case-insensitive) or ErrNotFound.
	FindByName(ctx context.Context, name string) (School, error)
}

// SameName reports whether two school names are considered equal.
func SameName(a, b string) bool {
	return NameKey(a) == NameKey(b)
}
