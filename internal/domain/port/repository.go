package port

import (
	"context"
	"errors"

	"coffee-grader/internal/domain/entity"
)

// ErrNotFound is returned when no inspection matches the request ID.
var ErrNotFound = errors.New("inspection not found")

// InspectionRepository stores completed inspections for later lookup.
type InspectionRepository interface {
	// Save persists an inspection keyed by its request ID.
	Save(ctx context.Context, insp *entity.Inspection) error

	// Get returns the inspection with the given request ID.
	Get(ctx context.Context, requestID string) (*entity.Inspection, error)

	// List returns the most recent inspections, newest first.
	List(ctx context.Context, limit int) ([]*entity.Inspection, error)
}
