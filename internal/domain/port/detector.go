package port

import (
	"context"

	"coffee-grader/internal/domain/entity"
)

// Detector runs defect detection over a JPEG-encoded sample photo.
type Detector interface {
	// Detect analyzes the image and returns the raw detection result.
	Detect(ctx context.Context, image []byte) (*entity.DetectorResult, error)
}
