package detector

import (
	"context"
	"log"

	"coffee-grader/internal/domain/entity"
	"coffee-grader/internal/domain/port"
)

// FallbackDetector tries the primary detector and switches to the
// fallback when the primary fails. Covers dev setups where the real
// inference endpoint may be absent.
type FallbackDetector struct {
	primary  port.Detector
	fallback port.Detector
}

// NewFallbackDetector wraps primary with fallback.
func NewFallbackDetector(primary, fallback port.Detector) *FallbackDetector {
	return &FallbackDetector{primary: primary, fallback: fallback}
}

// Detect runs the primary detector and retries on the fallback when it
// errors. A canceled context is not retried.
func (d *FallbackDetector) Detect(ctx context.Context, image []byte) (*entity.DetectorResult, error) {
	result, err := d.primary.Detect(ctx, image)
	if err == nil {
		return result, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	log.Printf("detector: primary failed, using fallback: %v", err)
	return d.fallback.Detect(ctx, image)
}

var _ port.Detector = (*FallbackDetector)(nil)
