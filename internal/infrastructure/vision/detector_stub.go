//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"coffee-grader/internal/domain/entity"
	"coffee-grader/internal/domain/port"
)

// LocalDetector is a stub in builds without the gocv tag.
type LocalDetector struct {
	MinAreaRatio          float64
	MaxAspectRatio        float64
	MinAspectRatio        float64
	MaxSide               int
	MinImageSide          int
	MinSharpnessEdgeRatio float64
	MaxOverexposedRatio   float64
	MaxUnderexposedRatio  float64
	MaxGlareRatio         float64
}

// NewLocalDetector creates the stub detector (no OpenCV).
func NewLocalDetector() *LocalDetector {
	return &LocalDetector{
		MinAreaRatio:          0.001,
		MinAspectRatio:        0.1,
		MaxAspectRatio:        10.0,
		MaxSide:               1024,
		MinImageSide:          400,
		MinSharpnessEdgeRatio: 0.008,
		MaxOverexposedRatio:   0.35,
		MaxUnderexposedRatio:  0.45,
		MaxGlareRatio:         0.08,
	}
}

// Detect fails when the binary was built without the gocv tag.
func (d *LocalDetector) Detect(ctx context.Context, imageData []byte) (*entity.DetectorResult, error) {
	_ = ctx
	_ = imageData
	return nil, errors.New("gocv build tag is not enabled")
}

var _ port.Detector = (*LocalDetector)(nil)
