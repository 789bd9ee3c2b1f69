package port

import "coffee-grader/internal/domain/entity"

// Annotator draws detection overlays onto a sample photo.
type Annotator interface {
	// Annotate returns the photo with boxes, labels and legend drawn.
	Annotate(image []byte, detections []entity.Detection) ([]byte, error)
}

// SummaryRenderer renders the report card for an aggregated result.
type SummaryRenderer interface {
	// Render returns the encoded report card image.
	Render(breakdown entity.DefectBreakdown, totalBeans int, grade entity.Grade) ([]byte, error)
}
