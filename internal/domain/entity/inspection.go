package entity

import "time"

// Detection is a single detected bean as reported by the detector: a pixel
// bounding box [x1,y1,x2,y2], the predicted class label and its confidence.
type Detection struct {
	BBox       []float64 `json:"bbox"`
	ClassName  string    `json:"class_name"`
	Confidence float64   `json:"confidence"`
}

// Valid reports whether the detection carries well-formed box geometry.
// Detections with a malformed bbox are skipped everywhere, never an error.
func (d Detection) Valid() bool {
	return len(d.BBox) == 4
}

// Rect returns the bounding box corners as integer pixel coordinates.
// Callers must check Valid first.
func (d Detection) Rect() (x1, y1, x2, y2 int) {
	return int(d.BBox[0]), int(d.BBox[1]), int(d.BBox[2]), int(d.BBox[3])
}

// DetectorResult is the raw output of the detector capability. Defects is a
// sparse count map; Detections carries per-box results when the detector
// exposes them (needed for annotation). Either may be absent.
type DetectorResult struct {
	TotalBeans        int            `json:"total_beans"`
	Defects           map[string]int `json:"defects,omitempty"`
	Detections        []Detection    `json:"detections,omitempty"`
	Confidence        float64        `json:"confidence"`
	ProcessingTimeMS  int            `json:"processing_time_ms"`
	AnnotatedImageURL string         `json:"annotated_image_url,omitempty"`
}

// InspectionRecord is the structured detection record handed to the
// transport layer and the platform backend. Field names are the wire
// contract; do not rename.
type InspectionRecord struct {
	RequestID         string          `json:"request_id"`
	ImageURL          string          `json:"image_url"`
	DetectedBeans     int             `json:"detected_beans"`
	DefectBreakdown   DefectBreakdown `json:"defect_breakdown"`
	Category1Count    int             `json:"category1_count"`
	Category2Count    int             `json:"category2_count"`
	ConfidenceScore   float64         `json:"confidence_score"`
	ProcessingTimeMS  int             `json:"processing_time_ms"`
	AnnotatedImageURL string          `json:"annotated_image_url,omitempty"`
}

// Inspection is a completed inspection: the record plus the derived grade
// and rendered summary artifact. This is what gets persisted and broadcast.
type Inspection struct {
	Record          InspectionRecord `json:"detection"`
	SuggestedGrade  Grade            `json:"suggested_grade"`
	SummaryImageURL string           `json:"summary_image_url,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}
