package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"coffee-grader/internal/domain/entity"
	"coffee-grader/internal/domain/port"
)

// InspectionService runs the grading pipeline: store the sample, run
// detection, aggregate the breakdown, classify the grade and render
// the output images.
type InspectionService struct {
	users     *UserService
	detector  port.Detector
	blobs     port.BlobStore
	history   port.InspectionRepository
	annotator port.Annotator
	summary   port.SummaryRenderer
}

// NewInspectionService wires the pipeline. history, annotator and
// summary may be nil; the matching steps are then skipped.
func NewInspectionService(
	users *UserService,
	detector port.Detector,
	blobs port.BlobStore,
	history port.InspectionRepository,
	annotator port.Annotator,
	summary port.SummaryRenderer,
) *InspectionService {
	return &InspectionService{
		users:     users,
		detector:  detector,
		blobs:     blobs,
		history:   history,
		annotator: annotator,
		summary:   summary,
	}
}

// newRequestID builds an ID of the form det-<timestamp>-<uuid prefix>.
func newRequestID(now time.Time) string {
	return fmt.Sprintf("det-%s-%s", now.UTC().Format("20060102150405"), uuid.New().String()[:8])
}

// Grade runs the full pipeline over a sample photo.
func (s *InspectionService) Grade(ctx context.Context, image []byte) (*entity.Inspection, error) {
	if s.detector == nil {
		return nil, errors.New("detector is not configured")
	}
	if s.blobs == nil {
		return nil, errors.New("blob store is not configured")
	}

	requestID := newRequestID(time.Now())
	start := time.Now()

	imageURL, err := s.blobs.Put(ctx, "uploads/"+requestID+".jpg", image)
	if err != nil {
		return nil, fmt.Errorf("store sample image: %w", err)
	}

	result, err := s.detector.Detect(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("detect defects: %w", err)
	}

	totalBeans, breakdown := entity.Aggregate(*result)
	cat1, cat2 := breakdown.CategoryTotals()
	grade := entity.ClassifyGrade(cat1, cat2)

	// The detector may supply its own annotated image URL; a local
	// render from the detection list takes precedence.
	annotatedURL := result.AnnotatedImageURL
	if s.annotator != nil && len(result.Detections) > 0 {
		if url, err := s.renderAnnotated(ctx, requestID, image, result.Detections); err != nil {
			log.Printf("inspection %s: annotate: %v", requestID, err)
		} else {
			annotatedURL = url
		}
	}

	var summaryURL string
	if s.summary != nil {
		if url, err := s.renderSummary(ctx, requestID, breakdown, totalBeans, grade); err != nil {
			log.Printf("inspection %s: summary: %v", requestID, err)
		} else {
			summaryURL = url
		}
	}

	insp := &entity.Inspection{
		Record: entity.InspectionRecord{
			RequestID:         requestID,
			ImageURL:          imageURL,
			DetectedBeans:     totalBeans,
			DefectBreakdown:   breakdown,
			Category1Count:    cat1,
			Category2Count:    cat2,
			ConfidenceScore:   result.Confidence,
			ProcessingTimeMS:  int(time.Since(start).Milliseconds()),
			AnnotatedImageURL: annotatedURL,
		},
		SuggestedGrade:  grade,
		SummaryImageURL: summaryURL,
		CreatedAt:       time.Now().UTC(),
	}

	if s.history != nil {
		if err := s.history.Save(ctx, insp); err != nil {
			log.Printf("inspection %s: save history: %v", requestID, err)
		}
	}

	return insp, nil
}

func (s *InspectionService) renderAnnotated(ctx context.Context, requestID string, image []byte, detections []entity.Detection) (string, error) {
	annotated, err := s.annotator.Annotate(image, detections)
	if err != nil {
		return "", err
	}
	return s.blobs.Put(ctx, "annotated/"+requestID+"_annotated.jpg", annotated)
}

func (s *InspectionService) renderSummary(ctx context.Context, requestID string, breakdown entity.DefectBreakdown, totalBeans int, grade entity.Grade) (string, error) {
	card, err := s.summary.Render(breakdown, totalBeans, grade)
	if err != nil {
		return "", err
	}
	return s.blobs.Put(ctx, "summaries/"+requestID+"_summary.jpg", card)
}

// Lookup returns a stored inspection by request ID.
func (s *InspectionService) Lookup(ctx context.Context, requestID string) (*entity.Inspection, error) {
	if s.history == nil {
		return nil, port.ErrNotFound
	}
	return s.history.Get(ctx, requestID)
}

// History returns the most recent inspections, newest first.
func (s *InspectionService) History(ctx context.Context, limit int) ([]*entity.Inspection, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.List(ctx, limit)
}

// AcceptSamplePhoto grades a sample sent by a bot user and returns the
// user to the main menu afterwards.
func (s *InspectionService) AcceptSamplePhoto(ctx context.Context, userID, chatID int64, photo []byte) (*entity.Inspection, error) {
	if _, err := s.users.SetState(ctx, userID, chatID, entity.StateProcessing); err != nil {
		return nil, err
	}

	insp, err := s.Grade(ctx, photo)

	if _, stateErr := s.users.SetState(ctx, userID, chatID, entity.StateMainMenu); stateErr != nil && err == nil {
		err = stateErr
	}
	if err != nil {
		return nil, err
	}
	return insp, nil
}
