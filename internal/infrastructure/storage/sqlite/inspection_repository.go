package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"coffee-grader/internal/domain/entity"
	"coffee-grader/internal/domain/port"
)

const defaultListLimit = 50

// InspectionRepository implements port.InspectionRepository on SQLite.
// The defect breakdown is stored as a JSON column.
type InspectionRepository struct {
	db *DB
}

// NewInspectionRepository creates a repository on db.
func NewInspectionRepository(db *DB) *InspectionRepository {
	return &InspectionRepository{db: db}
}

// Save persists an inspection, replacing any row with the same
// request ID.
func (r *InspectionRepository) Save(ctx context.Context, insp *entity.Inspection) error {
	breakdown, err := json.Marshal(insp.Record.DefectBreakdown)
	if err != nil {
		return fmt.Errorf("failed to marshal breakdown: %w", err)
	}

	r.db.Lock()
	defer r.db.Unlock()

	_, err = r.db.Conn().ExecContext(ctx, `
		INSERT OR REPLACE INTO inspections (
			request_id, image_url, detected_beans, defect_breakdown,
			category1_count, category2_count, confidence_score,
			processing_time_ms, annotated_image_url, suggested_grade,
			summary_image_url, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		insp.Record.RequestID,
		insp.Record.ImageURL,
		insp.Record.DetectedBeans,
		string(breakdown),
		insp.Record.Category1Count,
		insp.Record.Category2Count,
		insp.Record.ConfidenceScore,
		insp.Record.ProcessingTimeMS,
		insp.Record.AnnotatedImageURL,
		string(insp.SuggestedGrade),
		insp.SummaryImageURL,
		insp.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert inspection: %w", err)
	}

	return nil
}

// Get returns the inspection with the given request ID.
func (r *InspectionRepository) Get(ctx context.Context, requestID string) (*entity.Inspection, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	row := r.db.Conn().QueryRowContext(ctx, `
		SELECT request_id, image_url, detected_beans, defect_breakdown,
		       category1_count, category2_count, confidence_score,
		       processing_time_ms, annotated_image_url, suggested_grade,
		       summary_image_url, created_at
		FROM inspections WHERE request_id = ?
	`, requestID)

	insp, err := scanInspection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query inspection: %w", err)
	}
	return insp, nil
}

// List returns the most recent inspections, newest first.
func (r *InspectionRepository) List(ctx context.Context, limit int) ([]*entity.Inspection, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().QueryContext(ctx, `
		SELECT request_id, image_url, detected_beans, defect_breakdown,
		       category1_count, category2_count, confidence_score,
		       processing_time_ms, annotated_image_url, suggested_grade,
		       summary_image_url, created_at
		FROM inspections
		ORDER BY created_at DESC, request_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query inspections: %w", err)
	}
	defer rows.Close()

	var inspections []*entity.Inspection
	for rows.Next() {
		insp, err := scanInspection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inspection: %w", err)
		}
		inspections = append(inspections, insp)
	}
	return inspections, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInspection(row rowScanner) (*entity.Inspection, error) {
	var (
		insp      entity.Inspection
		breakdown string
		grade     string
		createdAt time.Time
	)

	err := row.Scan(
		&insp.Record.RequestID,
		&insp.Record.ImageURL,
		&insp.Record.DetectedBeans,
		&breakdown,
		&insp.Record.Category1Count,
		&insp.Record.Category2Count,
		&insp.Record.ConfidenceScore,
		&insp.Record.ProcessingTimeMS,
		&insp.Record.AnnotatedImageURL,
		&grade,
		&insp.SummaryImageURL,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(breakdown), &insp.Record.DefectBreakdown); err != nil {
		return nil, fmt.Errorf("failed to unmarshal breakdown: %w", err)
	}
	insp.SuggestedGrade = entity.ParseGrade(grade)
	insp.CreatedAt = createdAt

	return &insp, nil
}

var _ port.InspectionRepository = (*InspectionRepository)(nil)
