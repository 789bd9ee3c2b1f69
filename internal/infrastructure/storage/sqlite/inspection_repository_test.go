package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"coffee-grader/internal/domain/entity"
	"coffee-grader/internal/domain/port"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestInspection(id string, createdAt time.Time) *entity.Inspection {
	breakdown := entity.NewDefectBreakdown()
	breakdown["full_black"] = 1
	breakdown["broken"] = 3

	return &entity.Inspection{
		Record: entity.InspectionRecord{
			RequestID:         id,
			ImageURL:          "file:///tmp/uploads/" + id + ".jpg",
			DetectedBeans:     350,
			DefectBreakdown:   breakdown,
			Category1Count:    1,
			Category2Count:    3,
			ConfidenceScore:   0.93,
			ProcessingTimeMS:  1250,
			AnnotatedImageURL: "file:///tmp/annotated/" + id + "_annotated.jpg",
		},
		SuggestedGrade:  entity.GradePremium,
		SummaryImageURL: "file:///tmp/summaries/" + id + "_summary.jpg",
		CreatedAt:       createdAt,
	}
}

func TestInspectionRepository_SaveAndGet(t *testing.T) {
	repo := NewInspectionRepository(newTestDB(t))
	ctx := context.Background()

	insp := newTestInspection("det-20240101120000-abcd1234", time.Now().UTC())
	require.NoError(t, repo.Save(ctx, insp))

	got, err := repo.Get(ctx, insp.Record.RequestID)
	require.NoError(t, err)

	require.Equal(t, insp.Record.RequestID, got.Record.RequestID)
	require.Equal(t, insp.Record.ImageURL, got.Record.ImageURL)
	require.Equal(t, insp.Record.DetectedBeans, got.Record.DetectedBeans)
	require.Equal(t, insp.Record.DefectBreakdown, got.Record.DefectBreakdown)
	require.Equal(t, insp.Record.Category1Count, got.Record.Category1Count)
	require.Equal(t, insp.Record.Category2Count, got.Record.Category2Count)
	require.InDelta(t, insp.Record.ConfidenceScore, got.Record.ConfidenceScore, 1e-9)
	require.Equal(t, insp.Record.ProcessingTimeMS, got.Record.ProcessingTimeMS)
	require.Equal(t, insp.Record.AnnotatedImageURL, got.Record.AnnotatedImageURL)
	require.Equal(t, insp.SuggestedGrade, got.SuggestedGrade)
	require.Equal(t, insp.SummaryImageURL, got.SummaryImageURL)
	require.WithinDuration(t, insp.CreatedAt, got.CreatedAt, time.Second)
}

func TestInspectionRepository_GetMissing(t *testing.T) {
	repo := NewInspectionRepository(newTestDB(t))
	_, err := repo.Get(context.Background(), "det-404")
	require.ErrorIs(t, err, port.ErrNotFound)
}

func TestInspectionRepository_ListNewestFirst(t *testing.T) {
	repo := NewInspectionRepository(newTestDB(t))
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("det-%d", i)
		require.NoError(t, repo.Save(ctx, newTestInspection(id, base.Add(time.Duration(i)*time.Minute))))
	}

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 5)
	require.Equal(t, "det-4", all[0].Record.RequestID)
	require.Equal(t, "det-0", all[4].Record.RequestID)

	limited, err := repo.List(ctx, 3)
	require.NoError(t, err)
	require.Len(t, limited, 3)
	require.Equal(t, "det-4", limited[0].Record.RequestID)
}

func TestInspectionRepository_SaveReplacesByRequestID(t *testing.T) {
	repo := NewInspectionRepository(newTestDB(t))
	ctx := context.Background()

	insp := newTestInspection("det-1", time.Now().UTC())
	require.NoError(t, repo.Save(ctx, insp))

	insp.SuggestedGrade = entity.GradeOff
	require.NoError(t, repo.Save(ctx, insp))

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, entity.GradeOff, all[0].SuggestedGrade)
}
