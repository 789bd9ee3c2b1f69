package detector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"coffee-grader/internal/domain/entity"
)

func TestMockDetector_SameSeedSameSequence(t *testing.T) {
	ctx := context.Background()
	a := NewMockDetector(42)
	b := NewMockDetector(42)

	for i := 0; i < 5; i++ {
		ra, err := a.Detect(ctx, nil)
		require.NoError(t, err)
		rb, err := b.Detect(ctx, nil)
		require.NoError(t, err)
		require.Equal(t, ra, rb)
	}
}

func TestMockDetector_ResultsStayInRange(t *testing.T) {
	ctx := context.Background()
	d := NewMockDetector(7)

	caps := make(map[string]int, len(mockDefectCaps))
	for _, c := range mockDefectCaps {
		caps[c.label] = c.max
	}

	for i := 0; i < 200; i++ {
		res, err := d.Detect(ctx, nil)
		require.NoError(t, err)

		require.GreaterOrEqual(t, res.TotalBeans, 300)
		require.LessOrEqual(t, res.TotalBeans, 400)
		require.GreaterOrEqual(t, res.Confidence, 0.85)
		require.LessOrEqual(t, res.Confidence, 0.98)
		require.GreaterOrEqual(t, res.ProcessingTimeMS, 800)
		require.LessOrEqual(t, res.ProcessingTimeMS, 2000)

		require.Len(t, res.Defects, len(entity.DefectLabels()))
		for label, count := range res.Defects {
			require.GreaterOrEqual(t, count, 0)
			require.LessOrEqual(t, count, caps[label], "label %s", label)
		}
		require.Zero(t, res.Defects["large_stones"])
		require.Zero(t, res.Defects["medium_stones"])
		require.Zero(t, res.Defects["large_sticks"])
		require.Zero(t, res.Defects["medium_sticks"])
	}
}

func TestMockDetector_CoversAllDefectLabels(t *testing.T) {
	d := NewMockDetector(1)
	res, err := d.Detect(context.Background(), nil)
	require.NoError(t, err)

	for _, label := range entity.DefectLabels() {
		_, ok := res.Defects[label]
		require.True(t, ok, "label %s missing", label)
	}
}
