package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAggregateFromCountMap(t *testing.T) {
	total, breakdown := Aggregate(DetectorResult{
		TotalBeans: 350,
		Defects:    map[string]int{"full_black": 1, "partial_black": 2, "broken": 3},
	})

	require.Equal(t, 350, total)
	require.Len(t, breakdown, 19)
	require.Equal(t, 1, breakdown["full_black"])
	require.Equal(t, 2, breakdown["partial_black"])
	require.Equal(t, 3, breakdown["broken"])

	zeroes := 0
	for _, n := range breakdown {
		if n == 0 {
			zeroes++
		}
	}
	require.Equal(t, 16, zeroes)

	c1, c2 := breakdown.CategoryTotals()
	require.Equal(t, 1, c1)
	require.Equal(t, 5, c2)
	require.Equal(t, 6, breakdown.Total())
}

func TestAggregateEmptyDefectsZeroFills(t *testing.T) {
	total, breakdown := Aggregate(DetectorResult{
		TotalBeans: 350,
		Defects:    map[string]int{},
	})

	require.Equal(t, 350, total)
	require.Len(t, breakdown, 19)
	for _, label := range DefectLabels() {
		require.Contains(t, breakdown, label)
		require.Zero(t, breakdown[label])
	}

	c1, c2 := breakdown.CategoryTotals()
	require.Zero(t, c1)
	require.Zero(t, c2)
}

func TestAggregateFromDetectionList(t *testing.T) {
	_, breakdown := Aggregate(DetectorResult{
		TotalBeans: 42,
		Detections: []Detection{
			{BBox: []float64{0, 0, 10, 10}, ClassName: "broken", Confidence: 0.9},
			{BBox: []float64{10, 10, 20, 20}, ClassName: "broken", Confidence: 0.8},
			{BBox: []float64{20, 20, 30, 30}, ClassName: "full_black", Confidence: 0.95},
			// Normal beans count toward total_beans only.
			{BBox: []float64{30, 30, 40, 40}, ClassName: "normal", Confidence: 0.99},
			// Unknown labels are discarded, not an error.
			{BBox: []float64{40, 40, 50, 50}, ClassName: "quakers", Confidence: 0.7},
		},
	})

	require.Equal(t, 2, breakdown["broken"])
	require.Equal(t, 1, breakdown["full_black"])
	require.NotContains(t, breakdown, "quakers")
	require.NotContains(t, breakdown, LabelNormal)
	require.Equal(t, 3, breakdown.Total())
}

func TestAggregateSkipsMalformedBBox(t *testing.T) {
	_, breakdown := Aggregate(DetectorResult{
		Detections: []Detection{
			{BBox: []float64{0, 0, 10}, ClassName: "broken", Confidence: 0.9},
			{BBox: nil, ClassName: "broken", Confidence: 0.9},
			{BBox: []float64{0, 0, 10, 10, 20}, ClassName: "broken", Confidence: 0.9},
			{BBox: []float64{0, 0, 10, 10}, ClassName: "broken", Confidence: 0.9},
		},
	})

	require.Equal(t, 1, breakdown["broken"])
}

func TestAggregateCountMapTakesPrecedence(t *testing.T) {
	_, breakdown := Aggregate(DetectorResult{
		Defects: map[string]int{"husk": 4},
		Detections: []Detection{
			{BBox: []float64{0, 0, 10, 10}, ClassName: "broken", Confidence: 0.9},
		},
	})

	require.Equal(t, 4, breakdown["husk"])
	require.Zero(t, breakdown["broken"])
}

func TestAggregateIgnoresUnknownMapKeys(t *testing.T) {
	_, breakdown := Aggregate(DetectorResult{
		Defects: map[string]int{"husk": 1, "mystery_defect": 9},
	})

	require.Len(t, breakdown, 19)
	require.NotContains(t, breakdown, "mystery_defect")
	require.Equal(t, 1, breakdown.Total())
}

func TestAggregateIsDeterministic(t *testing.T) {
	res := DetectorResult{
		TotalBeans: 350,
		Defects:    map[string]int{"full_black": 1, "partial_black": 2, "broken": 3},
	}

	total1, b1 := Aggregate(res)
	total2, b2 := Aggregate(res)
	require.Equal(t, total1, total2)
	require.Equal(t, b1, b2)

	c1a, c2a := b1.CategoryTotals()
	c1b, c2b := b2.CategoryTotals()
	require.Equal(t, ClassifyGrade(c1a, c2a), ClassifyGrade(c1b, c2b))
}

func TestNonZeroLabelsSortedAndFiltered(t *testing.T) {
	b := NewDefectBreakdown()
	b["withered"] = 2
	b["broken"] = 1
	b["full_black"] = 3

	require.Equal(t, []string{"broken", "full_black", "withered"}, b.NonZeroLabels())
}
