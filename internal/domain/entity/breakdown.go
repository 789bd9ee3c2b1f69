package entity

import "sort"

// DefectBreakdown maps every non-normal taxonomy label to its count. A
// well-formed breakdown always contains exactly the 19 defect labels, zero
// included, so the serialized record is fully populated no matter how sparse
// the detector output was.
type DefectBreakdown map[string]int

// NewDefectBreakdown returns a breakdown with every defect label at zero.
func NewDefectBreakdown() DefectBreakdown {
	b := make(DefectBreakdown, len(defectLabels))
	for _, label := range defectLabels {
		b[label] = 0
	}
	return b
}

// Aggregate flattens a raw detector result into the fixed breakdown and
// returns the total bean count alongside it. The sparse count map takes
// precedence; when the detector only reported per-box detections they are
// tallied by class label. Labels outside the taxonomy and detections with
// malformed geometry are discarded, never an error. TotalBeans is taken from
// the detector as-is: it counts normal beans too, so it cannot be re-derived
// from the breakdown.
func Aggregate(res DetectorResult) (totalBeans int, breakdown DefectBreakdown) {
	counts := res.Defects
	if counts == nil {
		counts = tallyDetections(res.Detections)
	}

	breakdown = NewDefectBreakdown()
	for _, label := range defectLabels {
		if n, ok := counts[label]; ok {
			breakdown[label] = n
		}
	}
	return res.TotalBeans, breakdown
}

// tallyDetections counts detections per defect label, skipping normal beans,
// unknown labels and malformed boxes.
func tallyDetections(dets []Detection) map[string]int {
	counts := make(map[string]int)
	for _, d := range dets {
		if !d.Valid() {
			continue
		}
		if d.ClassName == LabelNormal {
			continue
		}
		if _, ok := ClassByLabel(d.ClassName); !ok {
			continue
		}
		counts[d.ClassName]++
	}
	return counts
}

// CategoryTotals sums the breakdown per grading category.
func (b DefectBreakdown) CategoryTotals() (category1, category2 int) {
	for label, n := range b {
		c, ok := ClassByLabel(label)
		if !ok {
			continue
		}
		switch c.Category {
		case CategoryPrimary:
			category1 += n
		case CategorySecondary:
			category2 += n
		}
	}
	return category1, category2
}

// Total returns the combined defect count.
func (b DefectBreakdown) Total() int {
	c1, c2 := b.CategoryTotals()
	return c1 + c2
}

// NonZeroLabels returns the labels with at least one occurrence, sorted
// alphabetically. Used by the renderers, which list only defects actually
// found.
func (b DefectBreakdown) NonZeroLabels() []string {
	labels := make([]string, 0, len(b))
	for label, n := range b {
		if n > 0 {
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)
	return labels
}
