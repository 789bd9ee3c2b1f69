package detector

import (
	"context"
	"math"
	"math/rand"
	"sync"

	"coffee-grader/internal/domain/entity"
	"coffee-grader/internal/domain/port"
)

// Per-class caps for generated defect counts. Primary defects stay
// rare, secondary ones are more common, stones and sticks never show
// up in a cleaned sample.
var mockDefectCaps = []struct {
	label string
	max   int
}{
	{"full_black", 2},
	{"full_sour", 1},
	{"pod_cherry", 1},
	{"large_stones", 0},
	{"medium_stones", 0},
	{"large_sticks", 0},
	{"medium_sticks", 0},
	{"partial_black", 3},
	{"partial_sour", 2},
	{"parchment", 2},
	{"floater", 1},
	{"immature", 3},
	{"withered", 2},
	{"shell", 2},
	{"broken", 4},
	{"chipped", 3},
	{"cut", 1},
	{"insect_damage", 2},
	{"husk", 1},
}

// MockDetector produces plausible detection results without a model
// behind it. Used for development and demos.
type MockDetector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockDetector creates a mock seeded with seed. The same seed
// replays the same sequence of results.
func NewMockDetector(seed int64) *MockDetector {
	return &MockDetector{rng: rand.New(rand.NewSource(seed))}
}

// Detect ignores the image and draws a detection result from the
// configured distribution.
func (d *MockDetector) Detect(ctx context.Context, image []byte) (*entity.DetectorResult, error) {
	_ = ctx
	_ = image

	d.mu.Lock()
	defer d.mu.Unlock()

	defects := make(map[string]int, len(mockDefectCaps))
	for _, c := range mockDefectCaps {
		defects[c.label] = d.rng.Intn(c.max + 1)
	}

	confidence := 0.85 + d.rng.Float64()*0.13
	confidence = math.Round(confidence*100) / 100

	return &entity.DetectorResult{
		TotalBeans:       300 + d.rng.Intn(101),
		Defects:          defects,
		Confidence:       confidence,
		ProcessingTimeMS: 800 + d.rng.Intn(1201),
	}, nil
}

var _ port.Detector = (*MockDetector)(nil)
