//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"gocv.io/x/gocv"

	"coffee-grader/internal/domain/entity"
	"coffee-grader/internal/domain/port"
)

// Mean-intensity thresholds for the dark-bean heuristic, applied to
// the grayscale crop of each bean candidate.
const (
	fullBlackMaxMean    = 60.0
	partialBlackMaxMean = 110.0
	localConfidence     = 0.70
)

// LocalDetector counts beans and flags dark ones with classic OpenCV
// contour analysis. It is a rough stand-in for the trained model:
// only full_black and partial_black come out of the intensity
// heuristic, everything else reads as normal.
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

// NewLocalDetector creates a detector with the default thresholds.
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

// Detect analyzes the sample photo and returns per-bean detections.
// Bounding boxes are reported in original image coordinates.
func (d *LocalDetector) Detect(ctx context.Context, imageData []byte) (*entity.DetectorResult, error) {
	_ = ctx
	start := time.Now()

	mat, err := decodeToMat(imageData)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, errors.New("empty image")
	}
	if err := d.checkImageQuality(mat); err != nil {
		return nil, err
	}

	origW := mat.Cols()
	origH := mat.Rows()

	// Work on a capped size so the thresholds stay stable across
	// camera resolutions.
	scale := 1.0
	if mat.Cols() > d.MaxSide || mat.Rows() > d.MaxSide {
		scale = float64(d.MaxSide) / float64(maxInt(mat.Cols(), mat.Rows()))
		newW := int(float64(origW) * scale)
		newH := int(float64(origH) * scale)
		resized := gocv.NewMat()
		gocv.Resize(mat, &resized, image.Pt(newW, newH), 0, 0, gocv.InterpolationArea)
		mat.Close()
		mat = resized
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	blur := gocv.NewMat()
	defer blur.Close()
	gocv.GaussianBlur(gray, &blur, image.Pt(5, 5), 0, 0, gocv.BorderDefault)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(blur, &edges, 50, 150)

	contours := gocv.FindContours(edges, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	minArea := int(float64(mat.Cols()*mat.Rows()) * d.MinAreaRatio)
	detections := make([]entity.Detection, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		rect := gocv.BoundingRect(c)
		area := rect.Dx() * rect.Dy()
		if area < minArea {
			continue
		}
		if rect.Dy() == 0 {
			continue
		}
		aspect := float64(rect.Dx()) / float64(rect.Dy())
		if aspect < d.MinAspectRatio || aspect > d.MaxAspectRatio {
			continue
		}

		class := d.classifyBean(gray, rect)

		// Report the box in original coordinates.
		detections = append(detections, entity.Detection{
			BBox: []float64{
				float64(rect.Min.X) / scale,
				float64(rect.Min.Y) / scale,
				float64(rect.Max.X) / scale,
				float64(rect.Max.Y) / scale,
			},
			ClassName:  class,
			Confidence: localConfidence,
		})
	}

	return &entity.DetectorResult{
		TotalBeans:       len(detections),
		Detections:       detections,
		Confidence:       localConfidence,
		ProcessingTimeMS: int(time.Since(start).Milliseconds()),
	}, nil
}

// classifyBean labels a bean candidate from the mean intensity of its
// grayscale crop.
func (d *LocalDetector) classifyBean(gray gocv.Mat, rect image.Rectangle) string {
	region := gray.Region(rect)
	defer region.Close()

	mean := region.Mean().Val1
	switch {
	case mean < fullBlackMaxMean:
		return "full_black"
	case mean < partialBlackMaxMean:
		return "partial_black"
	default:
		return entity.LabelNormal
	}
}

// decodeToMat turns image bytes into a gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), errors.New("failed to decode image")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// checkImageQuality rejects photos too poor to grade: small frames,
// blur, bad exposure, heavy glare.
func (d *LocalDetector) checkImageQuality(mat gocv.Mat) error {
	if mat.Empty() {
		return errors.New("quality gate failed: empty image")
	}

	if mat.Cols() < d.MinImageSide || mat.Rows() < d.MinImageSide {
		return fmt.Errorf("quality gate failed: image is too small (%dx%d)", mat.Cols(), mat.Rows())
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, 80, 160)
	edgeRatio := ratioOfMask(edges)
	if edgeRatio < d.MinSharpnessEdgeRatio {
		return fmt.Errorf("quality gate failed: image is blurry (edge_ratio=%.4f)", edgeRatio)
	}

	bright := gocv.NewMat()
	defer bright.Close()
	gocv.Threshold(gray, &bright, 250, 255, gocv.ThresholdBinary)
	overexposedRatio := ratioOfMask(bright)
	if overexposedRatio > d.MaxOverexposedRatio {
		return fmt.Errorf("quality gate failed: overexposed image (ratio=%.4f)", overexposedRatio)
	}

	dark := gocv.NewMat()
	defer dark.Close()
	gocv.Threshold(gray, &dark, 20, 255, gocv.ThresholdBinaryInv)
	underexposedRatio := ratioOfMask(dark)
	if underexposedRatio > d.MaxUnderexposedRatio {
		return fmt.Errorf("quality gate failed: underexposed image (ratio=%.4f)", underexposedRatio)
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(mat, &hsv, gocv.ColorBGRToHSV)
	channels := gocv.Split(hsv)
	for i := range channels {
		defer channels[i].Close()
	}
	if len(channels) < 3 {
		return errors.New("quality gate failed: invalid hsv channels")
	}

	lowSat := gocv.NewMat()
	defer lowSat.Close()
	gocv.Threshold(channels[1], &lowSat, 40, 255, gocv.ThresholdBinaryInv)

	highVal := gocv.NewMat()
	defer highVal.Close()
	gocv.Threshold(channels[2], &highVal, 245, 255, gocv.ThresholdBinary)

	glare := gocv.NewMat()
	defer glare.Close()
	gocv.BitwiseAnd(lowSat, highVal, &glare)
	glareRatio := ratioOfMask(glare)
	if glareRatio > d.MaxGlareRatio {
		return fmt.Errorf("quality gate failed: too much glare (ratio=%.4f)", glareRatio)
	}

	return nil
}

func ratioOfMask(mask gocv.Mat) float64 {
	total := mask.Cols() * mask.Rows()
	if total <= 0 {
		return 0
	}
	return float64(gocv.CountNonZero(mask)) / float64(total)
}

var _ port.Detector = (*LocalDetector)(nil)
