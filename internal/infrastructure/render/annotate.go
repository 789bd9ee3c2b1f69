package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/disintegration/imaging"

	"coffee-grader/internal/domain/entity"
	"coffee-grader/internal/domain/port"
)

// Legend geometry. The legend sits in the bottom-right corner with a
// 10px margin and grows by one 18px row per defect class.
const (
	legendWidth     = 180
	legendRowHeight = 18
	legendHeaderPad = 20
	legendMargin    = 10
)

// Annotator draws detection boxes and a defect legend onto sample photos.
type Annotator struct {
	fonts *Fonts
}

// NewAnnotator creates an annotator using the given font set.
func NewAnnotator(fonts *Fonts) *Annotator {
	return &Annotator{fonts: fonts}
}

// Annotate decodes the image, draws a color-coded box with a confidence
// label for every detection, adds the legend, and re-encodes as JPEG at
// quality 90.
func (a *Annotator) Annotate(imageData []byte, detections []entity.Detection) ([]byte, error) {
	src, err := imaging.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	img := imaging.Clone(src)
	a.renderAnnotations(img, detections)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("encode annotated image: %w", err)
	}
	return buf.Bytes(), nil
}

// renderAnnotations draws boxes, labels and the legend onto img in place.
func (a *Annotator) renderAnnotations(img *image.NRGBA, detections []entity.Detection) {
	white := color.NRGBA{255, 255, 255, 255}

	for _, det := range detections {
		if !det.Valid() {
			continue
		}
		x1, y1, x2, y2 := det.Rect()
		col := entity.ColorFor(det.ClassName)

		strokeRect(img, image.Rect(x1, y1, x2, y2), col, 2)

		// Label tag sits above the box; at the top edge it clips off
		// the frame rather than shifting down.
		label := fmt.Sprintf("%s %.0f%%", det.ClassName, det.Confidence*100)
		tagTop := y1 - 15
		fillRect(img, image.Rect(x1, tagTop, x1+textWidth(a.fonts.Label, label), tagTop+textHeight(a.fonts.Label)), col)
		drawText(img, x1, tagTop, label, a.fonts.Label, white)
	}

	a.drawLegend(img, detections)
}

// drawLegend renders the per-class defect counts in the bottom-right
// corner. Detections of normal beans are excluded; with no defects the
// legend is omitted entirely.
func (a *Annotator) drawLegend(img *image.NRGBA, detections []entity.Detection) {
	counts := make(map[string]int)
	for _, det := range detections {
		if det.ClassName == entity.LabelNormal {
			continue
		}
		counts[det.ClassName]++
	}
	if len(counts) == 0 {
		return
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	white := color.NRGBA{255, 255, 255, 255}
	black := color.NRGBA{A: 255}

	bounds := img.Bounds()
	legendHeight := legendHeaderPad + len(counts)*legendRowHeight
	x := bounds.Max.X - legendWidth - legendMargin
	y := bounds.Max.Y - legendHeight - legendMargin

	box := image.Rect(x, y, x+legendWidth, y+legendHeight)
	fillRect(img, box, white)
	strokeRect(img, box, black, 1)
	drawText(img, x+5, y+2, "Defects Found:", a.fonts.Legend, black)

	yOff := y + legendHeaderPad
	for _, label := range labels {
		col := entity.ColorFor(label)
		swatch := image.Rect(x+5, yOff, x+15, yOff+10)
		fillRect(img, swatch, col)
		strokeRect(img, swatch, black, 1)
		drawText(img, x+20, yOff-2, fmt.Sprintf("%s: %d", label, counts[label]), a.fonts.Legend, black)
		yOff += legendRowHeight
	}
}

var _ port.Annotator = (*Annotator)(nil)
