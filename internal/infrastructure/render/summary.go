package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"coffee-grader/internal/domain/entity"
	"coffee-grader/internal/domain/port"
)

// Report card canvas size.
const (
	summaryWidth  = 400
	summaryHeight = 500
)

// SummaryRenderer produces the bilingual grading report card.
type SummaryRenderer struct {
	fonts *Fonts
}

// NewSummaryRenderer creates a renderer using the given font set.
func NewSummaryRenderer(fonts *Fonts) *SummaryRenderer {
	return &SummaryRenderer{fonts: fonts}
}

// Render produces the JPEG report card for an aggregated inspection.
func (r *SummaryRenderer) Render(breakdown entity.DefectBreakdown, totalBeans int, grade entity.Grade) ([]byte, error) {
	img := r.renderCard(breakdown, totalBeans, grade)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("encode summary image: %w", err)
	}
	return buf.Bytes(), nil
}

// renderCard lays out the card on a white 400x500 canvas.
func (r *SummaryRenderer) renderCard(breakdown entity.DefectBreakdown, totalBeans int, grade entity.Grade) *image.NRGBA {
	white := color.NRGBA{255, 255, 255, 255}
	black := color.NRGBA{A: 255}
	gray := color.NRGBA{100, 100, 100, 255}
	red := color.NRGBA{200, 0, 0, 255}
	orange := color.NRGBA{255, 140, 0, 255}

	img := imaging.New(summaryWidth, summaryHeight, white)

	drawText(img, 20, 20, "Coffee Bean Grading Summary", r.fonts.Title, black)
	drawText(img, 20, 45, "สรุปผลการเกรดเมล็ดกาแฟ", r.fonts.Body, gray)

	drawText(img, 20, 80, fmt.Sprintf("Total Beans: %d", totalBeans), r.fonts.Heading, black)
	drawText(img, 20, 100, fmt.Sprintf("จำนวนเมล็ดทั้งหมด: %d", totalBeans), r.fonts.Body, gray)

	drawText(img, 20, 130, fmt.Sprintf("Grade: %s", grade.Display()), r.fonts.Heading, black)

	drawText(img, 20, 170, "Defect Breakdown:", r.fonts.Heading, black)

	cat1, cat2 := breakdown.CategoryTotals()
	yOff := 200
	drawText(img, 20, yOff, fmt.Sprintf("Category 1 (Primary): %d", cat1), r.fonts.Body, red)
	yOff += 25
	drawText(img, 20, yOff, fmt.Sprintf("Category 2 (Secondary): %d", cat2), r.fonts.Body, orange)
	yOff += 25
	drawText(img, 20, yOff, fmt.Sprintf("Total Defects: %d", cat1+cat2), r.fonts.Heading, black)
	yOff += 35

	drawText(img, 20, yOff, "Details:", r.fonts.Body, black)
	yOff += 20

	for _, label := range breakdown.NonZeroLabels() {
		fillRect(img, image.Rect(20, yOff, 30, yOff+10), entity.ColorFor(label))
		line := fmt.Sprintf("%s (%s): %d", label, entity.NameThaiFor(label), breakdown[label])
		drawText(img, 35, yOff-2, line, r.fonts.Body, black)
		yOff += legendRowHeight
	}

	return img
}

var _ port.SummaryRenderer = (*SummaryRenderer)(nil)
