package render

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"

	"coffee-grader/internal/domain/entity"
)

func TestRenderCardCanvas(t *testing.T) {
	r := NewSummaryRenderer(LoadFonts(""))
	img := r.renderCard(entity.NewDefectBreakdown(), 350, entity.GradeSpecialty)

	require.Equal(t, summaryWidth, img.Bounds().Dx())
	require.Equal(t, summaryHeight, img.Bounds().Dy())
	require.Equal(t, testWhite, img.NRGBAAt(399, 499))
	require.Equal(t, testWhite, img.NRGBAAt(0, 499))
}

func TestRenderCardDetailSwatches(t *testing.T) {
	breakdown := entity.NewDefectBreakdown()
	breakdown["full_black"] = 1
	breakdown["broken"] = 2

	r := NewSummaryRenderer(LoadFonts(""))
	img := r.renderCard(breakdown, 350, entity.GradePremium)

	// Details rows start at y=305 with an 18px pitch, labels sorted
	// alphabetically: broken first, then full_black.
	require.Equal(t, testCoral, img.NRGBAAt(25, 310))
	require.Equal(t, testRed, img.NRGBAAt(25, 328))
}

func TestRenderCardZeroBreakdownHasNoSwatches(t *testing.T) {
	r := NewSummaryRenderer(LoadFonts(""))
	img := r.renderCard(entity.NewDefectBreakdown(), 0, entity.GradeSpecialty)

	require.Equal(t, testWhite, img.NRGBAAt(25, 310))
	require.Equal(t, testWhite, img.NRGBAAt(25, 328))
}

func TestRenderSummaryEncodesJPEG(t *testing.T) {
	breakdown := entity.NewDefectBreakdown()
	breakdown["immature"] = 3

	r := NewSummaryRenderer(LoadFonts(""))
	out, err := r.Render(breakdown, 320, entity.GradeExchange)
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(out, []byte{0xFF, 0xD8}))
	decoded, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, summaryWidth, decoded.Bounds().Dx())
	require.Equal(t, summaryHeight, decoded.Bounds().Dy())
}
