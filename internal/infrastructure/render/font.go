package render

import (
	"log"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Fonts bundles the faces used by the annotator and the summary renderer.
type Fonts struct {
	Label   font.Face // detection box labels
	Legend  font.Face // legend rows
	Body    font.Face // summary body lines
	Heading font.Face // summary emphasis lines
	Title   font.Face // summary title
}

// LoadFonts builds the face set from the bundled Go fonts, or from the
// TTF at path when one is given. Thai text needs a Thai-capable TTF
// supplied via path; the bundled fonts only carry Latin glyphs.
func LoadFonts(path string) *Fonts {
	regular := goregular.TTF
	bold := gobold.TTF
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("render: cannot read font %s, using bundled fonts: %v", path, err)
		} else {
			regular = data
			bold = data
		}
	}

	return &Fonts{
		Label:   newFace(regular, 12),
		Legend:  newFace(regular, 11),
		Body:    newFace(regular, 14),
		Heading: newFace(regular, 18),
		Title:   newFace(bold, 20),
	}
}

// newFace parses ttf at the given pixel size, falling back to the
// builtin bitmap face when parsing fails.
func newFace(ttf []byte, size float64) font.Face {
	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}
