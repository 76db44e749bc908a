package slideshow

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Font is a TrueType face source drawn at arbitrary sizes.
type Font struct {
	source *text.GoTextFaceSource
}

// LoadFont parses TTF/OTF data.
func LoadFont(ttfData []byte) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("slideshow: failed to parse font data: %w", err)
	}
	return &Font{source: source}, nil
}

// Face returns a face of the given pixel size.
func (f *Font) Face(size float64) *text.GoTextFace {
	return &text.GoTextFace{Source: f.source, Size: size}
}

// Advance returns the width of a single line of s at size.
func (f *Font) Advance(s string, size float64) float64 {
	if f == nil || size <= 0 {
		return 0
	}
	return text.Advance(s, f.Face(size))
}

// LineHeight returns the distance between baselines at size.
func (f *Font) LineHeight(size float64) float64 {
	m := f.Face(size).Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

var (
	fontsOnce   sync.Once
	regularFont *Font
	boldFont    *Font
	fontsErr    error
)

func loadFonts() {
	fontsOnce.Do(func() {
		if regularFont, fontsErr = LoadFont(goregular.TTF); fontsErr != nil {
			return
		}
		boldFont, fontsErr = LoadFont(gobold.TTF)
	})
}

// RegularFont returns the shared body font. Nil if the embedded font could
// not be parsed.
func RegularFont() *Font {
	loadFonts()
	return regularFont
}

// BoldFont returns the shared label font.
func BoldFont() *Font {
	loadFonts()
	return boldFont
}

// TextStyle describes how DrawText places and colors a string.
type TextStyle struct {
	Font  *Font
	Size  float64
	Color color.Color
	// Align and VAlign anchor the string on (x, y).
	Align  text.Align
	VAlign text.Align
	// LineSpacing is the baseline distance for multi-line strings. Zero uses
	// the font's line height.
	LineSpacing float64
}

// DrawText draws s at (x, y) in view's source space. Glyphs are rasterized
// at device resolution so zoomed text stays sharp.
func DrawText(dst *ebiten.Image, s string, x, y float64, style TextStyle, view ebiten.GeoM) {
	if style.Font == nil || s == "" || style.Size <= 0 {
		return
	}
	scale := geoMScale(view)
	if scale <= 0 {
		return
	}
	face := style.Font.Face(style.Size * scale)
	dx, dy := view.Apply(x, y)

	op := &text.DrawOptions{}
	op.GeoM.Translate(dx, dy)
	op.PrimaryAlign = style.Align
	op.SecondaryAlign = style.VAlign
	if style.LineSpacing > 0 {
		op.LineSpacing = style.LineSpacing * scale
	} else {
		op.LineSpacing = style.Font.LineHeight(style.Size) * scale
	}
	clr := style.Color
	if clr == nil {
		clr = color.Black
	}
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}

// WrapWords greedily breaks msg into lines no wider than maxWidth according
// to measure. A word wider than maxWidth gets a line of its own.
func WrapWords(msg string, maxWidth float64, measure func(string) float64) []string {
	words := strings.Fields(msg)
	if len(words) == 0 {
		return nil
	}
	lines := make([]string, 0, 2)
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if measure(candidate) > maxWidth {
			lines = append(lines, line)
			line = w
			continue
		}
		line = candidate
	}
	return append(lines, line)
}
