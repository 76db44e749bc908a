package slideshow

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Hex parses a "#rrggbb" or "#rgb" color.
func Hex(s string) (color.Color, error) {
	c, err := colorful.Hex(expandShortHex(s))
	if err != nil {
		return nil, fmt.Errorf("color %q: %w", s, err)
	}
	return c, nil
}

// MustHex is like Hex but panics on malformed input. Intended for literals.
func MustHex(s string) color.Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func expandShortHex(s string) string {
	if len(s) == 4 && s[0] == '#' {
		return string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	return s
}

// WithAlpha returns c with its alpha replaced by a in [0, 1].
func WithAlpha(c color.Color, a float64) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(clamp(a, 0, 1)*255 + 0.5)
	return n
}

// Darken scales the lightness of c by factor in [0, 1].
func Darken(c color.Color, factor float64) color.Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return c
	}
	h, s, l := cf.Hsl()
	return colorful.Hsl(h, s, l*clamp(factor, 0, 1)).Clamped()
}

// GradientStop is one color position in a Gradient. At is in [0, 1].
type GradientStop struct {
	At    float64
	Color colorful.Color
	Alpha float64
}

// Gradient is a linear color ramp.
type Gradient []GradientStop

// ParseGradient builds a Gradient from alternating position and hex pairs,
// e.g. ParseGradient(0, "#87CEEB", 0.6, "#B0E0E6", 1, "#98D8C8").
func ParseGradient(pairs ...any) (Gradient, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("gradient: odd number of arguments")
	}
	g := make(Gradient, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		at, ok := toFloat(pairs[i])
		if !ok {
			return nil, fmt.Errorf("gradient: stop %d position %v is not a number", i/2, pairs[i])
		}
		hex, ok := pairs[i+1].(string)
		if !ok {
			return nil, fmt.Errorf("gradient: stop %d color %v is not a string", i/2, pairs[i+1])
		}
		if hex == "transparent" {
			// Fade toward the neighbouring hue instead of black.
			var prev colorful.Color
			if len(g) > 0 {
				prev = g[len(g)-1].Color
			}
			g = append(g, GradientStop{At: at, Color: prev, Alpha: 0})
			continue
		}
		c, err := colorful.Hex(expandShortHex(hex))
		if err != nil {
			return nil, fmt.Errorf("gradient: stop %d: %w", i/2, err)
		}
		g = append(g, GradientStop{At: at, Color: c, Alpha: 1})
	}
	sort.SliceStable(g, func(a, b int) bool { return g[a].At < g[b].At })
	return g, nil
}

// MustGradient is like ParseGradient but panics on error.
func MustGradient(pairs ...any) Gradient {
	g, err := ParseGradient(pairs...)
	if err != nil {
		panic(err)
	}
	return g
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

// At returns the interpolated color at t in [0, 1].
func (g Gradient) At(t float64) color.NRGBA {
	if len(g) == 0 {
		return color.NRGBA{}
	}
	t = clamp(t, 0, 1)
	if t <= g[0].At {
		return stopColor(g[0].Color, g[0].Alpha)
	}
	for i := 1; i < len(g); i++ {
		if t <= g[i].At {
			a, b := g[i-1], g[i]
			span := b.At - a.At
			f := 0.0
			if span > 0 {
				f = (t - a.At) / span
			}
			return stopColor(a.Color.BlendRgb(b.Color, f), a.Alpha+(b.Alpha-a.Alpha)*f)
		}
	}
	last := g[len(g)-1]
	return stopColor(last.Color, last.Alpha)
}

func stopColor(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp(alpha, 0, 1)*255 + 0.5)}
}

// FillVertical fills the rectangle (x, y, w, h), given in geo's source space,
// with the gradient running from top to bottom.
func (g Gradient) FillVertical(dst *ebiten.Image, x, y, w, h float64, geo ebiten.GeoM) {
	if len(g) == 0 || w <= 0 || h <= 0 {
		return
	}
	stops := append(Gradient(nil), g...)
	if stops[0].At > 0 {
		stops = append(Gradient{{At: 0, Color: stops[0].Color, Alpha: stops[0].Alpha}}, stops...)
	}
	if stops[len(stops)-1].At < 1 {
		last := stops[len(stops)-1]
		stops = append(stops, GradientStop{At: 1, Color: last.Color, Alpha: last.Alpha})
	}

	vs := make([]ebiten.Vertex, 0, len(stops)*2)
	is := make([]uint16, 0, (len(stops)-1)*6)
	for i, s := range stops {
		c := stopColor(s.Color, s.Alpha)
		r, gg, b, a := colorComponents(c)
		yy := y + h*s.At
		for _, xx := range [2]float64{x, x + w} {
			dx, dy := geo.Apply(xx, yy)
			vs = append(vs, ebiten.Vertex{
				DstX: float32(dx), DstY: float32(dy),
				SrcX: 0.5, SrcY: 0.5,
				ColorR: r, ColorG: gg, ColorB: b, ColorA: a,
			})
		}
		if i > 0 {
			base := uint16((i - 1) * 2)
			is = append(is, base, base+1, base+2, base+1, base+3, base+2)
		}
	}
	dst.DrawTriangles(vs, is, solidSource(), &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModeStraightAlpha,
	})
}

// FillRadial fills a disc centered on (cx, cy) with the gradient running from
// center (t=0) to rim (t=1).
func (g Gradient) FillRadial(dst *ebiten.Image, cx, cy, radius float64, geo ebiten.GeoM) {
	if len(g) == 0 || radius <= 0 {
		return
	}
	const rings = 12
	for i := rings; i >= 1; i-- {
		t := float64(i) / rings
		FillCircle(dst, cx, cy, radius*t, geo, g.At(t))
	}
}

// WithStopAlpha returns a copy of g with the alpha of stop i set to a.
func (g Gradient) WithStopAlpha(i int, a float64) Gradient {
	out := append(Gradient(nil), g...)
	if i >= 0 && i < len(out) {
		out[i].Alpha = a
	}
	return out
}
