package slideshow

import (
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whitePixelOnce sync.Once
	whitePixel     *ebiten.Image
)

// solidSource returns a 1x1 white image used as the texture for vector fills.
func solidSource() *ebiten.Image {
	whitePixelOnce.Do(func() {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	})
	return whitePixel
}

// colorComponents returns straight-alpha components in [0, 1].
func colorComponents(c color.Color) (r, g, b, a float32) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return float32(n.R) / 255, float32(n.G) / 255, float32(n.B) / 255, float32(n.A) / 255
}

// FillPath fills p with clr after transforming its vertices by geo.
func FillPath(dst *ebiten.Image, p *vector.Path, geo ebiten.GeoM, clr color.Color) {
	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	drawVertices(dst, vs, is, geo, clr)
}

// StrokePath strokes p with the given width in path units.
func StrokePath(dst *ebiten.Image, p *vector.Path, width float64, geo ebiten.GeoM, clr color.Color) {
	vs, is := p.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	})
	drawVertices(dst, vs, is, geo, clr)
}

func drawVertices(dst *ebiten.Image, vs []ebiten.Vertex, is []uint16, geo ebiten.GeoM, clr color.Color) {
	if len(is) == 0 {
		return
	}
	r, g, b, a := colorComponents(clr)
	for i := range vs {
		x, y := geo.Apply(float64(vs[i].DstX), float64(vs[i].DstY))
		vs[i].DstX = float32(x)
		vs[i].DstY = float32(y)
		vs[i].SrcX = 0.5
		vs[i].SrcY = 0.5
		vs[i].ColorR = r
		vs[i].ColorG = g
		vs[i].ColorB = b
		vs[i].ColorA = a
	}
	op := &ebiten.DrawTrianglesOptions{
		AntiAlias:      true,
		ColorScaleMode: ebiten.ColorScaleModeStraightAlpha,
	}
	dst.DrawTriangles(vs, is, solidSource(), op)
}

// RoundedRectPath builds a closed rounded rectangle.
func RoundedRectPath(x, y, w, h, r float64) *vector.Path {
	r = math.Max(0, math.Min(r, math.Min(w, h)/2))
	var p vector.Path
	x0, y0 := float32(x), float32(y)
	x1, y1 := float32(x+w), float32(y+h)
	rr := float32(r)
	p.MoveTo(x0+rr, y0)
	p.LineTo(x1-rr, y0)
	p.Arc(x1-rr, y0+rr, rr, -math.Pi/2, 0, vector.Clockwise)
	p.LineTo(x1, y1-rr)
	p.Arc(x1-rr, y1-rr, rr, 0, math.Pi/2, vector.Clockwise)
	p.LineTo(x0+rr, y1)
	p.Arc(x0+rr, y1-rr, rr, math.Pi/2, math.Pi, vector.Clockwise)
	p.LineTo(x0, y0+rr)
	p.Arc(x0+rr, y0+rr, rr, math.Pi, 3*math.Pi/2, vector.Clockwise)
	p.Close()
	return &p
}

// CirclePath builds a closed circle.
func CirclePath(cx, cy, r float64) *vector.Path {
	var p vector.Path
	p.Arc(float32(cx), float32(cy), float32(r), 0, 2*math.Pi, vector.Clockwise)
	p.Close()
	return &p
}

// EllipsePath builds a closed axis-aligned ellipse rotated by angle radians
// about its center.
func EllipsePath(cx, cy, rx, ry, angle float64) *vector.Path {
	const segments = 24
	var p vector.Path
	sin, cos := math.Sincos(angle)
	for i := range segments {
		t := 2 * math.Pi * float64(i) / segments
		ex := math.Cos(t) * rx
		ey := math.Sin(t) * ry
		x := float32(cx + ex*cos - ey*sin)
		y := float32(cy + ex*sin + ey*cos)
		if i == 0 {
			p.MoveTo(x, y)
		} else {
			p.LineTo(x, y)
		}
	}
	p.Close()
	return &p
}

// PolygonPath builds a closed polygon through pts.
func PolygonPath(pts ...Vec2) *vector.Path {
	var p vector.Path
	for i, pt := range pts {
		if i == 0 {
			p.MoveTo(float32(pt.X), float32(pt.Y))
		} else {
			p.LineTo(float32(pt.X), float32(pt.Y))
		}
	}
	p.Close()
	return &p
}

// FillRect fills an axis-aligned rectangle given in geo's source space.
func FillRect(dst *ebiten.Image, x, y, w, h float64, geo ebiten.GeoM, clr color.Color) {
	FillPath(dst, PolygonPath(Vec2{x, y}, Vec2{x + w, y}, Vec2{x + w, y + h}, Vec2{x, y + h}), geo, clr)
}

// FillCircle fills a circle given in geo's source space.
func FillCircle(dst *ebiten.Image, cx, cy, r float64, geo ebiten.GeoM, clr color.Color) {
	if r <= 0 {
		return
	}
	FillPath(dst, CirclePath(cx, cy, r), geo, clr)
}

// Glow draws a soft radial halo of the given color around (cx, cy), fading
// from alpha at the center to transparent at radius.
func Glow(dst *ebiten.Image, cx, cy, radius, alpha float64, geo ebiten.GeoM, clr color.Color) {
	const rings = 6
	for i := rings; i >= 1; i-- {
		f := float64(i) / rings
		FillCircle(dst, cx, cy, radius*f, geo, WithAlpha(clr, alpha*(1-f)/rings*2))
	}
}

// DrawSprite draws tex anchored at its bottom-center point (x, bottom) in
// world space, scaled to the given height, optionally mirrored horizontally.
func DrawSprite(dst *ebiten.Image, tex *Texture, x, bottom, height float64, flip bool, alpha float64, view ebiten.GeoM) {
	img := tex.Image()
	if img == nil || height <= 0 {
		return
	}
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	width := height * iw / ih

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(width/iw, height/ih)
	op.GeoM.Translate(-width/2, -height)
	if flip {
		op.GeoM.Scale(-1, 1)
	}
	op.GeoM.Translate(x, bottom)
	op.GeoM.Concat(view)
	op.Filter = ebiten.FilterLinear
	if alpha < 1 {
		op.ColorScale.ScaleAlpha(float32(alpha))
	}
	dst.DrawImage(img, &op)
}

// DrawImageCentered draws tex centered on (cx, cy) with the given height.
func DrawImageCentered(dst *ebiten.Image, tex *Texture, cx, cy, height, alpha float64, view ebiten.GeoM) {
	DrawSprite(dst, tex, cx, cy+height/2, height, false, alpha, view)
}
