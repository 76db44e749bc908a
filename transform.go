package slideshow

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// Transformer receives a 2D transform as a sequence of canvas-style
// operations. Each call post-multiplies the current matrix, so the operation
// issued last is the first one applied to a point.
type Transformer interface {
	ResetTransform()
	Scale(sx, sy float64)
	Translate(tx, ty float64)
}

// Affine is a Transformer that accumulates operations into a matrix.
// The zero value is the identity transform.
type Affine struct {
	m    [6]float64
	init bool
}

func (a *Affine) cur() [6]float64 {
	if !a.init {
		return identityTransform
	}
	return a.m
}

// ResetTransform sets the matrix back to identity.
func (a *Affine) ResetTransform() {
	a.m = identityTransform
	a.init = true
}

// Scale post-multiplies a scale.
func (a *Affine) Scale(sx, sy float64) {
	a.m = multiplyAffine(a.cur(), [6]float64{sx, 0, 0, sy, 0, 0})
	a.init = true
}

// Translate post-multiplies a translation.
func (a *Affine) Translate(tx, ty float64) {
	a.m = multiplyAffine(a.cur(), [6]float64{1, 0, 0, 1, tx, ty})
	a.init = true
}

// Matrix returns the accumulated matrix as [a, b, c, d, tx, ty].
func (a *Affine) Matrix() [6]float64 {
	return a.cur()
}

// Apply transforms a point by the accumulated matrix.
func (a *Affine) Apply(x, y float64) (float64, float64) {
	return transformPoint(a.cur(), x, y)
}

// GeoM converts the accumulated matrix into an ebiten.GeoM.
func (a *Affine) GeoM() ebiten.GeoM {
	return geoMFromAffine(a.cur())
}

// geoMFromAffine builds an ebiten.GeoM from [a, b, c, d, tx, ty].
func geoMFromAffine(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// geoMScale returns the uniform scale factor encoded in g (the length of its
// first column). Used to size strokes and glyphs drawn in device space.
func geoMScale(g ebiten.GeoM) float64 {
	a := g.Element(0, 0)
	b := g.Element(1, 0)
	return math.Hypot(a, b)
}
