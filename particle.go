package slideshow

import (
	"image/color"
	"math"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ParticleShape selects how a field draws each particle.
type ParticleShape uint8

const (
	ShapeDot      ParticleShape = iota // filled circle, e.g. snow
	ShapePetal                         // rotated ellipse, e.g. sakura petals
	ShapeConfetti                      // rotated 2:1 rectangle
)

// FieldConfig describes a looping field of falling particles. Velocities
// are in units per second.
type FieldConfig struct {
	// Count is the fixed number of particles.
	Count int
	// Area is where particles fall. They respawn above its top edge once they
	// pass its bottom edge.
	Area Rect
	// Radius is the particle size range.
	Radius Range
	// Fall is the downward speed range.
	Fall Range
	// Wind is a constant horizontal velocity range.
	Wind Range
	// Sway is the amplitude range of a sinusoidal horizontal drift.
	Sway Range
	// SwayPeriod divides elapsed time in the sway term. Zero means 1s.
	SwayPeriod time.Duration
	// Opacity is the alpha range.
	Opacity Range
	// Spin is the rotation speed range in radians per second.
	Spin Range
	// Colors are picked uniformly per particle. Empty means white.
	Colors []color.Color
	Shape  ParticleShape
	// WrapX wraps particles that drift past the side edges.
	WrapX bool
	// StartAbove spawns the initial particles above Area instead of inside.
	StartAbove bool
}

type fieldParticle struct {
	x, y     float64
	radius   float64
	fall     float64
	wind     float64
	sway     float64
	opacity  float64
	rotation float64
	spin     float64
	clr      color.Color
}

// ParticleField simulates and draws a fixed pool of decorative particles.
type ParticleField struct {
	config    FieldConfig
	particles []fieldParticle
	rng       *rand.Rand
}

// NewParticleField seeds cfg.Count particles using rng. A nil rng uses the
// package-level source.
func NewParticleField(cfg FieldConfig, rng *rand.Rand) *ParticleField {
	f := &ParticleField{config: cfg, rng: rng}
	f.reseed()
	return f
}

// Config returns a pointer to the field's config for live tuning.
func (f *ParticleField) Config() *FieldConfig {
	return &f.config
}

// Len returns the number of particles.
func (f *ParticleField) Len() int {
	return len(f.particles)
}

// Resize moves the field to area and reseeds every particle.
func (f *ParticleField) Resize(area Rect) {
	f.config.Area = area
	f.reseed()
}

func (f *ParticleField) reseed() {
	n := max(f.config.Count, 0)
	if cap(f.particles) < n {
		f.particles = make([]fieldParticle, n)
	}
	f.particles = f.particles[:n]
	a := f.config.Area
	for i := range f.particles {
		p := &f.particles[i]
		f.spawn(p)
		if f.config.StartAbove {
			p.y = a.Y - 20 - f.float()*a.Height
		} else {
			p.y = a.Y + f.float()*a.Height
		}
	}
}

func (f *ParticleField) float() float64 {
	if f.rng != nil {
		return f.rng.Float64()
	}
	return rand.Float64()
}

// spawn randomizes p at a random x along the top edge.
func (f *ParticleField) spawn(p *fieldParticle) {
	c := &f.config
	p.x = c.Area.X + f.float()*c.Area.Width
	p.y = c.Area.Y - 10
	p.radius = c.Radius.Random(f.rng)
	p.fall = c.Fall.Random(f.rng)
	p.wind = c.Wind.Random(f.rng)
	p.sway = c.Sway.Random(f.rng)
	p.opacity = c.Opacity.Random(f.rng)
	p.rotation = f.float() * 2 * math.Pi
	p.spin = c.Spin.Random(f.rng)
	if len(c.Colors) > 0 {
		p.clr = c.Colors[int(f.float()*float64(len(c.Colors)))%len(c.Colors)]
	} else {
		p.clr = color.White
	}
}

// Update advances the field by dt seconds. t is the elapsed time used for
// the sway phase.
func (f *ParticleField) Update(dt float64, t time.Duration) {
	if dt <= 0 {
		return
	}
	c := &f.config
	period := c.SwayPeriod
	if period <= 0 {
		period = time.Second
	}
	phase := float64(t) / float64(period)
	bottom := c.Area.Bottom()
	for i := range f.particles {
		p := &f.particles[i]
		p.y += p.fall * dt
		p.x += (p.wind + math.Sin(phase+p.rotation)*p.sway) * dt
		p.rotation += p.spin * dt

		if p.y > bottom+p.radius {
			f.spawn(p)
			continue
		}
		if c.WrapX {
			if p.x < c.Area.X {
				p.x = c.Area.Right()
			} else if p.x > c.Area.Right() {
				p.x = c.Area.X
			}
		}
	}
}

// Draw renders every particle through geo.
func (f *ParticleField) Draw(dst *ebiten.Image, geo ebiten.GeoM) {
	for i := range f.particles {
		p := &f.particles[i]
		clr := WithAlpha(p.clr, p.opacity)
		switch f.config.Shape {
		case ShapePetal:
			FillPath(dst, EllipsePath(p.x, p.y, p.radius, p.radius*0.6, p.rotation), geo, clr)
		case ShapeConfetti:
			FillPath(dst, rotatedRect(p.x, p.y, p.radius, p.radius/2, p.rotation), geo, clr)
		default:
			FillCircle(dst, p.x, p.y, p.radius, geo, clr)
		}
	}
}

// rotatedRect returns a w x h rectangle centered on (cx, cy) rotated by
// angle radians.
func rotatedRect(cx, cy, w, h, angle float64) *vector.Path {
	sin, cos := math.Sincos(angle)
	pt := func(x, y float64) Vec2 {
		return Vec2{cx + x*cos - y*sin, cy + x*sin + y*cos}
	}
	return PolygonPath(pt(-w/2, -h/2), pt(w/2, -h/2), pt(w/2, h/2), pt(-w/2, h/2))
}
