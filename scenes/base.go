package scenes

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/nhimhouse/slideshow"
)

// maxFrameStep caps the particle step after a stall.
const maxFrameStep = 0.1

// base carries what every slide shares: the stage it was set up on, its
// objects, the snowfall and the pan limit.
type base struct {
	info slideshow.SceneInfo

	st   *slideshow.Stage
	comp *slideshow.Compositor
	snow *slideshow.ParticleField

	// maxOffset is the horizontal pan limit in design units; the camera
	// gets maxOffset*Scale. Zero disables the camera.
	maxOffset float64
	last      time.Duration
}

func (b *base) Info() slideshow.SceneInfo { return b.info }

// begin attaches the slide to st: a fresh compositor, the snowfall and the
// camera limits.
func (b *base) begin(st *slideshow.Stage) {
	b.st = st
	b.comp = st.NewCompositor()
	b.last = 0
	w, h := st.Size()
	b.snow = newSnowfall(st.Env(), w, h)
	b.applyLimits()
}

func (b *base) applyLimits() {
	cam := b.st.Camera()
	if b.maxOffset <= 0 {
		cam.Enabled = false
		cam.SetLimits(0, 0)
		return
	}
	cam.SetLimits(b.maxOffset*b.st.Scale(), 0)
}

// resize reseeds the snowfall and re-applies the pan limit.
func (b *base) resize(w, h float64) {
	if b.st == nil {
		return
	}
	b.snow.Resize(slideshow.Rect{Width: w, Height: h})
	b.applyLimits()
}

// step returns the seconds since the previous frame.
func (b *base) step(t time.Duration) float64 {
	dt := (t - b.last).Seconds()
	b.last = t
	if dt < 0 {
		return 0
	}
	return min(dt, maxFrameStep)
}

// renderObjects draws the compositor's objects through the camera.
func (b *base) renderObjects(dst *ebiten.Image, t time.Duration) {
	b.comp.RenderFrame(b.st.Frame(dst, t))
}

// drawSnow advances and draws the snowfall in screen space.
func (b *base) drawSnow(dst *ebiten.Image, dt float64, t time.Duration) {
	b.snow.Update(dt, t)
	b.snow.Draw(dst, b.st.ScreenGeoM())
}

func (b *base) Teardown() {
	if b.comp != nil {
		b.comp.Clear()
	}
	b.st = nil
	b.snow = nil
}

// scale returns the stage's layout scale.
func (b *base) scale() float64 { return b.st.Scale() }

// Compositor returns the slide's objects, nil when torn down.
func (b *base) Compositor() *slideshow.Compositor {
	if b.st == nil {
		return nil
	}
	return b.comp
}
