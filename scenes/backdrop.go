package scenes

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/nhimhouse/slideshow"
)

// Distances below are in design units, multiplied by the stage scale.
const (
	horizon       = 250.0 // ground starts this far above the bottom edge
	fenceSpacing  = 80.0
	fenceHeight   = 70.0
	fencePost     = 8.0
	fenceRail     = 5.0
	snowflakes    = 100
	sakuraPetals  = 25
	confettiCount = 50
)

var (
	daySky = slideshow.MustGradient(0, "#87CEEB", 0.6, "#B0E0E6", 1, "#98D8C8")

	sunColor = slideshow.MustHex("#FFD700")
	sunGlow  = color.NRGBA{255, 255, 200, 255}
	fenceInk = slideshow.MustHex("#8B4513")
)

type groundKind uint8

const (
	groundGrass groundKind = iota
	groundSnow
	groundDirt
)

var groundGradients = map[groundKind]slideshow.Gradient{
	groundGrass: slideshow.MustGradient(0, "#2d5016", 0.5, "#3d6b1f", 1, "#1f3a0f"),
	groundSnow:  slideshow.MustGradient(0, "#e8f4f8", 0.5, "#d5e8f0", 1, "#c5dde8"),
	groundDirt:  slideshow.MustGradient(0, "#8B7355", 0.5, "#A0826D", 1, "#6F5E4C"),
}

// drawSky fills the viewport with a vertical gradient in screen space.
func drawSky(dst *ebiten.Image, st *slideshow.Stage, g slideshow.Gradient) {
	w, h := st.Size()
	g.FillVertical(dst, 0, 0, w, h, st.ScreenGeoM())
}

// drawSun draws a glowing disc at (x, y) in screen space.
func drawSun(dst *ebiten.Image, st *slideshow.Stage, x, y, r float64) {
	geo := st.ScreenGeoM()
	slideshow.Glow(dst, x, y, r*2, 0.8, geo, sunGlow)
	slideshow.FillCircle(dst, x, y, r, geo, sunColor)
}

// groundY returns the world y of the horizon.
func groundY(st *slideshow.Stage) float64 {
	_, h := st.Size()
	return h - horizon*st.Scale()
}

// drawGround fills everything below the horizon that the camera shows.
func drawGround(dst *ebiten.Image, st *slideshow.Stage, kind groundKind) {
	_, h := st.Size()
	vis := st.Camera().VisibleBounds()
	top := groundY(st)
	bottom := math.Max(h+500, vis.Bottom())
	groundGradients[kind].FillVertical(dst, vis.X-10, top, vis.Width+20, bottom-top, st.View())
}

// drawFence draws posts on a fixed world grid and two rails across the
// visible range, so the fence scrolls with the camera.
func drawFence(dst *ebiten.Image, st *slideshow.Stage) {
	s := st.Scale()
	view := st.View()
	y := groundY(st)
	spacing := fenceSpacing * s
	postH := fenceHeight * s
	postW := fencePost * s

	vis := st.Camera().VisibleBounds()
	first := math.Floor(vis.X/spacing) - 1
	last := math.Ceil(vis.Right()/spacing) + 1
	for k := first; k <= last; k++ {
		x := k * spacing
		slideshow.FillRect(dst, x-postW/2, y-postH, postW, postH, view, fenceInk)
	}
	rail := fenceRail * s
	for _, at := range [2]float64{0.7, 0.3} {
		slideshow.FillRect(dst, vis.X-spacing, y-postH*at, vis.Width+2*spacing, rail, view, fenceInk)
	}
}

func newSnowfall(env *slideshow.Env, w, h float64) *slideshow.ParticleField {
	return slideshow.NewParticleField(slideshow.FieldConfig{
		Count:   snowflakes,
		Area:    slideshow.Rect{Width: w, Height: h},
		Radius:  slideshow.Range{Min: 1, Max: 4},
		Fall:    slideshow.Range{Min: 30, Max: 90},
		Sway:    slideshow.Range{Min: -15, Max: 15},
		Opacity: slideshow.Range{Min: 0.4, Max: 1},
		WrapX:   true,
	}, envRand(env))
}

func newSakura(env *slideshow.Env, w, h float64) *slideshow.ParticleField {
	return slideshow.NewParticleField(slideshow.FieldConfig{
		Count:   sakuraPetals,
		Area:    slideshow.Rect{Width: w, Height: h * 0.7},
		Radius:  slideshow.Range{Min: 4, Max: 10},
		Fall:    slideshow.Range{Min: 18, Max: 48},
		Sway:    slideshow.Range{Min: -24, Max: 24},
		Opacity: slideshow.Range{Min: 0.7, Max: 0.7},
		Spin:    slideshow.Range{Min: -0.6, Max: 0.6},
		Colors:  []color.Color{slideshow.MustHex("#f9a8d4")},
		Shape:   slideshow.ShapePetal,
		WrapX:   true,
	}, envRand(env))
}

func newConfetti(env *slideshow.Env, w, h float64) *slideshow.ParticleField {
	return slideshow.NewParticleField(slideshow.FieldConfig{
		Count:   confettiCount,
		Area:    slideshow.Rect{Width: w, Height: h},
		Radius:  slideshow.Range{Min: 5, Max: 15},
		Fall:    slideshow.Range{Min: 60, Max: 180},
		Wind:    slideshow.Range{Min: -60, Max: 60},
		Opacity: slideshow.Range{Min: 1, Max: 1},
		Spin:    slideshow.Range{Min: -3, Max: 3},
		Colors: []color.Color{
			slideshow.MustHex("#c41e3a"),
			slideshow.MustHex("#2d5a3d"),
			slideshow.MustHex("#d4a853"),
			slideshow.MustHex("#ffffff"),
			slideshow.MustHex("#ff6b6b"),
		},
		Shape:      slideshow.ShapeConfetti,
		WrapX:      true,
		StartAbove: true,
	}, envRand(env))
}
