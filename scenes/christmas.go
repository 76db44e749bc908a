package scenes

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/nhimhouse/slideshow"
)

const (
	christmasTreePath = "images/trees/candy-tree.png"
	christmasTreeSize = 400.0
	lightCount        = 30
	ornamentCount     = 12
	starCount         = 60
	lightY            = 15.0
	ornamentY         = 30.0
)

var (
	nightSky = slideshow.MustGradient(0, "#0f172a", 0.3, "#1e3a5f", 0.6, "#4a1942", 1, "#7c3aed")
	moonFace = slideshow.MustGradient(0, "#f8fafc", 1, "#e2e8f0")
	moonGlow = slideshow.MustHex("#e2e8f0")
	wireInk  = slideshow.MustHex("#333333")
	hookInk  = slideshow.MustHex("#888888")
	starGold = slideshow.MustHex("#ffd700")

	auroraColors   = []string{"#22d3ee", "#34d399", "#a78bfa"}
	lightColors    = []string{"#ff0000", "#00ff00", "#ffff00", "#0080ff", "#ff00ff"}
	ornamentColors = []string{"#c41e3a", "#d4a853", "#2d5a3d", "#4169e1", "#ff69b4"}
)

type bulb struct {
	x     float64
	clr   color.Color
	phase float64
}

type ornament struct {
	x     float64
	swing float64
	size  float64
	shade slideshow.Gradient
}

type twinkle struct {
	x, y, size, phase float64
}

// Christmas is the closing slide: Mom's Christmas wish under a night sky
// with a string of lights, swinging baubles, the candy tree and confetti.
// The camera is disabled.
type Christmas struct {
	base
	tree      *slideshow.Texture
	bulbs     []bulb
	ornaments []ornament
	stars     []twinkle
	confetti  *slideshow.ParticleField
}

var _ slideshow.Scene = (*Christmas)(nil)

// NewChristmas returns the Christmas slide.
func NewChristmas() *Christmas {
	return &Christmas{base: base{
		info: slideshow.SceneInfo{
			Title: "Lời chúc Giáng Sinh 🎄",
			Body: []string{
				"Mom cười, nhìn thẳng camera, giọng vừa ấm vừa lầy:",
				"\"Giáng Sinh tới rồi, Mom chúc cả nhà mình luôn vui vẻ, ăn no, ngủ kỹ, coi live không lag, ở đâu cũng ấm, trong nhà hay ngoài vườn cũng có tiếng cười.\"",
				"\"Cảm ơn cả nhà đã luôn ở đây, Giáng Sinh này mình cùng nhau vui nha!\"",
				"Cả nhà trong live đồng thanh đáp lại. Gió lại thổi nhẹ. Cây lại rung rung.",
				"Giáng Sinh năm nay: hơi lạ, hơi huyền, nhưng vui hết nấc 🎄😆",
			},
		},
	}}
}

func (s *Christmas) Setup(st *slideshow.Stage) error {
	s.begin(st)
	s.tree = st.Assets().Texture(christmasTreePath)
	w, h := st.Size()
	s.confetti = newConfetti(st.Env(), w, h)
	s.layout()
	return nil
}

// layout places the lights, ornaments and stars across the viewport.
func (s *Christmas) layout() {
	w, h := s.st.Size()
	env := s.st.Env()

	s.bulbs = s.bulbs[:0]
	for i := range lightCount {
		s.bulbs = append(s.bulbs, bulb{
			x:     float64(i) / (lightCount - 1) * w,
			clr:   slideshow.MustHex(lightColors[i%len(lightColors)]),
			phase: float64(i) * 0.5,
		})
	}

	s.ornaments = s.ornaments[:0]
	for i := range ornamentCount {
		s.ornaments = append(s.ornaments, ornament{
			x:     (float64(i) + 0.5) * w / ornamentCount,
			swing: env.Float64() * 2 * math.Pi,
			size:  12 + env.Float64()*8,
			shade: ornamentShade(ornamentColors[i%len(ornamentColors)]),
		})
	}

	s.stars = s.stars[:0]
	for range starCount {
		s.stars = append(s.stars, twinkle{
			x:     env.Float64() * w,
			y:     env.Float64() * h * 0.5,
			size:  1 + env.Float64()*2,
			phase: env.Float64() * 2 * math.Pi,
		})
	}
}

// ornamentShade runs from a white highlight through hex to half its
// lightness at the rim.
func ornamentShade(hex string) slideshow.Gradient {
	clr := slideshow.MustHex(hex)
	c, _ := colorful.MakeColor(clr)
	dark, _ := colorful.MakeColor(slideshow.Darken(clr, 0.5))
	return slideshow.Gradient{
		{At: 0, Color: colorful.Color{R: 1, G: 1, B: 1}, Alpha: 1},
		{At: 0.3, Color: c, Alpha: 1},
		{At: 1, Color: dark, Alpha: 1},
	}
}

func (s *Christmas) Render(dst *ebiten.Image, t time.Duration) {
	st := s.st
	dt := s.step(t)
	sc := s.scale()
	ms := float64(t.Milliseconds())

	s.drawNight(dst, ms)
	drawGround(dst, st, groundSnow)
	drawFence(dst, st)
	s.drawLights(dst, ms, sc)
	s.drawOrnaments(dst, ms, sc)
	s.drawTree(dst, ms, sc)
	s.drawSnow(dst, dt, t)
	s.confetti.Update(dt, t)
	s.confetti.Draw(dst, st.ScreenGeoM())
}

func (s *Christmas) drawNight(dst *ebiten.Image, ms float64) {
	st := s.st
	w, h := st.Size()
	geo := st.ScreenGeoM()
	drawSky(dst, st, nightSky)

	wave := math.Sin(ms/2000) * 20
	for i, hex := range auroraColors {
		off := float64(i)*40 + wave*float64(i+1)*0.3
		var pts []slideshow.Vec2
		for x := 0.0; x <= w; x += 50 {
			pts = append(pts, slideshow.Vec2{X: x, Y: h*0.1 + off + math.Sin(x/100+ms/1000+float64(i))*30})
		}
		pts = append(pts, slideshow.Vec2{X: w, Y: h * 0.4}, slideshow.Vec2{X: 0, Y: h * 0.4})
		slideshow.FillPath(dst, slideshow.PolygonPath(pts...), geo, slideshow.WithAlpha(slideshow.MustHex(hex), 0.15))
	}

	for _, star := range s.stars {
		k := (math.Sin(ms/500+star.phase) + 1) / 2
		slideshow.FillCircle(dst, star.x, star.y, star.size*k, geo, slideshow.WithAlpha(color.White, 0.4+k*0.6))
	}

	mx, my, mr := w*0.15, h*0.15, 35.0
	slideshow.Glow(dst, mx, my, mr*2.5, 0.4, geo, moonGlow)
	moonFace.FillRadial(dst, mx, my, mr, geo)
}

// wireY returns the sag of the light string at x.
func wireY(x, sc float64) float64 {
	return lightY*sc + math.Sin(x/(30*sc))*5*sc
}

func (s *Christmas) drawLights(dst *ebiten.Image, ms, sc float64) {
	w, _ := s.st.Size()
	geo := s.st.ScreenGeoM()

	var wire vector.Path
	wire.MoveTo(0, float32(wireY(0, sc)))
	for x := 20 * sc; x <= w+20*sc; x += 20 * sc {
		wire.LineTo(float32(x), float32(wireY(x, sc)))
	}
	slideshow.StrokePath(dst, &wire, 2*sc, geo, wireInk)

	for _, b := range s.bulbs {
		y := wireY(b.x, sc) + 8*sc
		if math.Sin(ms/500+b.phase) > 0 {
			slideshow.Glow(dst, b.x, y, 15*sc, 0.8, geo, b.clr)
			slideshow.FillCircle(dst, b.x, y, 6*sc, geo, b.clr)
		} else {
			slideshow.FillCircle(dst, b.x, y, 6*sc, geo, wireInk)
		}
	}
}

func (s *Christmas) drawOrnaments(dst *ebiten.Image, ms, sc float64) {
	geo := s.st.ScreenGeoM()
	for _, o := range s.ornaments {
		x := o.x + math.Sin(ms/1000+o.swing)*10*sc
		y := ornamentY*sc + 25*sc
		size := o.size * sc

		var hook vector.Path
		hook.MoveTo(float32(o.x), float32(ornamentY*sc))
		hook.LineTo(float32(x), float32(y-size))
		slideshow.StrokePath(dst, &hook, sc, geo, hookInk)

		o.shade.FillRadial(dst, x, y, size, geo)
		slideshow.FillCircle(dst, x-size*0.3, y-size*0.3, size*0.2, geo, color.NRGBA{255, 255, 255, 128})
	}
}

func (s *Christmas) drawTree(dst *ebiten.Image, ms, sc float64) {
	if !s.tree.Ready() {
		return
	}
	w, h := s.st.Size()
	geo := s.st.ScreenGeoM()
	x, bottom := w*0.25, h*0.9
	size := christmasTreeSize * sc
	slideshow.DrawSprite(dst, s.tree, x, bottom, size, false, 1, geo)

	glow := math.Sin(ms/300)*0.3 + 0.7
	sx, sy, r := x, bottom-size-10*sc, 20*sc
	slideshow.Glow(dst, sx, sy, r*2, glow, geo, starGold)
	slideshow.FillPath(dst, starPath(sx, sy, r, ms/2000), geo, starGold)
}

// starPath builds a five-pointed star of outer radius r rotated by angle.
func starPath(cx, cy, r, angle float64) *vector.Path {
	pts := make([]slideshow.Vec2, 0, 10)
	for i := range 10 {
		rr := r
		if i%2 == 1 {
			rr = r * 0.382
		}
		a := angle - math.Pi/2 + float64(i)*math.Pi/5
		pts = append(pts, slideshow.Vec2{X: cx + math.Cos(a)*rr, Y: cy + math.Sin(a)*rr})
	}
	return slideshow.PolygonPath(pts...)
}

func (s *Christmas) OnResize(w, h float64) {
	if s.st == nil {
		return
	}
	s.resize(w, h)
	s.confetti.Resize(slideshow.Rect{Width: w, Height: h})
	s.layout()
}

func (s *Christmas) Teardown() {
	s.tree = nil
	s.confetti = nil
	s.base.Teardown()
}
