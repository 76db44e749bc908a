package scenes

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/nhimhouse/slideshow"
)

const (
	houseOffset    = 300.0
	houseSize      = 800.0
	momSize        = 150.0
	houseGreeting  = "Chào mừng đến nhà Mom & Nhím! 🏠"
	houseImagePath = "images/house/house.png"
)

var (
	pinkSky = slideshow.MustGradient(0, "#fce7f3", 0.4, "#fbcfe8", 0.7, "#fff1f2", 1, "#fdf2f8")
	pinkSun = slideshow.MustGradient(0, "#fef3c7", 1, "#fcd34d")
	sunHaze = slideshow.MustHex("#fbcfe8")
)

// mom is the host. She lives in the house scene only and is not part of the
// roster.
var mom = slideshow.CharacterProfile{
	Name:   "Nhím - Mom",
	Avatar: 106,
	Messages: []string{
		"Chào bạn! 👋",
		"Hôm nay thật đẹp trời! ☀️",
		"Mình đang bận quá! 😅",
		"Được nghỉ rồi! 🎉",
		"Đi chơi không? 🎈",
		"Mệt quá! 😴",
		"Vui quá! 😊",
		"Làm gì thế? 🤔",
		"Ăn gì đây? 🍰",
		"Tuyệt vời! ⭐",
		"Hehe 😄",
		"À... 😯",
		"Ồ! 😲",
		"Được rồi! 👍",
	},
}

// House is the opening slide: Mom in front of her house on a pink winter
// morning. The house always draws behind Mom; a click reaches Mom first.
type House struct {
	base
	back   *slideshow.Compositor
	house  *slideshow.Object
	mom    *slideshow.Object
	sakura *slideshow.ParticleField
}

var _ slideshow.Scene = (*House)(nil)

// NewHouse returns the house slide.
func NewHouse() *House {
	return &House{base: base{
		info: slideshow.SceneInfo{
			Title: "Ngôi nhà của Mom Nhím",
			Body: []string{
				"Giáng Sinh tới, nhà Mom Nhím sáng rực như bật max đồ họa.",
				"Đèn treo khắp nơi, trong nhà ấm áp, thơm mùi bánh.",
				"Còn tụi nhỏ thì sao? Mom cho ra ở ngoài trời hết.",
				"Mom nói rất tỉnh: \"Ra đây cho mát, cho khỏe, cho… quen gió quen sương.\"",
				"Gió thổi cái vèo. Tụi nhỏ nhìn nhau:",
				"Ủa Giáng Sinh hay trại huấn luyện phiên bản huyền bí vậy Mom?",
			},
		},
		maxOffset: houseOffset,
	}}
}

func (s *House) Setup(st *slideshow.Stage) error {
	s.begin(st)
	s.back = st.NewCompositor()
	w, h := st.Size()
	s.sakura = newSakura(st.Env(), w, h)
	s.build()
	st.OnClick(func(ctx slideshow.ClickContext) {
		if s.comp.DispatchClick(ctx.WorldX, ctx.WorldY) == nil {
			s.back.DispatchClick(ctx.WorldX, ctx.WorldY)
		}
	})
	return nil
}

func (s *House) build() {
	st := s.st
	sc := s.scale()
	w, h := st.Size()
	env := st.Env()
	assets := st.Assets()

	s.mom = slideshow.NewCharacter(env, mom, w/2-100*sc, h-momSize*sc, momSize*sc,
		assets.Texture(mom.AvatarPath()), nil)
	s.house = slideshow.NewBuilding(env, "house", houseGreeting, w/2, h, houseSize*sc,
		assets.Texture(houseImagePath))
	s.house.Building.Resident = s.mom

	s.back.Clear()
	s.back.Add(s.house)
	s.comp.Clear()
	s.comp.Add(s.mom)
}

func (s *House) Render(dst *ebiten.Image, t time.Duration) {
	st := s.st
	dt := s.step(t)
	w, h := st.Size()

	drawSky(dst, st, pinkSky)
	geo := st.ScreenGeoM()
	sunX, sunY, sunR := w*0.85, h*0.18, 50.0
	slideshow.Glow(dst, sunX, sunY, sunR*2.5, 0.6, geo, sunHaze)
	pinkSun.FillRadial(dst, sunX, sunY, sunR, geo)
	s.sakura.Update(dt, t)
	s.sakura.Draw(dst, geo)

	drawGround(dst, st, groundSnow)
	drawFence(dst, st)

	f := st.Frame(dst, t)
	s.back.RenderFrame(f)
	s.comp.RenderFrame(f)
	s.drawSnow(dst, dt, t)
}

func (s *House) OnResize(w, h float64) {
	if s.st == nil {
		return
	}
	s.resize(w, h)
	s.sakura.Resize(slideshow.Rect{Width: w, Height: h * 0.7})
	s.build()
}

func (s *House) Teardown() {
	if s.back != nil {
		s.back.Clear()
	}
	s.house, s.mom = nil, nil
	s.base.Teardown()
}

// Mom returns the host character while the slide is set up.
func (s *House) Mom() *slideshow.Object { return s.mom }

// Building returns the house while the slide is set up.
func (s *House) Building() *slideshow.Object { return s.house }
