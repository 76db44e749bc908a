package scenes

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/nhimhouse/slideshow"
)

const (
	penOffset     = 2500.0
	penAnimals    = 20
	animalSize    = 80.0
	animalSpread  = 75.0
	animalSizeVar = 20.0
)

var animalSpecies = []string{"conga", "conlon", "conbo", "contrau"}

func animalImagePath(species string) string { return "images/livestock/" + species + ".png" }

// Livestock is the pen beside the house: chickens, pigs, cows and buffalo
// bobbing among the rest of the cast.
type Livestock struct {
	base
	cast    []slideshow.CharacterProfile
	animals []*slideshow.Object
	chars   []*slideshow.Object
}

var _ slideshow.Scene = (*Livestock)(nil)

// NewLivestock returns the pen slide populated with cast.
func NewLivestock(cast []slideshow.CharacterProfile) *Livestock {
	return &Livestock{
		base: base{
			info: slideshow.SceneInfo{
				Title: "Khu chuồng trại",
				Body: []string{
					"Phía bên là khu chuồng trại Mom chăm sóc:",
					"gà thì cứ chạy linh tinh, lợn thì nằm ườn ra,",
					"bò và trâu thì đang nhai cỏ nhìn mọi người.",
					"Thỉnh thoảng có tiếng \"cục ta\" của gà, \"ủn ỉn\" của lợn tạo không khí ồn ã nhưng vui vẻ.",
					"Mom thích nhất là ngồi đây vừa xem mấy con vật vừa tám chuyện!",
				},
			},
			maxOffset: penOffset,
		},
		cast: cast,
	}
}

func (s *Livestock) Setup(st *slideshow.Stage) error {
	s.begin(st)
	s.build()
	st.RouteClicks(s.comp)
	return nil
}

func (s *Livestock) build() {
	st := s.st
	sc := s.scale()
	w, h := st.Size()
	env := st.Env()
	assets := st.Assets()
	lo, hi := worldSpan(w, penOffset*sc)
	ground := h - castLift*sc

	s.comp.Clear()
	s.animals = s.animals[:0]
	for i, x := range scatter(env, penAnimals, lo, hi-lo, 0.2) {
		species := animalSpecies[i%len(animalSpecies)]
		y := ground + env.Between(-animalSpread, animalSpread)*sc
		size := (animalSize + env.Float64()*animalSizeVar) * sc
		flip := env.Float64() > 0.5
		phase := env.Float64() * 2 * math.Pi
		a := slideshow.NewAnimal(env, species, x, y, size, flip, phase, assets.Texture(animalImagePath(species)))
		s.animals = append(s.animals, a)
		s.comp.Add(a)
	}
	s.chars = placeCast(st, s.cast, lo, hi, ground)
	for _, c := range s.chars {
		s.comp.Add(c)
	}
}

func (s *Livestock) Render(dst *ebiten.Image, t time.Duration) {
	st := s.st
	dt := s.step(t)
	w, h := st.Size()
	drawSky(dst, st, daySky)
	drawSun(dst, st, w*0.8, h*0.2, 40)
	drawGround(dst, st, groundDirt)
	drawFence(dst, st)
	s.renderObjects(dst, t)
	s.drawSnow(dst, dt, t)
}

func (s *Livestock) OnResize(w, h float64) {
	if s.st == nil {
		return
	}
	s.resize(w, h)
	s.build()
}

func (s *Livestock) Teardown() {
	s.animals, s.chars = nil, nil
	s.base.Teardown()
}

// Animals returns the pen's animals while the slide is set up.
func (s *Livestock) Animals() []*slideshow.Object { return s.animals }

// Characters returns the pen's cast while the slide is set up.
func (s *Livestock) Characters() []*slideshow.Object { return s.chars }
