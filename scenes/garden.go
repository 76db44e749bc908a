package scenes

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/nhimhouse/slideshow"
)

const (
	gardenOffset  = 2500.0
	gardenTrees   = 20
	treeSize      = 150.0
	treeSizeRange = 20.0
	castSize      = 120.0
	castLift      = 100.0 // cast and trees stand this far above the bottom
	castSpread    = 100.0 // vertical scatter either way
)

// treeSpecies cycle along the garden.
var treeSpecies = []string{"caymit", "cayxoai", "caysaurieng", "cayoi", "caychuoi", "caycam"}

// fruitFiles maps a tree species to the sprite of its gift.
var fruitFiles = map[string]string{
	"cayoi":       "quaoi.png",
	"cayxoai":     "quaxoai.png",
	"caychuoi":    "naichuoi.png",
	"caymit":      "quamit.png",
	"caycam":      "quacam.png",
	"caysaurieng": "quasaurieng.png",
	"caytao":      "quatao.png",
}

func treeImagePath(species string) string { return "images/garden/" + species + ".png" }

func fruitImagePath(species string) string {
	f, ok := fruitFiles[species]
	if !ok {
		return ""
	}
	return "images/fruits/" + f
}

// Garden is the wide orchard behind the house. Each character with a
// tree_owner entry owns every tree of that species; clicking one of those
// trees sends the owner over to shake it.
type Garden struct {
	base
	cast  []slideshow.CharacterProfile
	trees []*slideshow.Object
	chars []*slideshow.Object
}

var _ slideshow.Scene = (*Garden)(nil)

// NewGarden returns the garden slide populated with cast.
func NewGarden(cast []slideshow.CharacterProfile) *Garden {
	return &Garden{
		base: base{
			info: slideshow.SceneInfo{
				Title: "Khu vườn huyền bí phía sau",
				Body: []string{
					"Phía sau là khu vườn Mom trồng riêng cho từng đứa:",
					"cây mít thì cứ rung bần bật mỗi khi Pun đi ngang,",
					"xoài của Quỳnh Như thì tỏa mùi thơm như đang rủ rê,",
					"còn cây ổi của Ong thỉnh thoảng khẽ nghiêng đầu như gật gù.",
					"Hoa quả lúc nào cũng sai trĩu, tụi nhỏ vừa hái vừa ăn, vừa nghe tiếng lá xào xạc như đang cười khúc khích.",
					"Thỉnh thoảng một quả tự rơi xuống đất cộp, không mạnh, chỉ vừa đủ để mọi người giật mình rồi phá lên cười: \"Vườn nhà Mom còn biết troll!\"",
				},
			},
			maxOffset: gardenOffset,
		},
		cast: cast,
	}
}

func (s *Garden) Setup(st *slideshow.Stage) error {
	s.begin(st)
	s.build()
	st.RouteClicks(s.comp)
	return nil
}

func (s *Garden) build() {
	st := s.st
	sc := s.scale()
	w, h := st.Size()
	env := st.Env()
	assets := st.Assets()
	offset := gardenOffset * sc
	lo, hi := worldSpan(w, offset)
	ground := h - castLift*sc

	s.comp.Clear()
	s.trees = s.trees[:0]
	for i, x := range scatter(env, gardenTrees, lo, hi-lo, 0.2) {
		species := treeSpecies[i%len(treeSpecies)]
		y := ground + env.Between(-castSpread, castSpread)*sc
		size := (treeSize + env.Float64()*treeSizeRange) * sc
		flip := env.Float64() > 0.5
		var fruit *slideshow.Texture
		if p := fruitImagePath(species); p != "" {
			fruit = assets.Texture(p)
		}
		tree := slideshow.NewTree(env, species, x, y, size, flip, assets.Texture(treeImagePath(species)), fruit)
		s.trees = append(s.trees, tree)
	}

	s.chars = placeCast(st, s.cast, lo, hi, ground)

	owners := make(map[string]*slideshow.Object)
	for _, c := range s.chars {
		if sp := c.Character.Profile.TreeOwner; sp != "" {
			if _, taken := owners[sp]; !taken {
				owners[sp] = c
			}
		}
	}
	for _, tree := range s.trees {
		if o, ok := owners[tree.Tree.Species]; ok {
			o.Own(tree)
		}
	}

	for _, t := range s.trees {
		s.comp.Add(t)
	}
	for _, c := range s.chars {
		s.comp.Add(c)
	}
}

// placeCast lines the cast up across [lo, hi] around the ground line.
func placeCast(st *slideshow.Stage, cast []slideshow.CharacterProfile, lo, hi, ground float64) []*slideshow.Object {
	sc := st.Scale()
	env := st.Env()
	assets := st.Assets()
	size := castSize * sc
	xs := lineUp(env, len(cast), lo, hi, size, 30*sc)
	out := make([]*slideshow.Object, 0, len(cast))
	for i, p := range cast {
		y := ground + env.Between(-castSpread, castSpread)*sc
		out = append(out, slideshow.NewCharacter(env, p, xs[i], y, size,
			assets.Texture(p.AvatarPath()), assets.Sound(p.Sound)))
	}
	return out
}

func (s *Garden) Render(dst *ebiten.Image, t time.Duration) {
	st := s.st
	dt := s.step(t)
	w, h := st.Size()
	drawSky(dst, st, daySky)
	drawSun(dst, st, w*0.8, h*0.2, 40)
	drawGround(dst, st, groundGrass)
	drawFence(dst, st)
	s.renderObjects(dst, t)
	s.drawSnow(dst, dt, t)
}

func (s *Garden) OnResize(w, h float64) {
	if s.st == nil {
		return
	}
	s.resize(w, h)
	s.build()
}

func (s *Garden) Teardown() {
	s.trees, s.chars = nil, nil
	s.base.Teardown()
}

// Trees returns the garden's trees while the slide is set up.
func (s *Garden) Trees() []*slideshow.Object { return s.trees }

// Characters returns the garden's cast while the slide is set up.
func (s *Garden) Characters() []*slideshow.Object { return s.chars }
