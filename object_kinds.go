package slideshow

import (
	"math"
	"time"

	"github.com/tanema/gween/ease"
)

// Gift timing and layout.
const (
	GiftDuration        = 2 * time.Second
	GiftChance          = 0.10
	BuildingGreetingFor = 3 * time.Second

	defaultMoveSpeed = 180.0 // world units per second at scale 1
	maxStep          = 100 * time.Millisecond
)

var animalMessages = []string{
	"Ụ ục ục... 🐷",
	"Meo meo! 🐱",
	"Gá gà gò gò! 🐓",
	"Dùi dùi! 🐄",
	"Đói bụng rồi! 🍽️",
	"Cho em ăn nào! 🤤",
	"Mệt quá! 😴",
	"Vui quá! 🥳",
	"Nghỉ thôi... 😴",
	"Chơi cùng với! 🥰",
}

var treeMessages = []string{
	"Rì rào... Rì rào...",
	"Gió mát quá! 🍃",
	"Cây này do Mom trồng đó!",
	"Lớn nhanh nào!",
	"Xào xạc... Xào xạc...",
	"Chào bạn nhỏ! 👋",
}

var defaultGiftMessages = []string{"Quà nè! 🎁"}
var defaultNoGiftMessages = []string{"Hôm nay chưa có gì đâu"}

// CharacterState is the payload of a KindCharacter object.
type CharacterState struct {
	Profile CharacterProfile
	// Trees lists the trees this character owns.
	Trees []*Object
	// MoveSpeed is in world units per second.
	MoveSpeed float64

	target   Vec2
	moving   bool
	lastStep time.Time
}

// TreeState is the payload of a KindTree object.
type TreeState struct {
	Species string
	Fruit   *Texture
	Owner   *Object

	gift giftAnim
}

type giftAnim struct {
	active  bool
	start   time.Time
	originY float64
	rise    float64
	alpha   float64
	tweens  *TweenGroup
}

// AnimalState is the payload of a KindAnimal object.
type AnimalState struct {
	Species  string
	BobPhase float64
	bob      float64 // offset of the last drawn frame
}

// BuildingState is the payload of a KindBuilding object.
type BuildingState struct {
	Greeting string
	Resident *Object
}

// NewCharacter creates a character from a roster profile.
func NewCharacter(env *Env, p CharacterProfile, x, y, size float64, img *Texture, snd *Sound) *Object {
	return &Object{
		Kind:  KindCharacter,
		Name:  p.Name,
		X:     x,
		Y:     y,
		Size:  size,
		Image: img,
		Sound: snd,
		Character: &CharacterState{
			Profile:   p,
			MoveSpeed: defaultMoveSpeed,
		},
		env: env,
	}
}

// NewTree creates a fruit tree. fruit may be nil for trees without gifts.
func NewTree(env *Env, species string, x, y, size float64, flip bool, img, fruit *Texture) *Object {
	return &Object{
		Kind:  KindTree,
		Name:  species,
		X:     x,
		Y:     y,
		Size:  size,
		Flip:  flip,
		Image: img,
		Tree:  &TreeState{Species: species, Fruit: fruit},
		env:   env,
	}
}

// NewAnimal creates a bobbing animal.
func NewAnimal(env *Env, species string, x, y, size float64, flip bool, bobPhase float64, img *Texture) *Object {
	return &Object{
		Kind:   KindAnimal,
		Name:   species,
		X:      x,
		Y:      y,
		Size:   size,
		Flip:   flip,
		Image:  img,
		Animal: &AnimalState{Species: species, BobPhase: bobPhase},
		env:    env,
	}
}

// NewBuilding creates a building whose click shows greeting.
func NewBuilding(env *Env, name, greeting string, x, y, size float64, img *Texture) *Object {
	return &Object{
		Kind:     KindBuilding,
		Name:     name,
		X:        x,
		Y:        y,
		Size:     size,
		Image:    img,
		Building: &BuildingState{Greeting: greeting},
		env:      env,
	}
}

// --- Character ---

// Own records tree as belonging to the character o.
func (o *Object) Own(tree *Object) {
	if o.Kind != KindCharacter || tree == nil || tree.Kind != KindTree {
		return
	}
	tree.Tree.Owner = o
	o.Character.Trees = append(o.Character.Trees, tree)
}

// MoveTo starts walking toward (x, y).
func (o *Object) MoveTo(x, y float64) {
	if o.Kind != KindCharacter {
		return
	}
	c := o.Character
	c.target = Vec2{x, y}
	c.moving = true
	c.lastStep = o.env.Now()
}

// Moving reports whether a character is walking toward a target.
func (o *Object) Moving() bool {
	return o.Kind == KindCharacter && o.Character.moving
}

// step advances a walking character toward its target.
func (o *Object) step(now time.Time) {
	c := o.Character
	if !c.moving {
		return
	}
	dt := now.Sub(c.lastStep)
	c.lastStep = now
	if dt <= 0 {
		return
	}
	if dt > maxStep {
		dt = maxStep
	}
	dx := c.target.X - o.X
	dy := c.target.Y - o.Y
	dist := math.Hypot(dx, dy)
	move := c.MoveSpeed * dt.Seconds()
	if dist <= move || dist == 0 {
		o.X, o.Y = c.target.X, c.target.Y
		c.moving = false
		return
	}
	o.X += dx / dist * move
	o.Y += dy / dist * move
	o.Flip = dx < 0
}

// TreeInteraction has character o react to tree: an owner of the tree
// walks over and, with probability GiftChance, makes it drop a gift. It
// returns whether a gift was produced.
func (o *Object) TreeInteraction(tree *Object) bool {
	if o.Kind != KindCharacter || tree == nil || tree.Kind != KindTree {
		return false
	}
	if tree.Tree.Owner != o {
		return false
	}
	side := 1.0
	if o.X < tree.X {
		side = -1
	}
	o.MoveTo(tree.X+side*tree.Size*0.35, tree.Y+1)

	p := o.Character.Profile
	if o.env.Float64() < GiftChance {
		tree.ActivateGift()
		o.ShowChat(o.env.Pick(orDefault(p.GiftMessages, defaultGiftMessages)), DefaultChatDuration)
		return true
	}
	o.ShowChat(o.env.Pick(orDefault(p.NoGiftMessages, defaultNoGiftMessages)), DefaultChatDuration)
	return false
}

func orDefault(pool, fallback []string) []string {
	if len(pool) == 0 {
		return fallback
	}
	return pool
}

func (o *Object) characterClick() {
	o.ShowChat(o.env.Pick(o.Character.Profile.Messages), DefaultChatDuration)
	if o.Sound != nil {
		o.Sound.Play()
	}
}

func (o *Object) renderCharacter(f *Frame) {
	o.step(f.Now)
	DrawSprite(f.Target, o.Image, o.X, o.Y, o.Size, o.Flip, 1, f.View)
	o.drawNameLabel(f)
	if o.HasActiveChat() {
		o.drawChatBubble(f, o.Y-o.Size-nameLabelHeight*f.Scale)
	}
}

// --- Tree ---

func (o *Object) treeClick() {
	t := o.Tree
	if t.Owner != nil {
		t.Owner.TreeInteraction(o)
		return
	}
	o.ShowChat(o.env.Pick(treeMessages), DefaultChatDuration)
	o.ActivateGift()
}

// ActivateGift starts the floating fruit animation. No-op while one is
// already running.
func (o *Object) ActivateGift() {
	if o.Kind != KindTree || o.GiftActive() {
		return
	}
	g := &o.Tree.gift
	g.active = true
	g.start = o.env.Now()
	g.originY = o.Y - o.Size*0.8
	g.tweens = Tween(&g.rise, 0, 100, float32(GiftDuration.Seconds()), ease.Linear).
		With(&g.alpha, 1, 0, float32(GiftDuration.Seconds()), ease.InCubic)
}

// GiftActive reports whether the gift animation is running.
func (o *Object) GiftActive() bool {
	if o.Kind != KindTree || !o.Tree.gift.active {
		return false
	}
	if o.env.Now().Sub(o.Tree.gift.start) >= GiftDuration {
		o.Tree.gift.active = false
		return false
	}
	return true
}

// giftState returns the gift's rise (unscaled units) and alpha at now.
func (o *Object) giftState(now time.Time) (rise, alpha float64, ok bool) {
	g := &o.Tree.gift
	if !g.active {
		return 0, 0, false
	}
	elapsed := now.Sub(g.start)
	if elapsed >= GiftDuration {
		g.active = false
		return 0, 0, false
	}
	g.tweens.Seek(float32(elapsed.Seconds()))
	return g.rise, g.alpha, true
}

func (o *Object) renderTree(f *Frame) {
	DrawSprite(f.Target, o.Image, o.X, o.Y, o.Size, o.Flip, 1, f.View)
	if rise, alpha, ok := o.giftState(f.Now); ok && o.Tree.Fruit.Ready() {
		size := 60 * f.Scale
		y := o.Tree.gift.originY - rise*f.Scale
		Glow(f.Target, o.X, y, size*0.8, alpha*0.6, f.View, giftGlowColor)
		DrawImageCentered(f.Target, o.Tree.Fruit, o.X, y, size, alpha, f.View)
	}
	if o.HasActiveChat() {
		o.drawChatBubble(f, o.Y-o.Size)
	}
}

// --- Animal ---

// bobOffset returns the vertical bob at elapsed time t.
func (o *Object) bobOffset(t time.Duration) float64 {
	return math.Sin(t.Seconds()+o.Animal.BobPhase) * 3
}

func (o *Object) renderAnimal(f *Frame) {
	o.Animal.bob = o.bobOffset(f.Time)
	y := o.Y + o.Animal.bob
	DrawSprite(f.Target, o.Image, o.X, y, o.Size, o.Flip, 1, f.View)
	if o.HasActiveChat() {
		o.drawChatBubble(f, y-o.Size)
	}
}

// --- Building ---

func (o *Object) buildingClick() {
	o.ShowChat(o.Building.Greeting, BuildingGreetingFor)
	if r := o.Building.Resident; r != nil {
		r.OnClick()
	}
}

func (o *Object) renderBuilding(f *Frame) {
	if o.HasActiveChat() {
		w := o.HitboxWidth()
		Glow(f.Target, o.X, o.Y-o.Size/2, math.Max(w, o.Size)*0.6, 0.35, f.View, buildingGlowColor)
	}
	DrawSprite(f.Target, o.Image, o.X, o.Y, o.Size, o.Flip, 1, f.View)
	if o.HasActiveChat() {
		o.drawChatBubble(f, o.Y-o.Size*0.8)
	}
}
