package slideshow

import (
	"image"
	"image/color"
	"slices"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

var testStart = time.Date(2024, 12, 24, 20, 0, 0, 0, time.UTC)

// solidTexture returns a ready w x h texture filled with c.
func solidTexture(w, h int, c color.Color) *Texture {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}
	return NewTextureFromImage(img)
}

func testProfile() CharacterProfile {
	return CharacterProfile{
		ID:             1,
		Name:           "Pun",
		Messages:       []string{"hi"},
		TreeOwner:      "caymit",
		GiftMessages:   []string{"gift"},
		NoGiftMessages: []string{"no gift"},
	}
}

func TestChatExpiry(t *testing.T) {
	env, clk := NewTestEnv(testStart, 1)
	o := NewAnimal(env, "pig", 100, 100, 50, false, 0, nil)

	o.ShowChat("oink", 0)
	if !o.HasActiveChat() || o.ChatMessage() != "oink" {
		t.Fatal("chat not active after ShowChat")
	}
	clk.Advance(DefaultChatDuration - time.Millisecond)
	if !o.HasActiveChat() {
		t.Error("chat expired early")
	}
	clk.Advance(time.Millisecond)
	if o.HasActiveChat() {
		t.Error("chat still active at expiry")
	}
	if o.ChatMessage() != "" {
		t.Errorf("ChatMessage after expiry = %q", o.ChatMessage())
	}
}

func TestShowChatEmptyClears(t *testing.T) {
	env, _ := NewTestEnv(testStart, 1)
	o := NewAnimal(env, "pig", 0, 0, 10, false, 0, nil)
	o.ShowChat("a", time.Second)
	o.ShowChat("", time.Second)
	if o.HasActiveChat() {
		t.Error("empty message should clear the bubble")
	}
}

func TestDepthKeyIsY(t *testing.T) {
	o := &Object{Y: 42}
	if o.DepthKey() != 42 {
		t.Errorf("DepthKey = %f, want 42", o.DepthKey())
	}
}

func TestScreenXCull(t *testing.T) {
	o := &Object{X: 5000, Size: 50}
	if _, ok := o.ScreenX(0, 800); ok {
		t.Error("object at x=5000 should be culled in [0, 800]")
	}
	o.X = 400
	sx, ok := o.ScreenX(100, 800)
	if !ok || sx != 300 {
		t.Errorf("ScreenX = (%f, %v), want (300, true)", sx, ok)
	}
	// Partially visible on the left edge.
	o.X = -20
	if _, ok := o.ScreenX(0, 800); !ok {
		t.Error("object straddling the left edge should be visible")
	}
}

func TestHitboxWidth(t *testing.T) {
	o := &Object{Size: 100}
	if o.HitboxWidth() != 100 {
		t.Errorf("no image: HitboxWidth = %f, want 100", o.HitboxWidth())
	}
	o.Image = solidTexture(20, 10, color.White)
	if o.HitboxWidth() != 200 {
		t.Errorf("2:1 image: HitboxWidth = %f, want 200", o.HitboxWidth())
	}
	o.Image = &Texture{path: "pending.png"}
	if o.HitboxWidth() != 100 {
		t.Errorf("pending image: HitboxWidth = %f, want 100", o.HitboxWidth())
	}
}

func TestObjectKindString(t *testing.T) {
	tests := []struct {
		k    ObjectKind
		want string
	}{
		{KindCharacter, "character"},
		{KindTree, "tree"},
		{KindAnimal, "animal"},
		{KindBuilding, "building"},
		{ObjectKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}

func TestCharacterClickSaysRosterLine(t *testing.T) {
	env, _ := NewTestEnv(testStart, 1)
	p := testProfile()
	p.Messages = []string{"a", "b", "c"}
	o := NewCharacter(env, p, 0, 0, 100, nil, nil)
	o.OnClick()
	if !slices.Contains(p.Messages, o.ChatMessage()) {
		t.Errorf("chat %q not from roster pool", o.ChatMessage())
	}
}

func TestAnimalClickSaysAnimalLine(t *testing.T) {
	env, _ := NewTestEnv(testStart, 7)
	o := NewAnimal(env, "cow", 0, 0, 100, false, 0, nil)
	o.OnClick()
	if !slices.Contains(animalMessages, o.ChatMessage()) {
		t.Errorf("chat %q not from animal pool", o.ChatMessage())
	}
}

func TestBuildingGreeting(t *testing.T) {
	env, clk := NewTestEnv(testStart, 1)
	b := NewBuilding(env, "house", "Welcome!", 400, 600, 300, nil)
	mom := NewCharacter(env, testProfile(), 300, 500, 100, nil, nil)
	b.Building.Resident = mom

	b.OnClick()
	if b.ChatMessage() != "Welcome!" {
		t.Errorf("greeting = %q", b.ChatMessage())
	}
	if !mom.HasActiveChat() {
		t.Error("resident should answer when the building is clicked")
	}
	clk.Advance(BuildingGreetingFor)
	if b.HasActiveChat() {
		t.Error("greeting outlived BuildingGreetingFor")
	}
}

func TestUnownedTreeAlwaysDropsGift(t *testing.T) {
	env, clk := NewTestEnv(testStart, 1)
	tree := NewTree(env, "caymit", 0, 0, 200, false, nil, nil)
	tree.OnClick()
	if !tree.GiftActive() {
		t.Fatal("unowned tree click should start the gift")
	}
	if !slices.Contains(treeMessages, tree.ChatMessage()) {
		t.Errorf("chat %q not from tree pool", tree.ChatMessage())
	}
	clk.Advance(GiftDuration)
	if tree.GiftActive() {
		t.Error("gift still active after GiftDuration")
	}
}

func TestGiftAnimationCurve(t *testing.T) {
	env, clk := NewTestEnv(testStart, 1)
	tree := NewTree(env, "caymit", 0, 0, 200, false, nil, nil)
	tree.ActivateGift()

	clk.Advance(GiftDuration / 2)
	rise, alpha, ok := tree.giftState(clk.Now())
	if !ok {
		t.Fatal("gift inactive at half time")
	}
	if !approxEqual(rise, 50, 1e-3) {
		t.Errorf("rise at 0.5 = %f, want 50", rise)
	}
	if !approxEqual(alpha, 1-0.125, 1e-3) {
		t.Errorf("alpha at 0.5 = %f, want 0.875", alpha)
	}

	clk.Advance(GiftDuration / 2)
	if _, _, ok := tree.giftState(clk.Now()); ok {
		t.Error("gift active at end")
	}
}

func TestActivateGiftWhileActiveIsNoop(t *testing.T) {
	env, clk := NewTestEnv(testStart, 1)
	tree := NewTree(env, "caymit", 0, 0, 200, false, nil, nil)
	tree.ActivateGift()
	start := tree.Tree.gift.start
	clk.Advance(time.Second)
	tree.ActivateGift()
	if !tree.Tree.gift.start.Equal(start) {
		t.Error("second ActivateGift restarted the animation")
	}
}

func TestTreeInteractionOwnerOnly(t *testing.T) {
	env, _ := NewTestEnv(testStart, 1)
	owner := NewCharacter(env, testProfile(), 0, 500, 100, nil, nil)
	stranger := NewCharacter(env, testProfile(), 0, 500, 100, nil, nil)
	tree := NewTree(env, "caymit", 300, 500, 200, false, nil, nil)
	owner.Own(tree)

	if stranger.TreeInteraction(tree) {
		t.Error("stranger produced a gift")
	}
	if stranger.HasActiveChat() {
		t.Error("stranger should not react")
	}
	owner.TreeInteraction(tree)
	if !owner.HasActiveChat() {
		t.Error("owner should say something")
	}
	if !owner.Moving() {
		t.Error("owner should walk toward the tree")
	}
	if len(owner.Character.Trees) != 1 || tree.Tree.Owner != owner {
		t.Error("Own did not link both sides")
	}
}

func TestTreeInteractionGiftProbability(t *testing.T) {
	env, clk := NewTestEnv(testStart, 42)
	owner := NewCharacter(env, testProfile(), 0, 500, 100, nil, nil)
	tree := NewTree(env, "caymit", 300, 500, 200, false, nil, nil)
	owner.Own(tree)

	const runs = 10000
	gifts := 0
	for range runs {
		if owner.TreeInteraction(tree) {
			gifts++
			if owner.ChatMessage() != "gift" {
				t.Fatalf("gift line = %q", owner.ChatMessage())
			}
		} else if owner.ChatMessage() != "no gift" {
			t.Fatalf("no-gift line = %q", owner.ChatMessage())
		}
		clk.Advance(GiftDuration)
	}
	rate := float64(gifts) / runs
	if rate < 0.08 || rate > 0.12 {
		t.Errorf("gift rate = %f, want about %f", rate, GiftChance)
	}
}

func TestOwnedTreeClickDelegatesToOwner(t *testing.T) {
	env, _ := NewTestEnv(testStart, 1)
	owner := NewCharacter(env, testProfile(), 0, 500, 100, nil, nil)
	tree := NewTree(env, "caymit", 300, 500, 200, false, nil, nil)
	owner.Own(tree)
	tree.OnClick()
	if !owner.HasActiveChat() {
		t.Error("clicking an owned tree should make the owner react")
	}
	if tree.HasActiveChat() {
		t.Error("owned tree should not speak itself")
	}
}

func TestCharacterWalksAtMoveSpeed(t *testing.T) {
	env, clk := NewTestEnv(testStart, 1)
	c := NewCharacter(env, testProfile(), 0, 100, 100, nil, nil)
	c.Character.MoveSpeed = 100
	c.MoveTo(30, 100)

	clk.Advance(100 * time.Millisecond)
	c.step(clk.Now())
	if !approxEqual(c.X, 10, 1e-9) {
		t.Errorf("X after 100ms = %f, want 10", c.X)
	}
	// Long gaps are capped so a stalled frame does not teleport.
	clk.Advance(time.Second)
	c.step(clk.Now())
	if !approxEqual(c.X, 20, 1e-9) {
		t.Errorf("X after capped step = %f, want 20", c.X)
	}
	clk.Advance(100 * time.Millisecond)
	c.step(clk.Now())
	if c.X != 30 || c.Moving() {
		t.Errorf("arrival: X = %f moving = %v", c.X, c.Moving())
	}
}

func TestAnimalBob(t *testing.T) {
	o := NewAnimal(nil, "pig", 0, 0, 10, false, 0, nil)
	if got := o.bobOffset(0); got != 0 {
		t.Errorf("bob at 0 = %f", got)
	}
	if got := o.bobOffset(1571 * time.Millisecond); !approxEqual(got, 3, 1e-3) {
		t.Errorf("bob at pi/2 = %f, want 3", got)
	}
}

func TestObjectRenderDoesNotPanic(t *testing.T) {
	env, _ := NewTestEnv(testStart, 1)
	img := solidTexture(8, 8, color.White)
	objs := []*Object{
		NewCharacter(env, testProfile(), 100, 300, 80, img, nil),
		NewTree(env, "caymit", 200, 300, 120, true, img, img),
		NewAnimal(env, "pig", 300, 300, 60, false, 1, img),
		NewBuilding(env, "house", "hi", 400, 300, 200, img),
	}
	f := &Frame{Target: ebiten.NewImage(800, 600), Scale: 1, ViewportWidth: 800, Now: env.Now()}
	for _, o := range objs {
		o.OnClick()
		o.Render(f)
	}
}
