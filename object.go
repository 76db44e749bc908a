package slideshow

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultChatDuration is how long a chat bubble stays up.
const DefaultChatDuration = 5 * time.Second

// ObjectKind selects an Object's variant behavior.
type ObjectKind uint8

const (
	KindCharacter ObjectKind = iota // named avatar with a label and dialogue
	KindTree                        // fruit tree that may drop a gift
	KindAnimal                      // bobbing livestock
	KindBuilding                    // house with a greeting
)

// String returns the kind name.
func (k ObjectKind) String() string {
	switch k {
	case KindCharacter:
		return "character"
	case KindTree:
		return "tree"
	case KindAnimal:
		return "animal"
	case KindBuilding:
		return "building"
	default:
		return "unknown"
	}
}

// SceneObject is anything a Compositor can order, cull, hit-test and draw.
type SceneObject interface {
	// DepthKey orders drawing: larger keys are drawn later, on top.
	DepthKey() float64
	// ScreenX returns the object's x relative to a cull window starting at
	// offset, or false when it lies entirely outside [0, viewportWidth].
	ScreenX(offset, viewportWidth float64) (float64, bool)
	// HitTest reports whether the point (clickX, clickY), relative to the
	// same cull window, lands on the object drawn at screenX.
	HitTest(clickX, clickY, screenX float64) bool
	OnClick()
	Render(f *Frame)
}

// Frame is the per-frame drawing context handed to scene objects.
type Frame struct {
	Target *ebiten.Image
	// View maps world coordinates to device pixels.
	View ebiten.GeoM
	// Scale is the layout scale, min(width, height)/800.
	Scale float64
	// Offset and ViewportWidth describe the cull window in world units.
	Offset        float64
	ViewportWidth float64
	// Time is the elapsed time since the slide's render loop started.
	Time time.Duration
	// Now is the wall time used for chat and gift timers.
	Now time.Time
}

// Object is a positioned, depth-sorted entity on a slide. Kind selects which
// of the state payloads is populated; the others are nil.
//
// X is the horizontal center, Y is the baseline (feet) and Size is the drawn
// height. Hit testing covers [X-w/2, X+w/2] x [Y-Size, Y] where w is
// HitboxWidth.
type Object struct {
	Kind  ObjectKind
	Name  string
	X, Y  float64
	Size  float64
	Flip  bool
	Image *Texture
	Sound *Sound

	Character *CharacterState
	Tree      *TreeState
	Animal    *AnimalState
	Building  *BuildingState

	env *Env

	chatMessage string
	chatExpiry  time.Time
}

var _ SceneObject = (*Object)(nil)

// DepthKey returns Y. Objects lower on screen are drawn in front.
func (o *Object) DepthKey() float64 {
	return o.Y
}

// ScreenX returns X - offset unless the hitbox lies entirely outside
// [0, viewportWidth].
func (o *Object) ScreenX(offset, viewportWidth float64) (float64, bool) {
	sx := o.X - offset
	half := o.HitboxWidth() / 2
	if sx+half < 0 || sx-half > viewportWidth {
		return 0, false
	}
	return sx, true
}

// HitboxWidth returns the clickable width: the drawn sprite width once the
// image has loaded, Size before that.
func (o *Object) HitboxWidth() float64 {
	if o.Image.Ready() {
		return o.Size * o.Image.Aspect()
	}
	return o.Size
}

// ShowChat displays msg in a bubble for d. A non-positive d uses
// DefaultChatDuration. An empty msg clears the bubble.
func (o *Object) ShowChat(msg string, d time.Duration) {
	if msg == "" {
		o.ClearChat()
		return
	}
	if d <= 0 {
		d = DefaultChatDuration
	}
	o.chatMessage = msg
	o.chatExpiry = o.env.Now().Add(d)
}

// HasActiveChat reports whether a bubble is showing.
func (o *Object) HasActiveChat() bool {
	return o.chatMessage != "" && o.env.Now().Before(o.chatExpiry)
}

// ChatMessage returns the current bubble text, or "" when none is showing.
func (o *Object) ChatMessage() string {
	if !o.HasActiveChat() {
		return ""
	}
	return o.chatMessage
}

// ClearChat removes the bubble.
func (o *Object) ClearChat() {
	o.chatMessage = ""
	o.chatExpiry = time.Time{}
}

// OnClick runs the kind-specific reaction.
func (o *Object) OnClick() {
	switch o.Kind {
	case KindCharacter:
		o.characterClick()
	case KindTree:
		o.treeClick()
	case KindAnimal:
		o.ShowChat(o.env.Pick(animalMessages), DefaultChatDuration)
	case KindBuilding:
		o.buildingClick()
	}
}

// Render draws the object and its overlays.
func (o *Object) Render(f *Frame) {
	switch o.Kind {
	case KindCharacter:
		o.renderCharacter(f)
	case KindTree:
		o.renderTree(f)
	case KindAnimal:
		o.renderAnimal(f)
	case KindBuilding:
		o.renderBuilding(f)
	}
}

// Env returns the object's shared environment.
func (o *Object) Env() *Env {
	return o.env
}
