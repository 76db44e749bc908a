package slideshow

import (
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// --- Constants ---

const (
	maxPointers         = 10  // pointer 0 = mouse, 1-9 = touch
	defaultDragDeadZone = 4.0 // logical pixels
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// --- Event contexts ---

// PointerContext describes a pointer down, up or move. Screen coordinates
// are logical pixels; world coordinates go through the camera.
type PointerContext struct {
	ScreenX, ScreenY float64
	WorldX, WorldY   float64
	Button           MouseButton
	PointerID        int
	Modifiers        KeyModifiers
}

// ClickContext describes a press and release within the drag dead zone.
type ClickContext struct {
	ScreenX, ScreenY float64
	WorldX, WorldY   float64
	Button           MouseButton
	PointerID        int
	Modifiers        KeyModifiers
}

// DragContext describes a drag gesture in logical screen pixels. DeltaX and
// DeltaY are the movement since the previous drag event.
type DragContext struct {
	ScreenX, ScreenY float64
	StartX, StartY   float64
	DeltaX, DeltaY   float64
	Button           MouseButton
	PointerID        int
	Modifiers        KeyModifiers
}

// PinchContext describes a two-finger pinch. Scale is relative to the
// distance at the start of the gesture; ScaleDelta to the previous frame.
type PinchContext struct {
	CenterX, CenterY float64
	Scale            float64
	ScaleDelta       float64
}

// WheelContext describes one frame of wheel movement at the cursor.
type WheelContext struct {
	ScreenX, ScreenY float64
	DeltaY           float64
	Modifiers        KeyModifiers
}

// KeyContext describes a key that went down this frame.
type KeyContext struct {
	Key       ebiten.Key
	Modifiers KeyModifiers
}

// --- Input sources ---

// TouchPoint is one active touch in logical pixels.
type TouchPoint struct {
	ID   int
	X, Y float64
}

// InputFrame is one tick's worth of raw input, in logical pixels.
type InputFrame struct {
	CursorX, CursorY float64
	MouseDown        bool
	Button           MouseButton
	Touches          []TouchPoint
	WheelY           float64
	Keys             []ebiten.Key
	Modifiers        KeyModifiers
}

func (f *InputFrame) reset() {
	touches, keys := f.Touches[:0], f.Keys[:0]
	*f = InputFrame{Touches: touches, Keys: keys}
}

// InputSource fills an InputFrame once per tick. Positions reported by the
// platform in device pixels are divided by deviceScale.
type InputSource interface {
	Poll(deviceScale float64, f *InputFrame)
}

// ebitenInput reads mouse, touch, wheel and keyboard state from Ebitengine.
type ebitenInput struct {
	touchIDs []ebiten.TouchID
}

// NewEbitenInput returns the InputSource used by Run.
func NewEbitenInput() InputSource {
	return &ebitenInput{}
}

func (e *ebitenInput) Poll(deviceScale float64, f *InputFrame) {
	if deviceScale <= 0 {
		deviceScale = 1
	}
	mx, my := ebiten.CursorPosition()
	f.CursorX = float64(mx) / deviceScale
	f.CursorY = float64(my) / deviceScale

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	switch {
	case left:
		f.MouseDown, f.Button = true, MouseButtonLeft
	case right:
		f.MouseDown, f.Button = true, MouseButtonRight
	case middle:
		f.MouseDown, f.Button = true, MouseButtonMiddle
	}

	e.touchIDs = ebiten.AppendTouchIDs(e.touchIDs[:0])
	for _, tid := range e.touchIDs {
		tx, ty := ebiten.TouchPosition(tid)
		f.Touches = append(f.Touches, TouchPoint{
			ID: int(tid),
			X:  float64(tx) / deviceScale,
			Y:  float64(ty) / deviceScale,
		})
	}

	_, f.WheelY = ebiten.Wheel()
	f.Keys = inpututil.AppendJustPressedKeys(f.Keys)
	f.Modifiers = readModifiers()
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// --- Handler registry ---

// handler is a registered listener. owner is the render loop of the slide
// that registered it, or nil for listeners that outlive slide switches.
type handler[T any] struct {
	id      uint32
	owner   *renderLoop
	fn      func(T)
	removed bool
}

type handlerList[T any] []*handler[T]

func (l *handlerList[T]) add(id uint32, owner *renderLoop, fn func(T)) {
	*l = append(*l, &handler[T]{id: id, owner: owner, fn: fn})
}

func (l *handlerList[T]) remove(id uint32) {
	*l = slices.DeleteFunc(*l, func(h *handler[T]) bool {
		if h.id == id {
			h.removed = true
			return true
		}
		return false
	})
}

func (l *handlerList[T]) removeOwner(owner *renderLoop) int {
	n := len(*l)
	*l = slices.DeleteFunc(*l, func(h *handler[T]) bool {
		if h.owner == owner {
			h.removed = true
			return true
		}
		return false
	})
	return n - len(*l)
}

func (l handlerList[T]) countOwned() int {
	n := 0
	for _, h := range l {
		if h.owner != nil {
			n++
		}
	}
	return n
}

// fire calls every listener registered at the time of the call, skipping
// any removed by an earlier listener in the same dispatch.
func (l handlerList[T]) fire(ctx T) {
	if len(l) == 0 {
		return
	}
	for _, h := range slices.Clone(l) {
		if !h.removed {
			h.fn(ctx)
		}
	}
}

type handlerRegistry struct {
	pointerDown handlerList[PointerContext]
	pointerUp   handlerList[PointerContext]
	pointerMove handlerList[PointerContext]
	click       handlerList[ClickContext]
	dragStart   handlerList[DragContext]
	drag        handlerList[DragContext]
	dragEnd     handlerList[DragContext]
	pinch       handlerList[PinchContext]
	wheel       handlerList[WheelContext]
	key         handlerList[KeyContext]
	nextID      uint32
}

func (r *handlerRegistry) next() uint32 {
	r.nextID++
	return r.nextID
}

// removeOwner drops every listener registered by owner and returns how many
// were removed.
func (r *handlerRegistry) removeOwner(owner *renderLoop) int {
	return r.pointerDown.removeOwner(owner) +
		r.pointerUp.removeOwner(owner) +
		r.pointerMove.removeOwner(owner) +
		r.click.removeOwner(owner) +
		r.dragStart.removeOwner(owner) +
		r.drag.removeOwner(owner) +
		r.dragEnd.removeOwner(owner) +
		r.pinch.removeOwner(owner) +
		r.wheel.removeOwner(owner) +
		r.key.removeOwner(owner)
}

// countOwned returns the number of slide-owned listeners.
func (r *handlerRegistry) countOwned() int {
	return r.pointerDown.countOwned() +
		r.pointerUp.countOwned() +
		r.pointerMove.countOwned() +
		r.click.countOwned() +
		r.dragStart.countOwned() +
		r.drag.countOwned() +
		r.dragEnd.countOwned() +
		r.pinch.countOwned() +
		r.wheel.countOwned() +
		r.key.countOwned()
}

// CallbackHandle allows removing a registered listener.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this listener so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerDown:
		h.reg.pointerDown.remove(h.id)
	case EventPointerUp:
		h.reg.pointerUp.remove(h.id)
	case EventPointerMove:
		h.reg.pointerMove.remove(h.id)
	case EventClick:
		h.reg.click.remove(h.id)
	case EventDragStart:
		h.reg.dragStart.remove(h.id)
	case EventDrag:
		h.reg.drag.remove(h.id)
	case EventDragEnd:
		h.reg.dragEnd.remove(h.id)
	case EventPinch:
		h.reg.pinch.remove(h.id)
	case EventWheel:
		h.reg.wheel.remove(h.id)
	case EventKey:
		h.reg.key.remove(h.id)
	}
}

// --- Per-pointer state ---

type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	dragging bool
	noClick  bool        // set once the press took part in a drag or pinch
	button   MouseButton // button captured at press time
}

type pinchState struct {
	active      bool
	pointer0    int
	pointer1    int
	initialDist float64
	prevDist    float64
}

// inputState is the stage's pointer bookkeeping.
type inputState struct {
	pointers  [maxPointers]pointerState
	touchMap  [maxPointers]int
	touchUsed [maxPointers]bool
	pinch     pinchState
	deadZone  float64

	frame InputFrame
	queue []InputFrame
}

// --- Input processing ---

// processInput consumes one queued synthetic frame if any, otherwise polls
// src, and runs the pointer state machine, pinch detection, wheel zoom and
// key listeners.
func (s *Stage) processInput(src InputSource) {
	f := &s.input.frame
	if !s.popInjected(f) {
		if src == nil {
			return
		}
		f.reset()
		src.Poll(s.deviceScale, f)
	}

	s.processPointer(0, f.CursorX, f.CursorY, f.MouseDown, f.Button, f.Modifiers)
	s.processTouches(f.Touches, f.Modifiers)
	s.detectPinch()

	if f.WheelY != 0 {
		s.camera.Wheel(f.CursorX, f.CursorY, f.WheelY)
		s.handlers.wheel.fire(WheelContext{
			ScreenX: f.CursorX, ScreenY: f.CursorY,
			DeltaY: f.WheelY, Modifiers: f.Modifiers,
		})
	}
	for _, k := range f.Keys {
		s.handlers.key.fire(KeyContext{Key: k, Modifiers: f.Modifiers})
	}
}

// processTouches maps touch IDs onto pointer slots 1-9 and releases slots
// whose touch ended.
func (s *Stage) processTouches(touches []TouchPoint, mods KeyModifiers) {
	in := &s.input
	var activeSlots [maxPointers]bool
	for _, t := range touches {
		slot := s.touchSlot(t.ID)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		s.processPointer(slot, t.X, t.Y, true, MouseButtonLeft, mods)
	}

	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && !activeSlots[i] {
			ps := &in.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft, mods)
			}
			in.touchUsed[i] = false
			in.touchMap[i] = 0
		}
	}
}

// touchSlot returns the slot for a touch ID, allocating one if needed.
// Returns -1 if all slots are taken.
func (s *Stage) touchSlot(id int) int {
	in := &s.input
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && in.touchMap[i] == id {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !in.touchUsed[i] {
			in.touchUsed[i] = true
			in.touchMap[i] = id
			return i
		}
	}
	return -1
}

// processPointer runs the press / drag / release state machine for one
// pointer. Drags pan the camera; a release that never left the dead zone is
// a click.
func (s *Stage) processPointer(id int, sx, sy float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &s.input.pointers[id]

	switch {
	case pressed && !ps.down:
		*ps = pointerState{
			down: true, button: button,
			startX: sx, startY: sy,
			lastX: sx, lastY: sy,
		}
		s.handlers.pointerDown.fire(s.pointerContext(id, sx, sy, button, mods))

	case !pressed && ps.down:
		if ps.dragging {
			s.camera.Drag(sx, sy)
			s.camera.EndDrag()
			s.handlers.dragEnd.fire(DragContext{
				ScreenX: sx, ScreenY: sy,
				StartX: ps.startX, StartY: ps.startY,
				DeltaX: sx - ps.lastX, DeltaY: sy - ps.lastY,
				Button: ps.button, PointerID: id, Modifiers: mods,
			})
		} else if !ps.noClick {
			wx, wy := s.camera.ScreenToWorld(sx, sy)
			s.handlers.click.fire(ClickContext{
				ScreenX: sx, ScreenY: sy, WorldX: wx, WorldY: wy,
				Button: ps.button, PointerID: id, Modifiers: mods,
			})
		}
		s.handlers.pointerUp.fire(s.pointerContext(id, sx, sy, ps.button, mods))
		*ps = pointerState{lastX: sx, lastY: sy}

	case pressed && ps.down:
		if sx == ps.lastX && sy == ps.lastY {
			return
		}
		if !ps.dragging && !ps.noClick && !s.input.pinch.active {
			if math.Hypot(sx-ps.startX, sy-ps.startY) > s.input.deadZone {
				ps.dragging = true
				ps.noClick = true
				s.camera.BeginDrag(ps.startX, ps.startY)
				s.handlers.dragStart.fire(DragContext{
					ScreenX: sx, ScreenY: sy,
					StartX: ps.startX, StartY: ps.startY,
					DeltaX: sx - ps.startX, DeltaY: sy - ps.startY,
					Button: ps.button, PointerID: id, Modifiers: mods,
				})
			}
		}
		if ps.dragging {
			s.camera.Drag(sx, sy)
			s.handlers.drag.fire(DragContext{
				ScreenX: sx, ScreenY: sy,
				StartX: ps.startX, StartY: ps.startY,
				DeltaX: sx - ps.lastX, DeltaY: sy - ps.lastY,
				Button: ps.button, PointerID: id, Modifiers: mods,
			})
		}
		ps.lastX, ps.lastY = sx, sy

	default:
		if sx != ps.lastX || sy != ps.lastY {
			s.handlers.pointerMove.fire(s.pointerContext(id, sx, sy, button, mods))
			ps.lastX, ps.lastY = sx, sy
		}
	}
}

func (s *Stage) pointerContext(id int, sx, sy float64, button MouseButton, mods KeyModifiers) PointerContext {
	wx, wy := s.camera.ScreenToWorld(sx, sy)
	return PointerContext{
		ScreenX: sx, ScreenY: sy, WorldX: wx, WorldY: wy,
		Button: button, PointerID: id, Modifiers: mods,
	}
}

// detectPinch checks whether exactly two touch pointers are down and, if so,
// zooms the camera about their midpoint and fires pinch listeners. Pointers
// taking part in a pinch never produce clicks, and a pointer left down when
// the pinch ends restarts its drag from where it is.
func (s *Stage) detectPinch() {
	in := &s.input
	var p0, p1, count int
	for i := 1; i < maxPointers; i++ {
		if !in.pointers[i].down {
			continue
		}
		switch count {
		case 0:
			p0 = i
		case 1:
			p1 = i
		}
		count++
	}

	if count != 2 {
		if in.pinch.active {
			in.pinch.active = false
			s.camera.EndPinch()
			for i := 1; i < maxPointers; i++ {
				ps := &in.pointers[i]
				if ps.down {
					ps.startX, ps.startY = ps.lastX, ps.lastY
					ps.noClick = false
					ps.dragging = false
				}
			}
		}
		return
	}

	ps0 := &in.pointers[p0]
	ps1 := &in.pointers[p1]
	a := Vec2{ps0.lastX, ps0.lastY}
	b := Vec2{ps1.lastX, ps1.lastY}
	dist := math.Hypot(b.X-a.X, b.Y-a.Y)

	if !in.pinch.active || in.pinch.pointer0 != p0 || in.pinch.pointer1 != p1 {
		in.pinch = pinchState{
			active: true, pointer0: p0, pointer1: p1,
			initialDist: dist, prevDist: dist,
		}
		if ps0.dragging || ps1.dragging {
			s.camera.EndDrag()
		}
		s.camera.BeginPinch(a, b)
	} else {
		s.camera.Pinch(a, b)
		scale := 1.0
		if in.pinch.initialDist > 0 {
			scale = dist / in.pinch.initialDist
		}
		scaleDelta := 0.0
		if in.pinch.prevDist > 0 {
			scaleDelta = dist/in.pinch.prevDist - 1.0
		}
		s.handlers.pinch.fire(PinchContext{
			CenterX:    (a.X + b.X) / 2,
			CenterY:    (a.Y + b.Y) / 2,
			Scale:      scale,
			ScaleDelta: scaleDelta,
		})
		in.pinch.prevDist = dist
	}

	for _, ps := range []*pointerState{ps0, ps1} {
		ps.dragging = false
		ps.noClick = true
	}
}

// resetPointers forgets every pointer and gesture in progress.
func (s *Stage) resetPointers() {
	in := &s.input
	in.pointers = [maxPointers]pointerState{}
	in.touchUsed = [maxPointers]bool{}
	in.touchMap = [maxPointers]int{}
	in.pinch = pinchState{}
	s.camera.EndDrag()
	s.camera.EndPinch()
}
