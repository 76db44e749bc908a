package slideshow

import (
	"log/slog"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// designSize is the reference viewport edge the layout scale is relative to.
const designSize = 800.0

// Stage is what a slide sees of the controller: viewport size, the shared
// camera, environment and assets, and listener registration. Listeners
// registered while a slide is active are tagged with that activation and
// removed when the controller switches away from it.
type Stage struct {
	width, height float64
	deviceScale   float64

	camera *Camera
	env    *Env
	assets *Assets
	logger *slog.Logger

	debug bool

	handlers handlerRegistry
	owner    *renderLoop
	input    inputState

	screenshotQueue []string
	screenshotDir   string
}

func newStage(cam *Camera, env *Env, assets *Assets, logger *slog.Logger, deadZone float64) *Stage {
	if deadZone <= 0 {
		deadZone = defaultDragDeadZone
	}
	s := &Stage{
		deviceScale:   1,
		camera:        cam,
		env:           env,
		assets:        assets,
		logger:        logger,
		screenshotDir: "screenshots",
	}
	s.input.deadZone = deadZone
	return s
}

// Size returns the viewport size in logical pixels.
func (s *Stage) Size() (w, h float64) { return s.width, s.height }

// DeviceScale returns the device pixel ratio of the backing store.
func (s *Stage) DeviceScale() float64 { return s.deviceScale }

// Scale returns the layout scale min(width, height)/800. Slides size their
// objects in multiples of it.
func (s *Stage) Scale() float64 {
	m := math.Min(s.width, s.height)
	if m <= 0 {
		return 1
	}
	return m / designSize
}

// Camera returns the controller's camera. It is reset before every Setup.
func (s *Stage) Camera() *Camera { return s.camera }

// Env returns the shared clock and random source.
func (s *Stage) Env() *Env { return s.env }

// Assets returns the asset provider.
func (s *Stage) Assets() *Assets { return s.assets }

// Logger returns the controller's logger.
func (s *Stage) Logger() *slog.Logger { return s.logger }

// View returns the camera transform from world to device pixels.
func (s *Stage) View() ebiten.GeoM { return s.camera.GeoM() }

// ScreenGeoM maps logical screen pixels to device pixels, for backdrops and
// overlays that do not move with the camera.
func (s *Stage) ScreenGeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.Scale(s.deviceScale, s.deviceScale)
	return g
}

// Frame builds the drawing context for one frame. The cull window is the
// horizontal extent the camera currently shows.
func (s *Stage) Frame(dst *ebiten.Image, t time.Duration) *Frame {
	vis := s.camera.VisibleBounds()
	return &Frame{
		Target:        dst,
		View:          s.View(),
		Scale:         s.Scale(),
		Offset:        vis.X,
		ViewportWidth: vis.Width,
		Time:          t,
		Now:           s.env.Now(),
	}
}

// NewCompositor returns an empty Compositor, with per-frame debug logging
// when the controller runs in debug mode.
func (s *Stage) NewCompositor() *Compositor {
	c := NewCompositor()
	if s.debug {
		c.SetDebugMode(true, s.logger)
	}
	return c
}

// RouteClicks forwards every click on the stage to c.DispatchClick.
func (s *Stage) RouteClicks(c *Compositor) CallbackHandle {
	return s.OnClick(func(ctx ClickContext) {
		c.DispatchClick(ctx.WorldX, ctx.WorldY)
	})
}

// ListenerCount returns the number of listeners registered by slides that
// are still attached.
func (s *Stage) ListenerCount() int {
	return s.handlers.countOwned()
}

// Screenshot queues a labeled capture of the frame being drawn.
func (s *Stage) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

func (s *Stage) resize(w, h, deviceScale float64) {
	s.width, s.height = w, h
	if deviceScale <= 0 {
		deviceScale = 1
	}
	s.deviceScale = deviceScale
	s.camera.SetViewport(w, h, deviceScale)
}

// --- Listener registration ---

// OnPointerDown registers a listener for pointer down events.
func (s *Stage) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	id := s.handlers.next()
	s.handlers.pointerDown.add(id, s.owner, fn)
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerDown}
}

// OnPointerUp registers a listener for pointer up events.
func (s *Stage) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	id := s.handlers.next()
	s.handlers.pointerUp.add(id, s.owner, fn)
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerUp}
}

// OnPointerMove registers a listener for pointer moves while no button is held.
func (s *Stage) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	id := s.handlers.next()
	s.handlers.pointerMove.add(id, s.owner, fn)
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerMove}
}

// OnClick registers a listener for clicks.
func (s *Stage) OnClick(fn func(ClickContext)) CallbackHandle {
	id := s.handlers.next()
	s.handlers.click.add(id, s.owner, fn)
	return CallbackHandle{id: id, reg: &s.handlers, event: EventClick}
}

// OnDragStart registers a listener for drag start events.
func (s *Stage) OnDragStart(fn func(DragContext)) CallbackHandle {
	id := s.handlers.next()
	s.handlers.dragStart.add(id, s.owner, fn)
	return CallbackHandle{id: id, reg: &s.handlers, event: EventDragStart}
}

// OnDrag registers a listener for drag events.
func (s *Stage) OnDrag(fn func(DragContext)) CallbackHandle {
	id := s.handlers.next()
	s.handlers.drag.add(id, s.owner, fn)
	return CallbackHandle{id: id, reg: &s.handlers, event: EventDrag}
}

// OnDragEnd registers a listener for drag end events.
func (s *Stage) OnDragEnd(fn func(DragContext)) CallbackHandle {
	id := s.handlers.next()
	s.handlers.dragEnd.add(id, s.owner, fn)
	return CallbackHandle{id: id, reg: &s.handlers, event: EventDragEnd}
}

// OnPinch registers a listener for pinch events.
func (s *Stage) OnPinch(fn func(PinchContext)) CallbackHandle {
	id := s.handlers.next()
	s.handlers.pinch.add(id, s.owner, fn)
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPinch}
}

// OnWheel registers a listener for wheel events.
func (s *Stage) OnWheel(fn func(WheelContext)) CallbackHandle {
	id := s.handlers.next()
	s.handlers.wheel.add(id, s.owner, fn)
	return CallbackHandle{id: id, reg: &s.handlers, event: EventWheel}
}

// OnKey registers a listener for key presses.
func (s *Stage) OnKey(fn func(KeyContext)) CallbackHandle {
	id := s.handlers.next()
	s.handlers.key.add(id, s.owner, fn)
	return CallbackHandle{id: id, reg: &s.handlers, event: EventKey}
}
