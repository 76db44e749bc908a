package slideshow

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// noInput is an InputSource with nothing pressed, so only injected frames
// reach the stage.
type noInput struct{}

func (noInput) Poll(float64, *InputFrame) {}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testScene returns a scene that does nothing.
func testScene(title string) *SceneFuncs {
	return &SceneFuncs{
		Title:    title,
		SetupFn:  func(*Stage) error { return nil },
		RenderFn: func(*ebiten.Image, time.Duration) {},
	}
}

// newTestController returns a started 800x600 controller on a manual clock.
// With no scenes it is left unstarted.
func newTestController(t *testing.T, scenes ...Scene) *Controller {
	t.Helper()
	env, _ := NewTestEnv(testStart, 1)
	c := NewController(Options{Logger: discardLogger(), Env: env, Input: noInput{}})
	c.monitorScale = func() float64 { return 1 }
	c.Resize(800, 600)
	for _, s := range scenes {
		if err := c.Register(s); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}
	if len(scenes) > 0 {
		if err := c.Start(); err != nil {
			t.Fatalf("Start: %v", err)
		}
	}
	return c
}

// tick runs n updates.
func tick(c *Controller, n int) {
	for range n {
		_ = c.Update()
	}
}

func TestRegisterRejectsInvalidScenes(t *testing.T) {
	var buf bytes.Buffer
	c := NewController(Options{
		Logger: slog.New(slog.NewTextHandler(&buf, nil)),
		Input:  noInput{},
	})

	noSetup := testScene("a")
	noSetup.SetupFn = nil
	noRender := testScene("b")
	noRender.RenderFn = nil

	tests := []struct {
		name  string
		scene Scene
	}{
		{"nil", nil},
		{"nil funcs", (*SceneFuncs)(nil)},
		{"missing setup", noSetup},
		{"missing render", noRender},
		{"empty title", testScene("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.Register(tt.scene); !errors.Is(err, ErrInvalidScene) {
				t.Errorf("Register = %v, want ErrInvalidScene", err)
			}
		})
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
	if n := strings.Count(buf.String(), "scene rejected"); n != len(tests) {
		t.Errorf("logged %d rejections, want %d", n, len(tests))
	}
}

func TestStartWithoutScenes(t *testing.T) {
	c := newTestController(t)
	if err := c.Start(); !errors.Is(err, ErrNoScenes) {
		t.Errorf("Start = %v, want ErrNoScenes", err)
	}
	if c.Active() != nil {
		t.Error("Active should be nil before Start")
	}
}

func TestSceneSwitchTeardown(t *testing.T) {
	var aClicks, aTeardowns, bSetups int
	a := testScene("A")
	a.SetupFn = func(st *Stage) error {
		st.OnClick(func(ClickContext) { aClicks++ })
		st.OnDrag(func(DragContext) {})
		st.OnWheel(func(WheelContext) {})
		return nil
	}
	a.TeardownFn = func() { aTeardowns++ }
	b := testScene("B")
	b.SetupFn = func(st *Stage) error {
		bSetups++
		st.OnClick(func(ClickContext) {})
		return nil
	}

	c := newTestController(t, a, b)
	if got := c.ListenerCount(); got != 3 {
		t.Fatalf("ListenerCount = %d, want 3", got)
	}

	c.Next()
	if got := c.ListenerCount(); got != 1 {
		t.Errorf("ListenerCount after switch = %d, want 1", got)
	}
	if got := c.ActiveLoops(); got != 1 {
		t.Errorf("ActiveLoops = %d, want 1", got)
	}
	if aTeardowns != 1 || bSetups != 1 {
		t.Errorf("teardowns = %d, setups = %d, want 1 and 1", aTeardowns, bSetups)
	}

	c.Stage().InjectClick(100, 100)
	tick(c, 2)
	if aClicks != 0 {
		t.Errorf("old scene received %d clicks", aClicks)
	}

	// Many switches still leave exactly one loop.
	for range 7 {
		c.Next()
	}
	if got := c.ActiveLoops(); got != 1 {
		t.Errorf("ActiveLoops after 7 switches = %d, want 1", got)
	}
	if c.Index() != 0 {
		t.Errorf("Index = %d, want 0", c.Index())
	}
}

func TestNavigationWraps(t *testing.T) {
	c := newTestController(t, testScene("A"), testScene("B"), testScene("C"))

	c.Previous()
	if c.Index() != 2 {
		t.Errorf("Previous from 0 = %d, want 2", c.Index())
	}
	c.Next()
	if c.Index() != 0 {
		t.Errorf("Next from 2 = %d, want 0", c.Index())
	}
	c.GoTo(7)
	if c.Index() != 1 {
		t.Errorf("GoTo(7) = %d, want 1", c.Index())
	}
	c.GoTo(-1)
	if c.Index() != 2 {
		t.Errorf("GoTo(-1) = %d, want 2", c.Index())
	}
	if got := c.Active().Info().Title; got != "C" {
		t.Errorf("Active title = %q, want C", got)
	}
}

func TestSwitchResetsCamera(t *testing.T) {
	a := testScene("A")
	a.SetupFn = func(st *Stage) error {
		cam := st.Camera()
		cam.SetLimits(400, 300)
		cam.Enabled = false
		return nil
	}
	c := newTestController(t, a, testScene("B"))
	cam := c.Camera()
	cam.Enabled = true
	cam.ZoomAt(100, 100, 0.5)
	cam.PanX = 50

	c.Next()
	if cam.Zoom != 1 || cam.PanX != 0 || cam.PanY != 0 {
		t.Errorf("camera not reset: zoom=%v pan=(%v, %v)", cam.Zoom, cam.PanX, cam.PanY)
	}
	if cam.MaxOffsetX != 0 || cam.MaxOffsetY != 0 || !cam.Enabled {
		t.Errorf("limits or enabled leaked: %v %v %v", cam.MaxOffsetX, cam.MaxOffsetY, cam.Enabled)
	}
}

func TestKeyboardNavigation(t *testing.T) {
	var aKeys int
	a := testScene("A")
	a.SetupFn = func(st *Stage) error {
		st.OnKey(func(KeyContext) { aKeys++ })
		return nil
	}
	c := newTestController(t, a, testScene("B"), testScene("C"))

	c.Stage().InjectKey(ebiten.KeyArrowRight)
	tick(c, 1)
	if c.Index() != 1 {
		t.Fatalf("after Right: index %d, want 1", c.Index())
	}
	if aKeys != 0 {
		t.Errorf("outgoing scene saw the key that switched it away")
	}

	c.Stage().InjectKey(ebiten.KeySpace)
	tick(c, 1)
	if c.Index() != 2 {
		t.Errorf("after Space: index %d, want 2", c.Index())
	}

	c.Stage().InjectKey(ebiten.KeyArrowLeft)
	tick(c, 1)
	if c.Index() != 1 {
		t.Errorf("after Left: index %d, want 1", c.Index())
	}
}

func TestOverlayToggleKey(t *testing.T) {
	c := newTestController(t, testScene("A"))
	c.Stage().InjectKey(ebiten.KeyI)
	tick(c, 1)
	if !c.overlay {
		t.Error("I should show the overlay")
	}
}

func TestHomeKeyGlidesBack(t *testing.T) {
	a := testScene("A")
	a.SetupFn = func(st *Stage) error {
		st.Camera().SetLimits(500, 500)
		return nil
	}
	c := newTestController(t, a)
	c.Camera().PanX = 200

	c.Stage().InjectKey(ebiten.KeyHome)
	tick(c, 1)
	if !c.Camera().Gliding() {
		t.Fatal("Home should start a glide")
	}
	tick(c, 60)
	if !approxEqual(c.Camera().PanX, 0, 1e-3) {
		t.Errorf("PanX after glide = %v, want 0", c.Camera().PanX)
	}
}

func TestResizeNotifiesScene(t *testing.T) {
	var got [2]float64
	a := testScene("A")
	a.ResizeFn = func(w, h float64) { got = [2]float64{w, h} }
	c := newTestController(t, a)

	c.Resize(1024, 768)
	c.SetDeviceScale(2)
	if got != [2]float64{1024, 768} {
		t.Errorf("OnResize got %v", got)
	}
	if w, h := c.BackingSize(); w != 2048 || h != 1536 {
		t.Errorf("BackingSize = %dx%d, want 2048x1536", w, h)
	}
	cam := c.Camera()
	if cam.Width != 1024 || cam.Height != 768 || cam.DeviceScale != 2 {
		t.Errorf("camera viewport = %vx%v @%v", cam.Width, cam.Height, cam.DeviceScale)
	}
	if s := c.Stage().Scale(); !approxEqual(s, 768.0/800, 1e-9) {
		t.Errorf("Scale = %v", s)
	}
}

func TestLayoutFUsesDeviceScale(t *testing.T) {
	c := newTestController(t, testScene("A"))
	c.monitorScale = func() float64 { return 2 }

	w, h := c.LayoutF(400, 300)
	if w != 800 || h != 600 {
		t.Errorf("LayoutF = %vx%v, want 800x600", w, h)
	}
	if sw, sh := c.Stage().Size(); sw != 400 || sh != 300 {
		t.Errorf("stage size = %vx%v, want 400x300", sw, sh)
	}
	if c.Stage().DeviceScale() != 2 {
		t.Errorf("DeviceScale = %v", c.Stage().DeviceScale())
	}
}

func TestSetupErrorIsContained(t *testing.T) {
	var rendered bool
	bad := testScene("Bad")
	bad.SetupFn = func(*Stage) error { return errors.New("boom") }
	bad.RenderFn = func(*ebiten.Image, time.Duration) { rendered = true }

	c := newTestController(t, bad, testScene("Good"))
	if c.loop.err == nil {
		t.Fatal("setup error not recorded")
	}
	c.Draw(ebiten.NewImage(8, 8))
	if rendered {
		t.Error("failed scene was rendered")
	}
	c.Next()
	if c.loop.err != nil || c.ActiveLoops() != 1 {
		t.Error("next scene did not start cleanly")
	}
}

func TestRenderTimeFollowsClock(t *testing.T) {
	var got time.Duration
	a := testScene("A")
	a.RenderFn = func(_ *ebiten.Image, t time.Duration) { got = t }
	c := newTestController(t, a)
	clk := c.Env().Clock.(*ManualClock)

	clk.Advance(1500 * time.Millisecond)
	c.Draw(ebiten.NewImage(8, 8))
	if got != 1500*time.Millisecond {
		t.Errorf("render time = %v, want 1.5s", got)
	}

	c.GoTo(0)
	c.Draw(ebiten.NewImage(8, 8))
	if got != 0 {
		t.Errorf("render time after reactivation = %v, want 0", got)
	}
}

func TestClickReachesObject(t *testing.T) {
	var obj *Object
	a := testScene("A")
	a.SetupFn = func(st *Stage) error {
		comp := st.NewCompositor()
		obj = NewCharacter(st.Env(), testProfile(), 400, 300, 100, nil, nil)
		comp.Add(obj)
		st.RouteClicks(comp)
		return nil
	}
	c := newTestController(t, a)

	c.Stage().InjectClick(400, 280)
	tick(c, 2)
	if obj.ChatMessage() != "hi" {
		t.Errorf("chat = %q, want hi", obj.ChatMessage())
	}
}

func TestDragPansCamera(t *testing.T) {
	var clicks, drags int
	a := testScene("A")
	a.SetupFn = func(st *Stage) error {
		st.Camera().SetLimits(500, 500)
		st.OnClick(func(ClickContext) { clicks++ })
		st.OnDragStart(func(DragContext) { drags++ })
		return nil
	}
	c := newTestController(t, a)

	c.Stage().InjectDrag(400, 300, 300, 300, 5)
	tick(c, 5)
	if !approxEqual(c.Camera().PanX, 100, 1e-9) {
		t.Errorf("PanX = %v, want 100", c.Camera().PanX)
	}
	if clicks != 0 || drags != 1 {
		t.Errorf("clicks = %d drags = %d, want 0 and 1", clicks, drags)
	}
	if c.Camera().Dragging() {
		t.Error("camera still dragging after release")
	}
}

func TestSmallMoveStillClicks(t *testing.T) {
	var clicks int
	a := testScene("A")
	a.SetupFn = func(st *Stage) error {
		st.Camera().SetLimits(500, 500)
		st.OnClick(func(ClickContext) { clicks++ })
		return nil
	}
	c := newTestController(t, a)

	st := c.Stage()
	st.InjectPress(400, 300)
	st.InjectMove(403, 300)
	st.InjectRelease(403, 300)
	tick(c, 3)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if c.Camera().PanX != 0 {
		t.Errorf("PanX = %v, want 0", c.Camera().PanX)
	}
}

func TestDisabledCameraIgnoresGestures(t *testing.T) {
	a := testScene("A")
	a.SetupFn = func(st *Stage) error {
		st.Camera().SetLimits(500, 500)
		st.Camera().Enabled = false
		return nil
	}
	c := newTestController(t, a)

	c.Stage().InjectDrag(400, 300, 200, 300, 4)
	c.Stage().InjectWheel(400, 300, 1)
	tick(c, 5)
	if c.Camera().PanX != 0 || c.Camera().Zoom != 1 {
		t.Errorf("disabled camera moved: pan %v zoom %v", c.Camera().PanX, c.Camera().Zoom)
	}
}

func TestWheelZoomsAtCursor(t *testing.T) {
	var wheels int
	a := testScene("A")
	a.SetupFn = func(st *Stage) error {
		st.Camera().SetLimits(500, 500)
		st.OnWheel(func(WheelContext) { wheels++ })
		return nil
	}
	c := newTestController(t, a)
	cam := c.Camera()
	wx, wy := cam.ScreenToWorld(200, 150)

	c.Stage().InjectWheel(200, 150, 1)
	tick(c, 1)
	if !approxEqual(cam.Zoom, 1.1, 1e-9) {
		t.Errorf("Zoom = %v, want 1.1", cam.Zoom)
	}
	ax, ay := cam.ScreenToWorld(200, 150)
	if !approxEqual(ax, wx, 1e-6) || !approxEqual(ay, wy, 1e-6) {
		t.Errorf("point under cursor moved: (%v, %v) -> (%v, %v)", wx, wy, ax, ay)
	}
	if wheels != 1 {
		t.Errorf("wheel listeners fired %d times", wheels)
	}
}

func TestPinchZoomsWithoutClicking(t *testing.T) {
	var clicks, pinches int
	a := testScene("A")
	a.SetupFn = func(st *Stage) error {
		st.OnClick(func(ClickContext) { clicks++ })
		st.OnPinch(func(PinchContext) { pinches++ })
		return nil
	}
	c := newTestController(t, a)
	st := c.Stage()

	st.InjectTouches(TouchPoint{ID: 1, X: 300, Y: 300}, TouchPoint{ID: 2, X: 500, Y: 300})
	st.InjectTouches(TouchPoint{ID: 1, X: 250, Y: 300}, TouchPoint{ID: 2, X: 550, Y: 300})
	st.InjectTouches()
	tick(c, 3)

	if !approxEqual(c.Camera().Zoom, 1.5, 1e-9) {
		t.Errorf("Zoom = %v, want 1.5", c.Camera().Zoom)
	}
	if clicks != 0 {
		t.Errorf("pinch produced %d clicks", clicks)
	}
	if pinches != 1 {
		t.Errorf("pinch listeners fired %d times, want 1", pinches)
	}
	if c.Camera().Pinching() {
		t.Error("pinch still active after touches lifted")
	}
}

func TestTouchTapClicks(t *testing.T) {
	var clicks int
	a := testScene("A")
	a.SetupFn = func(st *Stage) error {
		st.OnClick(func(ctx ClickContext) {
			if ctx.PointerID == 0 {
				t.Error("touch click reported as mouse")
			}
			clicks++
		})
		return nil
	}
	c := newTestController(t, a)
	c.Stage().InjectTouches(TouchPoint{ID: 7, X: 100, Y: 100})
	c.Stage().InjectTouches()
	tick(c, 2)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestCallbackHandleRemove(t *testing.T) {
	var fired int
	var h CallbackHandle
	a := testScene("A")
	a.SetupFn = func(st *Stage) error {
		h = st.OnClick(func(ClickContext) { fired++ })
		st.OnPointerUp(func(PointerContext) {})
		return nil
	}
	c := newTestController(t, a)

	h.Remove()
	if c.ListenerCount() != 1 {
		t.Errorf("ListenerCount = %d, want 1", c.ListenerCount())
	}
	c.Stage().InjectClick(10, 10)
	tick(c, 2)
	if fired != 0 {
		t.Error("removed listener fired")
	}
	// Removing twice is harmless.
	h.Remove()
	CallbackHandle{}.Remove()
}

func TestDebugModeLogsFrames(t *testing.T) {
	var buf bytes.Buffer
	env, _ := NewTestEnv(testStart, 1)
	c := NewController(Options{
		Logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
		Env:    env,
		Input:  noInput{},
		Debug:  true,
	})
	c.Resize(800, 600)
	var comp *Compositor
	a := testScene("A")
	a.SetupFn = func(st *Stage) error {
		comp = st.NewCompositor()
		comp.Add(NewAnimal(st.Env(), "pig", 100, 100, 50, false, 0, nil))
		return nil
	}
	a.RenderFn = func(dst *ebiten.Image, t time.Duration) {
		comp.RenderFrame(c.Stage().Frame(dst, t))
	}
	if err := c.Register(a); err != nil {
		t.Fatal(err)
	}
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	c.Draw(ebiten.NewImage(8, 8))
	out := buf.String()
	for _, want := range []string{"scene activated", "component=slideshow", "msg=frame", "objects=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}
