package slideshow

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/tanema/gween/ease"
)

// homeGlideSeconds is how long the Home key takes to re-center the camera.
const homeGlideSeconds = 0.5

var (
	overlayFill = color.NRGBA{0, 0, 0, 140}
	overlayInk  = color.NRGBA{235, 235, 235, 255}
	overlayWarn = color.NRGBA{255, 120, 100, 255}
)

// Options configures a Controller. The zero value is usable.
type Options struct {
	// Logger receives scene lifecycle and asset messages. Nil writes text
	// to stderr.
	Logger *slog.Logger
	// Env supplies time and randomness. Nil uses NewEnv().
	Env *Env
	// Assets is handed to scenes through the stage. Nil scenes see a
	// provider whose handles never become ready.
	Assets *Assets
	Camera CameraConfig
	// DragDeadZone is the movement in logical pixels before a press turns
	// into a drag. Zero uses 4.
	DragDeadZone float64
	// Input is polled once per tick. Nil reads Ebitengine.
	Input         InputSource
	ShowOverlay   bool
	ShowFPS       bool
	Debug         bool
	ScreenshotDir string
}

// Controller runs the slideshow: it owns the camera and the active scene,
// forwards input, and switches scenes with a full teardown of the outgoing
// one. It implements ebiten.Game.
type Controller struct {
	logger *slog.Logger
	env    *Env
	camera *Camera
	stage  *Stage
	input  InputSource

	scenes    []Scene
	index     int
	loop      *renderLoop
	liveLoops int

	overlay      bool
	fps          *fpsWidget
	runner       *TestRunner
	exitWhenDone bool

	width, height float64
	monitorScale  func() float64
}

var _ ebiten.Game = (*Controller)(nil)

// NewController creates a Controller with no scenes.
func NewController(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	logger = logger.With("component", "slideshow")
	env := opts.Env
	if env == nil {
		env = NewEnv()
	}
	input := opts.Input
	if input == nil {
		input = NewEbitenInput()
	}
	cam := NewCamera(opts.Camera)
	c := &Controller{
		logger:  logger,
		env:     env,
		camera:  cam,
		stage:   newStage(cam, env, opts.Assets, logger, opts.DragDeadZone),
		input:   input,
		overlay: opts.ShowOverlay,
		monitorScale: func() float64 {
			return ebiten.Monitor().DeviceScaleFactor()
		},
	}
	c.stage.debug = opts.Debug
	if opts.ScreenshotDir != "" {
		c.stage.screenshotDir = opts.ScreenshotDir
	}
	if opts.ShowFPS {
		c.fps = newFPSWidget()
	}
	c.stage.OnKey(c.handleKey)
	return c
}

// Register appends a scene. Scenes that cannot run are rejected with
// ErrInvalidScene.
func (c *Controller) Register(s Scene) error {
	if reason := validateScene(s); reason != "" {
		c.logger.Error("scene rejected", "index", len(c.scenes), "reason", reason)
		return fmt.Errorf("%w: %s", ErrInvalidScene, reason)
	}
	c.scenes = append(c.scenes, s)
	return nil
}

// Start activates the first scene.
func (c *Controller) Start() error {
	return c.StartAt(0)
}

// StartAt activates scene i, wrapped into range.
func (c *Controller) StartAt(i int) error {
	if len(c.scenes) == 0 {
		return ErrNoScenes
	}
	c.activate(i)
	return nil
}

// Next switches to the following scene, wrapping after the last.
func (c *Controller) Next() { c.GoTo(c.index + 1) }

// Previous switches to the preceding scene, wrapping before the first.
func (c *Controller) Previous() { c.GoTo(c.index - 1) }

// GoTo switches to scene i, wrapped into range. The outgoing scene's loop is
// cancelled, its listeners removed and its Teardown called before the camera
// is reset and the incoming scene set up.
func (c *Controller) GoTo(i int) {
	if len(c.scenes) == 0 {
		return
	}
	c.activate(i)
}

// Index returns the active scene index.
func (c *Controller) Index() int { return c.index }

// Len returns the number of registered scenes.
func (c *Controller) Len() int { return len(c.scenes) }

// Active returns the active scene, or nil before Start.
func (c *Controller) Active() Scene {
	if c.loop == nil {
		return nil
	}
	return c.loop.scene
}

// Camera returns the shared camera.
func (c *Controller) Camera() *Camera { return c.camera }

// Stage returns the stage scenes are set up on.
func (c *Controller) Stage() *Stage { return c.stage }

// Env returns the controller's environment.
func (c *Controller) Env() *Env { return c.env }

// ActiveLoops returns the number of render loops that have not been
// cancelled. It is 1 while a scene is active.
func (c *Controller) ActiveLoops() int { return c.liveLoops }

// ListenerCount returns the number of scene-registered listeners still
// attached.
func (c *Controller) ListenerCount() int { return c.stage.ListenerCount() }

// SetOverlay shows or hides the title overlay.
func (c *Controller) SetOverlay(on bool) { c.overlay = on }

// SetTestRunner attaches a scripted input runner. When exitWhenDone is set,
// Update returns ebiten.Termination after the last step.
func (c *Controller) SetTestRunner(r *TestRunner, exitWhenDone bool) {
	c.runner = r
	c.exitWhenDone = exitWhenDone
}

func (c *Controller) activate(i int) {
	c.deactivate()

	n := len(c.scenes)
	i = ((i % n) + n) % n
	c.index = i
	scene := c.scenes[i]

	c.camera.Reset()
	c.camera.Enabled = true
	c.camera.SetLimits(0, 0)
	c.stage.resetPointers()

	loop := &renderLoop{scene: scene, index: i, start: c.env.Now()}
	c.loop = loop
	c.liveLoops++
	c.stage.owner = loop

	info := scene.Info()
	if err := scene.Setup(c.stage); err != nil {
		loop.err = err
		c.logger.Error("scene setup failed", "index", i, "title", info.Title, "err", err)
		return
	}
	c.logger.Info("scene activated", "index", i, "title", info.Title)
}

func (c *Controller) deactivate() {
	loop := c.loop
	if loop == nil {
		return
	}
	loop.cancelled = true
	c.liveLoops--
	removed := c.stage.handlers.removeOwner(loop)
	c.stage.owner = nil
	c.loop = nil
	loop.scene.Teardown()
	c.logger.Debug("scene deactivated",
		"index", loop.index,
		"listeners", removed,
		"frames", loop.frames,
	)
}

func (c *Controller) handleKey(ctx KeyContext) {
	if c.loop == nil {
		return
	}
	switch ctx.Key {
	case ebiten.KeyArrowRight, ebiten.KeySpace:
		c.Next()
	case ebiten.KeyArrowLeft:
		c.Previous()
	case ebiten.KeyHome:
		if c.camera.Enabled {
			c.camera.GlideTo(0, 0, homeGlideSeconds, ease.OutCubic)
		}
	case ebiten.KeyP:
		c.stage.Screenshot(fmt.Sprintf("scene%d", c.index+1))
	case ebiten.KeyI:
		c.overlay = !c.overlay
	}
}

// --- Sizing ---

// Resize sets the logical viewport size and notifies the active scene.
func (c *Controller) Resize(w, h float64) {
	c.resize(w, h, c.stage.deviceScale)
}

// SetDeviceScale sets the device pixel ratio of the backing store.
func (c *Controller) SetDeviceScale(dpr float64) {
	c.resize(c.width, c.height, dpr)
}

// BackingSize returns the backing store size in device pixels, the logical
// size times the device pixel ratio.
func (c *Controller) BackingSize() (w, h int) {
	d := c.stage.deviceScale
	return int(math.Ceil(c.width * d)), int(math.Ceil(c.height * d))
}

func (c *Controller) resize(w, h, dpr float64) {
	c.width, c.height = w, h
	c.stage.resize(w, h, dpr)
	if c.loop != nil && c.loop.err == nil {
		c.loop.scene.OnResize(w, h)
	}
}

// --- ebiten.Game ---

// Update advances the camera glide and processes one tick of input.
func (c *Controller) Update() error {
	if c.loop == nil {
		return nil
	}
	dt := 1.0 / float64(ebiten.TPS())
	if c.runner != nil {
		c.runner.step(c)
	}
	c.camera.update(float32(dt))
	c.stage.processInput(c.input)
	if c.fps != nil {
		c.fps.update(dt)
	}
	if c.loop != nil {
		c.loop.frames++
	}
	if c.exitWhenDone && c.runner != nil && c.runner.Done() && c.stage.InjectPending() == 0 {
		return ebiten.Termination
	}
	return nil
}

// Draw renders the active scene, the overlay and any queued screenshots.
func (c *Controller) Draw(screen *ebiten.Image) {
	if c.loop == nil {
		return
	}
	if c.loop.err == nil {
		c.loop.scene.Render(screen, c.loop.elapsed(c.env.Now()))
	}
	if c.overlay || c.loop.err != nil {
		c.drawOverlay(screen)
	}
	if c.fps != nil {
		c.fps.draw(screen)
	}
	c.stage.flushScreenshots(screen)
}

// LayoutF resizes the viewport to the window's logical size and returns the
// backing store size in device pixels.
func (c *Controller) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	dpr := c.monitorScale()
	if dpr <= 0 {
		dpr = 1
	}
	if outsideWidth != c.width || outsideHeight != c.height || dpr != c.stage.deviceScale {
		c.resize(outsideWidth, outsideHeight, dpr)
	}
	return outsideWidth * dpr, outsideHeight * dpr
}

// Layout implements ebiten.Game. Ebitengine prefers LayoutF when present.
func (c *Controller) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := c.LayoutF(float64(outsideWidth), float64(outsideHeight))
	return int(math.Ceil(w)), int(math.Ceil(h))
}

// --- Overlay ---

// drawOverlay draws the scene title and body, the "n/total" counter and the
// asset loading progress in logical screen space.
func (c *Controller) drawOverlay(dst *ebiten.Image) {
	info := c.loop.scene.Info()
	geo := c.stage.ScreenGeoM()
	s := c.stage.Scale()
	w, h := c.stage.Size()

	pad := 12 * s
	titleSize := 22 * s
	bodySize := 14 * s
	lineH := bodySize * 1.4
	panelW := math.Min(w-2*pad, 420*s)

	regular := RegularFont()
	var body []string
	for _, para := range info.Body {
		body = append(body, WrapWords(para, panelW-2*pad, func(line string) float64 {
			return regular.Advance(line, bodySize)
		})...)
	}
	if c.loop.err != nil {
		body = append(body, "Không thể mở cảnh này.")
	}

	panelH := 2*pad + titleSize*1.3 + lineH*float64(len(body))
	FillPath(dst, RoundedRectPath(pad, pad, panelW, panelH, 10*s), geo, overlayFill)
	DrawText(dst, info.Title, 2*pad, 2*pad, TextStyle{
		Font: BoldFont(), Size: titleSize, Color: color.White,
	}, geo)
	y := 2*pad + titleSize*1.3
	for i, line := range body {
		ink := overlayInk
		if c.loop.err != nil && i == len(body)-1 {
			ink = overlayWarn
		}
		DrawText(dst, line, 2*pad, y, TextStyle{Font: regular, Size: bodySize, Color: ink}, geo)
		y += lineH
	}

	DrawText(dst, fmt.Sprintf("%d/%d", c.index+1, len(c.scenes)), w-pad, h-pad, TextStyle{
		Font: BoldFont(), Size: 16 * s, Color: color.White,
		Align: text.AlignEnd, VAlign: text.AlignEnd,
	}, geo)

	if settled, total := c.stage.assets.Progress(); settled < total {
		DrawText(dst, fmt.Sprintf("Đang tải... %d/%d", settled, total), w/2, h-pad, TextStyle{
			Font: regular, Size: bodySize, Color: overlayInk,
			Align: text.AlignCenter, VAlign: text.AlignEnd,
		}, geo)
	}
}
