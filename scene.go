package slideshow

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	// ErrInvalidScene is returned by Register for a scene that cannot run.
	ErrInvalidScene = errors.New("slideshow: invalid scene")
	// ErrNoScenes is returned by Start when nothing was registered.
	ErrNoScenes = errors.New("slideshow: no scenes registered")
)

// SceneInfo is the text shown on the overlay while a scene is active.
type SceneInfo struct {
	Title string
	Body  []string
}

// Scene is one slide of the card.
//
// Setup runs on activation after the camera has been reset; it builds
// objects, configures camera limits and registers listeners on the stage.
// Render draws one frame at t, the time since activation. Teardown runs
// after the slide's listeners have been removed.
type Scene interface {
	Info() SceneInfo
	Setup(st *Stage) error
	Render(dst *ebiten.Image, t time.Duration)
	OnResize(w, h float64)
	Teardown()
}

// SceneFuncs adapts plain functions to Scene. SetupFn and RenderFn are
// required; the other hooks may be nil.
type SceneFuncs struct {
	Title      string
	Body       []string
	SetupFn    func(st *Stage) error
	RenderFn   func(dst *ebiten.Image, t time.Duration)
	ResizeFn   func(w, h float64)
	TeardownFn func()
}

var _ Scene = (*SceneFuncs)(nil)

func (f *SceneFuncs) Info() SceneInfo {
	return SceneInfo{Title: f.Title, Body: f.Body}
}

func (f *SceneFuncs) Setup(st *Stage) error {
	return f.SetupFn(st)
}

func (f *SceneFuncs) Render(dst *ebiten.Image, t time.Duration) {
	f.RenderFn(dst, t)
}

func (f *SceneFuncs) OnResize(w, h float64) {
	if f.ResizeFn != nil {
		f.ResizeFn(w, h)
	}
}

func (f *SceneFuncs) Teardown() {
	if f.TeardownFn != nil {
		f.TeardownFn()
	}
}

// validateScene returns a short reason the scene cannot run, or "".
func validateScene(s Scene) string {
	switch v := s.(type) {
	case nil:
		return "nil scene"
	case *SceneFuncs:
		if v == nil {
			return "nil scene"
		}
		if v.SetupFn == nil {
			return "missing setup hook"
		}
		if v.RenderFn == nil {
			return "missing render hook"
		}
	}
	if s.Info().Title == "" {
		return "empty title"
	}
	return ""
}

// renderLoop is one activation of a scene. It is created when the scene
// becomes active and cancelled when the controller switches away; listeners
// registered during the activation are tagged with it.
type renderLoop struct {
	scene     Scene
	index     int
	start     time.Time
	frames    int
	cancelled bool
	err       error // from Setup; a failed scene is not rendered
}

// elapsed returns the time since activation.
func (l *renderLoop) elapsed(now time.Time) time.Duration {
	d := now.Sub(l.start)
	if d < 0 {
		return 0
	}
	return d
}
