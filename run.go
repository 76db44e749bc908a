package slideshow

import (
	"errors"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// Debug turns on per-frame timing logs and debug-level output.
	Debug bool
	// ScreenshotDir overrides where the P key and test scripts write PNGs.
	ScreenshotDir string
	// TestScript, when set, is a JSON script replayed from the first frame.
	// The window closes after its last step.
	TestScript []byte
}

func (cfg RunConfig) withDefaults() RunConfig {
	if cfg.Title == "" {
		cfg.Title = "Slideshow"
	}
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 800
	}
	return cfg
}

// NewRunController creates a Controller configured from cfg with the
// overlay shown, sized to the window Run will open so that the first slide
// is laid out at its real size. Scenes are registered on it before calling
// Run.
func NewRunController(cfg RunConfig, assets *Assets) *Controller {
	cfg = cfg.withDefaults()
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	c := NewController(Options{
		Logger:        logger,
		Assets:        assets,
		ShowOverlay:   true,
		ShowFPS:       cfg.ShowFPS,
		Debug:         cfg.Debug,
		ScreenshotDir: cfg.ScreenshotDir,
	})
	c.Resize(float64(cfg.Width), float64(cfg.Height))
	return c
}

// Run opens a window and runs c until the window is closed. c is started at
// its first scene unless it was started already.
func Run(c *Controller, cfg RunConfig) error {
	cfg = cfg.withDefaults()
	if len(cfg.TestScript) > 0 {
		runner, err := LoadTestScript(cfg.TestScript)
		if err != nil {
			return err
		}
		c.SetTestRunner(runner, true)
	}
	if c.Active() == nil {
		if err := c.Start(); err != nil {
			return err
		}
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(c)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
