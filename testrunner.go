package slideshow

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// scriptKeys maps the key names accepted by test scripts.
var scriptKeys = map[string]ebiten.Key{
	"right": ebiten.KeyArrowRight,
	"left":  ebiten.KeyArrowLeft,
	"space": ebiten.KeySpace,
	"home":  ebiten.KeyHome,
	"p":     ebiten.KeyP,
	"i":     ebiten.KeyI,
}

// testStep is a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Key    string  `json:"key,omitempty"`
	Scene  int     `json:"scene,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Delta  float64 `json:"delta,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences synthetic input, scene switches and screenshots
// across frames. Attach it with Controller.SetTestRunner.
//
// Supported actions: screenshot, click, drag, wheel, key, goto, wait.
// Coordinates are logical screen pixels.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "screenshot", "click", "drag", "wheel", "goto", "wait":
		case "key":
			if _, ok := scriptKeys[strings.ToLower(st.Key)]; !ok {
				return nil, fmt.Errorf("parse test script: step %d: unknown key %q", i, st.Key)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Controller.Update
// before input is processed.
func (r *TestRunner) step(c *Controller) {
	if r.done {
		return
	}
	st := c.stage
	// Wait for pending injections to drain before advancing.
	if st.InjectPending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	s := r.steps[r.cursor]
	r.cursor++

	switch s.Action {
	case "screenshot":
		st.Screenshot(s.Label)
	case "click":
		st.InjectClick(s.X, s.Y)
	case "drag":
		st.InjectDrag(s.FromX, s.FromY, s.ToX, s.ToY, max(s.Frames, 2))
	case "wheel":
		st.InjectWheel(s.X, s.Y, s.Delta)
	case "key":
		st.InjectKey(scriptKeys[strings.ToLower(s.Key)])
	case "goto":
		c.GoTo(s.Scene)
	case "wait":
		if s.Frames > 0 {
			r.waitCount = s.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && st.InjectPending() == 0 {
		r.done = true
	}
}
