package slideshow

import "github.com/hajimehoshi/ebiten/v2"

// Synthetic input uses logical screen coordinates, the same space real
// input is reported in after dividing by the device scale. Each queued
// frame replaces one tick of real input.

func (s *Stage) inject(f InputFrame) {
	s.input.queue = append(s.input.queue, f)
}

// popInjected moves the oldest synthetic frame into f. Returns false when
// the queue is empty and real input should be read.
func (s *Stage) popInjected(f *InputFrame) bool {
	if len(s.input.queue) == 0 {
		return false
	}
	*f = s.input.queue[0]
	copy(s.input.queue, s.input.queue[1:])
	s.input.queue[len(s.input.queue)-1] = InputFrame{}
	s.input.queue = s.input.queue[:len(s.input.queue)-1]
	return true
}

// InjectPending returns the number of synthetic frames still queued.
func (s *Stage) InjectPending() int {
	return len(s.input.queue)
}

// InjectPress queues a left button press at (x, y).
func (s *Stage) InjectPress(x, y float64) {
	s.inject(InputFrame{CursorX: x, CursorY: y, MouseDown: true})
}

// InjectMove queues a pointer move to (x, y) with the button held down.
// Use this between InjectPress and InjectRelease to simulate a drag.
func (s *Stage) InjectMove(x, y float64) {
	s.inject(InputFrame{CursorX: x, CursorY: y, MouseDown: true})
}

// InjectHover queues a pointer move to (x, y) with no button held.
func (s *Stage) InjectHover(x, y float64) {
	s.inject(InputFrame{CursorX: x, CursorY: y})
}

// InjectRelease queues a button release at (x, y).
func (s *Stage) InjectRelease(x, y float64) {
	s.inject(InputFrame{CursorX: x, CursorY: y})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (s *Stage) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2
// interpolated moves, and release at (toX, toY). The sequence consumes
// frames frames, at least 2.
func (s *Stage) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectWheel queues one wheel notch of dy at (x, y). Positive dy zooms in.
func (s *Stage) InjectWheel(x, y, dy float64) {
	s.inject(InputFrame{CursorX: x, CursorY: y, WheelY: dy})
}

// InjectTouches queues one frame with exactly the given touches down. A
// touch missing from a later frame counts as lifted.
func (s *Stage) InjectTouches(touches ...TouchPoint) {
	s.inject(InputFrame{Touches: append([]TouchPoint(nil), touches...)})
}

// InjectKey queues a key press.
func (s *Stage) InjectKey(k ebiten.Key) {
	s.inject(InputFrame{Keys: []ebiten.Key{k}})
}
