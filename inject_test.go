package slideshow

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestInjectClickQueuesTwoFrames(t *testing.T) {
	c := newTestController(t)
	st := c.Stage()
	st.InjectClick(10, 20)
	if st.InjectPending() != 2 {
		t.Fatalf("pending = %d, want 2", st.InjectPending())
	}
	var f InputFrame
	st.popInjected(&f)
	if !f.MouseDown || f.CursorX != 10 || f.CursorY != 20 {
		t.Errorf("press frame = %+v", f)
	}
	st.popInjected(&f)
	if f.MouseDown {
		t.Error("second frame should be a release")
	}
	if st.popInjected(&f) {
		t.Error("queue should be empty")
	}
}

func TestInjectDragInterpolates(t *testing.T) {
	c := newTestController(t)
	st := c.Stage()
	st.InjectDrag(0, 0, 100, 50, 6)
	if st.InjectPending() != 6 {
		t.Fatalf("pending = %d, want 6", st.InjectPending())
	}
	want := []float64{0, 20, 40, 60, 80, 100}
	var f InputFrame
	for i, x := range want {
		st.popInjected(&f)
		if !approxEqual(f.CursorX, x, 1e-9) || !approxEqual(f.CursorY, x/2, 1e-9) {
			t.Errorf("frame %d at (%v, %v), want (%v, %v)", i, f.CursorX, f.CursorY, x, x/2)
		}
		if last := i == len(want)-1; f.MouseDown == last {
			t.Errorf("frame %d MouseDown = %v", i, f.MouseDown)
		}
	}
}

func TestInjectDragMinimumFrames(t *testing.T) {
	c := newTestController(t)
	c.Stage().InjectDrag(0, 0, 10, 10, 0)
	if got := c.Stage().InjectPending(); got != 2 {
		t.Errorf("pending = %d, want 2", got)
	}
}

func TestInjectTouchesCopies(t *testing.T) {
	c := newTestController(t)
	st := c.Stage()
	touches := []TouchPoint{{ID: 1, X: 5, Y: 5}}
	st.InjectTouches(touches...)
	touches[0].X = 99

	var f InputFrame
	st.popInjected(&f)
	if len(f.Touches) != 1 || f.Touches[0].X != 5 {
		t.Errorf("touches = %+v", f.Touches)
	}
}

func TestInjectKeyAndWheel(t *testing.T) {
	c := newTestController(t)
	st := c.Stage()
	st.InjectKey(ebiten.KeyA)
	st.InjectWheel(1, 2, -1)

	var f InputFrame
	st.popInjected(&f)
	if len(f.Keys) != 1 || f.Keys[0] != ebiten.KeyA {
		t.Errorf("keys = %v", f.Keys)
	}
	st.popInjected(&f)
	if f.WheelY != -1 || f.CursorX != 1 || f.CursorY != 2 || len(f.Keys) != 0 {
		t.Errorf("wheel frame = %+v", f)
	}
}
