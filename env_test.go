package slideshow

import (
	"testing"
	"time"
)

func TestManualClock(t *testing.T) {
	clk := NewManualClock(testStart)
	clk.Advance(3 * time.Second)
	if got := clk.Now().Sub(testStart); got != 3*time.Second {
		t.Errorf("elapsed = %v, want 3s", got)
	}
	later := testStart.Add(time.Hour)
	clk.Set(later)
	if !clk.Now().Equal(later) {
		t.Errorf("Now = %v, want %v", clk.Now(), later)
	}
}

func TestTestEnvIsDeterministic(t *testing.T) {
	a, _ := NewTestEnv(testStart, 7)
	b, _ := NewTestEnv(testStart, 7)
	for i := range 10 {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d differs: %v vs %v", i, x, y)
		}
	}
}

func TestEnvHelpers(t *testing.T) {
	env, clk := NewTestEnv(testStart, 1)
	if !env.Now().Equal(testStart) {
		t.Error("Now should follow the manual clock")
	}
	clk.Advance(time.Minute)
	if env.Now().Sub(testStart) != time.Minute {
		t.Error("Now did not advance")
	}
	for range 100 {
		if v := env.Between(2, 5); v < 2 || v >= 5 {
			t.Fatalf("Between = %v", v)
		}
		if n := env.IntN(3); n < 0 || n >= 3 {
			t.Fatalf("IntN = %d", n)
		}
	}
	if env.Pick(nil) != "" {
		t.Error("Pick(nil) should be empty")
	}
	if got := env.Pick([]string{"only"}); got != "only" {
		t.Errorf("Pick = %q", got)
	}
}

func TestNilEnv(t *testing.T) {
	var env *Env
	if env.Now().IsZero() {
		t.Error("nil Env should use the wall clock")
	}
	if v := env.Float64(); v < 0 || v >= 1 {
		t.Errorf("Float64 = %v", v)
	}
}
