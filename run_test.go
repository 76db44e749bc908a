package slideshow

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestNewRunControllerSetsUpAtWindowSize(t *testing.T) {
	tests := []struct {
		name string
		cfg  RunConfig
		w, h float64
	}{
		{"configured", RunConfig{Width: 640, Height: 480}, 640, 480},
		{"defaults", RunConfig{}, 1280, 800},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewRunController(tt.cfg, nil)
			var gotW, gotH float64
			err := c.Register(&SceneFuncs{
				Title: "size",
				SetupFn: func(st *Stage) error {
					gotW, gotH = st.Size()
					return nil
				},
				RenderFn: func(*ebiten.Image, time.Duration) {},
			})
			if err != nil {
				t.Fatal(err)
			}
			if err := c.Start(); err != nil {
				t.Fatal(err)
			}
			if gotW != tt.w || gotH != tt.h {
				t.Errorf("Setup saw %vx%v, want %vx%v", gotW, gotH, tt.w, tt.h)
			}
			if cam := c.Camera(); cam.Width != tt.w || cam.Height != tt.h {
				t.Errorf("camera viewport %vx%v, want %vx%v", cam.Width, cam.Height, tt.w, tt.h)
			}
		})
	}
}
