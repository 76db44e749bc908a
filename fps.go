package slideshow

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsWidget shows the current FPS and TPS in the top-right corner. The text
// is redrawn every ~0.5 seconds with ebitenutil.DebugPrint.
type fpsWidget struct {
	img   *ebiten.Image
	since float64
	dirty bool
}

func newFPSWidget() *fpsWidget {
	return &fpsWidget{dirty: true}
}

func (w *fpsWidget) update(dt float64) {
	w.since += dt
	if w.since >= 0.5 {
		w.since = 0
		w.dirty = true
	}
}

func (w *fpsWidget) draw(dst *ebiten.Image) {
	if w.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		w.img = ebiten.NewImage(100, 32)
	}
	if w.dirty {
		w.dirty = false
		w.img.Clear()
		w.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(w.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(dst.Bounds().Dx()-w.img.Bounds().Dx()-4), 4)
	dst.DrawImage(w.img, op)
}
