package slideshow

import (
	"image"
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// halfTexture is opaque on its left half and transparent on the right.
func halfTexture(w, h int) *Texture {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w / 2 {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	return NewTextureFromImage(img)
}

func TestHitTestBoundingBox(t *testing.T) {
	o := &Object{X: 100, Y: 200, Size: 100}
	tests := []struct {
		name   string
		cx, cy float64
		want   bool
	}{
		{"center", 100, 150, true},
		{"top edge", 100, 100, true},
		{"bottom edge", 100, 200, true},
		{"left edge", 50, 150, true},
		{"above", 100, 99, false},
		{"below", 100, 201, false},
		{"left", 49, 150, false},
		{"right", 151, 150, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := o.HitTest(tt.cx, tt.cy, 100); got != tt.want {
				t.Errorf("HitTest(%v, %v) = %v, want %v", tt.cx, tt.cy, got, tt.want)
			}
		})
	}
}

func TestHitTestOpaqueCenter(t *testing.T) {
	o := &Object{X: 100, Y: 200, Size: 100, Image: solidTexture(10, 10, color.Black)}
	if !o.HitTest(100, 150, 100) {
		t.Error("center of opaque image should hit")
	}
}

func TestHitTestTransparentPixels(t *testing.T) {
	o := &Object{X: 100, Y: 200, Size: 100, Image: halfTexture(10, 10)}
	if !o.HitTest(70, 150, 100) {
		t.Error("opaque left half should hit")
	}
	if o.HitTest(130, 150, 100) {
		t.Error("transparent right half should miss")
	}
}

func TestHitTestFlipMirrorsAlpha(t *testing.T) {
	o := &Object{X: 100, Y: 200, Size: 100, Flip: true, Image: halfTexture(10, 10)}
	if o.HitTest(70, 150, 100) {
		t.Error("flipped: left half is now transparent")
	}
	if !o.HitTest(130, 150, 100) {
		t.Error("flipped: right half is now opaque")
	}
}

func TestHitTestAlphaThreshold(t *testing.T) {
	faint := solidTexture(4, 4, color.NRGBA{255, 255, 255, alphaHitThreshold})
	o := &Object{X: 0, Y: 10, Size: 10, Image: faint}
	if o.HitTest(0, 5, 0) {
		t.Error("alpha equal to threshold should not hit")
	}
	o.Image = solidTexture(4, 4, color.NRGBA{255, 255, 255, alphaHitThreshold + 1})
	if !o.HitTest(0, 5, 0) {
		t.Error("alpha above threshold should hit")
	}
}

func TestHitTestPendingImageUsesBox(t *testing.T) {
	o := &Object{X: 0, Y: 10, Size: 10, Image: &Texture{path: "pending.png"}}
	if !o.HitTest(0, 5, 0) {
		t.Error("pending image should fall back to the bounding box")
	}
}

func TestAlphaAtWithoutPixels(t *testing.T) {
	tex := &Texture{path: "gone.png"}
	if _, err := tex.alphaAt(0.5, 0.5); err == nil {
		t.Error("expected ErrPixelSample")
	}
}

func TestHitTestFollowsAnimalBob(t *testing.T) {
	o := NewAnimal(nil, "pig", 100, 200, 100, false, 0, nil)
	// sin(pi/2)*3: the sprite is drawn 3 units low.
	halfPi := math.Pi / 2
	quarter := time.Duration(halfPi * float64(time.Second))
	o.renderAnimal(&Frame{Target: ebiten.NewImage(4, 4), Time: quarter, Scale: 1})
	if !approxEqual(o.Animal.bob, 3, 1e-6) {
		t.Fatalf("bob = %v, want 3", o.Animal.bob)
	}

	tests := []struct {
		name   string
		cx, cy float64
		want   bool
	}{
		{"drawn bottom", 100, 202.5, true},
		{"below drawn bottom", 100, 203.5, false},
		{"drawn top", 100, 103.5, true},
		{"above drawn top", 100, 102.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := o.HitTest(tt.cx, tt.cy, 100); got != tt.want {
				t.Errorf("HitTest(%v, %v) = %v, want %v", tt.cx, tt.cy, got, tt.want)
			}
		})
	}
}
