package slideshow

import "errors"

// ErrPixelSample is returned when a texture's pixels cannot be read back.
// HitTest treats it as a hit on the bounding box.
var ErrPixelSample = errors.New("slideshow: pixel sample failed")

// alphaHitThreshold is the minimum alpha (out of 255) that counts as solid.
const alphaHitThreshold = 10

// HitTest reports whether (clickX, clickY) lands on the object drawn at
// screenX. The bounding box spans HitboxWidth centered on screenX and
// [Y-Size, Y] vertically, shifted by where the sprite was last drawn for
// bobbing animals. Inside it, a ready image refines the test to
// pixels with alpha above alphaHitThreshold.
func (o *Object) HitTest(clickX, clickY, screenX float64) bool {
	w := o.HitboxWidth()
	left := screenX - w/2
	bottom := o.Y + o.drawnOffsetY()
	top := bottom - o.Size
	if clickX < left || clickX > left+w || clickY < top || clickY > bottom {
		return false
	}
	if !o.Image.Ready() || w <= 0 || o.Size <= 0 {
		return true
	}
	u := (clickX - left) / w
	if o.Flip {
		u = 1 - u
	}
	v := (clickY - top) / o.Size
	a, err := o.Image.alphaAt(u, v)
	if err != nil {
		return true
	}
	return a > alphaHitThreshold
}

// drawnOffsetY returns how far below Y the sprite was last drawn.
func (o *Object) drawnOffsetY() float64 {
	if o.Kind == KindAnimal && o.Animal != nil {
		return o.Animal.bob
	}
	return 0
}
