package slideshow

import (
	"log/slog"
	"math"
	"time"
)

// Compositor owns a slide's scene objects. It draws them back to front by
// DepthKey and routes clicks front to back, so the object drawn on top is
// the one that reacts.
type Compositor struct {
	objects []SceneObject
	sorted  []SceneObject

	// Cull window of the last rendered frame, in world units.
	offset    float64
	width     float64
	windowSet bool

	debug  bool
	logger *slog.Logger
	stats  frameStats
}

// NewCompositor returns an empty compositor.
func NewCompositor() *Compositor {
	return &Compositor{}
}

// SetDebugMode enables per-frame timing logs on logger.
func (c *Compositor) SetDebugMode(enabled bool, logger *slog.Logger) {
	c.debug = enabled
	c.logger = logger
}

// Add appends objects. Nil objects are ignored.
func (c *Compositor) Add(objs ...SceneObject) {
	for _, o := range objs {
		if o != nil {
			c.objects = append(c.objects, o)
		}
	}
	if c.debug {
		c.debugCheckObjectCount()
	}
}

// Remove deletes obj and reports whether it was present.
func (c *Compositor) Remove(obj SceneObject) bool {
	for i, o := range c.objects {
		if o == obj {
			copy(c.objects[i:], c.objects[i+1:])
			c.objects[len(c.objects)-1] = nil
			c.objects = c.objects[:len(c.objects)-1]
			return true
		}
	}
	return false
}

// Clear removes every object.
func (c *Compositor) Clear() {
	clear(c.objects)
	c.objects = c.objects[:0]
	clear(c.sorted)
	c.sorted = c.sorted[:0]
}

// Len returns the number of objects.
func (c *Compositor) Len() int {
	return len(c.objects)
}

// Objects returns the objects in insertion order.
func (c *Compositor) Objects() []SceneObject {
	out := make([]SceneObject, len(c.objects))
	copy(out, c.objects)
	return out
}

// SetCullWindow sets the window used by DispatchClick before the first frame
// is rendered.
func (c *Compositor) SetCullWindow(offset, width float64) {
	c.offset, c.width, c.windowSet = offset, width, true
}

// RenderFrame draws every visible object in ascending depth order and
// remembers f's cull window for click dispatch. A non-positive
// f.ViewportWidth disables culling.
func (c *Compositor) RenderFrame(f *Frame) {
	var start time.Time
	if c.debug {
		start = time.Now()
	}
	c.sortByDepth()

	offset, width := f.Offset, f.ViewportWidth
	if width <= 0 {
		width = math.Inf(1)
	}
	c.SetCullWindow(offset, width)

	var sortDone time.Time
	if c.debug {
		sortDone = time.Now()
	}
	drawn := 0
	for _, o := range c.sorted {
		if _, ok := o.ScreenX(offset, width); !ok {
			continue
		}
		o.Render(f)
		drawn++
	}
	if c.debug {
		c.stats = frameStats{
			sortTime:    sortDone.Sub(start),
			renderTime:  time.Since(sortDone),
			objectCount: len(c.sorted),
			drawnCount:  drawn,
		}
		c.debugLog(c.stats)
	}
}

// DispatchClick hit-tests objects in descending depth order at the world
// point (worldX, worldY). The first object hit gets OnClick and is returned.
// Nil means nothing was hit.
func (c *Compositor) DispatchClick(worldX, worldY float64) SceneObject {
	c.sortByDepth()
	offset, width := c.offset, c.width
	if !c.windowSet {
		offset, width = 0, math.Inf(1)
	}
	clickX := worldX - offset
	for i := len(c.sorted) - 1; i >= 0; i-- {
		o := c.sorted[i]
		sx, ok := o.ScreenX(offset, width)
		if !ok {
			continue
		}
		if o.HitTest(clickX, worldY, sx) {
			o.OnClick()
			return o
		}
	}
	return nil
}

// sortByDepth rebuilds c.sorted from c.objects with a stable insertion sort.
// Depth keys change slowly between frames so the input is nearly sorted.
func (c *Compositor) sortByDepth() {
	n := len(c.objects)
	if cap(c.sorted) < n {
		c.sorted = make([]SceneObject, n)
	}
	c.sorted = c.sorted[:n]
	copy(c.sorted, c.objects)
	for i := 1; i < n; i++ {
		key := c.sorted[i]
		k := key.DepthKey()
		j := i - 1
		for j >= 0 && c.sorted[j].DepthKey() > k {
			c.sorted[j+1] = c.sorted[j]
			j--
		}
		c.sorted[j+1] = key
	}
}
