package slideshow

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// Camera defaults.
const (
	DefaultMinZoom  = 0.5
	DefaultMaxZoom  = 3.0
	DefaultZoomStep = 0.1
)

// CameraConfig holds the zoom limits applied to a Camera.
type CameraConfig struct {
	MinZoom  float64
	MaxZoom  float64
	ZoomStep float64
}

// DefaultCameraConfig returns the stock zoom limits: 0.5x to 3x in 0.1 steps.
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		MinZoom:  DefaultMinZoom,
		MaxZoom:  DefaultMaxZoom,
		ZoomStep: DefaultZoomStep,
	}
}

// Camera is the per-slide view state: pan offset, zoom and pan limits.
//
// A world point w maps to the logical screen point
//
//	s = c + Zoom*(w - c - Pan)
//
// where c is the viewport center, so zoom is anchored on the center of the
// canvas. Pan is expressed in world units and is clamped to
// |Pan| <= MaxOffset/Zoom.
type Camera struct {
	// PanX and PanY are the world-space offset of the view.
	PanX, PanY float64
	// Zoom is the scale factor (1.0 = no zoom).
	Zoom float64
	// Enabled gates every input-driven mutation. A disabled camera keeps
	// the identity view.
	Enabled bool
	// MaxOffsetX and MaxOffsetY bound the pan at zoom 1.
	MaxOffsetX, MaxOffsetY float64

	MinZoom, MaxZoom, ZoomStep float64

	// Width and Height are the viewport size in logical pixels.
	Width, Height float64
	// DeviceScale is the device pixel ratio of the backing store.
	DeviceScale float64

	dragging     bool
	lastX, lastY float64

	pinching  bool
	pinchDist float64
	pinchZoom float64

	glide *TweenGroup

	viewKey       [5]float64
	viewMatrix    [6]float64
	invViewMatrix [6]float64
	viewValid     bool
}

// NewCamera creates an enabled Camera at the identity view.
func NewCamera(cfg CameraConfig) *Camera {
	if cfg.MinZoom <= 0 {
		cfg.MinZoom = DefaultMinZoom
	}
	if cfg.MaxZoom < cfg.MinZoom {
		cfg.MaxZoom = DefaultMaxZoom
	}
	if cfg.ZoomStep <= 0 {
		cfg.ZoomStep = DefaultZoomStep
	}
	return &Camera{
		Zoom:        1,
		Enabled:     true,
		MinZoom:     cfg.MinZoom,
		MaxZoom:     cfg.MaxZoom,
		ZoomStep:    cfg.ZoomStep,
		DeviceScale: 1,
	}
}

// SetViewport updates the logical viewport size and device pixel ratio.
func (c *Camera) SetViewport(width, height, deviceScale float64) {
	c.Width = width
	c.Height = height
	if deviceScale <= 0 {
		deviceScale = 1
	}
	c.DeviceScale = deviceScale
}

// SetLimits sets the pan limits and re-clamps the current pan.
func (c *Camera) SetLimits(maxOffsetX, maxOffsetY float64) {
	c.MaxOffsetX = math.Max(0, maxOffsetX)
	c.MaxOffsetY = math.Max(0, maxOffsetY)
	c.Clamp()
}

// Reset restores the identity view and drops any gesture in progress.
// Called by the controller on every slide switch.
func (c *Camera) Reset() {
	c.PanX, c.PanY = 0, 0
	c.Zoom = 1
	c.dragging = false
	c.pinching = false
	c.glide = nil
}

// --- Drag ---

// BeginDrag anchors a pan gesture at the logical screen point (x, y).
func (c *Camera) BeginDrag(x, y float64) {
	c.dragging = true
	c.lastX = x
	c.lastY = y
	c.glide = nil
}

// Drag pans by the movement since the previous call, divided by zoom, then
// clamps. No-op while disabled or when no drag is in progress.
func (c *Camera) Drag(x, y float64) {
	if !c.dragging {
		return
	}
	dx := x - c.lastX
	dy := y - c.lastY
	c.lastX = x
	c.lastY = y
	if !c.Enabled {
		return
	}
	c.PanX -= dx / c.Zoom
	c.PanY -= dy / c.Zoom
	c.Clamp()
}

// EndDrag finishes the pan gesture.
func (c *Camera) EndDrag() {
	c.dragging = false
}

// Dragging reports whether a pan gesture is in progress.
func (c *Camera) Dragging() bool {
	return c.dragging
}

// --- Zoom ---

// ZoomAt changes zoom by delta while keeping the world point under the
// logical screen point (sx, sy) fixed, unless pan clamping has to move it.
func (c *Camera) ZoomAt(sx, sy, delta float64) {
	if !c.Enabled {
		return
	}
	c.zoomTo(sx, sy, c.Zoom+delta)
}

// Wheel applies one wheel notch at (sx, sy). Positive dy zooms in.
func (c *Camera) Wheel(sx, sy, dy float64) {
	switch {
	case dy > 0:
		c.ZoomAt(sx, sy, c.ZoomStep)
	case dy < 0:
		c.ZoomAt(sx, sy, -c.ZoomStep)
	}
}

func (c *Camera) zoomTo(sx, sy, zoom float64) {
	zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	if zoom == c.Zoom {
		return
	}
	cx, cy := c.Width/2, c.Height/2
	wx := (sx-cx)/c.Zoom + cx + c.PanX
	wy := (sy-cy)/c.Zoom + cy + c.PanY
	c.Zoom = zoom
	c.PanX = wx - cx - (sx-cx)/zoom
	c.PanY = wy - cy - (sy-cy)/zoom
	c.Clamp()
}

// BeginPinch records the starting finger distance and zoom for a pinch.
func (c *Camera) BeginPinch(a, b Vec2) {
	c.pinching = true
	c.pinchDist = math.Hypot(b.X-a.X, b.Y-a.Y)
	c.pinchZoom = c.Zoom
	c.dragging = false
}

// Pinch sets zoom to startZoom * dist/startDist, anchored at the midpoint of
// the two touches. Starts a pinch if none is in progress.
func (c *Camera) Pinch(a, b Vec2) {
	if !c.pinching {
		c.BeginPinch(a, b)
		return
	}
	if !c.Enabled || c.pinchDist == 0 {
		return
	}
	dist := math.Hypot(b.X-a.X, b.Y-a.Y)
	mx := (a.X + b.X) / 2
	my := (a.Y + b.Y) / 2
	c.zoomTo(mx, my, c.pinchZoom*dist/c.pinchDist)
}

// EndPinch finishes the pinch gesture.
func (c *Camera) EndPinch() {
	c.pinching = false
}

// Pinching reports whether a pinch gesture is in progress.
func (c *Camera) Pinching() bool {
	return c.pinching
}

// Clamp restricts pan to the zoom-scaled limits.
func (c *Camera) Clamp() {
	if c.Zoom <= 0 {
		c.Zoom = 1
	}
	limX := c.MaxOffsetX / c.Zoom
	limY := c.MaxOffsetY / c.Zoom
	c.PanX = clamp(c.PanX, -limX, limX)
	c.PanY = clamp(c.PanY, -limY, limY)
}

// --- Glide ---

// GlideTo animates the pan to (x, y) over duration seconds. Any drag or
// Reset cancels the glide.
func (c *Camera) GlideTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.glide = Tween(&c.PanX, c.PanX, x, duration, easeFn).
		With(&c.PanY, c.PanY, y, duration, easeFn)
}

// Gliding reports whether a glide animation is running.
func (c *Camera) Gliding() bool {
	return c.glide != nil
}

// update advances the glide animation by dt seconds.
func (c *Camera) update(dt float32) {
	if c.glide == nil {
		return
	}
	c.glide.Update(dt)
	if c.glide.Done {
		c.glide = nil
	}
	c.Clamp()
}

// --- Transform ---

// emit issues the camera transform to tr, prefixed by a device-scale factor.
func (c *Camera) emit(tr Transformer, deviceScale float64) {
	cx, cy := c.Width/2, c.Height/2
	tr.ResetTransform()
	tr.Scale(deviceScale, deviceScale)
	tr.Translate(cx, cy)
	tr.Scale(c.Zoom, c.Zoom)
	tr.Translate(-cx-c.PanX, -cy-c.PanY)
}

// ApplyTransform resets tr, then applies device scale, translation to the
// viewport center, zoom, and the inverse of center+pan, in that order.
func (c *Camera) ApplyTransform(tr Transformer) {
	c.emit(tr, c.deviceScale())
}

// GeoM returns the world to device-pixel transform for drawing.
func (c *Camera) GeoM() ebiten.GeoM {
	var a Affine
	c.ApplyTransform(&a)
	return a.GeoM()
}

func (c *Camera) deviceScale() float64 {
	if c.DeviceScale <= 0 {
		return 1
	}
	return c.DeviceScale
}

// computeViewMatrix returns the cached world to logical-screen matrix,
// recomputing it when pan, zoom or viewport changed.
func (c *Camera) computeViewMatrix() [6]float64 {
	key := [5]float64{c.PanX, c.PanY, c.Zoom, c.Width, c.Height}
	if c.viewValid && key == c.viewKey {
		return c.viewMatrix
	}
	var a Affine
	c.emit(&a, 1)
	c.viewMatrix = a.Matrix()
	c.invViewMatrix = invertAffine(c.viewMatrix)
	c.viewKey = key
	c.viewValid = true
	return c.viewMatrix
}

// WorldToScreen converts world coordinates to logical screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	m := c.computeViewMatrix()
	return transformPoint(m, wx, wy)
}

// ScreenToWorld converts logical screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.computeViewMatrix()
	return transformPoint(c.invViewMatrix, sx, sy)
}

// VisibleBounds returns the world-space rectangle covered by the viewport.
func (c *Camera) VisibleBounds() Rect {
	x0, y0 := c.ScreenToWorld(0, 0)
	x1, y1 := c.ScreenToWorld(c.Width, c.Height)
	return Rect{
		X:      math.Min(x0, x1),
		Y:      math.Min(y0, y1),
		Width:  math.Abs(x1 - x0),
		Height: math.Abs(y1 - y0),
	}
}
