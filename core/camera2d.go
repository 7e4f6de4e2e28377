package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// MinZoom is the smallest vertical half-extent the projection may shrink to.
	MinZoom float32 = 50.0
	// ZoomGain converts a wheel delta per second into zoom units.
	ZoomGain float32 = 50000.0

	orthoNear float32 = -1.0
	orthoFar  float32 = 1.0
)

// PanKeys is the set of directional keys held during a frame.
type PanKeys uint8

const (
	PanUp PanKeys = 1 << iota
	PanDown
	PanLeft
	PanRight
)

func (k PanKeys) Has(key PanKeys) bool {
	return k&key != 0
}

// scrollAnim moves the camera by the tween's change each frame, so panning
// during a scroll shifts where it lands.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	lastX  float32
	lastY  float32
	doneX  bool
	doneY  bool
}

// Camera2d is an orthographic camera without roll.
// ViewProjection is always Projection * View, recomputed after every mutation.
type Camera2d struct {
	projection     mgl32.Mat4
	view           mgl32.Mat4
	viewProjection mgl32.Mat4

	position    mgl32.Vec2
	speed       float32
	zoom        float32
	aspectRatio float32

	scroll *scrollAnim
}

// NewCamera2d clamps zoom to MinZoom. A NaN or infinite zoom also falls back
// to MinZoom.
func NewCamera2d(aspectRatio, speed, zoom float32) *Camera2d {
	c := &Camera2d{
		view:        mgl32.Ident4(),
		speed:       speed,
		zoom:        clampZoom(zoom),
		aspectRatio: aspectRatio,
	}
	c.reloadProjection()
	return c
}

func (c *Camera2d) Projection() mgl32.Mat4     { return c.projection }
func (c *Camera2d) View() mgl32.Mat4           { return c.view }
func (c *Camera2d) ViewProjection() mgl32.Mat4 { return c.viewProjection }
func (c *Camera2d) Position() mgl32.Vec2       { return c.position }
func (c *Camera2d) Zoom() float32              { return c.zoom }
func (c *Camera2d) Speed() float32             { return c.speed }
func (c *Camera2d) AspectRatio() float32       { return c.aspectRatio }

func (c *Camera2d) SetSpeed(speed float32) {
	c.speed = speed
}

// SetAspectRatio rebuilds the projection for a resized window.
// Non-positive ratios are ignored.
func (c *Camera2d) SetAspectRatio(aspectRatio float32) {
	if !(aspectRatio > 0) || aspectRatio == c.aspectRatio {
		return
	}
	c.aspectRatio = aspectRatio
	c.reloadProjection()
}

// Bounds returns the projection's left, right, bottom and top planes.
func (c *Camera2d) Bounds() (left, right, bottom, top float32) {
	halfW := c.aspectRatio * c.zoom
	return -halfW, halfW, -c.zoom, c.zoom
}

// OnZoom applies a mouse wheel delta. Positive deltas zoom in.
// A step that is not finite, or that would overflow the zoom, is ignored.
func (c *Camera2d) OnZoom(wheelDeltaY, dt float32) {
	step := wheelDeltaY * ZoomGain * dt
	if !finite(step) {
		return
	}
	zoom := c.zoom - step
	if !finite(zoom) {
		return
	}
	c.zoom = clampZoom(zoom)
	c.reloadProjection()
}

func clampZoom(zoom float32) float32 {
	if !(zoom >= MinZoom) || math32.IsInf(zoom, 1) {
		return MinZoom
	}
	return zoom
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

// OnUpdate pans by speed*dt for every held key and rebuilds the view.
// Call it once per frame even when nothing is held.
func (c *Camera2d) OnUpdate(keys PanKeys, dt float32) {
	step := c.speed * dt
	if keys.Has(PanUp) {
		c.position[1] += step
	}
	if keys.Has(PanDown) {
		c.position[1] -= step
	}
	if keys.Has(PanLeft) {
		c.position[0] -= step
	}
	if keys.Has(PanRight) {
		c.position[0] += step
	}

	c.advanceScroll(dt)
	c.reloadView()
}

// SetPosition moves the camera immediately and cancels any scroll in flight.
func (c *Camera2d) SetPosition(position mgl32.Vec2) {
	c.scroll = nil
	c.position = position
	c.reloadView()
}

// ScrollTo animates the camera towards (x, y) over duration seconds.
// The animation advances inside OnUpdate; held keys still pan on top of it,
// offsetting the final position by however far they moved the camera.
func (c *Camera2d) ScrollTo(x, y, duration float32) {
	if duration <= 0 {
		c.SetPosition(mgl32.Vec2{x, y})
		return
	}
	c.scroll = &scrollAnim{
		tweenX: gween.New(c.position.X(), x, duration, ease.OutCubic),
		tweenY: gween.New(c.position.Y(), y, duration, ease.OutCubic),
		lastX:  c.position.X(),
		lastY:  c.position.Y(),
	}
}

func (c *Camera2d) Scrolling() bool {
	return c.scroll != nil
}

func (c *Camera2d) advanceScroll(dt float32) {
	if c.scroll == nil {
		return
	}
	s := c.scroll
	if !s.doneX {
		var x float32
		x, s.doneX = s.tweenX.Update(dt)
		c.position[0] += x - s.lastX
		s.lastX = x
	}
	if !s.doneY {
		var y float32
		y, s.doneY = s.tweenY.Update(dt)
		c.position[1] += y - s.lastY
		s.lastY = y
	}
	if c.scroll.doneX && c.scroll.doneY {
		c.scroll = nil
	}
}

// ScreenToWorld unprojects a window pixel (origin top-left) onto the z=0 plane.
func (c *Camera2d) ScreenToWorld(x, y float32, width, height int) mgl32.Vec2 {
	if width <= 0 || height <= 0 {
		return c.position
	}
	ndc := mgl32.Vec4{
		2*x/float32(width) - 1,
		1 - 2*y/float32(height),
		0,
		1,
	}
	world := c.viewProjection.Inv().Mul4x1(ndc)
	return mgl32.Vec2{world.X(), world.Y()}
}

func (c *Camera2d) reloadProjection() {
	left, right, bottom, top := c.Bounds()
	c.projection = mgl32.Ortho(left, right, bottom, top, orthoNear, orthoFar)
	c.viewProjection = c.projection.Mul4(c.view)
}

func (c *Camera2d) reloadView() {
	transform := mgl32.Translate3D(c.position.X(), c.position.Y(), 0)
	c.view = transform.Inv()
	c.viewProjection = c.projection.Mul4(c.view)
}
