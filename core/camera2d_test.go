package core

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertComposed(t *testing.T, c *Camera2d) {
	t.Helper()
	assert.Equal(t, c.Projection().Mul4(c.View()), c.ViewProjection(), "view projection must equal projection * view")
}

func TestNewCamera2d(t *testing.T) {
	c := NewCamera2d(16.0/9.0, 500, 100)

	assert.Equal(t, mgl32.Ident4(), c.View())
	assert.Equal(t, c.Projection(), c.ViewProjection())
	assertComposed(t, c)

	left, right, bottom, top := c.Bounds()
	assert.InDelta(t, -16.0/9.0*100, left, 1e-4)
	assert.InDelta(t, 16.0/9.0*100, right, 1e-4)
	assert.Equal(t, float32(-100), bottom)
	assert.Equal(t, float32(100), top)

	corner := c.Projection().Mul4x1(mgl32.Vec4{right, top, 0, 1})
	assert.InDelta(t, 1.0, corner.X(), 1e-5)
	assert.InDelta(t, 1.0, corner.Y(), 1e-5)
}

func TestNewCamera2d_ClampsInitialZoom(t *testing.T) {
	c := NewCamera2d(1, 10, -5)
	assert.Equal(t, MinZoom, c.Zoom())
	assertComposed(t, c)
}

func TestNewCamera2d_NonFiniteZoom(t *testing.T) {
	for _, zoom := range []float32{math32.NaN(), math32.Inf(1), math32.Inf(-1)} {
		c := NewCamera2d(1, 10, zoom)
		assert.Equal(t, MinZoom, c.Zoom(), "zoom %v", zoom)
		assertFiniteMatrix(t, c.ViewProjection())
		assertComposed(t, c)
	}
}

func TestCamera2d_OnZoomIgnoresNonFinite(t *testing.T) {
	tests := []struct {
		name  string
		delta float32
		dt    float32
	}{
		{"nan delta", math32.NaN(), 0.016},
		{"positive infinity", math32.Inf(1), 0.016},
		{"negative infinity", math32.Inf(-1), 0.016},
		{"nan dt", 1, math32.NaN()},
		{"infinite dt", -1, math32.Inf(1)},
		{"overflowing step", -math32.MaxFloat32, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera2d(1, 100, 100)
			proj := c.Projection()

			c.OnZoom(tt.delta, tt.dt)

			assert.Equal(t, float32(100), c.Zoom())
			assert.Equal(t, proj, c.Projection())
			assertFiniteMatrix(t, c.ViewProjection())
			assert.NotZero(t, c.Projection()[0])
		})
	}
}

func assertFiniteMatrix(t *testing.T, m mgl32.Mat4) {
	t.Helper()
	for i, v := range m {
		require.False(t, math32.IsNaN(v) || math32.IsInf(v, 0), "element %d is %v", i, v)
	}
}

func TestCamera2d_OnZoomNeverBelowFloor(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := NewCamera2d(1.5, 100, 400)

	for i := 0; i < 2000; i++ {
		delta := rng.Float32()*4 - 2
		dt := rng.Float32() * 0.05
		c.OnZoom(delta, dt)

		require.GreaterOrEqual(t, c.Zoom(), MinZoom)
		assertComposed(t, c)
	}
}

func TestCamera2d_OnZoomDirection(t *testing.T) {
	c := NewCamera2d(1, 100, 1000)

	c.OnZoom(1, 0.001)
	assert.InDelta(t, 950, c.Zoom(), 1e-3, "positive wheel zooms in")

	c.OnZoom(-2, 0.001)
	assert.InDelta(t, 1050, c.Zoom(), 1e-3, "negative wheel zooms out")
}

func TestCamera2d_ZoomConvergesToFloor(t *testing.T) {
	aspect := float32(4.0 / 3.0)
	c := NewCamera2d(aspect, 100, 100)

	for i := 0; i < 1000; i++ {
		c.OnZoom(1, 0.016)
	}

	assert.Equal(t, MinZoom, c.Zoom())
	left, right, bottom, top := c.Bounds()
	assert.Equal(t, -aspect*MinZoom, left)
	assert.Equal(t, aspect*MinZoom, right)
	assert.Equal(t, -MinZoom, bottom)
	assert.Equal(t, MinZoom, top)
	assert.Equal(t, mgl32.Ortho(left, right, bottom, top, -1, 1), c.Projection())
	assertComposed(t, c)
}

func TestCamera2d_OnUpdatePans(t *testing.T) {
	c := NewCamera2d(1, 100, 100)

	c.OnUpdate(PanUp|PanRight, 0.5)
	assert.Equal(t, mgl32.Vec2{50, 50}, c.Position())
	assertComposed(t, c)

	c.OnUpdate(PanDown|PanLeft|PanLeft, 0.25)
	assert.Equal(t, mgl32.Vec2{25, 25}, c.Position())

	// Opposite keys cancel.
	c.OnUpdate(PanUp|PanDown|PanLeft|PanRight, 1)
	assert.Equal(t, mgl32.Vec2{25, 25}, c.Position())

	// The camera's own position is the center of the clip space.
	center := c.ViewProjection().Mul4x1(mgl32.Vec4{25, 25, 0, 1})
	assert.InDelta(t, 0, center.X(), 1e-5)
	assert.InDelta(t, 0, center.Y(), 1e-5)
}

func TestCamera2d_IdleUpdateIsIdentity(t *testing.T) {
	c := NewCamera2d(1.25, 300, 800)
	c.OnUpdate(PanLeft, 0.1)
	c.OnZoom(0.5, 0.01)

	pos := c.Position()
	vp := c.ViewProjection()

	c.OnUpdate(0, 0)

	assert.Equal(t, pos, c.Position())
	assert.Equal(t, vp, c.ViewProjection())
	assertComposed(t, c)
}

func TestCamera2d_InvariantAfterEveryMutator(t *testing.T) {
	c := NewCamera2d(2, 250, 600)
	steps := []func(){
		func() { c.OnUpdate(PanUp, 0.016) },
		func() { c.OnZoom(0.3, 0.016) },
		func() { c.SetPosition(mgl32.Vec2{-40, 12}) },
		func() { c.OnZoom(-1, 0.016) },
		func() { c.ScrollTo(100, 100, 1) },
		func() { c.OnUpdate(PanRight|PanDown, 0.2) },
		func() { c.OnZoom(100, 1) },
		func() { c.SetAspectRatio(1.5) },
	}
	for _, step := range steps {
		step()
		assertComposed(t, c)
	}
}

func TestCamera2d_ScrollTo(t *testing.T) {
	c := NewCamera2d(1, 0, 100)
	c.SetPosition(mgl32.Vec2{200, -100})
	c.ScrollTo(0, 0, 0.5)
	require.True(t, c.Scrolling())

	c.OnUpdate(0, 0.25)
	mid := c.Position()
	assert.Less(t, mid.X(), float32(200))
	assert.Greater(t, mid.X(), float32(0))

	for i := 0; i < 10; i++ {
		c.OnUpdate(0, 0.1)
	}
	assert.False(t, c.Scrolling())
	assert.InDelta(t, 0, c.Position().X(), 1e-4)
	assert.InDelta(t, 0, c.Position().Y(), 1e-4)
	assertComposed(t, c)
}

func TestCamera2d_PanDuringScroll(t *testing.T) {
	still := NewCamera2d(1, 1000, 100)
	still.ScrollTo(100, 0, 0.5)
	panned := NewCamera2d(1, 1000, 100)
	panned.ScrollTo(100, 0, 0.5)

	still.OnUpdate(0, 0.1)
	panned.OnUpdate(PanUp, 0.1)

	assert.InDelta(t, still.Position().X(), panned.Position().X(), 1e-4)
	assert.InDelta(t, 100, panned.Position().Y(), 1e-3, "pan step survives the tween")

	for i := 0; i < 10; i++ {
		still.OnUpdate(0, 0.1)
		panned.OnUpdate(0, 0.1)
	}
	assert.False(t, panned.Scrolling())
	assert.InDelta(t, 100, panned.Position().X(), 1e-3)
	assert.InDelta(t, 100, panned.Position().Y(), 1e-3)
	assert.InDelta(t, 0, still.Position().Y(), 1e-4)
	assertComposed(t, panned)
}

func TestCamera2d_SetPositionCancelsScroll(t *testing.T) {
	c := NewCamera2d(1, 0, 100)
	c.ScrollTo(500, 500, 2)
	c.SetPosition(mgl32.Vec2{1, 2})
	assert.False(t, c.Scrolling())

	c.OnUpdate(0, 1)
	assert.Equal(t, mgl32.Vec2{1, 2}, c.Position())
}

func TestCamera2d_ScreenToWorld(t *testing.T) {
	c := NewCamera2d(2, 0, 100)
	c.SetPosition(mgl32.Vec2{30, -10})

	center := c.ScreenToWorld(640, 360, 1280, 720)
	assert.InDelta(t, 30, center.X(), 1e-3)
	assert.InDelta(t, -10, center.Y(), 1e-3)

	topLeft := c.ScreenToWorld(0, 0, 1280, 720)
	assert.InDelta(t, 30-200, topLeft.X(), 1e-2)
	assert.InDelta(t, -10+100, topLeft.Y(), 1e-2)

	assert.Equal(t, c.Position(), c.ScreenToWorld(10, 10, 0, 0))
}

func TestPanKeys_Has(t *testing.T) {
	keys := PanUp | PanLeft
	assert.True(t, keys.Has(PanUp))
	assert.True(t, keys.Has(PanLeft))
	assert.False(t, keys.Has(PanDown))
	assert.False(t, keys.Has(PanRight))
	assert.False(t, PanKeys(0).Has(PanUp))
}

func TestCamera2d_SetAspectRatio(t *testing.T) {
	c := NewCamera2d(1, 100, 200)
	c.SetAspectRatio(2)

	left, right, _, _ := c.Bounds()
	assert.Equal(t, float32(-400), left)
	assert.Equal(t, float32(400), right)
	assertComposed(t, c)

	before := c.Projection()
	c.SetAspectRatio(0)
	c.SetAspectRatio(-3)
	assert.Equal(t, before, c.Projection())
	assert.Equal(t, float32(2), c.AspectRatio())
}
