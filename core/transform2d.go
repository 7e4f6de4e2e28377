package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform2d places a unit quad (vertices spanning [-0.5,0.5]) in the XY plane.
// Rotation is in radians. It is immutable; build a new one to change it.
type Transform2d struct {
	position mgl32.Vec2
	scale    mgl32.Vec2
	rotation float32
}

func NewTransform2d(position, scale mgl32.Vec2, rotation float32) Transform2d {
	return Transform2d{
		position: position,
		scale:    scale,
		rotation: rotation,
	}
}

// CenteredAt returns the transform whose composed matrix puts the quad's center on center.
func CenteredAt(center, scale mgl32.Vec2, rotation float32) Transform2d {
	return Transform2d{
		position: center.Sub(scale.Mul(0.5)),
		scale:    scale,
		rotation: rotation,
	}
}

func (t Transform2d) Position() mgl32.Vec2 { return t.position }
func (t Transform2d) Scale() mgl32.Vec2    { return t.scale }
func (t Transform2d) Rotation() float32    { return t.rotation }

// Pivot is the world point the quad's center lands on.
func (t Transform2d) Pivot() mgl32.Vec2 {
	return t.position.Add(t.scale.Mul(0.5))
}

// Compose returns T(position + 0.5*scale) * Rz(rotation) * S(scale).
func (t Transform2d) Compose() mgl32.Mat4 {
	pivot := t.Pivot()
	translate := mgl32.Translate3D(pivot.X(), pivot.Y(), 0)
	rotate := mgl32.HomogRotate3DZ(t.rotation)
	scale := mgl32.Scale3D(t.scale.X(), t.scale.Y(), 1)

	return translate.Mul4(rotate).Mul4(scale)
}
