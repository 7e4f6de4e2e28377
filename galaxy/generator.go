package galaxy

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/spiral/core"
)

const (
	// SampleRange is the exclusive upper bound of every raw uniform draw.
	SampleRange float32 = 30

	MatrixFloats      = 16
	ColorFloats       = 3
	FloatsPerInstance = MatrixFloats + ColorFloats

	maxStarRotationDeg float32 = 180
)

// Generate builds the instance buffer for cfg.Size stars.
//
// Per star the buffer holds a column-major 4x4 transform followed by an RGB color,
// FloatsPerInstance floats in total. The returned matrix is the legacy anchor: the
// transform of the last star, or identity when nothing was generated. New callers
// should read the buffer instead.
//
// Draws per star, in order: radius, angle, arm offset, jitter x, jitter y,
// scale index, color index, rotation.
func Generate(cfg Config, src Source) (mgl32.Mat4, []float32) {
	anchor := mgl32.Ident4()
	if cfg.Size <= 0 || !cfg.Valid() {
		return anchor, make([]float32, 0)
	}

	buf := make([]float32, 0, cfg.Size*FloatsPerInstance)
	for i := 0; i < cfg.Size; i++ {
		tr, rgb := sampleStar(cfg, src)
		m := tr.Compose()
		buf = append(buf, m[:]...)
		buf = append(buf, rgb[:]...)
		anchor = m
	}
	return anchor, buf
}

func sampleStar(cfg Config, src Source) (core.Transform2d, [3]float32) {
	d0 := Range(src, 0, SampleRange)
	dist := d0 * d0

	angle := Range(src, 0, SampleRange) * 2 * math32.Pi
	offset := armOffset(Range(src, 0, SampleRange), cfg.ArmOffsetMax, dist)
	rot := dist * cfg.RotationFactor

	sep := cfg.ArmSeparation()
	angle = math32.Floor(angle/sep)*sep + offset + rot
	angle = wrapAngle(angle)

	jitterX := Range(src, 0, SampleRange) * cfg.RandomOffsetXY
	jitterY := Range(src, 0, SampleRange) * cfg.RandomOffsetXY
	x := finite(math32.Cos(angle)*dist + jitterX)
	y := finite(math32.Sin(angle)*dist + jitterY)

	scale := StarScales[src.Intn(len(StarScales))]
	rgb := normalizedRGB(StarColors[src.Intn(len(StarColors))])
	rotation := mgl32.DegToRad(src.Float32() * maxStarRotationDeg)

	tr := core.CenteredAt(mgl32.Vec2{x, y}, mgl32.Vec2{scale, scale}, rotation)
	return tr, rgb
}

// armOffset spreads a star around its arm. The spread shrinks with radius and keeps
// its sign through the squaring so both sides of the arm are populated.
func armOffset(raw, armOffsetMax, dist float32) float32 {
	if dist == 0 {
		return 0
	}
	offset := (raw*armOffsetMax - armOffsetMax/2) / dist
	squared := offset * offset
	if offset < 0 {
		squared = -squared
	}
	return finite(squared)
}

// wrapAngle reduces a to (-2π, 2π) so huge offsets stay accurate in Cos/Sin.
func wrapAngle(a float32) float32 {
	return math32.Mod(finite(a), 2*math32.Pi)
}

// finite saturates infinities to the largest float32 and maps NaN to zero.
func finite(v float32) float32 {
	switch {
	case math32.IsNaN(v):
		return 0
	case math32.IsInf(v, 1):
		return math32.MaxFloat32
	case math32.IsInf(v, -1):
		return -math32.MaxFloat32
	}
	return v
}

// InstanceCount is the number of stars packed in buf.
func InstanceCount(buf []float32) int {
	return len(buf) / FloatsPerInstance
}

// InstanceMatrix returns the transform of star i.
func InstanceMatrix(buf []float32, i int) mgl32.Mat4 {
	var m mgl32.Mat4
	copy(m[:], buf[i*FloatsPerInstance:i*FloatsPerInstance+MatrixFloats])
	return m
}

// InstanceColor returns the RGB color of star i.
func InstanceColor(buf []float32, i int) [3]float32 {
	var c [3]float32
	off := i*FloatsPerInstance + MatrixFloats
	copy(c[:], buf[off:off+ColorFloats])
	return c
}

// Extent is the largest distance of any star center from the origin.
func Extent(buf []float32) float32 {
	var r float32
	for i := 0; i < InstanceCount(buf); i++ {
		off := i * FloatsPerInstance
		d := math32.Hypot(buf[off+12], buf[off+13])
		if d > r {
			r = d
		}
	}
	return r
}
