package galaxy

import (
	"image/color"
)

// StarColors runs from blue-white through yellow to deep red.
var StarColors = [...]color.RGBA{
	{231, 236, 254, 255},
	{245, 247, 255, 255},
	{254, 254, 254, 255},
	{255, 251, 229, 255},
	{255, 243, 189, 255},
	{255, 212, 138, 255},
	{255, 163, 138, 255},
	{247, 128, 95, 255},
	{238, 79, 58, 255},
	{223, 60, 38, 255},
	{197, 51, 32, 255},
	{175, 54, 39, 255},
}

// StarScales are the quad edge lengths a star may be drawn with, in world units.
var StarScales = [...]float32{16, 32, 64, 128}

// normalizedRGB returns the color's channels in [0,1].
func normalizedRGB(c color.RGBA) [3]float32 {
	return [3]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
	}
}
