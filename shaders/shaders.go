package shaders

import (
	_ "embed"
)

//go:embed stars.wgsl
var StarsWGSL string
