package spiral

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

type quadVertex struct {
	Position [2]float32 `spiral:"layout" location:"0" format:"float2"`
	UV       [2]float32 `spiral:"layout" location:"1" format:"float2"`
}

// starInstance mirrors one record of a galaxy instance buffer:
// the model matrix columns followed by the colour.
type starInstance struct {
	Model0 [4]float32 `spiral:"layout" location:"2" format:"float4"`
	Model1 [4]float32 `spiral:"layout" location:"3" format:"float4"`
	Model2 [4]float32 `spiral:"layout" location:"4" format:"float4"`
	Model3 [4]float32 `spiral:"layout" location:"5" format:"float4"`
	Color  [3]float32 `spiral:"layout" location:"6" format:"float3"`
}

// Unit quad centred on the origin; instance matrices place and size it.
var starQuadVertices = []quadVertex{
	{Position: [2]float32{-0.5, -0.5}, UV: [2]float32{0, 1}},
	{Position: [2]float32{0.5, -0.5}, UV: [2]float32{1, 1}},
	{Position: [2]float32{0.5, 0.5}, UV: [2]float32{1, 0}},
	{Position: [2]float32{-0.5, 0.5}, UV: [2]float32{0, 0}},
}

var starQuadIndices = []uint16{0, 1, 2, 2, 3, 0}

type cameraUniform struct {
	ViewProjMx mgl32.Mat4
}

func parseFormat(name string) wgpu.VertexFormat {
	switch name {
	case "float2":
		return wgpu.VertexFormatFloat32x2
	case "float3":
		return wgpu.VertexFormatFloat32x3
	case "float4":
		return wgpu.VertexFormatFloat32x4
	default:
		panic("unsupported vertex layout format: " + name)
	}
}

func readUniformsBytes(field reflect.Value, buf *bytes.Buffer) {
	switch field.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < field.Len(); i++ {
			elem := field.Index(i)
			if elem.Kind() == reflect.Ptr {
				elem = elem.Elem()
			}
			if elem.Kind() == reflect.Struct {
				readUniformsBytes(elem, buf)
			} else {
				if err := binary.Write(buf, binary.LittleEndian, elem.Interface()); err != nil {
					panic(fmt.Errorf("failed to write slice element: %w", err))
				}
			}
		}

	case reflect.Struct:
		for i := 0; i < field.NumField(); i++ {
			readUniformsBytes(field.Field(i), buf)
		}

	case reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Float32:
		if err := binary.Write(buf, binary.LittleEndian, field.Interface()); err != nil {
			panic(fmt.Errorf("failed to write scalar field: %w", err))
		}

	default:
		panic(fmt.Errorf("unsupported uniform type: %v", field.Type()))
	}
}

func wgpuBytesPerPixel(format wgpu.TextureFormat) uint {
	switch format {
	case wgpu.TextureFormatR8Unorm:
		return 1
	case wgpu.TextureFormatRG8Unorm:
		return 2
	case wgpu.TextureFormatRGBA8Unorm, wgpu.TextureFormatRGBA8UnormSrgb,
		wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatBGRA8UnormSrgb:
		return 4
	case wgpu.TextureFormatRGBA16Float:
		return 8
	case wgpu.TextureFormatRGBA32Float:
		return 16
	}
	panic("Add missing texture format")
}
