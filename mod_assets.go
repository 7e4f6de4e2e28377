package spiral

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/chewxy/math32"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

type AssetId string

type TextureFormat uint32

const (
	TextureFormatRGBA8Unorm = TextureFormat(wgpu.TextureFormatRGBA8Unorm)
)

const flareMasterSize = 256

type TextureAsset struct {
	version uint
	texels  []uint8
	width   uint32
	height  uint32
	format  TextureFormat
}

func (t TextureAsset) Size() (width, height uint32) {
	return t.width, t.height
}

func (t TextureAsset) Texels() []uint8 {
	return t.texels
}

// AssetServer stores star sprites by id.
type AssetServer struct {
	textures map[AssetId]TextureAsset
}

type AssetServerModule struct{}

func NewAssetServer() *AssetServer {
	return &AssetServer{
		textures: make(map[AssetId]TextureAsset),
	}
}

func (AssetServerModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewAssetServer())
}

func (server *AssetServer) Texture(id AssetId) (TextureAsset, bool) {
	tx, ok := server.textures[id]
	return tx, ok
}

func (server *AssetServer) CreateTexture(img *image.RGBA) AssetId {
	id := makeAssetId()
	bounds := img.Bounds()

	server.textures[id] = TextureAsset{
		version: 0,
		texels:  img.Pix,
		width:   uint32(bounds.Dx()),
		height:  uint32(bounds.Dy()),
		format:  TextureFormatRGBA8Unorm,
	}

	return id
}

// LoadSprite decodes a PNG and resamples it to size x size RGBA.
func (server *AssetServer) LoadSprite(filename string, size int) (AssetId, error) {
	if size <= 0 {
		return "", fmt.Errorf("sprite size must be positive, got %d", size)
	}

	file, err := os.Open(filename)
	if err != nil {
		return "", fmt.Errorf("open sprite: %w", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		return "", fmt.Errorf("decode sprite %s: %w", filename, err)
	}

	return server.CreateTexture(resample(img, size)), nil
}

// FlareSprite synthesizes a soft white star with a bright core.
// Colour comes from the instance data, so the sprite stays white.
func (server *AssetServer) FlareSprite(size int) AssetId {
	if size <= 0 {
		size = 1
	}
	return server.CreateTexture(resample(flareImage(flareMasterSize), size))
}

func resample(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func flareImage(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	half := float32(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float32(x) + 0.5 - half) / half
			dy := (float32(y) + 0.5 - half) / half
			a := flareIntensity(math32.Hypot(dx, dy))
			v := uint8(math32.Round(a * 255))
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: v})
		}
	}
	return img
}

// flareIntensity maps a normalized radius to [0, 1]; zero at and beyond the edge.
func flareIntensity(r float32) float32 {
	if r >= 1 {
		return 0
	}
	halo := (1 - r) * (1 - r)
	core := math32.Exp(-r * r * 40)
	return math32.Min(1, 0.6*halo+core)
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
