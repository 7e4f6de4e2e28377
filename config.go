package spiral

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"
	"github.com/gekko3d/spiral/core"
	"github.com/gekko3d/spiral/galaxy"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const maxConfigSize = 1024 * 1024

type WindowConfig struct {
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
	Title  string `yaml:"title" toml:"title"`
}

type CameraConfig struct {
	Speed float32 `yaml:"speed" toml:"speed"`
	Zoom  float32 `yaml:"zoom" toml:"zoom"`
	// Seconds the H key takes to glide back to the origin.
	RecenterSeconds float32 `yaml:"recenter_seconds" toml:"recenter_seconds"`
	// FollowWindow re-derives the aspect ratio when the window is resized.
	// Off by default: the aspect ratio is fixed when the camera is created.
	FollowWindow bool `yaml:"follow_window" toml:"follow_window"`
}

type GalaxyConfig struct {
	Size           int     `yaml:"size" toml:"size"`
	Arms           float32 `yaml:"arms" toml:"arms"`
	ArmOffsetMax   float32 `yaml:"arm_offset_max" toml:"arm_offset_max"`
	RotationFactor float32 `yaml:"rotation_factor" toml:"rotation_factor"`
	RandomOffsetXY float32 `yaml:"random_offset_xy" toml:"random_offset_xy"`
	Seed           uint64  `yaml:"seed" toml:"seed"`
}

func (c GalaxyConfig) Generator() galaxy.Config {
	return galaxy.NewConfig(c.Size, c.Arms, c.ArmOffsetMax, c.RotationFactor, c.RandomOffsetXY)
}

type SpriteConfig struct {
	// Empty path uses the procedural flare.
	Path string `yaml:"path" toml:"path"`
	Size int    `yaml:"size" toml:"size"`
}

type DebugConfig struct {
	Enabled   bool `yaml:"enabled" toml:"enabled"`
	LogCursor bool `yaml:"log_cursor" toml:"log_cursor"`
}

type AppConfig struct {
	Window WindowConfig `yaml:"window" toml:"window"`
	Camera CameraConfig `yaml:"camera" toml:"camera"`
	Galaxy GalaxyConfig `yaml:"galaxy" toml:"galaxy"`
	Sprite SpriteConfig `yaml:"sprite" toml:"sprite"`
	Debug  DebugConfig  `yaml:"debug" toml:"debug"`
}

func DefaultConfig() *AppConfig {
	g := galaxy.DefaultConfig()
	return &AppConfig{
		Window: WindowConfig{
			Width:  defaultWindowWidth,
			Height: defaultWindowHeight,
			Title:  defaultWindowTitle,
		},
		Camera: CameraConfig{
			Speed:           500,
			Zoom:            1000,
			RecenterSeconds: 0.75,
		},
		Galaxy: GalaxyConfig{
			Size:           g.Size,
			Arms:           g.ArmCount(),
			ArmOffsetMax:   g.ArmOffsetMax,
			RotationFactor: g.RotationFactor,
			RandomOffsetXY: g.RandomOffsetXY,
			Seed:           1,
		},
		Sprite: SpriteConfig{
			Size: 64,
		},
	}
}

// LoadConfig reads a YAML or TOML file, picked by extension, over the defaults.
func LoadConfig(path string) (*AppConfig, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat config %s: %w", path, err)
	}
	if info.Size() > maxConfigSize {
		return nil, fmt.Errorf("config %s too large: %d bytes", path, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := ParseConfig(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func ParseConfig(data []byte, ext string) (*AppConfig, error) {
	cfg := DefaultConfig()

	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid field. A finite zoom below the camera
// minimum is not an error, the camera clamps it.
func (c *AppConfig) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Camera.Speed < 0 {
		errs = append(errs, fmt.Errorf("camera speed must not be negative, got %v", c.Camera.Speed))
	}
	for _, f := range []struct {
		name  string
		value float32
	}{
		{"speed", c.Camera.Speed},
		{"zoom", c.Camera.Zoom},
		{"recenter_seconds", c.Camera.RecenterSeconds},
	} {
		if math32.IsNaN(f.value) || math32.IsInf(f.value, 0) {
			errs = append(errs, fmt.Errorf("camera %s must be finite, got %v", f.name, f.value))
		}
	}
	if c.Camera.RecenterSeconds < 0 {
		errs = append(errs, fmt.Errorf("camera recenter_seconds must not be negative, got %v", c.Camera.RecenterSeconds))
	}
	if c.Sprite.Size <= 0 {
		errs = append(errs, fmt.Errorf("sprite size must be positive, got %d", c.Sprite.Size))
	}
	if err := c.Galaxy.Generator().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("galaxy: %w", err))
	}
	return errors.Join(errs...)
}

// ZoomClamped reports whether the configured zoom is below the camera minimum.
func (c *AppConfig) ZoomClamped() bool {
	return c.Camera.Zoom < core.MinZoom
}
