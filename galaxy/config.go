package galaxy

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// Config is a value snapshot of the generator parameters.
// Arm separation is derived from the arm count and only changes through SetArmCount.
type Config struct {
	Size           int
	ArmOffsetMax   float32
	RotationFactor float32
	RandomOffsetXY float32

	armCount      float32
	armSeparation float32
}

func NewConfig(size int, armCount, armOffsetMax, rotationFactor, randomOffsetXY float32) Config {
	cfg := Config{
		Size:           size,
		ArmOffsetMax:   armOffsetMax,
		RotationFactor: rotationFactor,
		RandomOffsetXY: randomOffsetXY,
	}
	cfg.SetArmCount(armCount)
	return cfg
}

// DefaultConfig mirrors the panel defaults of the desktop viewer.
func DefaultConfig() Config {
	return NewConfig(100000, 5, 0.5, 5.0, 0.02)
}

func (c *Config) SetArmCount(armCount float32) {
	c.armCount = armCount
	if armCount > 0 {
		c.armSeparation = 2 * math32.Pi / armCount
	} else {
		c.armSeparation = 0
	}
}

func (c Config) ArmCount() float32      { return c.armCount }
func (c Config) ArmSeparation() float32 { return c.armSeparation }

// Valid reports whether Generate will produce any particles for this config.
func (c Config) Valid() bool {
	return c.Validate() == nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Size < 0 {
		errs = append(errs, fmt.Errorf("size must not be negative, got %d", c.Size))
	}
	if !(c.armCount > 0) {
		errs = append(errs, fmt.Errorf("arm count must be positive, got %v", c.armCount))
	}
	return errors.Join(errs...)
}

func (c Config) String() string {
	return fmt.Sprintf("size=%d arms=%g armOffsetMax=%g rotation=%g jitter=%g",
		c.Size, c.armCount, c.ArmOffsetMax, c.RotationFactor, c.RandomOffsetXY)
}
