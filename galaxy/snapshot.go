package galaxy

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Snapshot is one complete, immutable generation result.
// A regenerate replaces the whole snapshot; its buffer is never edited in place.
type Snapshot struct {
	ID      uuid.UUID
	Version uint64
	Config  Config
	Seed    uint64

	// LegacyAnchor is the last star's transform, kept for single-sprite callers.
	LegacyAnchor mgl32.Mat4
	Instances    []float32

	Radius  float32
	Elapsed time.Duration
}

// NewSnapshot runs the generator synchronously with a fresh stream seeded by seed.
func NewSnapshot(cfg Config, seed uint64, version uint64) *Snapshot {
	start := time.Now()
	anchor, buf := Generate(cfg, NewSource(seed))

	return &Snapshot{
		ID:           uuid.New(),
		Version:      version,
		Config:       cfg,
		Seed:         seed,
		LegacyAnchor: anchor,
		Instances:    buf,
		Radius:       Extent(buf),
		Elapsed:      time.Since(start),
	}
}

func (s *Snapshot) Count() int {
	if s == nil {
		return 0
	}
	return InstanceCount(s.Instances)
}

func (s *Snapshot) Empty() bool {
	return s.Count() == 0
}
