package pipeline

import (
	"fmt"
	"time"

	"github.com/kikiluvv/mlggen/internal/clips"
	"github.com/kikiluvv/mlggen/internal/effects"
)

// Intensity is the coarse effect density/strength setting
type Intensity string

const (
	Low    Intensity = "low"
	Medium Intensity = "medium"
	High   Intensity = "high"
)

// ParseIntensity validates an intensity string
func ParseIntensity(s string) (Intensity, error) {
	switch Intensity(s) {
	case Low, Medium, High:
		return Intensity(s), nil
	default:
		return "", fmt.Errorf("%w: intensity %q (want low, medium or high)", effects.ErrInvalidParameter, s)
	}
}

// Options configures plan composition
type Options struct {
	Intensity Intensity
	Randomize bool
	// Seed drives effect selection and parameters when Randomize is set.
	// Nil means seeded from the clock; the resulting plan reports
	// SeedExplicit=false so the caller knows the run is not reproducible.
	Seed           *int64
	TargetDuration time.Duration
	// MaxWidth downscales oversized inputs before effects; 0 disables
	MaxWidth int
	// MusicVolume scales the background bed; 0 means the stock 0.2
	MusicVolume float64
}

// Shot is one segment of the final montage with its folded effect plan
type Shot struct {
	Clip    clips.Clip
	Effects []string
}

// Plan is the composed timeline: the ordered shots, the music bed and
// the provenance needed to reproduce the run.
type Plan struct {
	Shots        []Shot
	Intensity    Intensity
	Randomized   bool
	Seed         int64
	SeedExplicit bool
	Music        string
	MusicVolume  float64
	Duration     time.Duration
	HasAudio     bool
}
