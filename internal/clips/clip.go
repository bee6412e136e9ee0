package clips

import (
	"errors"
	"time"
)

// ErrUnsupportedInput is returned when an input file cannot be read or
// probed as video.
var ErrUnsupportedInput = errors.New("unsupported input")

// Clip is an immutable description of a video segment plus the filter
// plan accumulated by effects. Effects never mutate a Clip in place;
// every transformation returns a new value with copied slices.
type Clip struct {
	ID     string
	Source string

	// Trim window within the source file
	Start time.Duration
	End   time.Duration

	// Output duration after speed changes. Equals the trim window until
	// a speed effect adjusts it.
	Duration time.Duration

	// Probed source metadata
	Width    int
	Height   int
	FPS      float64
	HasAudio bool

	// Filter plan accumulated by effects
	VideoFilters []string
	AudioFilters []string
	Overlays     []OverlayLayer
	Stings       []Sting
}

// OverlayLayer is an image composited over the clip for a time window
type OverlayLayer struct {
	Path       string
	Position   string // "top-left", "center", "bottom-center", ...
	Opacity    float64
	HeightFrac float64 // overlay height as a fraction of clip height
	Start      time.Duration
	End        time.Duration // zero means until the end of the clip
}

// Sting is a short audio clip mixed into the clip's audio at a timestamp
type Sting struct {
	Path   string
	At     time.Duration
	Volume float64
}

// Window returns the length of the source trim window
func (c Clip) Window() time.Duration {
	return c.End - c.Start
}

// WithVideoFilter returns a copy with an appended video filter
func (c Clip) WithVideoFilter(filter string) Clip {
	c.VideoFilters = appendCopy(c.VideoFilters, filter)
	return c
}

// WithAudioFilter returns a copy with an appended audio filter
func (c Clip) WithAudioFilter(filter string) Clip {
	c.AudioFilters = appendCopy(c.AudioFilters, filter)
	return c
}

// WithOverlay returns a copy with an appended overlay layer
func (c Clip) WithOverlay(layer OverlayLayer) Clip {
	c.Overlays = appendCopy(c.Overlays, layer)
	return c
}

// WithSting returns a copy with an appended audio sting
func (c Clip) WithSting(sting Sting) Clip {
	c.Stings = appendCopy(c.Stings, sting)
	return c
}

// appendCopy appends without sharing backing arrays between clip values
func appendCopy[T any](in []T, v T) []T {
	out := make([]T, len(in), len(in)+1)
	copy(out, in)
	return append(out, v)
}
