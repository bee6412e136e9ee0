package effects

import (
	"fmt"
	"time"

	"github.com/kikiluvv/mlggen/internal/assets"
	"github.com/kikiluvv/mlggen/internal/clips"
	"github.com/kikiluvv/mlggen/pkg/util"
)

// ImageOverlay composites a static image onto the clip for a time window.
// The asset file must exist when the effect is applied; the check happens
// here so a bad assets directory fails long before any render I/O.
type ImageOverlay struct {
	Path       string
	Position   string
	Opacity    float64
	HeightFrac float64
	Start      time.Duration
	End        time.Duration
}

func (e ImageOverlay) Name() string { return "overlay" }

func (e ImageOverlay) Apply(c clips.Clip) (clips.Clip, error) {
	if e.Path == "" {
		return c, fmt.Errorf("%w: overlay path must not be empty", ErrInvalidParameter)
	}
	if !util.FileExists(e.Path) {
		return c, fmt.Errorf("%w: overlay %s", assets.ErrMissing, e.Path)
	}

	opacity := e.Opacity
	if opacity == 0 {
		opacity = 0.95
	}
	frac := e.HeightFrac
	if frac == 0 {
		frac = 0.35
	}
	pos := e.Position
	if pos == "" {
		pos = "center"
	}

	return c.WithOverlay(clips.OverlayLayer{
		Path:       e.Path,
		Position:   pos,
		Opacity:    opacity,
		HeightFrac: frac,
		Start:      e.Start,
		End:        e.End,
	}), nil
}

// AudioSting mixes a short audio clip into the clip's audio at a
// timestamp. Fails with assets.ErrMissing when the file is absent.
type AudioSting struct {
	Path   string
	At     time.Duration
	Volume float64
}

func (e AudioSting) Name() string { return "audio-sting" }

func (e AudioSting) Apply(c clips.Clip) (clips.Clip, error) {
	if e.Path == "" {
		return c, fmt.Errorf("%w: sting path must not be empty", ErrInvalidParameter)
	}
	if !util.FileExists(e.Path) {
		return c, fmt.Errorf("%w: sting %s", assets.ErrMissing, e.Path)
	}
	if e.At < 0 {
		return c, fmt.Errorf("%w: sting timestamp must not be negative", ErrInvalidParameter)
	}

	volume := e.Volume
	if volume == 0 {
		volume = 1.0
	}

	return c.WithSting(clips.Sting{
		Path:   e.Path,
		At:     e.At,
		Volume: volume,
	}), nil
}
