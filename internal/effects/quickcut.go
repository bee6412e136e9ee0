package effects

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/kikiluvv/mlggen/internal/clips"
)

// CutParams controls quick-cut segmentation
type CutParams struct {
	MinSegment time.Duration
	MaxSegment time.Duration
	Segments   int
	Shuffle    bool
}

// Cut splits a clip's source window into up to Segments shorter segments,
// the quick-cut effect. With a nil rng the split is an even, in-order
// partition; with an rng, segment lengths and starts are drawn from it
// and the order is optionally shuffled. Fails when the clip is shorter
// than the minimum segment length.
func Cut(c clips.Clip, p CutParams, rng *rand.Rand) ([]clips.Clip, error) {
	if p.MinSegment <= 0 || p.MaxSegment < p.MinSegment {
		return nil, fmt.Errorf("%w: segment bounds %v..%v", ErrInvalidParameter, p.MinSegment, p.MaxSegment)
	}
	if p.Segments <= 0 {
		return nil, fmt.Errorf("%w: segment count %d must be positive", ErrInvalidParameter, p.Segments)
	}

	window := c.Window()
	if window <= p.MinSegment {
		return nil, fmt.Errorf("%w: clip %s is %v, shorter than minimum segment %v",
			ErrInvalidParameter, c.Source, window, p.MinSegment)
	}

	maxLen := p.MaxSegment
	if maxLen > window {
		maxLen = window
	}

	segments := make([]clips.Clip, 0, p.Segments)
	if rng == nil {
		// Even in-order partition, truncated to the segment bounds
		length := window / time.Duration(p.Segments)
		if length < p.MinSegment {
			length = p.MinSegment
		}
		if length > maxLen {
			length = maxLen
		}
		for i := 0; i < p.Segments; i++ {
			start := c.Start + time.Duration(i)*length
			if start+length > c.End {
				break
			}
			segments = append(segments, segment(c, start, length))
		}
	} else {
		for i := 0; i < p.Segments; i++ {
			length := p.MinSegment + time.Duration(rng.Int63n(int64(maxLen-p.MinSegment)+1))
			start := c.Start + time.Duration(rng.Int63n(int64(window-length)+1))
			segments = append(segments, segment(c, start, length))
		}
		if p.Shuffle {
			rng.Shuffle(len(segments), func(i, j int) {
				segments[i], segments[j] = segments[j], segments[i]
			})
		}
	}

	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: no segments produced for %s", ErrInvalidParameter, c.Source)
	}

	return segments, nil
}

// segment derives a sub-window clip, carrying over source metadata but
// starting a fresh filter plan.
func segment(c clips.Clip, start, length time.Duration) clips.Clip {
	return clips.Clip{
		ID:       uuid.NewString(),
		Source:   c.Source,
		Start:    start,
		End:      start + length,
		Duration: length,
		Width:    c.Width,
		Height:   c.Height,
		FPS:      c.FPS,
		HasAudio: c.HasAudio,
	}
}
