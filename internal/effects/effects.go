// Package effects implements the MLG effect library. Every effect is a
// pure transformation: it takes a Clip value and returns a new Clip with
// more of the filter plan filled in. No effect holds state across
// invocations; all randomness lives in the pipeline composer.
package effects

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kikiluvv/mlggen/internal/clips"
)

// ErrInvalidParameter is returned when an effect receives arguments
// outside its contract.
var ErrInvalidParameter = errors.New("invalid parameter")

// Effect transforms a clip into a new clip
type Effect interface {
	Name() string
	Apply(c clips.Clip) (clips.Clip, error)
}

// SpeedUp resamples playback rate by Factor, shortening the clip and
// keeping audio in sync via an atempo chain.
type SpeedUp struct {
	Factor float64
}

func (e SpeedUp) Name() string { return "speed-up" }

func (e SpeedUp) Apply(c clips.Clip) (clips.Clip, error) {
	if e.Factor <= 0 {
		return c, fmt.Errorf("%w: speed-up factor %v must be positive", ErrInvalidParameter, e.Factor)
	}
	if e.Factor == 1 {
		return c, nil
	}

	c = c.WithVideoFilter(fmt.Sprintf("setpts=PTS/%.6f", e.Factor))
	for _, tempo := range atempoChain(e.Factor) {
		c = c.WithAudioFilter(fmt.Sprintf("atempo=%.6f", tempo))
	}
	c.Duration = time.Duration(float64(c.Duration) / e.Factor)
	return c, nil
}

// atempoChain decomposes a rate factor into atempo steps within the
// filter's supported [0.5, 2.0] range.
func atempoChain(factor float64) []float64 {
	var steps []float64
	for factor > 2.0 {
		steps = append(steps, 2.0)
		factor /= 2.0
	}
	for factor < 0.5 {
		steps = append(steps, 0.5)
		factor /= 0.5
	}
	if factor != 1.0 {
		steps = append(steps, factor)
	}
	return steps
}

// ColorPunch boosts saturation and contrast. Always applicable; zero
// values fall back to the stock MLG look.
type ColorPunch struct {
	Saturation float64
	Contrast   float64
}

func (e ColorPunch) Name() string { return "color-punch" }

func (e ColorPunch) Apply(c clips.Clip) (clips.Clip, error) {
	sat := e.Saturation
	if sat == 0 {
		sat = 1.6
	}
	con := e.Contrast
	if con == 0 {
		con = 1.1
	}
	return c.WithVideoFilter(fmt.Sprintf("eq=saturation=%.3f:contrast=%.3f", sat, con)), nil
}

// Zoom applies a progressive scale+crop from 1x up to Factor over the
// sub-interval [Start, End]. A zero End means the whole clip.
type Zoom struct {
	Factor float64
	Start  time.Duration
	End    time.Duration
}

func (e Zoom) Name() string { return "zoom" }

func (e Zoom) Apply(c clips.Clip) (clips.Clip, error) {
	if e.Factor < 1 {
		return c, fmt.Errorf("%w: zoom factor %v must be >= 1", ErrInvalidParameter, e.Factor)
	}
	if e.Factor == 1 {
		return c, nil
	}

	start := e.Start.Seconds()
	end := e.End.Seconds()
	if e.End == 0 {
		end = c.Duration.Seconds()
	}

	fps := c.FPS
	if fps <= 0 {
		fps = 30
	}

	var zexpr string
	if end > start {
		// Ramp linearly from 1 to Factor across the interval
		zexpr = fmt.Sprintf("if(lt(in_time,%.3f),1,if(gt(in_time,%.3f),%.3f,1+(%.3f-1)*(in_time-%.3f)/(%.3f-%.3f)))",
			start, end, e.Factor, e.Factor, start, end, start)
	} else {
		zexpr = fmt.Sprintf("%.3f", e.Factor)
	}

	filter := fmt.Sprintf("zoompan=z='%s':d=1:x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)':s=%dx%d:fps=%.2f",
		zexpr, c.Width, c.Height, fps)
	return c.WithVideoFilter(filter), nil
}

// Flash inserts brief solid-color frames at even intervals. Count 0 is a
// no-op.
type Flash struct {
	Count int
	Color string // ffmpeg color name, defaults to white
}

// flashLength is how long each flash frame stays on screen
const flashLength = 50 * time.Millisecond

func (e Flash) Name() string { return "flash" }

func (e Flash) Apply(c clips.Clip) (clips.Clip, error) {
	if e.Count < 0 {
		return c, fmt.Errorf("%w: flash count %d must be >= 0", ErrInvalidParameter, e.Count)
	}
	if e.Count == 0 {
		return c, nil
	}

	color := e.Color
	if color == "" {
		color = "white"
	}

	interval := c.Duration / time.Duration(e.Count)
	windows := make([]string, 0, e.Count)
	for i := 0; i < e.Count; i++ {
		at := time.Duration(i) * interval
		windows = append(windows, fmt.Sprintf("between(t,%.3f,%.3f)",
			at.Seconds(), (at + flashLength).Seconds()))
	}

	filter := fmt.Sprintf("drawbox=color=%s:t=fill:enable='%s'", color, strings.Join(windows, "+"))
	return c.WithVideoFilter(filter), nil
}

// TextOverlay burns a caption onto the clip for a time window
type TextOverlay struct {
	Text     string
	FontSize int
	At       time.Duration
	Duration time.Duration
}

func (e TextOverlay) Name() string { return "text-overlay" }

func (e TextOverlay) Apply(c clips.Clip) (clips.Clip, error) {
	if e.Text == "" {
		return c, fmt.Errorf("%w: text must not be empty", ErrInvalidParameter)
	}

	size := e.FontSize
	if size <= 0 {
		size = 48
	}
	dur := e.Duration
	if dur <= 0 {
		dur = 1500 * time.Millisecond
	}

	filter := fmt.Sprintf(
		"drawtext=text='%s':fontsize=%d:fontcolor=white:borderw=2:bordercolor=black:x=(w-text_w)/2:y=h-text_h-40:enable='between(t,%.3f,%.3f)'",
		escapeText(e.Text), size, e.At.Seconds(), (e.At + dur).Seconds())
	return c.WithVideoFilter(filter), nil
}

// escapeText escapes a string for use inside a drawtext filter
func escapeText(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		`:`, `\:`,
		`%`, `\%`,
	)
	return r.Replace(s)
}
