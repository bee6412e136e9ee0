// Package pipeline composes MLG effect plans: it selects, orders and
// parameterizes effects per intensity and folds them over the input
// clips. Composition is pure planning; all media I/O happens later in
// the renderer.
package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kikiluvv/mlggen/internal/assets"
	"github.com/kikiluvv/mlggen/internal/clips"
	"github.com/kikiluvv/mlggen/internal/effects"
	"github.com/kikiluvv/mlggen/internal/ffmpeg"
	"github.com/kikiluvv/mlggen/pkg/util"
)

// Composer builds render plans from input clips
type Composer struct {
	logger zerolog.Logger
	reg    *assets.Registry
}

// NewComposer creates a composer backed by an asset registry
func NewComposer(logger zerolog.Logger, reg *assets.Registry) *Composer {
	return &Composer{
		logger: logger.With().Str("component", "composer").Logger(),
		reg:    reg,
	}
}

// Load probes input files into clip values. Unreadable inputs fail with
// clips.ErrUnsupportedInput.
func Load(ctx context.Context, exec *ffmpeg.Executor, paths []string) ([]clips.Clip, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no input files provided")
	}

	loaded := make([]clips.Clip, 0, len(paths))
	for _, path := range paths {
		if !util.FileExists(path) {
			return nil, fmt.Errorf("%w: %s: no such file", clips.ErrUnsupportedInput, path)
		}

		info, err := exec.ProbeVideo(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", clips.ErrUnsupportedInput, path, err)
		}

		loaded = append(loaded, clips.Clip{
			ID:       uuid.NewString(),
			Source:   path,
			Start:    0,
			End:      info.Duration,
			Duration: info.Duration,
			Width:    info.Width,
			Height:   info.Height,
			FPS:      info.FPS,
			HasAudio: info.HasAudio,
		})
	}

	return loaded, nil
}

// Compose selects, orders and parameterizes effects for every input clip
// and folds them into a plan. Quick-cut runs per input clip, effects run
// per shot, and the shots concatenate in order at render time. For a
// fixed seed the result is deterministic.
func (cp *Composer) Compose(inputs []clips.Clip, opts Options) (*Plan, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no input clips to compose")
	}

	prof, ok := profiles[opts.Intensity]
	if !ok {
		return nil, fmt.Errorf("%w: intensity %q", effects.ErrInvalidParameter, opts.Intensity)
	}

	seed := time.Now().UnixNano()
	seedExplicit := false
	if opts.Seed != nil {
		seed = *opts.Seed
		seedExplicit = true
	}

	var rng *rand.Rand
	if opts.Randomize {
		rng = rand.New(rand.NewSource(seed))
		if !seedExplicit {
			cp.logger.Warn().
				Int64("seed", seed).
				Msg("no seed supplied; this run is not reproducible")
		}
	}

	cp.logger.Info().
		Int("inputs", len(inputs)).
		Str("intensity", string(opts.Intensity)).
		Bool("randomize", opts.Randomize).
		Msg("composing plan")

	plan := &Plan{
		Intensity:    opts.Intensity,
		Randomized:   opts.Randomize,
		Seed:         seed,
		SeedExplicit: seedExplicit,
	}

	cutParams := effects.CutParams{
		MinSegment: prof.minSegment,
		MaxSegment: prof.maxSegment,
		Segments:   prof.segments,
		Shuffle:    opts.Randomize,
	}

compose:
	for _, input := range inputs {
		segments, err := effects.Cut(input, cutParams, rng)
		if err != nil {
			return nil, err
		}

		for _, seg := range segments {
			seg = downscale(seg, opts.MaxWidth)

			selected, err := cp.selectEffects(prof, rng)
			if err != nil {
				return nil, err
			}

			names := make([]string, 0, len(selected))
			for _, eff := range selected {
				seg, err = eff.Apply(seg)
				if err != nil {
					return nil, fmt.Errorf("effect %s: %w", eff.Name(), err)
				}
				names = append(names, eff.Name())
			}

			plan.Shots = append(plan.Shots, Shot{Clip: seg, Effects: names})
			plan.Duration += seg.Duration
			plan.HasAudio = plan.HasAudio || seg.HasAudio || len(seg.Stings) > 0

			if opts.TargetDuration > 0 && plan.Duration >= opts.TargetDuration {
				break compose
			}
		}
	}

	// Music bed is an optional garnish: applied when the asset exists,
	// skipped otherwise.
	if music, err := cp.reg.Resolve(assets.MountainDew); err == nil {
		plan.Music = music
		plan.MusicVolume = opts.MusicVolume
		if plan.MusicVolume == 0 {
			plan.MusicVolume = 0.2
		}
		plan.HasAudio = true
	}

	cp.logger.Info().
		Int("shots", len(plan.Shots)).
		Dur("duration", plan.Duration).
		Int64("seed", plan.Seed).
		Msg("plan composed")

	return plan, nil
}

// downscale caps the shot width, keeping the aspect ratio with an even
// height as libx264 requires.
func downscale(c clips.Clip, maxWidth int) clips.Clip {
	if maxWidth <= 0 || c.Width <= maxWidth {
		return c
	}
	newHeight := c.Height * maxWidth / c.Width
	newHeight -= newHeight % 2
	c = c.WithVideoFilter(fmt.Sprintf("scale=%d:-2", maxWidth))
	c.Width = maxWidth
	c.Height = newHeight
	return c
}

// selectEffects builds the ordered effect list for one shot. With a nil
// rng the list is the fixed one for the profile; otherwise selection and
// parameters are drawn from the rng in a stable order.
func (cp *Composer) selectEffects(prof profile, rng *rand.Rand) ([]effects.Effect, error) {
	// Color punch is always on at every intensity
	selected := []effects.Effect{effects.ColorPunch{}}

	if rng == nil {
		if prof.speedFactor > 0 {
			selected = append(selected, effects.SpeedUp{Factor: prof.speedFactor})
		}
		if prof.zoomFactor > 1 {
			selected = append(selected, effects.Zoom{Factor: prof.zoomFactor})
		}
		if prof.flashCount > 0 {
			selected = append(selected, effects.Flash{Count: prof.flashCount})
		}
		if prof.withText {
			selected = append(selected, effects.TextOverlay{Text: captions[0]})
		}
		if prof.withOverlay {
			path, err := cp.reg.Resolve(assets.Doritos)
			if err != nil {
				return nil, err
			}
			selected = append(selected, effects.ImageOverlay{Path: path, Position: "top-left"})
		}
		if prof.withSting {
			path, err := cp.reg.Resolve(assets.Airhorn)
			if err != nil {
				return nil, err
			}
			selected = append(selected, effects.AudioSting{Path: path, At: 100 * time.Millisecond})
		}
		return selected, nil
	}

	if rng.Float64() < prof.speedProb {
		factor := prof.speedMin + rng.Float64()*(prof.speedMax-prof.speedMin)
		selected = append(selected, effects.SpeedUp{Factor: factor})
	}
	if rng.Float64() < prof.zoomProb {
		factor := 1.05 + rng.Float64()*(prof.zoomMax-1.05)
		selected = append(selected, effects.Zoom{Factor: factor})
	}
	if rng.Float64() < prof.flashProb {
		count := 1 + rng.Intn(prof.maxFlashes)
		selected = append(selected, effects.Flash{Count: count})
	}
	if rng.Float64() < prof.textProb {
		text := captions[rng.Intn(len(captions))]
		sizes := []int{42, 54, 68}
		selected = append(selected, effects.TextOverlay{
			Text:     text,
			FontSize: sizes[rng.Intn(len(sizes))],
		})
	}
	if rng.Float64() < prof.overlayProb {
		name := assets.Doritos
		position := "top-left"
		opacity := 0.95
		if rng.Float64() < 0.33 {
			name = assets.LensFlare
			position = "center"
			opacity = 0.6
		}
		path, err := cp.reg.Resolve(name)
		if err != nil {
			return nil, err
		}
		selected = append(selected, effects.ImageOverlay{Path: path, Position: position, Opacity: opacity})
	}
	if rng.Float64() < prof.stingProb {
		name := assets.Airhorn
		if rng.Float64() < 0.25 {
			name = assets.Hitmarker
		}
		path, err := cp.reg.Resolve(name)
		if err != nil {
			return nil, err
		}
		selected = append(selected, effects.AudioSting{Path: path, At: 100 * time.Millisecond})
	}

	return selected, nil
}
