// Package render turns a composed plan into a finished video file. Each
// shot renders to a scratch file, the shots concatenate in order, the
// optional music bed mixes in, and the result moves atomically to the
// output path. A failed render leaves nothing behind.
package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/kikiluvv/mlggen/internal/ffmpeg"
	"github.com/kikiluvv/mlggen/internal/pipeline"
	"github.com/kikiluvv/mlggen/pkg/util"
)

// ErrRenderFailure is returned when an export step fails
var ErrRenderFailure = errors.New("render failure")

// Options configures a render job
type Options struct {
	OutputPath   string
	TempDir      string
	Encode       ffmpeg.EncodeSettings
	ProgressFunc ffmpeg.ProgressFunc
}

// Renderer executes render jobs against an ffmpeg executor
type Renderer struct {
	logger zerolog.Logger
	exec   *ffmpeg.Executor
}

// New creates a renderer
func New(logger zerolog.Logger, exec *ffmpeg.Executor) *Renderer {
	return &Renderer{
		logger: logger.With().Str("component", "renderer").Logger(),
		exec:   exec,
	}
}

// Render exports a plan to opts.OutputPath. The output file appears only
// when the whole render succeeds; scratch files are always cleaned up.
func (r *Renderer) Render(ctx context.Context, plan *pipeline.Plan, opts Options) error {
	if plan == nil {
		return fmt.Errorf("plan cannot be nil")
	}
	if len(plan.Shots) == 0 {
		return fmt.Errorf("plan has no shots to render")
	}
	if opts.OutputPath == "" {
		return fmt.Errorf("output path cannot be empty")
	}

	r.logger.Info().
		Int("shots", len(plan.Shots)).
		Dur("duration", plan.Duration).
		Str("output", opts.OutputPath).
		Msg("starting render")

	scratch, err := os.MkdirTemp(opts.TempDir, "mlggen-render-*")
	if err != nil {
		return fmt.Errorf("failed to create scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	// Stage 1: render each shot
	shotPaths := make([]string, 0, len(plan.Shots))
	for i, shot := range plan.Shots {
		shotPath := filepath.Join(scratch, fmt.Sprintf("shot_%03d.mp4", i))

		args := compileShot(shot.Clip, shotPath, opts.Encode)
		runOpts := ffmpeg.RunOptions{
			Args:            args,
			ProgressHandler: opts.ProgressFunc,
			LogHandler: func(line string) {
				r.logger.Debug().Str("ffmpeg", line).Msg("shot render")
			},
		}

		if err := r.exec.Run(ctx, runOpts); err != nil {
			return fmt.Errorf("%w: shot %d: %v", ErrRenderFailure, i, err)
		}

		r.logger.Debug().
			Int("shot", i).
			Strs("effects", shot.Effects).
			Msg("shot rendered")

		shotPaths = append(shotPaths, shotPath)
	}

	// Stage 2: concatenate shots
	merged := filepath.Join(scratch, "merged.mp4")
	err = r.exec.Concat(ctx, ffmpeg.ConcatOptions{
		Inputs:       shotPaths,
		Output:       merged,
		ReEncode:     true,
		Encode:       opts.Encode,
		ProgressFunc: opts.ProgressFunc,
	})
	if err != nil {
		return fmt.Errorf("%w: concat: %v", ErrRenderFailure, err)
	}

	// Stage 3: mix the music bed when present
	final := merged
	if plan.Music != "" {
		mixed := filepath.Join(scratch, "mixed.mp4")
		if err := r.mixMusic(ctx, merged, plan, mixed, opts); err != nil {
			return err
		}
		final = mixed
	}

	// Stage 4: move into place atomically
	if err := r.publish(final, opts.OutputPath); err != nil {
		return fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}

	r.logger.Info().Str("output", opts.OutputPath).Msg("render completed")
	return nil
}

// mixMusic lays the background track under the montage audio
func (r *Renderer) mixMusic(ctx context.Context, input string, plan *pipeline.Plan, output string, opts Options) error {
	volume := plan.MusicVolume
	if volume == 0 {
		volume = 0.2
	}

	r.logger.Info().
		Str("music", plan.Music).
		Float64("volume", volume).
		Msg("mixing music bed")

	filter := fmt.Sprintf("[1:a]volume=%.2f[bed];[0:a][bed]amix=inputs=2:duration=first:normalize=0[a]", volume)
	args := []string{
		"-i", input,
		"-i", plan.Music,
		"-filter_complex", filter,
		"-map", "0:v",
		"-map", "[a]",
		"-c:v", "copy",
		"-c:a", ffmpeg.DefaultAudioCodec,
		"-shortest",
		output,
	}

	runOpts := ffmpeg.RunOptions{
		Args:            args,
		ProgressHandler: opts.ProgressFunc,
		LogHandler: func(line string) {
			r.logger.Debug().Str("ffmpeg", line).Msg("music mix")
		},
	}

	if err := r.exec.Run(ctx, runOpts); err != nil {
		return fmt.Errorf("%w: music mix: %v", ErrRenderFailure, err)
	}
	return nil
}

// publish stages the finished file next to the destination and renames
// it into place, so a crash never leaves a partial file at the output
// path.
func (r *Renderer) publish(src, dst string) error {
	if dir := filepath.Dir(dst); dir != "." {
		if err := util.EnsureDir(dir); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	staging := dst + ".partial"
	if err := util.CopyFile(src, staging); err != nil {
		util.CleanupFiles(staging)
		return fmt.Errorf("failed to stage output: %w", err)
	}

	if err := os.Rename(staging, dst); err != nil {
		util.CleanupFiles(staging)
		return fmt.Errorf("failed to move output into place: %w", err)
	}

	return nil
}
