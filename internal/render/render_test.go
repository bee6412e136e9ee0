package render

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/kikiluvv/mlggen/internal/assets"
	"github.com/kikiluvv/mlggen/internal/ffmpeg"
	"github.com/kikiluvv/mlggen/internal/pipeline"
)

func skipIfNoFFmpeg(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not installed, skipping")
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not installed, skipping")
	}
}

func quietLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).Level(zerolog.Disabled)
}

func TestRenderValidation(t *testing.T) {
	r := New(quietLogger(), nil)
	ctx := context.Background()

	if err := r.Render(ctx, nil, Options{OutputPath: "out.mp4"}); err == nil {
		t.Error("expected error for nil plan")
	}
	if err := r.Render(ctx, &pipeline.Plan{}, Options{OutputPath: "out.mp4"}); err == nil {
		t.Error("expected error for empty plan")
	}

	plan := &pipeline.Plan{Shots: []pipeline.Shot{{}}}
	if err := r.Render(ctx, plan, Options{}); err == nil {
		t.Error("expected error for empty output path")
	}
}

// makeTestVideo synthesizes a short clip with video and audio tracks
func makeTestVideo(t *testing.T, e *ffmpeg.Executor, path string, seconds int) {
	t.Helper()

	dur := strconv.Itoa(seconds)
	err := e.Run(context.Background(), ffmpeg.RunOptions{
		Args: []string{
			"-f", "lavfi",
			"-i", "testsrc=duration=" + dur + ":size=320x240:rate=30",
			"-f", "lavfi",
			"-i", "sine=frequency=440:duration=" + dur,
			"-c:v", "libx264",
			"-preset", "ultrafast",
			"-c:a", "aac",
			"-shortest",
			path,
		},
	})
	if err != nil {
		t.Fatalf("failed to synthesize test video: %v", err)
	}
}

func TestRenderEndToEnd(t *testing.T) {
	skipIfNoFFmpeg(t)

	e, err := ffmpeg.New(quietLogger(), "", 0)
	if err != nil {
		t.Fatalf("failed to create executor: %v", err)
	}

	dir := t.TempDir()
	inputs := []string{
		filepath.Join(dir, "in_a.mp4"),
		filepath.Join(dir, "in_b.mp4"),
	}
	for _, path := range inputs {
		makeTestVideo(t, e, path, 6)
	}

	ctx := context.Background()
	loaded, err := pipeline.Load(ctx, e, inputs)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	seed := int64(42)
	composer := pipeline.NewComposer(quietLogger(), assets.NewRegistry(dir, nil))
	plan, err := composer.Compose(loaded, pipeline.Options{
		Intensity: pipeline.Medium,
		Seed:      &seed,
	})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	output := filepath.Join(dir, "out", "montage.mp4")
	renderer := New(quietLogger(), e)
	err = renderer.Render(ctx, plan, Options{
		OutputPath: output,
		TempDir:    dir,
		Encode:     ffmpeg.EncodeSettings{Preset: "ultrafast"},
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	stat, err := os.Stat(output)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if stat.Size() == 0 {
		t.Error("output file is empty")
	}
	if _, err := os.Stat(output + ".partial"); !os.IsNotExist(err) {
		t.Error("staging file left behind")
	}

	info, err := e.ProbeVideo(ctx, output)
	if err != nil {
		t.Fatalf("failed to probe output: %v", err)
	}
	diff := info.Duration - plan.Duration
	if diff < 0 {
		diff = -diff
	}
	if diff > 500*time.Millisecond {
		t.Errorf("output duration %v, plan expected %v", info.Duration, plan.Duration)
	}
}

func TestRenderFailureLeavesNoOutput(t *testing.T) {
	skipIfNoFFmpeg(t)

	e, err := ffmpeg.New(quietLogger(), "", 0)
	if err != nil {
		t.Fatalf("failed to create executor: %v", err)
	}

	dir := t.TempDir()
	plan := &pipeline.Plan{
		Shots: []pipeline.Shot{
			{Clip: shotClip()}, // source file does not exist
		},
	}
	plan.Shots[0].Clip.Source = filepath.Join(dir, "nope.mp4")

	output := filepath.Join(dir, "montage.mp4")
	renderer := New(quietLogger(), e)
	err = renderer.Render(context.Background(), plan, Options{
		OutputPath: output,
		TempDir:    dir,
	})
	if !errors.Is(err, ErrRenderFailure) {
		t.Errorf("expected ErrRenderFailure, got %v", err)
	}

	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Error("failed render must not leave an output file")
	}
	if _, statErr := os.Stat(output + ".partial"); !os.IsNotExist(statErr) {
		t.Error("failed render must not leave a staging file")
	}
}
