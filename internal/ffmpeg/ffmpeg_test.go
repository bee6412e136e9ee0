package ffmpeg

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
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

func testExecutor(t *testing.T) *Executor {
	t.Helper()
	e, err := New(zerolog.New(os.Stderr).Level(zerolog.Disabled), "", 0)
	if err != nil {
		t.Fatalf("failed to create executor: %v", err)
	}
	return e
}

// synthClip renders a short testsrc+sine clip for probing and concat tests
func synthClip(t *testing.T, e *Executor, path string) {
	t.Helper()
	err := e.Run(context.Background(), RunOptions{
		Args: []string{
			"-f", "lavfi",
			"-i", "testsrc=duration=2:size=320x240:rate=30",
			"-f", "lavfi",
			"-i", "sine=frequency=440:duration=2",
			"-c:v", "libx264",
			"-preset", "ultrafast",
			"-c:a", "aac",
			"-shortest",
			path,
		},
	})
	if err != nil {
		t.Fatalf("failed to synthesize clip: %v", err)
	}
}

func TestNewMissingBinary(t *testing.T) {
	_, err := New(zerolog.Nop(), "definitely-not-ffmpeg-xyz", 0)
	if err == nil {
		t.Error("expected error for unresolvable binary")
	}
}

func TestRunNoArgs(t *testing.T) {
	skipIfNoFFmpeg(t)
	e := testExecutor(t)

	if err := e.Run(context.Background(), RunOptions{}); err == nil {
		t.Error("expected error for empty args")
	}
}

func TestProbeVideo(t *testing.T) {
	skipIfNoFFmpeg(t)
	e := testExecutor(t)

	path := filepath.Join(t.TempDir(), "sample.mp4")
	synthClip(t, e, path)

	info, err := e.ProbeVideo(context.Background(), path)
	if err != nil {
		t.Fatalf("ProbeVideo failed: %v", err)
	}

	if info.Width != 320 || info.Height != 240 {
		t.Errorf("dimensions %dx%d, want 320x240", info.Width, info.Height)
	}
	if !info.HasAudio {
		t.Error("expected audio stream")
	}
	diff := info.Duration - 2*time.Second
	if diff < 0 {
		diff = -diff
	}
	if diff > 200*time.Millisecond {
		t.Errorf("duration %v, want ~2s", info.Duration)
	}
	if info.FPS < 29 || info.FPS > 31 {
		t.Errorf("fps %v, want ~30", info.FPS)
	}
}

func TestProbeVideoNonexistent(t *testing.T) {
	skipIfNoFFmpeg(t)
	e := testExecutor(t)

	if _, err := e.ProbeVideo(context.Background(), filepath.Join(t.TempDir(), "nope.mp4")); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestConcat(t *testing.T) {
	skipIfNoFFmpeg(t)
	e := testExecutor(t)

	dir := t.TempDir()
	a := filepath.Join(dir, "a.mp4")
	b := filepath.Join(dir, "b.mp4")
	synthClip(t, e, a)
	synthClip(t, e, b)

	out := filepath.Join(dir, "joined.mp4")
	err := e.Concat(context.Background(), ConcatOptions{
		Inputs:   []string{a, b},
		Output:   out,
		ReEncode: true,
		Encode:   EncodeSettings{Preset: "ultrafast"},
	})
	if err != nil {
		t.Fatalf("Concat failed: %v", err)
	}

	info, err := e.ProbeVideo(context.Background(), out)
	if err != nil {
		t.Fatalf("failed to probe result: %v", err)
	}
	diff := info.Duration - 4*time.Second
	if diff < 0 {
		diff = -diff
	}
	if diff > 300*time.Millisecond {
		t.Errorf("concat duration %v, want ~4s", info.Duration)
	}
}

func TestConcatValidation(t *testing.T) {
	skipIfNoFFmpeg(t)
	e := testExecutor(t)
	ctx := context.Background()

	if err := e.Concat(ctx, ConcatOptions{Output: "out.mp4"}); err == nil {
		t.Error("expected error for no inputs")
	}
	if err := e.Concat(ctx, ConcatOptions{Inputs: []string{"a.mp4"}}); err == nil {
		t.Error("expected error for empty output")
	}
}

func TestStreamOutputParsesProgress(t *testing.T) {
	e := &Executor{logger: zerolog.Nop()}

	lines := strings.Join([]string{
		"frame=120",
		"fps=29.97",
		"time=00:00:04.00",
		"speed=1.5x",
		"progress=continue",
	}, "\n")

	var got *Progress
	e.streamOutput(strings.NewReader(lines), func(p *Progress) { got = p }, nil)

	if got == nil {
		t.Fatal("progress handler never called")
	}
	if got.Frame != 120 {
		t.Errorf("frame = %d, want 120", got.Frame)
	}
	if got.Time != "00:00:04.00" {
		t.Errorf("time = %q", got.Time)
	}
	if got.Speed != "1.5x" {
		t.Errorf("speed = %q", got.Speed)
	}
}
