package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/kikiluvv/mlggen/internal/clips"
	"github.com/kikiluvv/mlggen/internal/ffmpeg"
)

func secs(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}

// compileShot turns one shot's filter plan into a single ffmpeg
// invocation: source trim window, overlay image inputs, sting audio
// inputs, and a filter_complex graph wiring them together.
func compileShot(c clips.Clip, output string, enc ffmpeg.EncodeSettings) []string {
	args := []string{
		"-ss", secs(c.Start),
		"-t", secs(c.Window()),
		"-i", c.Source,
	}
	next := 1

	// Overlay images loop for the whole shot
	overlayIdx := make([]int, 0, len(c.Overlays))
	for _, ov := range c.Overlays {
		args = append(args, "-loop", "1", "-t", secs(c.Duration), "-i", ov.Path)
		overlayIdx = append(overlayIdx, next)
		next++
	}

	// Silent base track for video-only sources keeps the audio graph
	// uniform
	audioBase := "[0:a]"
	if !c.HasAudio {
		args = append(args,
			"-f", "lavfi",
			"-t", secs(c.Duration),
			"-i", "anullsrc=channel_layout=stereo:sample_rate=44100",
		)
		audioBase = fmt.Sprintf("[%d:a]", next)
		next++
	}

	stingIdx := make([]int, 0, len(c.Stings))
	for _, s := range c.Stings {
		args = append(args, "-i", s.Path)
		stingIdx = append(stingIdx, next)
		next++
	}

	var graph []string

	// Video chain
	vchain := "null"
	if len(c.VideoFilters) > 0 {
		vchain = strings.Join(c.VideoFilters, ",")
	}
	graph = append(graph, fmt.Sprintf("[0:v]%s[v0]", vchain))
	vlabel := "[v0]"

	for j, ov := range c.Overlays {
		height := int(float64(c.Height) * ov.HeightFrac)
		height -= height % 2
		if height <= 0 {
			height = 2
		}

		scaled := fmt.Sprintf("[%d:v]scale=-1:%d,format=rgba,colorchannelmixer=aa=%.2f[ov%d]",
			overlayIdx[j], height, ov.Opacity, j)
		graph = append(graph, scaled)

		overlay := fmt.Sprintf("%s[ov%d]overlay=%s", vlabel, j, positionExpr(ov.Position))
		if ov.Start > 0 || ov.End > 0 {
			end := ov.End
			if end == 0 {
				end = c.Duration
			}
			overlay += fmt.Sprintf(":enable='between(t,%.3f,%.3f)'", ov.Start.Seconds(), end.Seconds())
		}
		outLabel := fmt.Sprintf("[v%d]", j+1)
		graph = append(graph, overlay+outLabel)
		vlabel = outLabel
	}

	// Audio chain
	achain := "anull"
	if len(c.AudioFilters) > 0 {
		achain = strings.Join(c.AudioFilters, ",")
	}
	graph = append(graph, fmt.Sprintf("%s%s[a0]", audioBase, achain))
	alabel := "[a0]"

	if len(c.Stings) > 0 {
		mixInputs := alabel
		for k, s := range c.Stings {
			delay := s.At.Milliseconds()
			graph = append(graph, fmt.Sprintf("[%d:a]adelay=%d|%d,volume=%.2f[st%d]",
				stingIdx[k], delay, delay, s.Volume, k))
			mixInputs += fmt.Sprintf("[st%d]", k)
		}
		graph = append(graph, fmt.Sprintf("%samix=inputs=%d:duration=first:normalize=0[amix]",
			mixInputs, 1+len(c.Stings)))
		alabel = "[amix]"
	}

	args = append(args,
		"-filter_complex", strings.Join(graph, ";"),
		"-map", vlabel,
		"-map", alabel,
	)
	args = append(args, enc.Args()...)
	args = append(args, "-shortest", output)

	return args
}

// positionExpr maps a named overlay position to ffmpeg overlay
// coordinates
func positionExpr(position string) string {
	switch position {
	case "top-left":
		return "10:10"
	case "top-right":
		return "main_w-overlay_w-10:10"
	case "bottom-left":
		return "10:main_h-overlay_h-10"
	case "bottom-right":
		return "main_w-overlay_w-10:main_h-overlay_h-10"
	case "bottom-center":
		return "(main_w-overlay_w)/2:main_h-overlay_h-10"
	default: // center
		return "(main_w-overlay_w)/2:(main_h-overlay_h)/2"
	}
}
