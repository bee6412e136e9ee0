package ffmpeg

import (
	"reflect"
	"testing"
)

func TestFilterBuilderChain(t *testing.T) {
	got := NewFilterBuilder().
		ScaleWidth(1280).
		Eq(1.6, 1.1).
		Custom("setpts=PTS/2.000000").
		Build()

	want := "scale=1280:-2,eq=saturation=1.600:contrast=1.100,setpts=PTS/2.000000"
	if got != want {
		t.Errorf("Build = %q, want %q", got, want)
	}
}

func TestFilterBuilderEmpty(t *testing.T) {
	if got := NewFilterBuilder().Build(); got != "" {
		t.Errorf("empty builder produced %q", got)
	}
}

func TestFilterBuilderSkipsInvalidValues(t *testing.T) {
	got := NewFilterBuilder().
		Scale(0, 720).
		ScaleWidth(-1).
		FPS(0).
		Crop(0, 100, 0, 0).
		SetPTS(0).
		BuildAll()

	if len(got) != 0 {
		t.Errorf("invalid values should be skipped, got %v", got)
	}
}

func TestFilterBuilderBuildAll(t *testing.T) {
	got := NewFilterBuilder().
		Scale(640, 480).
		Crop(320, 240, 10, 20).
		BuildAll()

	want := []string{"scale=640:480", "crop=320:240:10:20"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildAll = %v, want %v", got, want)
	}
}

func TestEncodeSettingsDefaults(t *testing.T) {
	got := EncodeSettings{}.Args()

	want := []string{"-c:v", "libx264", "-crf", "23", "-preset", "medium", "-c:a", "aac"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Args = %v, want %v", got, want)
	}
}

func TestEncodeSettingsExplicit(t *testing.T) {
	got := EncodeSettings{CRF: 18, Preset: "fast", FPS: 60}.Args()

	want := []string{"-c:v", "libx264", "-crf", "18", "-preset", "fast", "-c:a", "aac", "-r", "60.00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Args = %v, want %v", got, want)
	}
}
