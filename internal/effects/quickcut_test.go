package effects

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

func TestCutClipTooShort(t *testing.T) {
	c := testClip()
	c.End = 300 * time.Millisecond
	c.Duration = c.End

	_, err := Cut(c, CutParams{
		MinSegment: 400 * time.Millisecond,
		MaxSegment: 2 * time.Second,
		Segments:   3,
	}, nil)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestCutInvalidParams(t *testing.T) {
	tests := []CutParams{
		{MinSegment: 0, MaxSegment: time.Second, Segments: 3},
		{MinSegment: 2 * time.Second, MaxSegment: time.Second, Segments: 3},
		{MinSegment: time.Second, MaxSegment: 2 * time.Second, Segments: 0},
	}

	for i, p := range tests {
		if _, err := Cut(testClip(), p, nil); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("case %d: expected ErrInvalidParameter, got %v", i, err)
		}
	}
}

func TestCutDeterministicPartition(t *testing.T) {
	p := CutParams{
		MinSegment: 400 * time.Millisecond,
		MaxSegment: 2 * time.Second,
		Segments:   3,
	}

	segs, err := Cut(testClip(), p, nil)
	if err != nil {
		t.Fatalf("Cut failed: %v", err)
	}
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}

	// 10s / 3 exceeds the max segment, so each segment is clamped to 2s
	// and laid out in order.
	for i, seg := range segs {
		if seg.Window() != 2*time.Second {
			t.Errorf("segment %d: window %v, want 2s", i, seg.Window())
		}
		wantStart := time.Duration(i) * 2 * time.Second
		if seg.Start != wantStart {
			t.Errorf("segment %d: start %v, want %v", i, seg.Start, wantStart)
		}
		if seg.Duration != seg.Window() {
			t.Errorf("segment %d: duration %v != window %v", i, seg.Duration, seg.Window())
		}
		if len(seg.VideoFilters) != 0 || len(seg.Overlays) != 0 {
			t.Errorf("segment %d: expected a fresh filter plan", i)
		}
	}
}

func TestCutSeededReproducible(t *testing.T) {
	p := CutParams{
		MinSegment: 200 * time.Millisecond,
		MaxSegment: 1200 * time.Millisecond,
		Segments:   5,
		Shuffle:    true,
	}

	a, err := Cut(testClip(), p, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Cut failed: %v", err)
	}
	b, err := Cut(testClip(), p, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Cut failed: %v", err)
	}

	if len(a) != len(b) {
		t.Fatalf("segment counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Start != b[i].Start || a[i].End != b[i].End {
			t.Errorf("segment %d differs: %v..%v vs %v..%v",
				i, a[i].Start, a[i].End, b[i].Start, b[i].End)
		}
	}
}

func TestCutSegmentsStayInWindow(t *testing.T) {
	c := testClip()
	c.Start = 2 * time.Second
	c.End = 8 * time.Second
	c.Duration = c.Window()

	p := CutParams{
		MinSegment: 200 * time.Millisecond,
		MaxSegment: 1200 * time.Millisecond,
		Segments:   5,
	}

	segs, err := Cut(c, p, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("Cut failed: %v", err)
	}

	for i, seg := range segs {
		if seg.Start < c.Start || seg.End > c.End {
			t.Errorf("segment %d escapes source window: %v..%v", i, seg.Start, seg.End)
		}
		if seg.Window() < p.MinSegment || seg.Window() > p.MaxSegment {
			t.Errorf("segment %d length %v outside bounds", i, seg.Window())
		}
	}
}
