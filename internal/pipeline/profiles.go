package pipeline

import "time"

// profile holds the per-intensity tuning knobs. Higher intensity means
// shorter cuts and denser effects. The fixed effect lists are nested
// (low ⊂ medium ⊂ high) so the selected effect count never decreases
// with intensity.
type profile struct {
	// quick-cut
	segments   int
	minSegment time.Duration
	maxSegment time.Duration

	// fixed selection (randomize off)
	speedFactor float64 // 0 disables
	zoomFactor  float64 // 0 disables
	flashCount  int     // 0 disables
	withText    bool
	withOverlay bool
	withSting   bool

	// randomized selection probabilities
	speedProb   float64
	zoomProb    float64
	flashProb   float64
	textProb    float64
	overlayProb float64
	stingProb   float64

	// randomized parameter ranges
	speedMin, speedMax float64
	zoomMax            float64
	maxFlashes         int
}

var profiles = map[Intensity]profile{
	Low: {
		segments:   2,
		minSegment: 800 * time.Millisecond,
		maxSegment: 3 * time.Second,

		speedProb: 0.2,
		zoomProb:  0.2,
		flashProb: 0.1,
		textProb:  0.2,

		speedMin: 1.2, speedMax: 1.6,
		zoomMax:    1.2,
		maxFlashes: 2,
	},
	Medium: {
		segments:   3,
		minSegment: 400 * time.Millisecond,
		maxSegment: 2 * time.Second,

		speedFactor: 1.5,
		flashCount:  2,

		speedProb:   0.6,
		zoomProb:    0.5,
		flashProb:   0.4,
		textProb:    0.6,
		overlayProb: 0.5,
		stingProb:   0.4,

		speedMin: 1.3, speedMax: 2.2,
		zoomMax:    1.4,
		maxFlashes: 4,
	},
	High: {
		segments:   5,
		minSegment: 200 * time.Millisecond,
		maxSegment: 1200 * time.Millisecond,

		speedFactor: 2.0,
		zoomFactor:  1.3,
		flashCount:  4,
		withText:    true,
		withOverlay: true,
		withSting:   true,

		speedProb:   0.9,
		zoomProb:    0.8,
		flashProb:   0.8,
		textProb:    0.8,
		overlayProb: 0.75,
		stingProb:   0.7,

		speedMin: 1.5, speedMax: 2.5,
		zoomMax:    1.6,
		maxFlashes: 8,
	},
}

// captions burned in by the text overlay effect
var captions = []string{"MLG", "PWNED", "360 NOSCOPE", "REKT", "WOMBO COMBO"}
