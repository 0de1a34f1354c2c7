package temporal

import (
	"errors"
	"math"
	"testing"
)

func TestAggregateTempo_Mean(t *testing.T) {
	got, err := AggregateTempo([]float64{120.0, 122.0, 121.0})
	if err != nil {
		t.Fatalf("AggregateTempo failed: %v", err)
	}
	if got != 121.0 {
		t.Errorf("mean of [120, 122, 121] = %f, want exactly 121.0", got)
	}
}

func TestAggregateTempo_SingleReading(t *testing.T) {
	got, err := AggregateTempo([]float64{95.5})
	if err != nil {
		t.Fatalf("AggregateTempo failed: %v", err)
	}
	if got != 95.5 {
		t.Errorf("mean of [95.5] = %f, want exactly 95.5", got)
	}
}

func TestAggregateTempo_Empty(t *testing.T) {
	_, err := AggregateTempo(nil)
	if err == nil {
		t.Fatal("expected error for empty readings")
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTrackTempo_PeriodicEnvelope(t *testing.T) {
	// Impulse train with a 20-frame period at the frame rate of a
	// 512-sample hop over 22050 Hz audio: the beat period corresponds to
	// 60 * (22050/512) / 20 = 129.199... BPM.
	frameRate := 22050.0 / 512.0
	envelope := make([]float64, 430)
	for i := 0; i < len(envelope); i += 20 {
		envelope[i] = 1.0
	}

	bt := NewBeatTracker(DefaultBeatTrackerConfig())
	readings := bt.TrackTempo(envelope, frameRate)

	if len(readings) == 0 {
		t.Fatal("expected at least one reading")
	}
	for _, r := range readings {
		if r < 60.0 || r > 180.0 {
			t.Errorf("reading %f outside configured range [60, 180]", r)
		}
	}

	want := 60.0 * frameRate / 20.0
	found := false
	for _, r := range readings {
		if math.Abs(r-want) < 1e-9 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a reading at %f BPM, got %v", want, readings)
	}

	t.Logf("readings: %v", readings)
}

func TestTrackTempo_BoundaryPeriodStaysInRange(t *testing.T) {
	// A 14-frame period at this frame rate corresponds to 184.57 BPM,
	// just past the 180 BPM ceiling. The fundamental must be excluded;
	// only its in-range subharmonics (lags 28 and 42) may be reported.
	frameRate := 22050.0 / 512.0
	envelope := make([]float64, 430)
	for i := 0; i < len(envelope); i += 14 {
		envelope[i] = 1.0
	}

	bt := NewBeatTracker(DefaultBeatTrackerConfig())
	readings := bt.TrackTempo(envelope, frameRate)

	if len(readings) == 0 {
		t.Fatal("expected at least one reading")
	}
	for _, r := range readings {
		if r < 60.0 || r > 180.0 {
			t.Errorf("reading %f outside configured range [60, 180]", r)
		}
	}
	t.Logf("readings: %v", readings)
}

func TestTrackTempo_FlatEnvelopeFallsBack(t *testing.T) {
	bt := NewBeatTracker(DefaultBeatTrackerConfig())
	readings := bt.TrackTempo(make([]float64, 200), 43.0)

	if len(readings) != 1 {
		t.Fatalf("expected single fallback reading, got %v", readings)
	}
	if readings[0] != 120.0 {
		t.Errorf("fallback reading = %f, want 120.0", readings[0])
	}
}

func TestTrackTempo_ShortEnvelopeFallsBack(t *testing.T) {
	bt := NewBeatTracker(DefaultBeatTrackerConfig())
	readings := bt.TrackTempo([]float64{1, 0, 1}, 43.0)

	if len(readings) != 1 || readings[0] != 120.0 {
		t.Errorf("expected fallback for short envelope, got %v", readings)
	}
}

func TestOnsetStrength_EnvelopeGeometry(t *testing.T) {
	sampleRate := 22050
	signal := make([]float64, sampleRate) // 1 second of clicks every 0.25 s
	for i := 0; i < len(signal); i += sampleRate / 4 {
		signal[i] = 1.0
	}

	oe := NewOnsetExtractorDefault()
	envelope, frameRate, err := oe.OnsetStrength(signal, sampleRate)
	if err != nil {
		t.Fatalf("OnsetStrength failed: %v", err)
	}

	wantFrames := (len(signal)-1024)/512 + 1
	if len(envelope) != wantFrames-1 {
		t.Errorf("envelope length %d, want %d (frames minus one)", len(envelope), wantFrames-1)
	}
	wantRate := float64(sampleRate) / 512.0
	if math.Abs(frameRate-wantRate) > 1e-9 {
		t.Errorf("frame rate %f, want %f", frameRate, wantRate)
	}
	for i, v := range envelope {
		if v < 0 {
			t.Fatalf("envelope[%d] = %f, onset strength must be non-negative", i, v)
		}
	}
}

func TestEstimateTempo_ClickTrackInRange(t *testing.T) {
	sampleRate := 22050
	signal := make([]float64, sampleRate*10) // 10 seconds at 120 BPM
	for i := 0; i < len(signal); i += sampleRate / 2 {
		signal[i] = 1.0
	}

	te := NewTempoEstimator()
	bpm, err := te.EstimateTempo(signal, sampleRate)
	if err != nil {
		t.Fatalf("EstimateTempo failed: %v", err)
	}

	if bpm < 60.0 || bpm > 180.0 {
		t.Errorf("tempo %f outside search range [60, 180]", bpm)
	}
	t.Logf("click track tempo: %.2f BPM", bpm)
}

func TestEstimateTempo_EmptySignal(t *testing.T) {
	te := NewTempoEstimator()
	if _, err := te.EstimateTempo(nil, 22050); err == nil {
		t.Fatal("expected error for empty signal")
	}
}
