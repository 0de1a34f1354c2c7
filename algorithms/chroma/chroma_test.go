package chroma

import (
	"errors"
	"math"
	"testing"
)

func TestPitchClassDistribution_SumsAcrossTime(t *testing.T) {
	chromagram := [][]float64{
		{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2},
		{0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1},
		{1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	}

	dist, err := PitchClassDistribution(chromagram)
	if err != nil {
		t.Fatalf("PitchClassDistribution failed: %v", err)
	}

	want := []float64{2, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 3}
	for i := range want {
		if dist[i] != want[i] {
			t.Errorf("bin %d: got %f, want %f", i, dist[i], want[i])
		}
	}
}

func TestPitchClassDistribution_EmptyChromagram(t *testing.T) {
	dist, err := PitchClassDistribution(nil)
	if err != nil {
		t.Fatalf("PitchClassDistribution failed: %v", err)
	}
	if len(dist) != NumBins {
		t.Fatalf("expected %d bins, got %d", NumBins, len(dist))
	}
}

func TestPitchClassDistribution_InvalidFrameWidth(t *testing.T) {
	for _, width := range []int{10, 13} {
		_, err := PitchClassDistribution([][]float64{make([]float64, width)})
		if err == nil {
			t.Fatalf("expected error for %d-bin frame, got nil", width)
		}
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("width %d: expected ErrInvalidInput, got %v", width, err)
		}
	}
}

func TestChromagram_PureToneFoldsToA(t *testing.T) {
	// One second of A4 at 440 Hz: nearly all energy must land in pitch
	// class 9 regardless of octave leakage.
	sampleRate := 22050
	signal := make([]float64, sampleRate)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * 440.0 * float64(i) / float64(sampleRate))
	}

	e := NewExtractorDefault()
	chromagram, err := e.Chromagram(signal, sampleRate)
	if err != nil {
		t.Fatalf("Chromagram failed: %v", err)
	}
	if len(chromagram) == 0 {
		t.Fatal("expected at least one frame")
	}

	for _, frame := range chromagram {
		if len(frame) != NumBins {
			t.Fatalf("expected %d bins per frame, got %d", NumBins, len(frame))
		}
	}

	// Per-frame unit sum normalization.
	for ti, frame := range chromagram {
		sum := 0.0
		for _, v := range frame {
			sum += v
		}
		if math.Abs(sum-1.0) > 1e-6 && sum != 0 {
			t.Errorf("frame %d: sum %f, want 1.0 or silence", ti, sum)
		}
	}

	dist, err := PitchClassDistribution(chromagram)
	if err != nil {
		t.Fatalf("PitchClassDistribution failed: %v", err)
	}

	maxBin := 0
	for i, v := range dist {
		if v > dist[maxBin] {
			maxBin = i
		}
	}
	if maxBin != 9 {
		t.Errorf("expected dominant pitch class 9 (A), got %d: %v", maxBin, dist)
	}

	t.Logf("pitch class distribution: %v", dist)
}

func TestChromagram_InvalidSampleRate(t *testing.T) {
	e := NewExtractorDefault()
	if _, err := e.Chromagram(make([]float64, 4096), 0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}

func TestChromagram_EmptySignal(t *testing.T) {
	e := NewExtractorDefault()
	if _, err := e.Chromagram(nil, 22050); err == nil {
		t.Fatal("expected error for empty signal")
	}
}
