package tonal

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// NumPitchClasses is the size of every tone profile and pitch class
// distribution in this package.
const NumPitchClasses = 12

// Krumhansl-Schmuckler tone profiles: the empirically derived relative
// salience of each pitch class within a major or minor key, from listener
// probe-tone ratings. Index 0 is the tonic.
var (
	majorProfile = []float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88}
	minorProfile = []float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17}

	noteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
)

// MajorProfile returns a copy of the Krumhansl-Schmuckler major profile.
func MajorProfile() []float64 {
	out := make([]float64, NumPitchClasses)
	copy(out, majorProfile)
	return out
}

// MinorProfile returns a copy of the Krumhansl-Schmuckler minor profile.
func MinorProfile() []float64 {
	out := make([]float64, NumPitchClasses)
	copy(out, minorProfile)
	return out
}

// NoteName returns the name of a pitch class (0=C ... 11=B).
func NoteName(pitchClass int) string {
	return noteNames[((pitchClass%NumPitchClasses)+NumPitchClasses)%NumPitchClasses]
}

// BuildRotatedTemplate standardizes a tone profile and expands it into a
// 12x12 circulant matrix. Column j is the standardized profile rotated down
// by j semitones, i.e. the tonal template for a key rooted at pitch class j:
//
//	M[i][j] = z[(i-j) mod 12]
//
// Column 0 reconstructs the standardized profile exactly.
func BuildRotatedTemplate(profile []float64) (*mat.Dense, error) {
	if len(profile) != NumPitchClasses {
		return nil, fmt.Errorf("%w: got %d elements", ErrInvalidInput, len(profile))
	}

	z, err := Standardize(profile)
	if err != nil {
		return nil, err
	}

	m := mat.NewDense(NumPitchClasses, NumPitchClasses, nil)
	for j := 0; j < NumPitchClasses; j++ {
		for i := 0; i < NumPitchClasses; i++ {
			m.Set(i, j, z[((i-j)+NumPitchClasses)%NumPitchClasses])
		}
	}
	return m, nil
}

// The templates for the reference profiles are constant, so they are built
// once at process start.
var (
	majorTemplate = mustTemplate(majorProfile)
	minorTemplate = mustTemplate(minorProfile)
)

func mustTemplate(profile []float64) *mat.Dense {
	m, err := BuildRotatedTemplate(profile)
	if err != nil {
		panic(fmt.Sprintf("tonal: reference profile is invalid: %v", err))
	}
	return m
}
