package tonal

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/callistachang/mashup-tools/logging"
)

// KeyEstimate is the outcome of scoring a pitch class distribution against
// all 24 key templates.
type KeyEstimate struct {
	MajorKey   int     // pitch class of the best major candidate (0=C ... 11=B)
	MinorKey   int     // pitch class of the best minor candidate
	MajorScore float64 // correlation of the distribution with that major template
	MinorScore float64
	Label      string // e.g. "D major", "A minor", or the dual label on an exact tie
}

func (k KeyEstimate) String() string { return k.Label }

// KeyEstimator classifies the most likely key of a pitch class distribution
// using the Krumhansl-Schmuckler template-correlation algorithm. It holds
// only the precomputed rotated templates and is safe for concurrent use.
type KeyEstimator struct {
	major *mat.Dense
	minor *mat.Dense
}

// NewKeyEstimator creates a key estimator backed by the Krumhansl-Schmuckler
// reference profiles.
func NewKeyEstimator() *KeyEstimator {
	return &KeyEstimator{major: majorTemplate, minor: minorTemplate}
}

// Standardize z-scores a vector: subtract the mean, divide by the population
// standard deviation. Zero-variance input returns ErrDegenerateInput.
func Standardize(v []float64) ([]float64, error) {
	if len(v) == 0 {
		return nil, fmt.Errorf("%w: empty vector", ErrInvalidInput)
	}

	mean := stat.Mean(v, nil)
	std := stat.PopStdDev(v, nil)
	if std < 1e-12 {
		return nil, ErrDegenerateInput
	}

	z := make([]float64, len(v))
	for i, x := range v {
		z[i] = (x - mean) / std
	}
	return z, nil
}

// EstimateKey scores a 12-element pitch class distribution against the 12
// major and 12 minor key templates and resolves the winner. The function is
// pure: identical input always yields an identical estimate.
func (ke *KeyEstimator) EstimateKey(distribution []float64) (KeyEstimate, error) {
	if len(distribution) != NumPitchClasses {
		return KeyEstimate{}, fmt.Errorf("%w: got %d elements", ErrInvalidInput, len(distribution))
	}

	z, err := Standardize(distribution)
	if err != nil {
		return KeyEstimate{}, err
	}

	x := mat.NewVecDense(NumPitchClasses, z)

	var majorScores, minorScores mat.VecDense
	majorScores.MulVec(ke.major.T(), x)
	minorScores.MulVec(ke.minor.T(), x)

	estimate := resolveKey(majorScores.RawVector().Data, minorScores.RawVector().Data)

	logging.Debug("key template scores", logging.Fields{
		"major_scores": majorScores.RawVector().Data,
		"minor_scores": minorScores.RawVector().Data,
		"label":        estimate.Label,
	})

	return estimate, nil
}

// resolveKey picks the winning pitch class per mode (first occurrence on
// in-vector ties) and applies the three-way comparison between the two
// winners. An exact score tie keeps both candidates in a dual label; no
// further tie-breaking exists.
func resolveKey(majorScores, minorScores []float64) KeyEstimate {
	majorWinner := floats.MaxIdx(majorScores)
	minorWinner := floats.MaxIdx(minorScores)

	estimate := KeyEstimate{
		MajorKey:   majorWinner,
		MinorKey:   minorWinner,
		MajorScore: majorScores[majorWinner],
		MinorScore: minorScores[minorWinner],
	}

	switch {
	case estimate.MajorScore > estimate.MinorScore:
		estimate.Label = fmt.Sprintf("%s major", NoteName(majorWinner))
	case estimate.MajorScore < estimate.MinorScore:
		estimate.Label = fmt.Sprintf("%s minor", NoteName(minorWinner))
	default:
		estimate.Label = fmt.Sprintf("%s major or %s minor", NoteName(majorWinner), NoteName(minorWinner))
	}
	return estimate
}
