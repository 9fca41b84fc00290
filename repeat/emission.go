package repeat

import (
	"fmt"
	"math"

	"github.com/tantanbio/tantan/align/matrix"
	"github.com/tantanbio/tantan/alphabet"
)

// EmissionMatrix holds, for every pair of encoded symbols (a, b), the weight
// applied when a repeat copy at one position aligns symbol a to symbol b at
// the period-offset position. In linear space this is the substitution
// likelihood ratio exp(lambda * score(a, b)); in log space it is simply
// lambda * score(a, b).
//
// The matrix is indexed by the raw byte codes produced by alphabet.Alphabet,
// so lookups never need bounds-checked type assertions on the hot path.
type EmissionMatrix struct {
	logSpace bool
	size     int
	weights  [][]float64
}

// NewLogEmissionMatrix builds an EmissionMatrix in log space from a
// substitution matrix and the scale factor lambda that converts raw
// substitution scores into log-likelihood ratios. Computing lambda itself
// from a scoring matrix's target/background frequencies is outside this
// package's scope; callers supply it directly.
func NewLogEmissionMatrix(sm *matrix.SubstitutionMatrix, enc *alphabet.Alphabet, lambda float64) (EmissionMatrix, error) {
	if lambda <= 0 {
		return EmissionMatrix{}, fmt.Errorf("repeat: lambda must be positive, got %g", lambda)
	}
	symbols := enc.Symbols()
	n := len(symbols)
	weights := make([][]float64, n)
	for i, a := range symbols {
		row := make([]float64, n)
		for j, b := range symbols {
			score, err := sm.Score(a, b)
			if err != nil {
				return EmissionMatrix{}, fmt.Errorf("repeat: building emission matrix: %w", err)
			}
			row[j] = lambda * float64(score)
		}
		weights[i] = row
	}
	return EmissionMatrix{logSpace: true, size: n, weights: weights}, nil
}

// ToLinearEmissionMatrix exponentiates a log-space EmissionMatrix into the
// linear-space likelihood ratios used by the forward-backward engine.
func ToLinearEmissionMatrix(log EmissionMatrix) EmissionMatrix {
	if !log.logSpace {
		return log
	}
	weights := make([][]float64, log.size)
	for i, row := range log.weights {
		out := make([]float64, len(row))
		for j, v := range row {
			out[j] = math.Exp(v)
		}
		weights[i] = out
	}
	return EmissionMatrix{logSpace: false, size: log.size, weights: weights}
}

// Weight returns the emission weight for encoded symbols a and b.
func (m EmissionMatrix) Weight(a, b uint8) float64 {
	return m.weights[a][b]
}

// Size returns the number of symbols the matrix is defined over.
func (m EmissionMatrix) Size() int {
	return m.size
}

// LogSpace reports whether Weight returns log-likelihood ratios (true) or
// linear likelihood ratios (false).
func (m EmissionMatrix) LogSpace() bool {
	return m.logSpace
}
