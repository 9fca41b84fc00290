package repeat

import (
	"fmt"
	"math"
)

// Diagnostics carries numeric sanity information from a forward-backward
// run. In exact arithmetic the forward and backward passes compute the same
// total probability for the sequence; a large divergence signals numeric
// trouble, analogous to tantan's own stderr warning.
type Diagnostics struct {
	ForwardTotal  float64
	BackwardTotal float64
}

// Suspect reports whether ForwardTotal and BackwardTotal disagree by more
// than one part in a million of their magnitude, mirroring tantan's
// checkForwardAndBackwardTotals warning threshold.
func (d Diagnostics) Suspect() bool {
	x, y := math.Abs(d.ForwardTotal), math.Abs(d.BackwardTotal)
	m := x
	if y > m {
		m = y
	}
	return math.Abs(d.ForwardTotal-d.BackwardTotal) > m/1e6
}

// GetProbabilities computes, for every position in seq, the posterior
// probability that the position lies inside a tandem repeat. out must have
// the same length as seq; it is overwritten in place.
func GetProbabilities(seq []uint8, p Params, em EmissionMatrix, out []float32) (Diagnostics, error) {
	if len(out) != len(seq) {
		return Diagnostics{}, fmt.Errorf("repeat: out must have length %d, got %d", len(seq), len(out))
	}
	linear := ToLinearEmissionMatrix(em)
	e, err := newLinearEngine(seq, p, linear)
	if err != nil {
		return Diagnostics{}, err
	}
	if len(seq) == 0 {
		return Diagnostics{}, nil
	}

	e.initForward()
	for e.pos < len(seq) {
		e.calcForwardTransitionProbs()
		e.calcEmissionProbs()
		e.rescaleForward()
		out[e.pos] = float32(e.backgroundProb)
		e.pos++
	}
	z := e.forwardTotal()

	e.initBackward()
	for e.pos > 0 {
		e.pos--
		nonRepeatProb := float64(out[e.pos]) * e.backgroundProb / z
		out[e.pos] = 1 - float32(nonRepeatProb)
		e.rescaleBackward()
		e.calcEmissionProbs()
		e.calcBackwardTransitionProbs()
	}
	z2 := e.backwardTotal()

	return Diagnostics{ForwardTotal: z, BackwardTotal: z2}, nil
}

// MaskTable maps a symbol's encoded byte to the byte that should replace it
// when masking a repeat-covered position, e.g. upper-case to lower-case.
type MaskTable [256]uint8

// IdentityMaskTable returns a MaskTable that leaves every symbol unchanged,
// useful when masking should only report coverage without rewriting seq.
func IdentityMaskTable() MaskTable {
	var t MaskTable
	for i := range t {
		t[i] = uint8(i)
	}
	return t
}

// MaskSequence overwrites every position of seq whose repeat probability is
// at least minMaskProb using maskTable, in place. It returns the same
// Diagnostics as GetProbabilities.
func MaskSequence(seq []uint8, p Params, em EmissionMatrix, minMaskProb float64, maskTable MaskTable) (Diagnostics, error) {
	probs := make([]float32, len(seq))
	diag, err := GetProbabilities(seq, p, em, probs)
	if err != nil {
		return Diagnostics{}, err
	}
	for i, prob := range probs {
		if float64(prob) >= minMaskProb {
			seq[i] = maskTable[seq[i]]
		}
	}
	return diag, nil
}
