package repeat

import "fmt"

// CountTransitions computes the expected number of times each class of
// transition out of the background state is taken across seq, under the
// posterior distribution implied by the forward-backward algorithm. T must
// have length MaxRepeatOffset+1; T[0] accumulates background-to-background
// transitions (including the final transition out of the background state at
// the end of seq) and T[k] accumulates transitions into a repeat of period k,
// for k = 1..MaxRepeatOffset. The counts are added to the values already in T.
//
// These counts are the sufficient statistics for re-estimating RepeatProb,
// RepeatEndProb and RepeatOffsetProbDecay by expectation maximization; this
// package computes the counts but leaves re-estimation to the caller.
func CountTransitions(seq []uint8, p Params, em EmissionMatrix, T []float64) (Diagnostics, error) {
	if len(T) != p.MaxRepeatOffset+1 {
		return Diagnostics{}, fmt.Errorf("repeat: T must have length %d, got %d", p.MaxRepeatOffset+1, len(T))
	}
	linear := ToLinearEmissionMatrix(em)
	e, err := newLinearEngine(seq, p, linear)
	if err != nil {
		return Diagnostics{}, err
	}
	if len(seq) == 0 {
		return Diagnostics{}, nil
	}

	forwardBackground := make([]float64, len(seq))

	e.initForward()
	for e.pos < len(seq) {
		forwardBackground[e.pos] = e.backgroundProb
		e.calcForwardTransitionProbs()
		e.calcEmissionProbs()
		e.rescaleForward()
		e.pos++
	}
	z := e.forwardTotal()

	T[0] += e.backgroundProb * e.b2b / z

	e.initBackward()
	for e.pos > 0 {
		e.pos--
		e.rescaleBackward()
		e.calcEmissionProbs()
		e.addTransitionCounts(forwardBackground[e.pos], z, T)
		e.calcBackwardTransitionProbs()
	}
	z2 := e.backwardTotal()

	return Diagnostics{ForwardTotal: z, BackwardTotal: z2}, nil
}

// addTransitionCounts accumulates the contribution of one sequence position
// to the expected transition counts, combining the forward background
// probability at this position with the current (post emission/rescale)
// backward probabilities.
func (e *linearEngine) addTransitionCounts(forwardProb, totalProb float64, T []float64) {
	toBg := forwardProb * e.b2b / totalProb
	toFg := forwardProb * e.b2fFirst() / totalProb

	T[0] += e.backgroundProb * toBg

	for k, fg := range e.foregroundProbs {
		T[k+1] += fg * toFg
		toFg *= e.repeatOffsetProbDecay()
	}
}
