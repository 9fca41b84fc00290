package repeat

import "fmt"

// linearEngine runs the forward-backward recurrences of the tandem-repeat
// HMM in linear probability space. It is shared by GetProbabilities and
// CountTransitions, which differ only in what they do with the
// intermediate background probabilities.
type linearEngine struct {
	coefficients
	matrix EmissionMatrix
	seq    []uint8

	backgroundProb  float64
	foregroundProbs []float64 // length maxRepeatOffset
	insertionProbs  []float64 // length maxRepeatOffset-1

	scaleFactors []float64
	pos          int // current sequence position, 0-based
}

const scaleStepSize = 16

func newLinearEngine(seq []uint8, p Params, em EmissionMatrix) (*linearEngine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if em.LogSpace() {
		return nil, fmt.Errorf("repeat: linear engine requires a linear-space emission matrix")
	}
	w := p.MaxRepeatOffset
	return &linearEngine{
		coefficients:    newCoefficients(p, false),
		matrix:          em,
		seq:             seq,
		foregroundProbs: make([]float64, w),
		insertionProbs:  make([]float64, maxInt(w-1, 0)),
		scaleFactors:    make([]float64, len(seq)/scaleStepSize),
	}, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (e *linearEngine) initForward() {
	e.pos = 0
	e.backgroundProb = 1.0
	for i := range e.foregroundProbs {
		e.foregroundProbs[i] = 0
	}
	for i := range e.insertionProbs {
		e.insertionProbs[i] = 0
	}
}

func (e *linearEngine) forwardTotal() float64 {
	var fromForeground float64
	for _, f := range e.foregroundProbs {
		fromForeground += f
	}
	return e.backgroundProb*e.b2b + fromForeground*e.f2b
}

func (e *linearEngine) initBackward() {
	e.pos = len(e.seq)
	e.backgroundProb = e.b2b
	for i := range e.foregroundProbs {
		e.foregroundProbs[i] = e.f2b
	}
	for i := range e.insertionProbs {
		e.insertionProbs[i] = 0
	}
}

func (e *linearEngine) backwardTotal() float64 {
	return e.backgroundProb
}

// calcForwardTransitionProbs advances the background/foreground/insertion
// probabilities one step forward in time (from position pos to pos+1),
// without yet applying the emission for the new position.
func (e *linearEngine) calcForwardTransitionProbs() {
	if e.hasGaps() {
		e.calcForwardTransitionProbsWithGaps()
		return
	}
	w := e.maxRepeatOffset
	f := e.foregroundProbs
	fromBackground := e.backgroundProb * e.b2fLast
	var fromForeground float64
	for idx := w - 1; idx >= 0; idx-- {
		v := f[idx]
		fromForeground += v
		f[idx] = fromBackground + v*e.f2f0
		fromBackground *= e.b2fGrowth
	}
	e.backgroundProb = e.backgroundProb*e.b2b + fromForeground*e.f2b
}

func (e *linearEngine) calcForwardTransitionProbsWithGaps() {
	w := e.maxRepeatOffset
	f := e.foregroundProbs
	ins := e.insertionProbs

	fromBackground := e.backgroundProb * e.b2fLast
	fv := f[w-1]
	fromForeground := fv
	iv := ins[w-2]
	f[w-1] = fromBackground + fv*e.f2f1 + iv*e.endGapScore
	d := fv
	fromBackground *= e.b2fGrowth

	for idx := w - 2; idx >= 1; idx-- {
		fv = f[idx]
		fromForeground += fv
		iv = ins[idx-1]
		f[idx] = fromBackground + fv*e.f2f2 + (iv+d)*e.oneGapScore
		ins[idx] = fv + iv*e.g2g
		d = fv + d*e.g2g
		fromBackground *= e.b2fGrowth
	}

	fv = f[0]
	fromForeground += fv
	f[0] = fromBackground + fv*e.f2f1 + d*e.endGapScore
	ins[0] = fv

	e.backgroundProb = e.backgroundProb*e.b2b + fromForeground*e.f2b
}

// calcBackwardTransitionProbs advances the probabilities one step backward
// in time (from position pos+1 to pos).
func (e *linearEngine) calcBackwardTransitionProbs() {
	if e.hasGaps() {
		e.calcBackwardTransitionProbsWithGaps()
		return
	}
	w := e.maxRepeatOffset
	f := e.foregroundProbs
	toBackground := e.f2b * e.backgroundProb
	var toForeground float64
	for idx := 0; idx < w; idx++ {
		toForeground *= e.b2fGrowth
		v := f[idx]
		toForeground += v
		f[idx] = toBackground + e.f2f0*v
	}
	e.backgroundProb = e.b2b*e.backgroundProb + e.b2fLast*toForeground
}

func (e *linearEngine) calcBackwardTransitionProbsWithGaps() {
	w := e.maxRepeatOffset
	f := e.foregroundProbs
	ins := e.insertionProbs

	toBackground := e.f2b * e.backgroundProb
	fv := f[0]
	toForeground := fv
	iv := ins[0]
	f[0] = toBackground + e.f2f1*fv + iv
	d := e.endGapScore * fv
	toForeground *= e.b2fGrowth

	for idx := 1; idx <= w-2; idx++ {
		fv = f[idx]
		toForeground += fv
		iv = ins[idx]
		f[idx] = toBackground + e.f2f2*fv + (iv + d)
		oneGapProbF := e.oneGapScore * fv
		ins[idx-1] = oneGapProbF + e.g2g*iv
		d = oneGapProbF + e.g2g*d
		toForeground *= e.b2fGrowth
	}

	fv = f[w-1]
	toForeground += fv
	f[w-1] = toBackground + e.f2f1*fv + d
	ins[w-2] = e.endGapScore * fv

	e.backgroundProb = e.b2b*e.backgroundProb + e.b2fLast*toForeground
}

// calcEmissionProbs multiplies each foreground state's probability by the
// emission weight for pairing the symbol at pos with the symbol at
// pos-period, zeroing out periods that reach before the start of the
// sequence.
func (e *linearEngine) calcEmissionProbs() {
	symbol := e.seq[e.pos]
	maxOffset := e.pos
	if maxOffset > e.maxRepeatOffset {
		maxOffset = e.maxRepeatOffset
	}
	f := e.foregroundProbs
	for k := 1; k <= maxOffset; k++ {
		f[k-1] *= e.matrix.Weight(symbol, e.seq[e.pos-k])
	}
	for k := maxOffset + 1; k <= e.maxRepeatOffset; k++ {
		f[k-1] = 0
	}
}

func (e *linearEngine) rescale(scale float64) {
	e.backgroundProb *= scale
	for i := range e.foregroundProbs {
		e.foregroundProbs[i] *= scale
	}
	for i := range e.insertionProbs {
		e.insertionProbs[i] *= scale
	}
}

func (e *linearEngine) rescaleForward() {
	if e.pos%scaleStepSize == scaleStepSize-1 {
		scale := 1 / e.backgroundProb
		e.scaleFactors[e.pos/scaleStepSize] = scale
		e.rescale(scale)
	}
}

func (e *linearEngine) rescaleBackward() {
	if e.pos%scaleStepSize == scaleStepSize-1 {
		e.rescale(e.scaleFactors[e.pos/scaleStepSize])
	}
}
