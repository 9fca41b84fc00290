/*
Package repeat implements the forward-backward and Viterbi algorithms used to
detect tandem repeats in a biological sequence, following the hidden Markov
model of Frith (2011), "A new repeat-masking method enables specific
detection of homologous sequences".

The model has a background state B, maxRepeatOffset foreground states F_k
(one per repeat period k = 1..maxRepeatOffset), and, when gap probabilities
are nonzero, maxRepeatOffset-1 insertion states I_k used to model a single
indel inside an otherwise periodic repeat.
*/
package repeat

import (
	"fmt"
	"math"
)

// Params holds the user-tunable parameters of the repeat model. They are
// converted into the derived transition coefficients used internally by
// newCoefficients.
type Params struct {
	// MaxRepeatOffset is the largest tandem-repeat period considered, W.
	MaxRepeatOffset int
	// RepeatProb is the per-position probability of entering a repeat from
	// the background state.
	RepeatProb float64
	// RepeatEndProb is the per-position probability of leaving a repeat
	// back to the background state.
	RepeatEndProb float64
	// RepeatOffsetProbDecay governs how much more likely short repeat
	// periods are than long ones. A value of 1 makes all periods equally
	// likely; values below 1 favor short periods.
	RepeatOffsetProbDecay float64
	// FirstGapProb is the probability of opening an insertion or deletion
	// inside a repeat.
	FirstGapProb float64
	// OtherGapProb is the probability of extending an already-open gap by
	// one more position.
	OtherGapProb float64
}

// Validate reports whether p describes a well-formed model.
func (p Params) Validate() error {
	if p.MaxRepeatOffset < 1 {
		return fmt.Errorf("repeat: MaxRepeatOffset must be at least 1, got %d", p.MaxRepeatOffset)
	}
	if err := checkProb("RepeatProb", p.RepeatProb); err != nil {
		return err
	}
	if p.RepeatProb >= 1 {
		return fmt.Errorf("repeat: RepeatProb must be less than 1, got %g", p.RepeatProb)
	}
	if err := checkProb("RepeatEndProb", p.RepeatEndProb); err != nil {
		return err
	}
	if p.RepeatOffsetProbDecay <= 0 || p.RepeatOffsetProbDecay > 1 {
		return fmt.Errorf("repeat: RepeatOffsetProbDecay must be in (0, 1], got %g", p.RepeatOffsetProbDecay)
	}
	if err := checkProb("FirstGapProb", p.FirstGapProb); err != nil {
		return err
	}
	if err := checkProb("OtherGapProb", p.OtherGapProb); err != nil {
		return err
	}
	if p.RepeatEndProb+p.FirstGapProb*2 > 1 {
		return fmt.Errorf("repeat: RepeatEndProb + 2*FirstGapProb must not exceed 1")
	}
	return nil
}

func checkProb(name string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("repeat: %s must be in [0, 1], got %g", name, v)
	}
	return nil
}

// HasGaps reports whether the model allows insertions/deletions inside a
// repeat, which is the case whenever FirstGapProb is nonzero.
func (p Params) HasGaps() bool {
	return p.FirstGapProb > 0
}

// coefficients holds the derived transition weights shared by the
// probability engine (linear space) and the Viterbi engine (log space). Both
// engines fill the same fields, just with probabilities or their logarithms.
type coefficients struct {
	logSpace bool

	b2b float64
	f2b float64
	g2g float64

	oneGapScore float64 // oneGapProb in linear space
	endGapScore float64 // endGapProb in linear space; -Inf/0 sentinel when gaps are off

	f2f0 float64
	f2f1 float64
	f2f2 float64

	b2fGrowth       float64 // per-offset-step multiplier/increment toward longer periods
	b2fLast         float64 // weight of the longest-offset transition out of B
	b2fFirstWeight  float64 // weight of the shortest-offset transition out of B
	offsetProbDecay float64 // per-offset-step multiplier toward shorter periods, used by addTransitionCounts

	maxRepeatOffset int
}

// b2fFirst returns the background-to-shortest-foreground-offset transition
// weight.
func (c coefficients) b2fFirst() float64 {
	return c.b2fFirstWeight
}

// repeatOffsetProbDecay returns the per-offset-step decay multiplier used to
// walk from the shortest to the longest repeat period.
func (c coefficients) repeatOffsetProbDecay() float64 {
	return c.offsetProbDecay
}

// zero is the additive identity in the engine's working space: 0 for log
// space (probability 1), 1 for linear space... except transitions are
// multiplicative in linear space and additive in log space, so there is no
// single "zero" shared between both; newCoefficients instead picks the unit
// and combinator appropriate to logSpace directly.

// firstRepeatOffsetProb returns the relative weight of the period-W
// transition out of the background state, for decay factor m = 1/decay.
// When m == 1 all offsets are equally likely and the weight is 1/w;
// otherwise it is derived from the geometric series sum.
func firstRepeatOffsetProb(m float64, w int) float64 {
	if m < 1 || m > 1 {
		return (1 - m) / (1 - math.Pow(m, float64(w)))
	}
	return 1.0 / float64(w)
}

// newCoefficients derives the transition coefficients from p. When logSpace
// is true the coefficients are natural logarithms of probabilities (for the
// Viterbi engine); otherwise they are the probabilities themselves (for the
// forward-backward engine).
func newCoefficients(p Params, logSpace bool) coefficients {
	w := p.MaxRepeatOffset
	wrap := func(x float64) float64 {
		if logSpace {
			return safeLog(x)
		}
		return x
	}

	c := coefficients{
		logSpace:        logSpace,
		maxRepeatOffset: w,
		b2b:             wrap(1 - p.RepeatProb),
		f2b:             wrap(p.RepeatEndProb),
		g2g:             wrap(p.OtherGapProb),
		oneGapScore:     wrap(p.FirstGapProb * (1 - p.OtherGapProb)),
		f2f0:            wrap(1 - p.RepeatEndProb),
		f2f1:            wrap(1 - p.RepeatEndProb - p.FirstGapProb),
		f2f2:            wrap(1 - p.RepeatEndProb - p.FirstGapProb*2),
	}

	hasGaps := w > 1 && p.FirstGapProb > 0
	if hasGaps {
		c.endGapScore = wrap(p.FirstGapProb)
	} else if logSpace {
		c.endGapScore = math.Inf(-1)
	} else {
		c.endGapScore = 0
	}

	m := 1 / p.RepeatOffsetProbDecay
	last := firstRepeatOffsetProb(m, w)
	first := firstRepeatOffsetProb(p.RepeatOffsetProbDecay, w)
	c.offsetProbDecay = p.RepeatOffsetProbDecay
	if logSpace {
		c.b2fGrowth = safeLog(m)
		c.b2fLast = safeLog(p.RepeatProb * last)
		c.b2fFirstWeight = safeLog(p.RepeatProb * first)
	} else {
		c.b2fGrowth = m
		c.b2fLast = p.RepeatProb * last
		c.b2fFirstWeight = p.RepeatProb * first
	}

	return c
}

// hasGaps reports whether this coefficient set models insertions/deletions.
func (c coefficients) hasGaps() bool {
	if c.logSpace {
		return c.endGapScore > math.Inf(-1)
	}
	return c.endGapScore > 0
}

// safeLog is log(x), treating non-positive x as probability zero.
func safeLog(x float64) float64 {
	if x > 0 {
		return math.Log(x)
	}
	return math.Inf(-1)
}
