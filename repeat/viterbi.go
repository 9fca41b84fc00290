package repeat

import (
	"fmt"
	"math"
)

// State encodes the hidden state assigned to a sequence position by
// RepeatFinder. State 0 means background (non-repeat). A state in
// [1, MaxRepeatOffset] means the position is in a tandem repeat with that
// period. A state greater than MaxRepeatOffset means the position is an
// insertion relative to the repeat's period.
type State int

// RepeatFinder computes the single most probable path through the
// tandem-repeat HMM (Viterbi decoding) in log-probability space, using
// O(W*sqrt(N)) memory via periodic checkpointing instead of the O(W*N) a
// naive traceback matrix would need.
type RepeatFinder struct {
	coefficients
	matrix EmissionMatrix
	seq    []uint8

	dpScoresPerLetter int
	dpScores          []float64
	scoresPos         int // index into dpScores of the "current" row, in units of rows
	checkpointPos     int // index (in rows) of the most recent checkpoint
	scoresEndPos      int // index (in rows) one past the end of the allocated window

	seqPos int // current sequence position during both passes
	state  State
}

// NewRepeatFinder builds a RepeatFinder from model parameters and a
// log-space emission matrix (as produced by NewLogEmissionMatrix).
func NewRepeatFinder(p Params, em EmissionMatrix) (*RepeatFinder, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !em.LogSpace() {
		return nil, fmt.Errorf("repeat: RepeatFinder requires a log-space emission matrix")
	}
	c := newCoefficients(p, true)
	w := c.maxRepeatOffset
	perLetter := w + 1
	if c.hasGaps() {
		perLetter = w * 2
	}
	return &RepeatFinder{
		coefficients:      c,
		matrix:            em,
		dpScoresPerLetter: perLetter,
	}, nil
}

// minStoredPositions mirrors tantan's triangular checkpoint schedule: with s
// stored rows (one of them holding the values past the end of the sequence)
// we can cover a sequence of length up to (s-1) + (s-2) + ... + 1 = s(s-1)/2
// positions by re-deriving the rows between checkpoints, so it returns the
// smallest s with s(s-1)/2 >= n.
func minStoredPositions(n int) int {
	t := 0
	remaining := n
	for t < remaining {
		remaining -= t
		t++
	}
	return t + 1
}

// CalcBestPathScore runs the backward Viterbi recursion over seq and
// returns the log-probability of the best (most probable) path. Call
// NextState len(seq) times afterward to recover that path, one position at a
// time from the start of seq.
func (rf *RepeatFinder) CalcBestPathScore(seq []uint8) float64 {
	rf.seq = seq
	n := len(seq)

	numStored := minStoredPositions(n)
	numScores := numStored * rf.dpScoresPerLetter
	rf.dpScores = make([]float64, numScores)
	rf.scoresPos = 0
	rf.scoresEndPos = numStored
	rf.checkpointPos = 0
	rf.seqPos = n

	rf.initializeBackwardScores()

	for rf.seqPos > 0 {
		rf.seqPos--
		rf.scoresPos++
		if rf.scoresPos == rf.scoresEndPos {
			rf.makeCheckpoint()
		}
		rf.calcScoresForOneSequencePosition()
	}

	rf.state = 0
	return rf.row(rf.scoresPos)[0]
}

func (rf *RepeatFinder) row(pos int) []float64 {
	beg := pos * rf.dpScoresPerLetter
	return rf.dpScores[beg : beg+rf.dpScoresPerLetter]
}

func (rf *RepeatFinder) initializeBackwardScores() {
	row := rf.row(rf.scoresPos)
	row[0] = rf.b2b
	for i := 1; i <= rf.maxRepeatOffset; i++ {
		row[i] = rf.f2b
	}
	if rf.hasGaps() {
		for i := rf.maxRepeatOffset + 1; i < rf.dpScoresPerLetter; i++ {
			row[i] = math.Inf(-1)
		}
	}
}

func max3(x, y, z float64) float64 {
	return math.Max(math.Max(x, y), z)
}

func (rf *RepeatFinder) calcScoresForOneSequencePosition() {
	rf.copyRowForEmission()
	if rf.hasGaps() {
		rf.calcBackwardTransitionScoresWithGaps()
	} else {
		rf.calcBackwardTransitionScores()
	}
}

// copyRowForEmission copies the previous row forward and applies the
// emission scores for the symbol at the current sequence position, so that
// the transition recurrences below can update it in place. This mirrors
// calcEmissionScores reading oldScores = scoresPtr - dpScoresPerLetter. Each
// period-k foreground score is scored against the letter k positions
// earlier in the sequence, toward its start.
func (rf *RepeatFinder) copyRowForEmission() {
	old := rf.row(rf.scoresPos - 1)
	cur := rf.row(rf.scoresPos)
	w := rf.maxRepeatOffset
	symbol := rf.seq[rf.seqPos]

	maxOffset := rf.maxOffsetInSequence()

	cur[0] = old[0]
	i := 1
	for ; i <= maxOffset; i++ {
		cur[i] = old[i] + rf.matrix.Weight(symbol, rf.seq[rf.seqPos-i])
	}
	for ; i <= w; i++ {
		cur[i] = math.Inf(-1)
	}
	copy(cur[i:], old[i:])
}

func (rf *RepeatFinder) calcBackwardTransitionScoresWithGaps() {
	w := rf.maxRepeatOffset
	row := rf.row(rf.scoresPos)
	toBackground := rf.f2b + row[0]

	f := row[1]
	toForeground := f
	iv := row[1+w]
	row[1] = max3(toBackground, rf.f2f1+f, iv)
	d := rf.endGapScore + f
	toForeground += rf.b2fGrowth

	idx := 2
	for ; idx < w; idx++ {
		f = row[idx]
		toForeground = math.Max(toForeground, f)
		iv = row[idx+w]
		row[idx] = max3(toBackground, rf.f2f2+f, math.Max(iv, d))
		oneGapF := rf.oneGapScore + f
		row[idx-1+w] = math.Max(oneGapF, rf.g2g+iv)
		d = math.Max(oneGapF, rf.g2g+d)
		toForeground += rf.b2fGrowth
	}

	f = row[w]
	toForeground = math.Max(toForeground, f)
	row[w] = max3(toBackground, rf.f2f1+f, d)
	row[w-1+w] = rf.endGapScore + f

	row[0] = math.Max(rf.b2b+row[0], rf.b2fLast+toForeground)
}

func (rf *RepeatFinder) calcBackwardTransitionScores() {
	w := rf.maxRepeatOffset
	row := rf.row(rf.scoresPos)
	toBackground := rf.f2b + row[0]
	toForeground := math.Inf(-1)

	for idx := 1; idx <= w; idx++ {
		toForeground += rf.b2fGrowth
		f := row[idx]
		toForeground = math.Max(toForeground, f)
		row[idx] = math.Max(toBackground, rf.f2f0+f)
	}

	row[0] = math.Max(rf.b2b+row[0], rf.b2fLast+toForeground)
}

func (rf *RepeatFinder) makeCheckpoint() {
	rf.checkpointPos++
	copy(rf.row(rf.checkpointPos), rf.row(rf.scoresPos-1))
	rf.scoresPos = rf.checkpointPos + 1
}

// redoCheckpoint replays the backward recursion forward from the last
// checkpoint to refill the scores between it and scoresEndPos, which
// NextState has consumed one row at a time during traceback.
func (rf *RepeatFinder) redoCheckpoint() {
	rf.seqPos += rf.scoresEndPos - rf.scoresPos
	for rf.scoresPos < rf.scoresEndPos {
		rf.seqPos--
		rf.calcScoresForOneSequencePosition()
		rf.scoresPos++
	}
	rf.scoresPos--
	rf.checkpointPos--
}

// maxOffsetInSequence returns how many positions lie between seqBeg and the
// current position (capped at maxRepeatOffset): repeat periods longer than
// that cannot be scored because there is no earlier letter to compare to.
func (rf *RepeatFinder) maxOffsetInSequence() int {
	maxOffset := rf.seqPos
	if maxOffset > rf.maxRepeatOffset {
		maxOffset = rf.maxRepeatOffset
	}
	return maxOffset
}

func (rf *RepeatFinder) scoreWithEmission(row []float64, offset int) float64 {
	return row[offset] + rf.matrix.Weight(rf.seq[rf.seqPos], rf.seq[rf.seqPos-offset])
}

func (rf *RepeatFinder) offsetWithMaxScore() State {
	maxOffset := rf.maxOffsetInSequence()
	old := rf.row(rf.scoresPos)
	bestOffset := 0
	toForeground := math.Inf(-1)

	for i := 1; i <= maxOffset; i++ {
		toForeground += rf.b2fGrowth
		f := rf.scoreWithEmission(old, i)
		if f > toForeground {
			toForeground = f
			bestOffset = i
		}
	}
	return State(bestOffset)
}

func (rf *RepeatFinder) deletionWithMaxScore() State {
	old := rf.row(rf.scoresPos)
	bestOffset := 1
	f := rf.scoreWithEmission(old, 1)
	d := rf.endGapScore + f

	for i := 2; i < int(rf.state); i++ {
		d += rf.g2g
		f = rf.scoreWithEmission(old, i)
		if rf.oneGapScore+f > d {
			d = rf.oneGapScore + f
			bestOffset = i
		}
	}
	return State(bestOffset)
}

// NextState decodes the state of the next sequence position along the best
// path found by CalcBestPathScore. Call it exactly len(seq) times after
// CalcBestPathScore; the i-th call (0-based) returns the state of seq[i].
func (rf *RepeatFinder) NextState() State {
	row := rf.row(rf.scoresPos)
	maxScore := row[rf.state]
	if rf.scoresPos == rf.checkpointPos {
		rf.redoCheckpoint()
	}
	rf.scoresPos--
	old := rf.row(rf.scoresPos)

	w := rf.maxRepeatOffset
	switch {
	case rf.state == 0:
		if rf.b2b+old[0] < maxScore {
			rf.state = rf.offsetWithMaxScore()
		}
	case int(rf.state) <= w:
		if rf.f2b+old[0] >= maxScore {
			rf.state = 0
		} else if rf.hasGaps() {
			f := rf.scoreWithEmission(old, int(rf.state))
			switch {
			case rf.state == 1:
				if rf.f2f1+f < maxScore {
					rf.state += State(w)
				}
			case int(rf.state) == w:
				if rf.f2f1+f < maxScore {
					rf.state = rf.deletionWithMaxScore()
				}
			case rf.f2f2+f < maxScore:
				if old[int(rf.state)+w] >= maxScore {
					rf.state += State(w)
				} else {
					rf.state = rf.deletionWithMaxScore()
				}
			}
		}
	default:
		rf.state++
		if int(rf.state) == rf.dpScoresPerLetter || rf.g2g+old[rf.state] < maxScore {
			rf.state -= State(w)
		}
	}

	rf.seqPos++
	return rf.state
}
