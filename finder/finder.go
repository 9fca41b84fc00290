/*
Package finder turns a RepeatFinder state stream into reporting-level
repeat records. The core Viterbi engine's contract ends at the state
sequence and best-path score (see repeat.RepeatFinder); grouping that
sequence into intervals, picking a dominant period, and recording
insertions is presentation work that lives here instead.
*/
package finder

import (
	"fmt"
	"regexp"

	"github.com/tantanbio/tantan/repeat"
	"github.com/tantanbio/tantan/transform"
)

// Match is a half-open [Start, End) interval annotated with a message,
// as produced by pattern-based sequence scanners.
type Match struct {
	Start   int
	End     int
	Message string
}

// Find runs every finder function over sequence and concatenates their
// matches.
func Find(sequence string, finderFunctions []func(string) []Match) []Match {
	var matches []Match
	for _, finderFunction := range finderFunctions {
		matches = append(matches, finderFunction(sequence)...)
	}
	return matches
}

// ForbiddenSequence is a generator for a finder function that flags any
// occurrence of the given literal sequences, on either strand.
func ForbiddenSequence(sequencesToRemove []string) func(string) []Match {
	return func(sequence string) []Match {
		var matches []Match
		for _, site := range sequencesToRemove {
			for _, variant := range []string{site, transform.ReverseComplement(site)} {
				re := regexp.MustCompile(variant)
				for _, loc := range re.FindAllStringIndex(sequence, -1) {
					matches = append(matches, Match{loc[0], loc[1], "Forbidden sequence: " + variant})
				}
			}
		}
		return matches
	}
}

// RepeatRecord describes one contiguous run of non-background states
// emitted by repeat.RepeatFinder: the half-open [Start, End) interval it
// spans, its dominant period (the most common foreground State within
// the run), and how many positions in the run were insertions relative
// to that period.
type RepeatRecord struct {
	Start, End     int
	DominantPeriod int
	Insertions     int
}

// String renders a RepeatRecord as a BED-like line: start, end, and a
// comma-delimited dominant-period/insertion annotation in the name field.
func (r RepeatRecord) String() string {
	return fmt.Sprintf("%d\t%d\tperiod=%d,inserts=%d", r.Start, r.End, r.DominantPeriod, r.Insertions)
}

// RepeatRecordsFromStates groups a decoded repeat.State stream (produced
// by calling RepeatFinder.NextState once per sequence position) into
// RepeatRecords. maxRepeatOffset is the W the states were decoded
// against: states in (0, maxRepeatOffset] are foreground at that period,
// states beyond maxRepeatOffset are insertions belonging to the
// enclosing run.
func RepeatRecordsFromStates(states []repeat.State, maxRepeatOffset int) []RepeatRecord {
	var records []RepeatRecord
	inRun := false
	var start int
	periodCounts := make(map[int]int)
	insertions := 0

	flush := func(end int) {
		if !inRun {
			return
		}
		dominant, best := 0, -1
		for period, count := range periodCounts {
			if count > best {
				dominant, best = period, count
			}
		}
		records = append(records, RepeatRecord{Start: start, End: end, DominantPeriod: dominant, Insertions: insertions})
		inRun = false
		insertions = 0
		for k := range periodCounts {
			delete(periodCounts, k)
		}
	}

	for i, s := range states {
		switch {
		case s == 0:
			flush(i)
		case int(s) <= maxRepeatOffset:
			if !inRun {
				inRun = true
				start = i
			}
			periodCounts[int(s)]++
		default:
			if !inRun {
				inRun = true
				start = i
			}
			insertions++
		}
	}
	flush(len(states))
	return records
}
