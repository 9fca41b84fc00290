/*
Package checks provides utilities to check for certain properties of a sequence.
*/
package checks

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/tantanbio/tantan/alphabet"
	"github.com/tantanbio/tantan/transform"
)

// IsPalindromic accepts a sequence of even length and returns if it is
// palindromic. More here - https://en.wikipedia.org/wiki/Palindromic_sequence
func IsPalindromic(sequence string) bool {
	return sequence == transform.ReverseComplement(sequence)
}

// GcContent checks the GcContent of a given sequence.
func GcContent(sequence string) float64 {
	sequence = strings.ToUpper(sequence)
	GuanineCount := strings.Count(sequence, "G")
	CytosineCount := strings.Count(sequence, "C")
	GuanineAndCytosinePercentage := float64(GuanineCount+CytosineCount) / float64(len(sequence))
	return GuanineAndCytosinePercentage
}

func IsDNA(seq string) bool {
	for _, base := range seq {
		switch base {
		case 'A', 'C', 'T', 'G':
			continue
		default:
			return false
		}
	}
	return true
}

func IsRNA(seq string) bool {
	for _, base := range seq {
		switch base {
		case 'A', 'C', 'U', 'G':
			continue
		default:
			return false
		}
	}
	return true
}

// RepeatUnitFrequency reports how often unit occurs as a k-mer within seq,
// as a fraction of all k-mers of that length observed. This is a cheap
// complement to a full repeat.RepeatFinder pass: a candidate repeat unit
// (e.g. the dominant period a RepeatFinder run already reported) whose
// frequency is implausibly low is more likely to be a coincidental match
// than a genuine tandem repeat.
func RepeatUnitFrequency(alpha *alphabet.Alphabet, seq, unit string) (float64, error) {
	kc := alphabet.NewKmerCounter(alpha, uint8(len(unit)))
	if err := alphabet.Observe(kc, strings.ToUpper(seq)); err != nil {
		return 0, err
	}
	return alphabet.LookupFrequency(kc, strings.ToUpper(unit))
}

// RepeatUnitSimilarity scores how close two occurrences of a candidate
// repeat unit are to each other, as 1 minus their Levenshtein distance
// normalized by the longer of the two lengths. Real tandem repeats rarely
// stay perfectly periodic end to end; this lets a caller flag a repeat
// whose first and last copies have drifted apart through substitutions or
// small indels, rather than treating every reported interval as an exact
// repetition of its dominant period.
func RepeatUnitSimilarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	distance := dmp.DiffLevenshtein(diffs)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(distance)/float64(maxLen)
}
