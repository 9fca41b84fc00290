/*
Package variants contains a function for generating all variants of a sequence.

Sometimes sequencers will only give you an *estimate* of what the basepair at
a given position is. This package provides a function for generating all
possible deterministic variants of a sequence given a sequence
with ambiguous bases.
*/
package variants

import (
	"errors"
	"strings"
)

// iupacBases maps each IUPAC nucleotide ambiguity code to the set of
// unambiguous bases it can stand for. Single-base entries are included so
// that callers can treat every symbol of a sequence uniformly.
var iupacBases = map[rune][]rune{
	'G': {'G'},
	'A': {'A'},
	'T': {'T'},
	'C': {'C'},
	'R': {'G', 'A'},
	'Y': {'T', 'C'},
	'M': {'A', 'C'},
	'K': {'G', 'T'},
	'S': {'G', 'C'},
	'W': {'A', 'T'},
	'H': {'A', 'C', 'T'},
	'B': {'G', 'T', 'C'},
	'V': {'G', 'C', 'A'},
	'D': {'G', 'A', 'T'},
	'N': {'G', 'A', 'T', 'C'},
}

// iupacAAs maps each IUPAC amino acid ambiguity code to the set of standard
// residues it can stand for, alongside the 20 standard residues mapped to
// themselves.
// https://en.wikipedia.org/wiki/Amino_acid#Table_of_standard_amino_acid_abbreviations_and_properties
var iupacAAs = map[rune][]rune{
	'A': {'A'}, 'R': {'R'}, 'N': {'N'}, 'D': {'D'}, 'C': {'C'},
	'Q': {'Q'}, 'E': {'E'}, 'G': {'G'}, 'H': {'H'}, 'I': {'I'},
	'L': {'L'}, 'K': {'K'}, 'M': {'M'}, 'F': {'F'}, 'P': {'P'},
	'S': {'S'}, 'T': {'T'}, 'W': {'W'}, 'Y': {'Y'}, 'V': {'V'},
	'B': {'N', 'D'},
	'Z': {'Q', 'E'},
	'J': {'L', 'I'},
	'X': {'A', 'R', 'N', 'D', 'C', 'Q', 'E', 'G', 'H', 'I', 'L', 'K', 'M', 'F', 'P', 'S', 'T', 'W', 'Y', 'V'},
}

// IUPAC2Bases returns the IUPAC nucleotide ambiguity table used by
// AllVariantsIUPAC and by callers needing the same mapping, such as
// pattern-to-regexp translation and random sequence generation from an
// ambiguous template.
func IUPAC2Bases() map[rune][]rune {
	return iupacBases
}

// IUPAC2AAs returns the IUPAC amino acid ambiguity table, the protein
// counterpart of IUPAC2Bases.
func IUPAC2AAs() map[rune][]rune {
	return iupacAAs
}

// AllVariantsIUPAC takes a string as input
// and returns all iupac variants as output
func AllVariantsIUPAC(seq string) ([]string, error) {
	seqVariantList := [][]rune{}
	seqVariants := []string{}

	for _, s := range strings.ToUpper(seq) {
		variantsIUPAC, ok := iupacBases[s]
		if ok {
			seqVariantList = append(seqVariantList, variantsIUPAC)
		} else {
			return seqVariants, errors.New("Error:" + string(s) + " is not a supported IUPAC character")
		}

	}

	cartesianProducts := cartRune(seqVariantList...)
	for _, product := range cartesianProducts {
		seqVariants = append(seqVariants, string(product))
	}
	return seqVariants, nil
}
func cartRune(inList ...[]rune) [][]rune {
	// An iteratitive approach to calculate Cartesian product of two or more lists
	// Adapted from https://rosettacode.org/wiki/Cartesian_product_of_two_or_more_lists
	// supposedly "minimizes allocations and computes and fills the result sequentially"

	var possibleVariants int = 1 // a counter used to determine the possible number of variants
	for _, inList := range inList {
		possibleVariants *= len(inList)
	}
	if possibleVariants == 0 {
		return nil // in the future this could be part of an error return?
	}
	allVariants := make([][]rune, possibleVariants)              // this is the 2D slice where all variants will be stored
	variantHolders := make([]rune, possibleVariants*len(inList)) // this is an empty slice with a length totaling the size of all input characters
	variantChoices := make([]int, len(inList))                   // these will be all the possible variants
	start := 0
	for variant := range allVariants {
		end := start + len(inList) // define end point
		variantHolder := variantHolders[start:end]

		allVariants[variant] = variantHolder

		start = end // start at end point

		for variantChoicesIndex, variantChoice := range variantChoices {
			variantHolder[variantChoicesIndex] = inList[variantChoicesIndex][variantChoice]
		}
		for variantChoicesIndex := len(variantChoices) - 1; variantChoicesIndex >= 0; variantChoicesIndex-- {
			variantChoices[variantChoicesIndex]++
			if variantChoices[variantChoicesIndex] < len(inList[variantChoicesIndex]) {
				break
			}
			variantChoices[variantChoicesIndex] = 0
		}
	}
	return allVariants
}
