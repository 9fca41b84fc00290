package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tantanbio/tantan/align/matrix"
	"github.com/tantanbio/tantan/alphabet"
	"github.com/tantanbio/tantan/bio/fasta"
	"github.com/tantanbio/tantan/checks"
	"github.com/tantanbio/tantan/finder"
	"github.com/tantanbio/tantan/repeat"
	"github.com/urfave/cli/v2"
)

/******************************************************************************
File is structured as so:

	Top level commands:
		mask
		probs
		counts
		find

	Helper functions

This file contains a majority of the code that runs when command line
routines are run. The one exception is that argument flags and helper text
for each command are defined in main.go which then makes calls to their
corresponding function in this file. This keeps main.go clean and readable.

To ease development there's a common command line template in the section
below along with helper functions for parsing stdin, getting glob matches,
etc which every command ends up using.

https://github.com/urfave/cli/issues/731
******************************************************************************/

/******************************************************************************

Every subcommand below has two modes, pipe and fileio.

The function isPipe() detects if input is coming from a pipe like:

	cat repeats.fasta | tantan mask > masked.fasta

In this case the output goes directly to standard out and can be redirected
into a file.

If not from a pipe, the command instead globs its arguments for matching
files, then processes each one concurrently, writing a derived output file
next to each input.

For example:

	tantan mask *.fasta

will read every fasta file in the current directory and write its masked
counterpart to name.masked.fasta.

******************************************************************************/

func maskCommand(c *cli.Context) error {
	params, alpha, em, err := modelFromContext(c)
	if err != nil {
		return err
	}
	threshold := c.Float64("threshold")
	extended, maskTable := maskAlphabet(alpha)

	run := func(r io.Reader, w io.Writer) error {
		return eachRecord(r, alpha, func(record *fasta.Record, encoded []uint8) error {
			if _, err := repeat.MaskSequence(encoded, params, em, threshold, maskTable); err != nil {
				return fmt.Errorf("%s: %w", record.Identifier, err)
			}
			masked, err := decodeAll(extended, encoded)
			if err != nil {
				return fmt.Errorf("%s: %w", record.Identifier, err)
			}
			out := fasta.Record{Identifier: record.Identifier, Sequence: masked}
			_, err = out.WriteTo(w)
			return err
		})
	}

	if isPipe(c) {
		return run(c.App.Reader, c.App.Writer)
	}
	return eachFile(c, ".masked.fasta", run)
}

func probsCommand(c *cli.Context) error {
	params, alpha, em, err := modelFromContext(c)
	if err != nil {
		return err
	}

	run := func(r io.Reader, w io.Writer) error {
		return eachRecord(r, alpha, func(record *fasta.Record, encoded []uint8) error {
			probs := make([]float32, len(encoded))
			diag, err := repeat.GetProbabilities(encoded, params, em, probs)
			if err != nil {
				return fmt.Errorf("%s: %w", record.Identifier, err)
			}
			if diag.Suspect() {
				log.Printf("%s: forward/backward totals disagree, results may be numerically unreliable", record.Identifier)
			}
			fmt.Fprintf(w, ">%s gc=%.4f\n", record.Identifier, checks.GcContent(record.Sequence))
			for i, p := range probs {
				if i > 0 {
					fmt.Fprint(w, "\t")
				}
				fmt.Fprintf(w, "%.4f", p)
			}
			fmt.Fprintln(w)
			return nil
		})
	}

	if isPipe(c) {
		return run(c.App.Reader, c.App.Writer)
	}
	return eachFile(c, ".probs.tsv", run)
}

func countsCommand(c *cli.Context) error {
	params, alpha, em, err := modelFromContext(c)
	if err != nil {
		return err
	}

	run := func(r io.Reader, w io.Writer) error {
		return eachRecord(r, alpha, func(record *fasta.Record, encoded []uint8) error {
			t := make([]float64, params.MaxRepeatOffset+1)
			if _, err := repeat.CountTransitions(encoded, params, em, t); err != nil {
				return fmt.Errorf("%s: %w", record.Identifier, err)
			}
			fmt.Fprint(w, record.Identifier)
			for _, v := range t {
				fmt.Fprintf(w, "\t%.6f", v)
			}
			fmt.Fprintln(w)
			return nil
		})
	}

	if isPipe(c) {
		return run(c.App.Reader, c.App.Writer)
	}
	return eachFile(c, ".counts.tsv", run)
}

func findCommand(c *cli.Context) error {
	params, alpha, em, err := modelFromContext(c)
	if err != nil {
		return err
	}

	run := func(r io.Reader, w io.Writer) error {
		rf, err := repeat.NewRepeatFinder(params, em)
		if err != nil {
			return err
		}
		return eachRecord(r, alpha, func(record *fasta.Record, encoded []uint8) error {
			rf.CalcBestPathScore(encoded)
			states := make([]repeat.State, len(encoded))
			for i := range states {
				states[i] = rf.NextState()
			}
			for _, rec := range finder.RepeatRecordsFromStates(states, params.MaxRepeatOffset) {
				unit := repeatUnit(record.Sequence, rec)
				palindromic, freq, similarity := false, 0.0, 1.0
				if unit != "" {
					palindromic = checks.IsPalindromic(unit)
					var err error
					freq, err = checks.RepeatUnitFrequency(alpha, record.Sequence, unit)
					if err != nil {
						freq = 0
					}
					similarity = checks.RepeatUnitSimilarity(unit, lastRepeatUnit(record.Sequence, rec))
				}
				fmt.Fprintf(w, "%s\t%s\tpalindromic=%v\tunit_freq=%.4f\tunit_similarity=%.4f\n",
					record.Identifier, rec.String(), palindromic, freq, similarity)
			}
			return nil
		})
	}

	if isPipe(c) {
		return run(c.App.Reader, c.App.Writer)
	}
	return eachFile(c, ".repeats.bed", run)
}

// repeatUnit extracts the first DominantPeriod bases of rec's interval from
// sequence, the single repeat unit checks.IsPalindromic and
// checks.RepeatUnitFrequency are evaluated against. It returns "" when the
// record carries no usable period (an all-insertion run, or one that runs
// past the end of sequence), in which case the caller skips those checks.
func repeatUnit(sequence string, rec finder.RepeatRecord) string {
	end := rec.Start + rec.DominantPeriod
	if rec.DominantPeriod <= 0 || end <= rec.Start || end > len(sequence) {
		return ""
	}
	return strings.ToUpper(sequence[rec.Start:end])
}

// lastRepeatUnit extracts the last DominantPeriod bases of rec's interval,
// the copy repeatUnit's checks.RepeatUnitSimilarity comparison is measured
// against. Returns the first copy, as repeatUnit does (so the comparison
// scores as identical), when the interval isn't long enough to hold two
// distinct copies.
func lastRepeatUnit(sequence string, rec finder.RepeatRecord) string {
	start := rec.End - rec.DominantPeriod
	if rec.DominantPeriod <= 0 || start < rec.Start+rec.DominantPeriod || start < 0 || rec.End > len(sequence) {
		return repeatUnit(sequence, rec)
	}
	return strings.ToUpper(sequence[start:rec.End])
}

/******************************************************************************

Model construction helpers.

******************************************************************************/

// modelFromContext builds the repeat model parameters, the alphabet
// sequences are encoded against, and the log-space emission matrix derived
// from a default scoring matrix over that alphabet, all from the flags
// shared by every subcommand (see modelFlags in main.go).
func modelFromContext(c *cli.Context) (repeat.Params, *alphabet.Alphabet, repeat.EmissionMatrix, error) {
	alpha, err := alphabetFromFlag(c.String("alphabet"))
	if err != nil {
		return repeat.Params{}, nil, repeat.EmissionMatrix{}, err
	}

	params := repeat.Params{
		MaxRepeatOffset:       c.Int("w"),
		RepeatProb:            c.Float64("r"),
		RepeatEndProb:         c.Float64("e"),
		RepeatOffsetProbDecay: c.Float64("decay"),
		FirstGapProb:          c.Float64("gap"),
		OtherGapProb:          c.Float64("gapext"),
	}
	if err := params.Validate(); err != nil {
		return repeat.Params{}, nil, repeat.EmissionMatrix{}, err
	}

	sm, err := defaultSubstitutionMatrix(alpha, c.Int("match"), c.Int("mismatch"))
	if err != nil {
		return repeat.Params{}, nil, repeat.EmissionMatrix{}, err
	}
	em, err := repeat.NewLogEmissionMatrix(sm, alpha, c.Float64("lambda"))
	if err != nil {
		return repeat.Params{}, nil, repeat.EmissionMatrix{}, err
	}

	return params, alpha, em, nil
}

func alphabetFromFlag(name string) (*alphabet.Alphabet, error) {
	switch strings.ToLower(name) {
	case "dna":
		return alphabet.DNA, nil
	case "rna":
		return alphabet.RNA, nil
	case "protein":
		return alphabet.Protein, nil
	default:
		return nil, fmt.Errorf("unknown alphabet %q, want dna, rna, or protein", name)
	}
}

// defaultSubstitutionMatrix builds a plain identity scoring matrix: match
// for identical symbols, mismatch for everything else. Real scoring
// matrices (e.g. BLOSUM for protein) can be substituted by any caller of the
// repeat package directly; the command line tool only needs something
// reasonable to scale by lambda.
func defaultSubstitutionMatrix(alpha *alphabet.Alphabet, match, mismatch int) (*matrix.SubstitutionMatrix, error) {
	return matrix.NewIdentityMatrix(alpha, match, mismatch)
}

// maskAlphabet returns an alphabet extended with a lower-case symbol for
// every symbol of alpha, plus the repeat.MaskTable that maps each original
// encoded symbol to its lower-case counterpart. Masking then only has to
// touch the encoded sequence repeat.MaskSequence already operates on;
// decoding against the extended alphabet recovers the usual
// upper/lower-case masked fasta convention.
func maskAlphabet(alpha *alphabet.Alphabet) (*alphabet.Alphabet, repeat.MaskTable) {
	extended, offsets := alpha.Lowercase()
	table := repeat.IdentityMaskTable()
	for i, lower := range offsets {
		table[i] = lower
	}
	return extended, table
}

func decodeAll(alpha *alphabet.Alphabet, encoded []uint8) (string, error) {
	var sb strings.Builder
	sb.Grow(len(encoded))
	for _, b := range encoded {
		symbol, err := alpha.Decode(int(b))
		if err != nil {
			return "", err
		}
		sb.WriteString(symbol)
	}
	return sb.String(), nil
}

/******************************************************************************

I/O helpers shared by every subcommand.

******************************************************************************/

// eachRecord parses fasta records from r, encodes each sequence against
// alpha, and invokes fn with the successfully encoded ones. A record whose
// sequence contains a symbol outside alpha is skipped with a warning
// instead of aborting the rest of the file.
func eachRecord(r io.Reader, alpha *alphabet.Alphabet, fn func(record *fasta.Record, encoded []uint8) error) error {
	parser := fasta.NewParser(r, 1<<20)
	for {
		record, err := parser.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		encoded, err := record.EncodedSequence(alpha)
		if err != nil {
			log.Printf("skipping %s: %v", record.Identifier, err)
			continue
		}
		if err := fn(record, encoded); err != nil {
			return err
		}
	}
}

// eachFile globs every argument in c into a list of input files, then
// concurrently runs run over each one, writing its result to a derived
// output path ending in outputSuffix.
func eachFile(c *cli.Context, outputSuffix string, run func(r io.Reader, w io.Writer) error) error {
	matches := getMatches(c)
	if len(matches) == 0 {
		return fmt.Errorf("no input files matched")
	}

	var wg sync.WaitGroup
	for _, match := range matches {
		wg.Add(1)
		go func(match string) {
			defer wg.Done()
			if err := runOnFile(match, outputSuffix, run); err != nil {
				fmt.Fprintf(c.App.ErrWriter, "%s: %v\n", match, err)
			}
		}(match)
	}
	wg.Wait()

	return nil
}

func runOnFile(match, outputSuffix string, run func(r io.Reader, w io.Writer) error) error {
	in, err := os.Open(match)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(outputPathFor(match, outputSuffix))
	if err != nil {
		return err
	}
	defer out.Close()

	return run(in, out)
}

func outputPathFor(match, suffix string) string {
	return strings.TrimSuffix(match, filepath.Ext(match)) + suffix
}

// isPipe reports whether input is coming from something other than an
// interactive terminal: either a real pipe on stdin, or a Reader the caller
// has swapped in (as tests do).
func isPipe(c *cli.Context) bool {
	info, err := os.Stdin.Stat()
	if err == nil && info.Mode()&os.ModeNamedPipe != 0 {
		return true
	}
	return c.App.Reader != os.Stdin
}

// getMatches globs every positional argument, returning the unique set of
// matched file paths.
func getMatches(c *cli.Context) []string {
	var matches []string
	for argIndex := 0; argIndex < c.Args().Len(); argIndex++ {
		match, _ := filepath.Glob(c.Args().Get(argIndex))
		matches = append(matches, match...)
	}
	return uniqueNonEmptyElementsOf(matches)
}

// uniqueNonEmptyElementsOf removes duplicate and empty strings from a list,
// used to reduce redundancy in filepath pattern matching.
func uniqueNonEmptyElementsOf(s []string) []string {
	seen := make(map[string]bool, len(s))
	var unique []string
	for _, elem := range s {
		if elem == "" || seen[elem] {
			continue
		}
		seen[elem] = true
		unique = append(unique, elem)
	}
	return unique
}
