package fastq

import (
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// TestReadWriteToRoundTrip follows the teacher's parse-then-reserialize
// unified-diff idiom (see upstream io_test.go and io/gff/gff_test.go): parse
// a record, write it back out, and diff the two texts instead of asserting
// on individual fields. A single optional key keeps the round trip
// byte-for-byte, since Optionals is a map and WriteTo does not sort its
// keys before emitting them.
func TestReadWriteToRoundTrip(t *testing.T) {
	const original = "@read1 ch=53\nACGTACGT\n+\nIIIIIIII\n"

	parser := NewParser(strings.NewReader(original), 1<<16)
	read, err := parser.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}

	var out strings.Builder
	if _, err := read.WriteTo(&out); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(out.String()),
		FromFile: "original",
		ToFile:   "round-tripped",
		Context:  2,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		t.Fatalf("GetUnifiedDiffString: %v", err)
	}
	if text != "" {
		t.Fatalf("round trip produced a diff:\n%s", text)
	}
}
