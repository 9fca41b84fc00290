package finder

import (
	"fmt"
	"testing"

	"github.com/tantanbio/tantan/repeat"
)

func ExampleForbiddenSequence() {
	sequence := "AAAAAATCGGTCGTAAAAAATT"
	var functions []func(string) []Match
	functions = append(functions, ForbiddenSequence([]string{"AAAAAA"}))

	matches := Find(sequence, functions)
	fmt.Println(matches)
	// Output: [{0 6 Forbidden sequence: AAAAAA} {14 20 Forbidden sequence: AAAAAA}]
}

func TestRepeatRecordsFromStatesSingleRun(t *testing.T) {
	states := []repeat.State{0, 0, 2, 2, 2, 2, 0, 0}
	records := RepeatRecordsFromStates(states, 10)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d: %v", len(records), records)
	}
	r := records[0]
	if r.Start != 2 || r.End != 6 {
		t.Fatalf("expected run [2,6), got [%d,%d)", r.Start, r.End)
	}
	if r.DominantPeriod != 2 {
		t.Fatalf("expected dominant period 2, got %d", r.DominantPeriod)
	}
	if r.Insertions != 0 {
		t.Fatalf("expected 0 insertions, got %d", r.Insertions)
	}
}

func TestRepeatRecordsFromStatesMultipleRuns(t *testing.T) {
	states := []repeat.State{0, 3, 3, 0, 0, 4, 4, 4, 0}
	records := RepeatRecordsFromStates(states, 10)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d: %v", len(records), records)
	}
	if records[0].Start != 1 || records[0].End != 3 || records[0].DominantPeriod != 3 {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if records[1].Start != 5 || records[1].End != 8 || records[1].DominantPeriod != 4 {
		t.Fatalf("unexpected second record: %+v", records[1])
	}
}

func TestRepeatRecordsFromStatesCountsInsertions(t *testing.T) {
	w := 4
	// state w+1 (5) is an insertion relative to period 4.
	states := []repeat.State{0, repeat.State(w), repeat.State(w + 1), repeat.State(w), 0}
	records := RepeatRecordsFromStates(states, w)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Insertions != 1 {
		t.Fatalf("expected 1 insertion, got %d", records[0].Insertions)
	}
	if records[0].DominantPeriod != w {
		t.Fatalf("expected dominant period %d, got %d", w, records[0].DominantPeriod)
	}
}

func TestRepeatRecordsFromStatesNoRuns(t *testing.T) {
	states := []repeat.State{0, 0, 0, 0}
	records := RepeatRecordsFromStates(states, 10)
	if len(records) != 0 {
		t.Fatalf("expected no records for an all-background state stream, got %d", len(records))
	}
}

func TestRepeatRecordStringFormat(t *testing.T) {
	r := RepeatRecord{Start: 10, End: 20, DominantPeriod: 2, Insertions: 1}
	want := "10\t20\tperiod=2,inserts=1"
	if got := r.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
