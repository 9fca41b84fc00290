package repeat

import "testing"

func decodeStates(t *testing.T, rf *RepeatFinder, n int) []State {
	t.Helper()
	states := make([]State, n)
	for i := 0; i < n; i++ {
		states[i] = rf.NextState()
	}
	return states
}

func TestRepeatFinderFindsLongDinucleotideRun(t *testing.T) {
	p := defaultTestParams()
	p.MaxRepeatOffset = 10
	em := dnaTestEmission(t, 0.5)

	// 8bp of unique flanking sequence, a long AT repeat, more flank.
	seq := encodeDNA(t, "GCTAGGCA"+repeatString("AT", 20)+"TTCCAGGA")

	rf, err := NewRepeatFinder(p, em)
	if err != nil {
		t.Fatalf("NewRepeatFinder: %v", err)
	}
	rf.CalcBestPathScore(seq)
	states := decodeStates(t, rf, len(seq))

	// Find the longest run of period-2 foreground states.
	longest, current := 0, 0
	for _, s := range states {
		if s == 2 {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}
	if longest < 14 {
		t.Fatalf("expected a period-2 run of at least 14 positions, got %d (states=%v)", longest, states)
	}
}

func TestRepeatFinderBackgroundOnlySequence(t *testing.T) {
	p := defaultTestParams()
	p.MaxRepeatOffset = 10
	em := dnaTestEmission(t, 0.5)
	seq := encodeDNA(t, "CGGGCTCAAATGTCATGCCTGTATGGGATGC")

	rf, err := NewRepeatFinder(p, em)
	if err != nil {
		t.Fatalf("NewRepeatFinder: %v", err)
	}
	rf.CalcBestPathScore(seq)
	states := decodeStates(t, rf, len(seq))

	backgroundCount := 0
	for _, s := range states {
		if s == 0 {
			backgroundCount++
		}
	}
	if backgroundCount < len(seq)/2 {
		t.Fatalf("expected mostly background states for a non-repetitive sequence, got %d/%d", backgroundCount, len(seq))
	}
}

func TestRepeatFinderCheckpointingDecodesEveryPosition(t *testing.T) {
	// A long sequence forces at least one checkpoint (minStoredPositions
	// grows roughly as sqrt(n)); this exercises makeCheckpoint/redoCheckpoint.
	p := defaultTestParams()
	p.MaxRepeatOffset = 5
	em := dnaTestEmission(t, 0.5)
	seq := encodeDNA(t, repeatString("ACGT", 100))

	rf, err := NewRepeatFinder(p, em)
	if err != nil {
		t.Fatalf("NewRepeatFinder: %v", err)
	}
	score := rf.CalcBestPathScore(seq)
	states := decodeStates(t, rf, len(seq))

	if len(states) != len(seq) {
		t.Fatalf("expected %d states, got %d", len(seq), len(states))
	}
	if score != score {
		t.Fatal("score is NaN")
	}
}

func repeatString(unit string, times int) string {
	out := make([]byte, 0, len(unit)*times)
	for i := 0; i < times; i++ {
		out = append(out, unit...)
	}
	return string(out)
}
