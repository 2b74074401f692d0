package constraint

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// scanMask runs ScanLine over a mask of 'T' (selected), 'B' (banned) and
// anything else (open). It returns the ban requests in order, the number of
// cells observed and where a contradiction stopped the scan (-1 if none).
func scanMask(mask string, bound int, periodic bool) (bans []int, observed int, stop int) {
	l := Line{Length: len(mask), Max: bound, Periodic: periodic}
	observe := func(i int) (bool, bool) {
		observed++
		return mask[i] == 'B', mask[i] == 'T'
	}
	stop = -1
	if i, bad := ScanLine(l, observe, func(i int) { bans = append(bans, i) }); bad {
		stop = i
	}
	return bans, observed, stop
}

func TestScanLineScenarios(t *testing.T) {
	cases := []struct {
		name     string
		mask     string
		bound    int
		periodic bool
		bans     []int
		stop     int
	}{
		{"run end ban", "TTFFFF", 2, false, []int{2}, -1},
		{"gap merge ban", "TFTFFF", 2, false, []int{1}, -1},
		{"immediate contradiction", "TTTFFF", 2, false, nil, 2},
		{"run at end of open line", "FFFFTT", 2, false, []int{3}, -1},
		{"run at end of periodic line", "FFFFTT", 2, true, []int{3, 0}, -1},
		{"run at start of periodic line", "TTFFFF", 2, true, []int{5, 2, 5}, -1},
		{"wrapped run reaching bound", "TTFFFT", 3, true, []int{4, 2}, -1},
		{"split runs on open line", "TTFFTT", 3, false, nil, -1},
		{"wrapped run over bound", "TTFFTT", 3, true, []int{3}, 1},
		{"already banned neighbour", "TTBFFF", 2, false, nil, -1},
		{"single cell bound", "FFTFFF", 1, false, []int{1, 3}, -1},
		{"single cell bound at start", "TFFFFF", 1, false, []int{1}, -1},
		{"two runs summing to bound", "TFTTFF", 3, false, []int{1}, -1},
		{"ring shorter than bound", "TF", 2, true, []int{1}, -1},
		{"ring shorter than bound, run last", "FT", 2, true, []int{0}, -1},
		{"ring as long as bound", "TTF", 3, true, []int{2}, -1},
		{"ring as long as bound, two runs", "TFT", 3, true, []int{1, 1}, -1},
		{"ring with room to spare", "TFF", 3, true, nil, -1},
		{"fully selected ring within bound", "TT", 3, true, []int{1}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bans, _, stop := scanMask(tc.mask, tc.bound, tc.periodic)
			if diff := cmp.Diff(tc.bans, bans); diff != "" {
				t.Errorf("bans mismatch (-want +got):\n%s", diff)
			}
			if stop != tc.stop {
				t.Errorf("stop = %d, want %d", stop, tc.stop)
			}
		})
	}
}

func TestScanLineStopsAtContradiction(t *testing.T) {
	_, observed, stop := scanMask("TTTFFF", 2, false)
	if stop != 2 {
		t.Fatalf("stop = %d, want 2", stop)
	}
	if observed != 3 {
		t.Fatalf("observed %d cells, want 3", observed)
	}
}

func TestScanLineRescanLength(t *testing.T) {
	cases := []struct {
		l    Line
		want int
	}{
		{Line{Length: 6, Max: 2}, 0},
		{Line{Length: 6, Max: 2, Periodic: true}, 2},
		{Line{Length: 3, Max: 5, Periodic: true}, 3},
	}
	for _, tc := range cases {
		if got := tc.l.Rescan(); got != tc.want {
			t.Errorf("%+v.Rescan() = %d, want %d", tc.l, got, tc.want)
		}
	}
	_, observed, _ := scanMask("FFFFFF", 2, true)
	if observed != 8 {
		t.Fatalf("periodic scan observed %d cells, want 8", observed)
	}
}

func TestStepTransitions(t *testing.T) {
	l := Line{Length: 6, Max: 2}
	s, e := l.Step(RunState{}, Observation{Index: 0})
	if s.Phase != PhaseInitial || e.Kind != EffectNone {
		t.Fatalf("open cell from initial: got %v %+v", s.Phase, e)
	}
	s, _ = l.Step(s, Observation{Index: 1, Selected: true})
	if s.Phase != PhaseInRun || s.RunCount != 1 || s.RunStart != 1 {
		t.Fatalf("run start: got %+v", s)
	}
	s, _ = l.Step(s, Observation{Index: 2})
	if s.Phase != PhaseAfterRun || s.PrevRunCount != 1 || s.RunCount != 0 {
		t.Fatalf("run end: got %+v", s)
	}
	s, _ = l.Step(s, Observation{Index: 3})
	if s != (RunState{}) {
		t.Fatalf("second open cell should reset, got %+v", s)
	}
}

func TestStepPanicsOnUnknownPhase(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown phase")
		}
	}()
	Line{Length: 3, Max: 1}.Step(RunState{Phase: Phase(42)}, Observation{})
}
