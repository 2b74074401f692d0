package constraint

import "fmt"

// Phase is the position of the run tracker within a line.
type Phase int

const (
	PhaseInitial  Phase = iota // no run in progress and no run just ended
	PhaseInRun                 // inside a run of selected cells
	PhaseAfterRun              // one unselected cell after a run
)

func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "initial"
	case PhaseInRun:
		return "in-run"
	case PhaseAfterRun:
		return "after-run"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Observation is what the tracker sees of one cell.
type Observation struct {
	Index    int
	Banned   bool
	Selected bool
}

// EffectKind says what the caller has to do after a step.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectBan
	EffectContradiction
)

// Effect is the single request produced by one step. Index is the ban
// target for EffectBan and the offending cell for EffectContradiction.
type Effect struct {
	Kind  EffectKind
	Index int
}

func ban(i int) Effect { return Effect{Kind: EffectBan, Index: i} }

// RunState is the transient per-line tracker state. The zero value is the
// initial state.
type RunState struct {
	Phase        Phase
	RunCount     int
	RunStart     int
	PrevRunCount int
}

// Line holds the fixed parameters of one scanned line.
type Line struct {
	Length   int
	Max      int
	Periodic bool
}

// Step advances the tracker by one observation. It never touches the grid;
// the caller applies the returned effect.
func (l Line) Step(s RunState, o Observation) (RunState, Effect) {
	switch s.Phase {
	case PhaseInitial:
		if !o.Selected {
			return s, Effect{}
		}
		s = RunState{Phase: PhaseInRun, RunCount: 1, RunStart: o.Index}
		// The boundary check on a run opened from Initial goes beyond the
		// classic three-state tracker. PrevRunCount is 0 here, so it only
		// fires for Max == 1, where it bans the cell left of the run.
		return s, l.boundary(s)

	case PhaseAfterRun:
		if !o.Selected {
			return RunState{}, Effect{}
		}
		s.Phase = PhaseInRun
		s.RunCount = 1
		s.RunStart = o.Index
		return s, l.boundary(s)

	case PhaseInRun:
		if o.Selected {
			s.RunCount++
			if s.RunCount > l.Max {
				return s, Effect{Kind: EffectContradiction, Index: o.Index}
			}
			return s, l.boundary(s)
		}
		var e Effect
		if s.RunCount == l.Max && !o.Banned {
			e = ban(o.Index)
		}
		return RunState{Phase: PhaseAfterRun, PrevRunCount: s.RunCount, RunStart: s.RunStart}, e
	}
	panic(fmt.Sprintf("constraint: no transition from %v", s.Phase))
}

// boundary bans the cell just before the current run when filling it would
// join the previous run and this one into a run of Max+1.
func (l Line) boundary(s RunState) Effect {
	if s.PrevRunCount+s.RunCount != l.Max {
		return Effect{}
	}
	if s.RunStart > 0 {
		return ban(s.RunStart - 1)
	}
	if l.Periodic {
		return ban(l.Length - 1)
	}
	return Effect{}
}

// Rescan is the number of leading cells a periodic line scans a second time
// so runs crossing the wrap boundary are seen whole.
func (l Line) Rescan() int {
	if !l.Periodic {
		return 0
	}
	return min(l.Max, l.Length)
}

// ScanLine runs a fresh tracker over one line. observe reports the state of
// cell i and ban receives every ban request. On contradiction the scan stops
// and the offending index is returned.
func ScanLine(l Line, observe func(i int) (banned, selected bool), ban func(i int)) (int, bool) {
	var s RunState
	var e Effect
	for k, n := 0, l.Length+l.Rescan(); k < n; k++ {
		i := k % l.Length
		banned, selected := observe(i)
		s, e = l.Step(s, Observation{Index: i, Banned: banned, Selected: selected})
		switch e.Kind {
		case EffectBan:
			ban(e.Index)
		case EffectContradiction:
			return e.Index, true
		}
	}
	return 0, false
}
