package validator

import (
	"context"
	"sort"

	"svw.info/maxrun/internal/domain"
)

// RunValidator checks decided cells directly, without going through a
// propagator, so it can be used to audit solver output.
type RunValidator struct{}

func New() *RunValidator { return &RunValidator{} }

// Validate reports every cell that belongs to a run longer than its rule
// allows. Undecided cells break runs.
func (v *RunValidator) Validate(ctx context.Context, s *domain.Sample) (bool, []domain.Point, error) {
	if err := s.Check(); err != nil {
		return false, nil, err
	}
	t := s.Topology
	bad := make([]bool, t.Cells())
	for _, r := range s.Rules {
		if err := r.Validate(); err != nil {
			return false, nil, err
		}
		for _, axis := range domain.AllAxes {
			if !r.Axes.Contains(axis) {
				continue
			}
			if err := ctx.Err(); err != nil {
				return false, nil, err
			}
			eachLine(t, axis, func(line []domain.Point) {
				sel := make([]bool, len(line))
				for i, p := range line {
					sel[i] = r.Selects(s.At(p))
				}
				for _, i := range overlong(sel, r.MaxCount, t.Periodic(axis)) {
					bad[t.Index(line[i])] = true
				}
			})
		}
	}
	conf := make([]domain.Point, 0, 8)
	for i, b := range bad {
		if b {
			conf = append(conf, t.PointAt(i))
		}
	}
	sort.Slice(conf, func(i, j int) bool { return t.Index(conf[i]) < t.Index(conf[j]) })
	return len(conf) == 0, conf, nil
}

// eachLine calls fn with the cells of every line along axis.
func eachLine(t domain.Topology, axis domain.Axis, fn func([]domain.Point)) {
	n := t.Size(axis)
	line := make([]domain.Point, n)
	for z := 0; z < t.Depth; z++ {
		for y := 0; y < t.Height; y++ {
			for x := 0; x < t.Width; x++ {
				start := domain.Point{X: x, Y: y, Z: z}
				// only visit each line once, from its first cell
				switch axis {
				case domain.AxisX:
					if x != 0 {
						continue
					}
				case domain.AxisY:
					if y != 0 {
						continue
					}
				default:
					if z != 0 {
						continue
					}
				}
				for i := 0; i < n; i++ {
					p := start
					switch axis {
					case domain.AxisX:
						p.X = i
					case domain.AxisY:
						p.Y = i
					default:
						p.Z = i
					}
					line[i] = p
				}
				fn(line)
			}
		}
	}
}

// overlong returns the indexes of sel that lie in a run longer than bound.
// On a periodic line a run may wrap; a line selected end to end is a single
// run of its own length.
func overlong(sel []bool, bound int, periodic bool) []int {
	n := len(sel)
	gap := -1
	for i, s := range sel {
		if !s {
			gap = i
			break
		}
	}
	if gap < 0 {
		if n <= bound {
			return nil
		}
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	// Start right after a gap so wrapped runs are contiguous in the walk.
	first := 0
	if periodic {
		first = gap + 1
	}
	var out, run []int
	flush := func() {
		if len(run) > bound {
			out = append(out, run...)
		}
		run = run[:0]
	}
	for k := 0; k < n; k++ {
		i := (first + k) % n
		if sel[i] {
			run = append(run, i)
			continue
		}
		flush()
	}
	flush()
	return out
}
