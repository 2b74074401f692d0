package constraint

import (
	"svw.info/maxrun/internal/domain"
	"svw.info/maxrun/internal/ports"
)

// axisScan enumerates the lines of a grid along one axis. point maps an
// index along the axis plus the two fixed coordinates to a cell.
type axisScan struct {
	axis   domain.Axis
	line   Line
	outerA int
	outerB int
	point  func(i, a, b int) domain.Point
}

func newAxisScan(t domain.Topology, axis domain.Axis, bound int) axisScan {
	s := axisScan{
		axis: axis,
		line: Line{Length: t.Size(axis), Max: bound, Periodic: t.Periodic(axis)},
	}
	switch axis {
	case domain.AxisX:
		s.outerA, s.outerB = t.Height, t.Depth
		s.point = func(i, a, b int) domain.Point { return domain.Point{X: i, Y: a, Z: b} }
	case domain.AxisY:
		s.outerA, s.outerB = t.Width, t.Depth
		s.point = func(i, a, b int) domain.Point { return domain.Point{X: a, Y: i, Z: b} }
	default:
		s.outerA, s.outerB = t.Width, t.Height
		s.point = func(i, a, b int) domain.Point { return domain.Point{X: a, Y: b, Z: i} }
	}
	return s
}

// run scans every line and stops at the first contradiction, returning the
// cell where it was found.
func (s axisScan) run(p ports.Propagator, set ports.TileSet) (domain.Point, bool) {
	for b := 0; b < s.outerB; b++ {
		for a := 0; a < s.outerA; a++ {
			observe := func(i int) (bool, bool) {
				return p.BannedSelected(s.point(i, a, b), set)
			}
			banAt := func(i int) {
				p.Ban(s.point(i, a, b), set)
			}
			if i, bad := ScanLine(s.line, observe, banAt); bad {
				return s.point(i, a, b), true
			}
		}
	}
	return domain.Point{}, false
}
