package domain

import (
	"fmt"
	"strings"
)

// Axis names one coordinate direction of a grid.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// AllAxes lists the axes in scan order.
var AllAxes = [3]Axis{AxisX, AxisY, AxisZ}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

func (a Axis) MarshalText() ([]byte, error) {
	if a < AxisX || a > AxisZ {
		return nil, fmt.Errorf("invalid axis %d", int(a))
	}
	return []byte(a.String()), nil
}

func (a *Axis) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "x":
		*a = AxisX
	case "y":
		*a = AxisY
	case "z":
		*a = AxisZ
	default:
		return fmt.Errorf("unknown axis %q", string(b))
	}
	return nil
}

// AxisSet filters the axes a rule applies to. An empty set means all three.
type AxisSet []Axis

func (s AxisSet) Contains(a Axis) bool {
	if len(s) == 0 {
		return true
	}
	for _, x := range s {
		if x == a {
			return true
		}
	}
	return false
}

// TopologyKind tags the neighbourhood structure of a grid.
type TopologyKind int

const (
	Cartesian2D TopologyKind = iota
	Cartesian3D
	Hexagonal2D
	Hexagonal3D
)

func (k TopologyKind) String() string {
	switch k {
	case Cartesian2D:
		return "cartesian2d"
	case Cartesian3D:
		return "cartesian3d"
	case Hexagonal2D:
		return "hexagonal2d"
	case Hexagonal3D:
		return "hexagonal3d"
	default:
		return fmt.Sprintf("topology(%d)", int(k))
	}
}

// Cartesian reports whether cells have orthogonal neighbours along x, y and z.
func (k TopologyKind) Cartesian() bool {
	return k == Cartesian2D || k == Cartesian3D
}

func (k TopologyKind) MarshalText() ([]byte, error) {
	if k < Cartesian2D || k > Hexagonal3D {
		return nil, fmt.Errorf("invalid topology kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *TopologyKind) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "cartesian2d", "2d", "":
		*k = Cartesian2D
	case "cartesian3d", "3d":
		*k = Cartesian3D
	case "hexagonal2d":
		*k = Hexagonal2D
	case "hexagonal3d":
		*k = Hexagonal3D
	default:
		return fmt.Errorf("unknown topology kind %q", string(b))
	}
	return nil
}
