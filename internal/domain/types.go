package domain

import (
	"errors"
	"fmt"
)

// Tile identifies one value a cell may take.
type Tile string

// Point identifies a cell in the grid.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z) }

// Topology describes the shape of a grid.
type Topology struct {
	Kind      TopologyKind `json:"kind" yaml:"kind"`
	Width     int          `json:"width" yaml:"width"`
	Height    int          `json:"height" yaml:"height"`
	Depth     int          `json:"depth" yaml:"depth"`
	PeriodicX bool         `json:"periodicX,omitempty" yaml:"periodicX,omitempty"`
	PeriodicY bool         `json:"periodicY,omitempty" yaml:"periodicY,omitempty"`
	PeriodicZ bool         `json:"periodicZ,omitempty" yaml:"periodicZ,omitempty"`
}

// NewTopology2D returns a non-periodic cartesian grid of depth 1.
func NewTopology2D(width, height int) Topology {
	return Topology{Kind: Cartesian2D, Width: width, Height: height, Depth: 1}
}

// Validate checks dimensions. A zero depth is normalised to 1 by Normalize.
func (t Topology) Validate() error {
	if t.Width < 1 || t.Height < 1 || t.Depth < 1 {
		return fmt.Errorf("invalid topology size %dx%dx%d", t.Width, t.Height, t.Depth)
	}
	if t.Kind == Cartesian2D && t.Depth != 1 {
		return errors.New("cartesian2d topology must have depth 1")
	}
	return nil
}

// Normalize fills in a zero depth.
func (t Topology) Normalize() Topology {
	if t.Depth == 0 {
		t.Depth = 1
	}
	return t
}

// Size returns the number of cells along an axis.
func (t Topology) Size(a Axis) int {
	switch a {
	case AxisX:
		return t.Width
	case AxisY:
		return t.Height
	default:
		return t.Depth
	}
}

// Periodic reports whether the first and last cells along an axis are adjacent.
func (t Topology) Periodic(a Axis) bool {
	switch a {
	case AxisX:
		return t.PeriodicX
	case AxisY:
		return t.PeriodicY
	default:
		return t.PeriodicZ
	}
}

// Cells returns the total number of cells.
func (t Topology) Cells() int { return t.Width * t.Height * t.Depth }

// Contains reports whether p lies inside the grid.
func (t Topology) Contains(p Point) bool {
	return p.X >= 0 && p.X < t.Width && p.Y >= 0 && p.Y < t.Height && p.Z >= 0 && p.Z < t.Depth
}

// Index maps a point to its row-major cell index (x fastest).
func (t Topology) Index(p Point) int {
	return p.X + t.Width*(p.Y+t.Height*p.Z)
}

// PointAt is the inverse of Index.
func (t Topology) PointAt(i int) Point {
	x := i % t.Width
	i /= t.Width
	return Point{X: x, Y: i % t.Height, Z: i / t.Height}
}

// Rule bounds the length of consecutive runs of Tiles along Axes.
type Rule struct {
	Tiles    []Tile  `json:"tiles" yaml:"tiles"`
	MaxCount int     `json:"maxCount" yaml:"maxCount"`
	Axes     AxisSet `json:"axes,omitempty" yaml:"axes,omitempty"`
}

func (r Rule) Validate() error {
	if len(r.Tiles) == 0 {
		return errors.New("rule has no tiles")
	}
	if r.MaxCount < 1 {
		return fmt.Errorf("rule maxCount must be positive, got %d", r.MaxCount)
	}
	return nil
}

// Selects reports whether t is one of the rule's tiles.
func (r Rule) Selects(t Tile) bool {
	for _, x := range r.Tiles {
		if x == t {
			return true
		}
	}
	return false
}

// Sample is a persisted grid with the rules it was generated under.
// Cells are row-major (see Topology.Index); an empty tile marks an undecided cell.
type Sample struct {
	ID        string   `json:"id,omitempty"`
	Name      string   `json:"name,omitempty"`
	Seed      int64    `json:"seed,omitempty"`
	Topology  Topology `json:"topology"`
	Alphabet  []Tile   `json:"alphabet"`
	Rules     []Rule   `json:"rules,omitempty"`
	Cells     []Tile   `json:"cells"`
	CreatedAt int64    `json:"createdAt,omitempty"`
}

// At returns the tile at p, or "" when undecided.
func (s *Sample) At(p Point) Tile {
	return s.Cells[s.Topology.Index(p)]
}

// Check reports whether the cell slice matches the topology.
func (s *Sample) Check() error {
	if err := s.Topology.Validate(); err != nil {
		return err
	}
	if len(s.Cells) != s.Topology.Cells() {
		return fmt.Errorf("sample has %d cells, topology needs %d", len(s.Cells), s.Topology.Cells())
	}
	return nil
}

// SampleMeta is a lightweight listing entry.
type SampleMeta struct {
	ID        string       `json:"id"`
	Name      string       `json:"name,omitempty"`
	Kind      TopologyKind `json:"kind"`
	CreatedAt int64        `json:"createdAt"`
}
