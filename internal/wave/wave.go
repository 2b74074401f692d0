// Package wave is an in-memory tile-assignment state: every cell keeps the
// set of tiles still possible for it as a bitmask over the alphabet.
package wave

import (
	"errors"
	"fmt"
	"math/bits"

	"svw.info/maxrun/internal/domain"
	"svw.info/maxrun/internal/ports"
)

// MaxTiles is the largest alphabet a wave can hold.
const MaxTiles = 64

var (
	ErrUnknownTile   = errors.New("unknown tile")
	ErrEmptyAlphabet = errors.New("empty tile alphabet")
	ErrTooManyTiles  = fmt.Errorf("alphabet larger than %d tiles", MaxTiles)
)

type tileSet struct {
	mask  uint64
	tiles []domain.Tile
}

func (s *tileSet) Tiles() []domain.Tile { return s.tiles }

// Wave implements ports.Propagator.
type Wave struct {
	topo          domain.Topology
	alphabet      []domain.Tile
	index         map[domain.Tile]int
	cells         []uint64
	contradiction bool
	changes       int
}

// New returns a wave where every cell may hold any tile of alphabet.
func New(t domain.Topology, alphabet []domain.Tile) (*Wave, error) {
	t = t.Normalize()
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if len(alphabet) == 0 {
		return nil, ErrEmptyAlphabet
	}
	if len(alphabet) > MaxTiles {
		return nil, ErrTooManyTiles
	}
	w := &Wave{
		topo:     t,
		alphabet: append([]domain.Tile(nil), alphabet...),
		index:    make(map[domain.Tile]int, len(alphabet)),
		cells:    make([]uint64, t.Cells()),
	}
	for i, tile := range alphabet {
		if _, dup := w.index[tile]; dup {
			return nil, fmt.Errorf("duplicate tile %q", tile)
		}
		w.index[tile] = i
	}
	full := ^uint64(0) >> (MaxTiles - len(alphabet))
	for i := range w.cells {
		w.cells[i] = full
	}
	return w, nil
}

// FromSample builds a wave with the sample's decided cells already selected.
func FromSample(s *domain.Sample) (*Wave, error) {
	w, err := New(s.Topology, s.Alphabet)
	if err != nil {
		return nil, err
	}
	if len(s.Cells) == 0 {
		return w, nil
	}
	if len(s.Cells) != len(w.cells) {
		return nil, fmt.Errorf("sample has %d cells, topology needs %d", len(s.Cells), len(w.cells))
	}
	for i, tile := range s.Cells {
		if tile == "" {
			continue
		}
		if err := w.Select(w.topo.PointAt(i), tile); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (w *Wave) Topology() domain.Topology { return w.topo }

func (w *Wave) CreateTileSet(tiles []domain.Tile) (ports.TileSet, error) {
	s := &tileSet{tiles: append([]domain.Tile(nil), tiles...)}
	for _, t := range tiles {
		i, ok := w.index[t]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownTile, t)
		}
		s.mask |= 1 << i
	}
	return s, nil
}

func (w *Wave) BannedSelected(p domain.Point, set ports.TileSet) (banned, selected bool) {
	m := set.(*tileSet).mask
	d := w.cells[w.topo.Index(p)]
	return d&m == 0, d != 0 && d&^m == 0
}

func (w *Wave) Ban(p domain.Point, set ports.TileSet) {
	w.restrict(w.topo.Index(p), ^set.(*tileSet).mask)
}

func (w *Wave) SetContradiction() { w.contradiction = true }

func (w *Wave) Contradiction() bool { return w.contradiction }

// Changes counts domain reductions so far; callers compare it across a
// propagation round to detect a fixpoint.
func (w *Wave) Changes() int { return w.changes }

func (w *Wave) restrict(i int, keep uint64) {
	d := w.cells[i] & keep
	if d == w.cells[i] {
		return
	}
	w.cells[i] = d
	w.changes++
	if d == 0 {
		w.contradiction = true
	}
}

// Select collapses p to a single tile.
func (w *Wave) Select(p domain.Point, tile domain.Tile) error {
	if !w.topo.Contains(p) {
		return fmt.Errorf("point %v outside grid", p)
	}
	i, ok := w.index[tile]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownTile, tile)
	}
	w.restrict(w.topo.Index(p), 1<<i)
	return nil
}

// Options lists the tiles still possible at p in alphabet order.
func (w *Wave) Options(p domain.Point) []domain.Tile {
	d := w.cells[w.topo.Index(p)]
	out := make([]domain.Tile, 0, bits.OnesCount64(d))
	for d != 0 {
		i := bits.TrailingZeros64(d)
		out = append(out, w.alphabet[i])
		d &= d - 1
	}
	return out
}

// Count returns the number of tiles still possible at p.
func (w *Wave) Count(p domain.Point) int {
	return bits.OnesCount64(w.cells[w.topo.Index(p)])
}

// Undecided returns the cell with the fewest remaining tiles above one,
// preferring the lowest index. ok is false once every cell is decided.
func (w *Wave) Undecided() (p domain.Point, ok bool) {
	best, bestN := -1, MaxTiles+1
	for i, d := range w.cells {
		n := bits.OnesCount64(d)
		if n > 1 && n < bestN {
			best, bestN = i, n
			if n == 2 {
				break
			}
		}
	}
	if best < 0 {
		return domain.Point{}, false
	}
	return w.topo.PointAt(best), true
}

// Decided reports whether every cell holds exactly one tile.
func (w *Wave) Decided() bool {
	for _, d := range w.cells {
		if bits.OnesCount64(d) != 1 {
			return false
		}
	}
	return true
}

// Clone copies the wave so a guess can be undone by discarding the copy.
func (w *Wave) Clone() *Wave {
	c := *w
	c.cells = append([]uint64(nil), w.cells...)
	return &c
}

// Sample exports the decided cells; undecided cells are left empty.
func (w *Wave) Sample() *domain.Sample {
	s := &domain.Sample{
		Topology: w.topo,
		Alphabet: append([]domain.Tile(nil), w.alphabet...),
		Cells:    make([]domain.Tile, len(w.cells)),
	}
	for i, d := range w.cells {
		if bits.OnesCount64(d) == 1 {
			s.Cells[i] = w.alphabet[bits.TrailingZeros64(d)]
		}
	}
	return s
}
