package ports

import (
	"context"
	"math/rand"
	"time"

	"svw.info/maxrun/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes    int
	Checks   int
	Duration time.Duration
}

// TileSet is an opaque handle for a group of tiles, resolved once by a Propagator.
type TileSet interface {
	Tiles() []domain.Tile
}

// Propagator is the surface of a tile-assignment solver that constraints talk to.
type Propagator interface {
	Topology() domain.Topology
	// CreateTileSet resolves tile identifiers into a handle usable with the other methods.
	CreateTileSet(tiles []domain.Tile) (TileSet, error)
	// BannedSelected reports whether every tile of set is excluded at p (banned)
	// and whether the cell's remaining domain lies entirely within set (selected).
	BannedSelected(p domain.Point, set TileSet) (banned, selected bool)
	// Ban excludes every tile of set at p. Banning twice is harmless.
	Ban(p domain.Point, set TileSet)
	// SetContradiction marks the current partial assignment as unsatisfiable.
	SetContradiction()
}

// Constraint restricts assignments by banning tiles through a Propagator.
type Constraint interface {
	Init(p Propagator) error
	Check(p Propagator)
}

// Solver completes a partially decided sample so every constraint holds.
type Solver interface {
	Solve(ctx context.Context, s *domain.Sample, rng *rand.Rand) (*domain.Sample, Stats, error)
}

// Generator creates new samples from a seed.
type Generator interface {
	Generate(ctx context.Context, seed int64, tmpl *domain.Sample) (*domain.Sample, Stats, error)
}

// Validator checks a sample against its rules.
type Validator interface {
	Validate(ctx context.Context, s *domain.Sample) (ok bool, conflicts []domain.Point, err error)
}

// Report is the outcome of a single constraint check on a sample.
type Report struct {
	Bans          []domain.Point `json:"bans,omitempty"`
	Contradiction bool           `json:"contradiction"`
}

// Inspector previews what the constraints of a sample would do right now.
type Inspector interface {
	Inspect(ctx context.Context, s *domain.Sample) (Report, error)
}

// Storage persists and retrieves samples.
type Storage interface {
	Save(ctx context.Context, s *domain.Sample) error
	Load(ctx context.Context, id string) (*domain.Sample, error)
	List(ctx context.Context) ([]domain.SampleMeta, error)
}
