package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"svw.info/maxrun/internal/domain"
	"svw.info/maxrun/internal/ports"
)

var errNoTemplate = errors.New("generator: nil template")

// Generate completes a copy of tmpl. Cells already decided in tmpl are kept;
// an empty Cells slice means the whole grid is open.
func (g *SeededGenerator) Generate(ctx context.Context, seed int64, tmpl *domain.Sample) (*domain.Sample, ports.Stats, error) {
	if tmpl == nil {
		return nil, ports.Stats{}, errNoTemplate
	}
	start := time.Now()
	in := *tmpl
	in.ID = ""
	in.Seed = seed
	in.Topology = tmpl.Topology.Normalize()
	if err := in.Topology.Validate(); err != nil {
		return nil, ports.Stats{}, fmt.Errorf("generator: %w", err)
	}
	if len(in.Cells) == 0 {
		in.Cells = make([]domain.Tile, in.Topology.Cells())
	}
	rng := rand.New(rand.NewSource(seed))
	out, st, err := g.Solver.Solve(ctx, &in, rng)
	if err != nil {
		return nil, st, err
	}
	out.Seed = seed
	out.CreatedAt = time.Now().UnixNano()
	st.Duration = time.Since(start)
	return out, st, nil
}
