package generator

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"svw.info/maxrun/internal/domain"
	"svw.info/maxrun/internal/solver"
	"svw.info/maxrun/internal/validator"
)

func dungeon() *domain.Sample {
	return &domain.Sample{
		Name:     "dungeon",
		Topology: domain.Topology{Kind: domain.Cartesian2D, Width: 12, Height: 9},
		Alphabet: []domain.Tile{"wall", "floor", "door"},
		Rules: []domain.Rule{
			{Tiles: []domain.Tile{"wall"}, MaxCount: 3},
			{Tiles: []domain.Tile{"door"}, MaxCount: 1, Axes: domain.AxisSet{domain.AxisX}},
		},
	}
}

func TestGenerateIsReproducible(t *testing.T) {
	g := NewSeededGenerator(solver.NewBacktrackingSolver())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a, _, err := g.Generate(ctx, 99, dungeon())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, _, err := g.Generate(ctx, 99, dungeon())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if diff := cmp.Diff(a.Cells, b.Cells); diff != "" {
		t.Fatalf("same seed produced different grids (-a +b):\n%s", diff)
	}
	if a.Seed != 99 || a.Name != "dungeon" || a.CreatedAt == 0 {
		t.Fatalf("metadata not carried: seed=%d name=%q createdAt=%d", a.Seed, a.Name, a.CreatedAt)
	}
	if a.Topology.Depth != 1 {
		t.Fatalf("depth not normalised: %d", a.Topology.Depth)
	}
	ok, conf, err := validator.New().Validate(ctx, a)
	if err != nil || !ok {
		t.Fatalf("invalid grid: err=%v conflicts=%v", err, conf)
	}
}

func TestGenerateNilTemplate(t *testing.T) {
	g := NewSeededGenerator(solver.NewBacktrackingSolver())
	if _, _, err := g.Generate(context.Background(), 1, nil); err == nil {
		t.Fatal("expected error for nil template")
	}
}

func TestGenerateBatchKeepsSeedOrder(t *testing.T) {
	g := NewSeededGenerator(solver.NewBacktrackingSolver())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	seeds := []int64{5, 6, 7, 8, 9, 10}
	out, st, err := g.GenerateBatch(ctx, seeds, dungeon(), 3)
	if err != nil {
		t.Fatalf("GenerateBatch failed: %v", err)
	}
	if len(out) != len(seeds) {
		t.Fatalf("got %d samples, want %d", len(out), len(seeds))
	}
	for i, s := range out {
		if s.Seed != seeds[i] {
			t.Fatalf("sample %d has seed %d, want %d", i, s.Seed, seeds[i])
		}
		single, _, err := g.Generate(ctx, seeds[i], dungeon())
		if err != nil {
			t.Fatal(err)
		}
		if !cmp.Equal(single.Cells, s.Cells) {
			t.Fatalf("batch result for seed %d differs from single generation", seeds[i])
		}
	}
	if st.Checks == 0 {
		t.Fatal("batch stats not aggregated")
	}
}

func TestGenerateRejectsBadTopology(t *testing.T) {
	g := NewSeededGenerator(solver.NewBacktrackingSolver())
	tmpl := dungeon()
	tmpl.Topology.Width = -3
	if _, _, err := g.Generate(context.Background(), 1, tmpl); err == nil {
		t.Fatal("expected error for negative width")
	}
	tmpl.Topology.Width, tmpl.Topology.Height = 4, 0
	if _, _, err := g.GenerateBatch(context.Background(), []int64{1, 2}, tmpl, 2); err == nil {
		t.Fatal("expected batch error for zero height")
	}
}
