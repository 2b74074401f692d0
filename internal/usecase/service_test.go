package usecase

import (
	"context"
	"errors"
	"testing"

	"svw.info/maxrun/internal/domain"
	"svw.info/maxrun/internal/solver"
)

func TestMissingPortsReportNotConfigured(t *testing.T) {
	ctx := context.Background()
	u := NewService(nil, nil, nil, nil, nil)
	if _, _, err := u.Generate(ctx, 1, &domain.Sample{}); !errors.Is(err, errNotConfigured) {
		t.Errorf("Generate: %v", err)
	}
	if _, _, err := u.Validate(ctx, &domain.Sample{}); !errors.Is(err, errNotConfigured) {
		t.Errorf("Validate: %v", err)
	}
	if _, err := u.Inspect(ctx, &domain.Sample{}); !errors.Is(err, errNotConfigured) {
		t.Errorf("Inspect: %v", err)
	}
	if err := u.Save(ctx, &domain.Sample{}); !errors.Is(err, errNotConfigured) {
		t.Errorf("Save: %v", err)
	}
	if _, err := u.List(ctx); !errors.Is(err, errNotConfigured) {
		t.Errorf("List: %v", err)
	}
}

func TestSolveIsSeeded(t *testing.T) {
	u := NewService(solver.NewBacktrackingSolver(), nil, nil, nil, nil)
	in := &domain.Sample{
		Topology: domain.NewTopology2D(6, 6),
		Alphabet: []domain.Tile{"wall", "floor"},
		Rules:    []domain.Rule{{Tiles: []domain.Tile{"wall"}, MaxCount: 2}},
		Cells:    make([]domain.Tile, 36),
	}
	a, _, err := u.Solve(context.Background(), in, 11)
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := u.Solve(context.Background(), in, 11)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Cells {
		if a.Cells[i] != b.Cells[i] {
			t.Fatalf("cell %d differs between runs with the same seed", i)
		}
	}
}
