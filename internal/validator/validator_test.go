package validator

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"svw.info/maxrun/internal/domain"
)

const (
	W = domain.Tile("wall")
	F = domain.Tile("floor")
	U = domain.Tile("")
)

func row(topo domain.Topology, bound int, axes domain.AxisSet, cells ...domain.Tile) *domain.Sample {
	return &domain.Sample{
		Topology: topo,
		Alphabet: []domain.Tile{W, F},
		Rules:    []domain.Rule{{Tiles: []domain.Tile{W}, MaxCount: bound, Axes: axes}},
		Cells:    cells,
	}
}

func TestValidate(t *testing.T) {
	ring := domain.NewTopology2D(5, 1)
	ring.PeriodicX = true
	column := domain.NewTopology2D(1, 3)

	cases := []struct {
		name string
		in   *domain.Sample
		want []domain.Point
	}{
		{"within bound", row(domain.NewTopology2D(5, 1), 2, nil, W, W, F, W, W), nil},
		{"overlong run", row(domain.NewTopology2D(5, 1), 2, nil, W, W, W, F, F),
			[]domain.Point{{X: 0}, {X: 1}, {X: 2}}},
		{"undecided breaks runs", row(domain.NewTopology2D(5, 1), 2, nil, W, W, U, W, W), nil},
		{"open ends do not join", row(domain.NewTopology2D(5, 1), 2, nil, W, F, F, W, W), nil},
		{"wrapped run", row(ring, 2, nil, W, F, F, W, W),
			[]domain.Point{{X: 0}, {X: 3}, {X: 4}}},
		{"axis filtered out", row(column, 2, domain.AxisSet{domain.AxisX}, W, W, W), nil},
		{"axis filtered in", row(column, 2, domain.AxisSet{domain.AxisY}, W, W, W),
			[]domain.Point{{Y: 0}, {Y: 1}, {Y: 2}}},
	}
	v := New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, got, err := v.Validate(context.Background(), tc.in)
			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if ok != (len(tc.want) == 0) {
				t.Fatalf("ok = %v with conflicts %v", ok, got)
			}
			if len(tc.want) == 0 {
				return
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("conflicts (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidateRejectsMalformedSample(t *testing.T) {
	in := row(domain.NewTopology2D(3, 1), 2, nil, W, W)
	if _, _, err := New().Validate(context.Background(), in); err == nil {
		t.Fatal("expected error for short cell slice")
	}
	in = row(domain.NewTopology2D(3, 1), 0, nil, W, W, W)
	if _, _, err := New().Validate(context.Background(), in); err == nil {
		t.Fatal("expected error for zero bound")
	}
}

func TestOverlongWholeRing(t *testing.T) {
	if got := overlong([]bool{true, true, true}, 3, true); got != nil {
		t.Fatalf("ring of bound length flagged: %v", got)
	}
	if got := overlong([]bool{true, true, true}, 2, true); len(got) != 3 {
		t.Fatalf("ring over bound flagged %v, want all cells", got)
	}
}
