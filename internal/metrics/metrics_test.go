package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"svw.info/maxrun/internal/constraint"
	"svw.info/maxrun/internal/domain"
	"svw.info/maxrun/internal/wave"
)

func counter(t *testing.T, c *Collector, name string) float64 {
	t.Helper()
	mfs, err := c.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %s not registered", name)
	return 0
}

func TestConstraintWrapperCounts(t *testing.T) {
	w, err := wave.New(domain.NewTopology2D(4, 1), []domain.Tile{"wall", "floor"})
	if err != nil {
		t.Fatal(err)
	}
	_ = w.Select(domain.Point{X: 0}, "wall")
	_ = w.Select(domain.Point{X: 1}, "wall")

	inner, err := constraint.New(domain.Rule{Tiles: []domain.Tile{"wall"}, MaxCount: 2})
	if err != nil {
		t.Fatal(err)
	}
	c := NewCollector("")
	con := c.Constraint(inner)
	if err := con.Init(w); err != nil {
		t.Fatalf("Init: %v", err)
	}
	con.Check(w)
	if got := counter(t, c, "maxrun_checks_total"); got != 1 {
		t.Errorf("checks = %v, want 1", got)
	}
	if got := counter(t, c, "maxrun_bans_total"); got != 1 {
		t.Errorf("bans = %v, want 1", got)
	}
	if got := counter(t, c, "maxrun_contradictions_total"); got != 0 {
		t.Errorf("contradictions = %v, want 0", got)
	}

	// A decided overlong run is reported through the same collector.
	over, _ := wave.New(domain.NewTopology2D(4, 1), []domain.Tile{"wall", "floor"})
	for x := 0; x < 3; x++ {
		_ = over.Select(domain.Point{X: x}, "wall")
	}
	inner2, _ := constraint.New(domain.Rule{Tiles: []domain.Tile{"wall"}, MaxCount: 2})
	con2 := c.Constraint(inner2)
	if err := con2.Init(over); err != nil {
		t.Fatalf("Init: %v", err)
	}
	con2.Check(over)
	if !over.Contradiction() {
		t.Error("wave not marked contradictory")
	}
	if got := counter(t, c, "maxrun_checks_total"); got != 2 {
		t.Errorf("checks = %v, want 2", got)
	}
	if got := counter(t, c, "maxrun_contradictions_total"); got != 1 {
		t.Errorf("contradictions = %v, want 1", got)
	}
}

func TestHandlerServesRegistry(t *testing.T) {
	c := NewCollector("grid")
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "grid_checks_total 0") {
		t.Fatalf("metrics output missing counter:\n%s", body)
	}
}
