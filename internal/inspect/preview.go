package inspect

import (
	"context"
	"fmt"
	"sort"

	"svw.info/maxrun/internal/constraint"
	"svw.info/maxrun/internal/domain"
	"svw.info/maxrun/internal/ports"
	"svw.info/maxrun/internal/wave"
)

// BanPreview runs one check of every rule on a sample without applying the
// requested bans, so callers can see what the constraints would do next.
type BanPreview struct{}

func NewBanPreview() *BanPreview { return &BanPreview{} }

func (b *BanPreview) Inspect(ctx context.Context, s *domain.Sample) (ports.Report, error) {
	w, err := wave.FromSample(s)
	if err != nil {
		return ports.Report{}, err
	}
	rec := &recorder{Propagator: w, seen: map[domain.Point]bool{}}
	if w.Contradiction() {
		rec.contradiction = true
	}
	for i, r := range s.Rules {
		if err := ctx.Err(); err != nil {
			return ports.Report{}, err
		}
		c, err := constraint.New(r)
		if err != nil {
			return ports.Report{}, fmt.Errorf("rule %d: %w", i, err)
		}
		if err := c.Init(rec); err != nil {
			return ports.Report{}, fmt.Errorf("rule %d: %w", i, err)
		}
		c.Check(rec)
		if rec.contradiction {
			break
		}
	}
	return rec.report(s.Topology), nil
}

// recorder forwards queries to the wave but only records bans.
type recorder struct {
	ports.Propagator
	seen          map[domain.Point]bool
	bans          []domain.Point
	contradiction bool
}

func (r *recorder) Ban(p domain.Point, _ ports.TileSet) {
	if r.seen[p] {
		return
	}
	r.seen[p] = true
	r.bans = append(r.bans, p)
}

func (r *recorder) SetContradiction() { r.contradiction = true }

func (r *recorder) report(t domain.Topology) ports.Report {
	sort.Slice(r.bans, func(i, j int) bool { return t.Index(r.bans[i]) < t.Index(r.bans[j]) })
	return ports.Report{Bans: r.bans, Contradiction: r.contradiction}
}
