package generator

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"svw.info/maxrun/internal/domain"
	"svw.info/maxrun/internal/ports"
)

// GenerateBatch runs Generate for every seed with at most parallelism
// generations in flight. Results keep the order of seeds. The first failure
// cancels the remaining work.
func (g *SeededGenerator) GenerateBatch(ctx context.Context, seeds []int64, tmpl *domain.Sample, parallelism int) ([]*domain.Sample, ports.Stats, error) {
	start := time.Now()
	out := make([]*domain.Sample, len(seeds))
	var (
		mu    sync.Mutex
		total ports.Stats
	)
	eg, ctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		eg.SetLimit(parallelism)
	}
	for i, seed := range seeds {
		eg.Go(func() error {
			s, st, err := g.Generate(ctx, seed, tmpl)
			mu.Lock()
			total.Nodes += st.Nodes
			total.Checks += st.Checks
			mu.Unlock()
			if err != nil {
				return err
			}
			out[i] = s
			return nil
		})
	}
	err := eg.Wait()
	total.Duration = time.Since(start)
	if err != nil {
		return nil, total, err
	}
	return out, total, nil
}
