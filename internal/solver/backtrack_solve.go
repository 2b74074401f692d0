package solver

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"svw.info/maxrun/internal/domain"
	"svw.info/maxrun/internal/ports"
	"svw.info/maxrun/internal/wave"
)

// Solve completes every undecided cell of in so that all of in.Rules hold.
// Decided cells are kept. rng orders the guesses; nil means a fixed seed.
func (s *BacktrackingSolver) Solve(ctx context.Context, in *domain.Sample, rng *rand.Rand) (*domain.Sample, ports.Stats, error) {
	start := time.Now()
	var st ports.Stats
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	w, err := wave.FromSample(in)
	if err != nil {
		return nil, st, fmt.Errorf("build wave: %w", err)
	}
	cons, err := s.prepare(in.Rules, w)
	if err != nil {
		return nil, st, err
	}

	var dfs func(w *wave.Wave) *wave.Wave
	dfs = func(w *wave.Wave) *wave.Wave {
		if ctx.Err() != nil {
			return nil
		}
		if !propagate(w, cons, &st) {
			return nil
		}
		p, ok := w.Undecided()
		if !ok {
			return w
		}
		opts := w.Options(p)
		rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
		for _, t := range opts {
			st.Nodes++
			next := w.Clone()
			if err := next.Select(p, t); err != nil {
				continue
			}
			if out := dfs(next); out != nil {
				return out
			}
		}
		return nil
	}

	out := dfs(w)
	st.Duration = time.Since(start)
	if out == nil {
		if err := ctx.Err(); err != nil {
			return nil, st, err
		}
		s.logger.Debug("unsatisfiable", "nodes", st.Nodes, "checks", st.Checks)
		return nil, st, ErrUnsatisfiable
	}
	res := out.Sample()
	res.ID = in.ID
	res.Name = in.Name
	res.Seed = in.Seed
	res.Rules = in.Rules
	return res, st, nil
}
