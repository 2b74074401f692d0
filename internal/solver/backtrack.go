package solver

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"svw.info/maxrun/internal/constraint"
	"svw.info/maxrun/internal/domain"
	"svw.info/maxrun/internal/ports"
	"svw.info/maxrun/internal/wave"
)

var ErrUnsatisfiable = errors.New("no assignment satisfies the constraints")

// BacktrackingSolver collapses cells one at a time, propagating constraints
// to a fixpoint after every guess and backing out of contradictions.
type BacktrackingSolver struct {
	logger *slog.Logger
	wrap   func(ports.Constraint) ports.Constraint
}

type Option func(*BacktrackingSolver)

func WithLogger(l *slog.Logger) Option {
	return func(s *BacktrackingSolver) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithConstraintWrapper decorates every constraint before solving, e.g. for
// instrumentation.
func WithConstraintWrapper(f func(ports.Constraint) ports.Constraint) Option {
	return func(s *BacktrackingSolver) { s.wrap = f }
}

func NewBacktrackingSolver(opts ...Option) *BacktrackingSolver {
	s := &BacktrackingSolver{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, o := range opts {
		o(s)
	}
	return s
}

// propagate runs every constraint until no domain changes. It returns false
// on contradiction.
func propagate(w *wave.Wave, cons []ports.Constraint, st *ports.Stats) bool {
	for {
		before := w.Changes()
		for _, c := range cons {
			st.Checks++
			c.Check(w)
			if w.Contradiction() {
				return false
			}
		}
		if w.Changes() == before {
			return true
		}
	}
}

// prepare builds the constraints for rules and resolves them against w.
func (s *BacktrackingSolver) prepare(rules []domain.Rule, w *wave.Wave) ([]ports.Constraint, error) {
	cons, err := constraint.FromRules(rules, constraint.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	for i, c := range cons {
		if err := c.Init(w); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		if s.wrap != nil {
			cons[i] = s.wrap(c)
		}
	}
	return cons, nil
}

// The implementation of Solve is in backtrack_solve.go and uses the helpers above.
