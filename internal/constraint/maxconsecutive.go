// Package constraint bounds the number of consecutive cells holding a chosen
// group of tiles along the axes of a cartesian grid.
//
// Each Check rescans the whole grid. For every line it bans the cells that
// would stretch a run past the bound, and it signals a contradiction when a
// run is already too long.
package constraint

import (
	"fmt"
	"io"
	"log/slog"

	"svw.info/maxrun/internal/domain"
	"svw.info/maxrun/internal/ports"
)

// MaxConsecutive implements ports.Constraint.
type MaxConsecutive struct {
	rule   domain.Rule
	set    ports.TileSet
	logger *slog.Logger
}

type Option func(*MaxConsecutive)

// WithLogger sets the logger used to report contradictions.
func WithLogger(l *slog.Logger) Option {
	return func(c *MaxConsecutive) {
		if l != nil {
			c.logger = l
		}
	}
}

// New builds a constraint for rule. Init must be called before Check.
func New(rule domain.Rule, opts ...Option) (*MaxConsecutive, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	c := &MaxConsecutive{
		rule:   rule,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// FromRules builds one constraint per rule.
func FromRules(rules []domain.Rule, opts ...Option) ([]ports.Constraint, error) {
	out := make([]ports.Constraint, 0, len(rules))
	for i, r := range rules {
		c, err := New(r, opts...)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// Init resolves the rule's tiles against p.
func (c *MaxConsecutive) Init(p ports.Propagator) error {
	t := p.Topology()
	if !t.Kind.Cartesian() {
		return &UnsupportedTopologyError{Kind: t.Kind}
	}
	set, err := p.CreateTileSet(c.rule.Tiles)
	if err != nil {
		return fmt.Errorf("resolve tiles: %w", err)
	}
	c.set = set
	return nil
}

// Check scans every active axis, requesting bans through p. The first run
// longer than the bound signals a contradiction and ends the check.
func (c *MaxConsecutive) Check(p ports.Propagator) {
	if c.set == nil {
		c.logger.Warn("skipping check", "err", ErrNotInitialized)
		return
	}
	t := p.Topology()
	for _, axis := range domain.AllAxes {
		if !c.rule.Axes.Contains(axis) {
			continue
		}
		if at, bad := newAxisScan(t, axis, c.rule.MaxCount).run(p, c.set); bad {
			c.logger.Debug("run bound exceeded",
				"axis", axis,
				"point", at,
				"max", c.rule.MaxCount,
			)
			p.SetContradiction()
			return
		}
	}
}
