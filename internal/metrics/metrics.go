// Package metrics exposes Prometheus counters for constraint activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"svw.info/maxrun/internal/domain"
	"svw.info/maxrun/internal/ports"
)

// Collector counts checks, bans and contradictions on its own registry.
type Collector struct {
	registry       *prometheus.Registry
	checks         prometheus.Counter
	bans           prometheus.Counter
	contradictions prometheus.Counter
}

func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = "maxrun"
	}
	c := &Collector{
		registry: prometheus.NewRegistry(),
		checks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checks_total",
			Help:      "Total number of constraint checks run",
		}),
		bans: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bans_total",
			Help:      "Total number of ban requests issued by constraints",
		}),
		contradictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contradictions_total",
			Help:      "Total number of contradictions signalled by constraints",
		}),
	}
	c.registry.MustRegister(c.checks, c.bans, c.contradictions)
	return c
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Constraint wraps con so its checks, bans and contradictions are counted.
func (c *Collector) Constraint(con ports.Constraint) ports.Constraint {
	return &countedConstraint{Constraint: con, c: c}
}

type countedConstraint struct {
	ports.Constraint
	c *Collector
}

func (k *countedConstraint) Init(p ports.Propagator) error {
	return k.Constraint.Init(&countedPropagator{Propagator: p, c: k.c})
}

func (k *countedConstraint) Check(p ports.Propagator) {
	k.c.checks.Inc()
	k.Constraint.Check(&countedPropagator{Propagator: p, c: k.c})
}

type countedPropagator struct {
	ports.Propagator
	c *Collector
}

func (p *countedPropagator) Ban(at domain.Point, set ports.TileSet) {
	p.c.bans.Inc()
	p.Propagator.Ban(at, set)
}

func (p *countedPropagator) SetContradiction() {
	p.c.contradictions.Inc()
	p.Propagator.SetContradiction()
}
