package prometheus

import (
	"plantagotchi/internal/domain/plant"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "plantagotchi"

// Collector exports garden counters on its own registry.
type Collector struct {
	registry *prometheus.Registry
	actions  *prometheus.CounterVec
	ticks    *prometheus.CounterVec
	outcomes *prometheus.CounterVec
	failures prometheus.Counter
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Player actions by action and ignored reason.",
		}, []string{"action", "ignored"}),
		ticks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Settled days by final category.",
		}, []string{"category"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outcomes_total",
			Help:      "Finished seasons by outcome.",
		}, []string{"outcome"}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journal_failures_total",
			Help:      "Journal or ledger writes that failed.",
		}),
	}
	c.registry.MustRegister(c.actions, c.ticks, c.outcomes, c.failures)
	return c
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) RecordAction(action string, ignored plant.IgnoreReason) {
	reason := string(ignored)
	if reason == "" {
		reason = "none"
	}
	c.actions.WithLabelValues(action, reason).Inc()
}

func (c *Collector) RecordTick(category plant.Category) {
	c.ticks.WithLabelValues(string(category)).Inc()
}

func (c *Collector) RecordOutcome(outcome plant.Outcome) {
	c.outcomes.WithLabelValues(string(outcome)).Inc()
}

func (c *Collector) RecordFailure() {
	c.failures.Inc()
}
