// Package metrics provides internal metrics collection.
// This package is internal and should not be imported by external projects.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"go.uber.org/zap"
)

// Collector records turn, routing and review metrics. A nil *Collector is
// valid and records nothing, so instrumentation stays optional.
type Collector struct {
	turnsTotal           *prometheus.CounterVec
	routingRounds        *prometheus.CounterVec
	reworkCycles         prometheus.Counter
	contributionDuration *prometheus.HistogramVec
	contributionFailures *prometheus.CounterVec
	reviewDuration       prometheus.Histogram

	logger *zap.Logger
}

// NewCollector creates a collector registered on reg. A nil reg falls back
// to the default registerer.
func NewCollector(namespace string, reg prometheus.Registerer, logger *zap.Logger) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	factory := promauto(reg)

	c := &Collector{logger: logger.With(zap.String("component", "metrics"))}

	c.turnsTotal = factory.counterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "turns_total",
		Help:      "Turns completed, labeled by outcome",
	}, []string{"outcome"})

	c.routingRounds = factory.counterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "routing_rounds_total",
		Help:      "Routing rounds executed, labeled by phase",
	}, []string{"phase"})

	c.reworkCycles = factory.counter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rework_cycles_total",
		Help:      "Expert-requested rework cycles",
	})

	c.contributionDuration = factory.histogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "contribution_duration_seconds",
		Help:      "Domain agent call duration in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"agent_id"})

	c.contributionFailures = factory.counterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contribution_failures_total",
		Help:      "Dropped contributions, labeled by agent and reason",
	}, []string{"agent_id", "reason"})

	c.reviewDuration = factory.histogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "review_duration_seconds",
		Help:      "Human-expert review latency in seconds",
		Buckets:   []float64{1, 5, 15, 60, 300, 900, 3600},
	})

	return c
}

// TurnTerminated records a finished turn with its outcome
// (approved, unreviewed, aborted, no_information).
func (c *Collector) TurnTerminated(outcome string) {
	if c == nil {
		return
	}
	c.turnsTotal.WithLabelValues(outcome).Inc()
}

// RoundStarted records the start of a routing round.
func (c *Collector) RoundStarted(phase string) {
	if c == nil {
		return
	}
	c.routingRounds.WithLabelValues(phase).Inc()
}

// ReworkCycle records one expert-requested rework.
func (c *Collector) ReworkCycle() {
	if c == nil {
		return
	}
	c.reworkCycles.Inc()
}

// ContributionCollected records a successful agent call.
func (c *Collector) ContributionCollected(agentID string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.contributionDuration.WithLabelValues(agentID).Observe(elapsed.Seconds())
}

// ContributionFailed records a dropped contribution.
func (c *Collector) ContributionFailed(agentID, reason string) {
	if c == nil {
		return
	}
	c.contributionFailures.WithLabelValues(agentID, reason).Inc()
}

// ReviewFinished records the latency of one expert review.
func (c *Collector) ReviewFinished(elapsed time.Duration) {
	if c == nil {
		return
	}
	c.reviewDuration.Observe(elapsed.Seconds())
}

// factory wraps a registerer so metric construction reads like promauto but
// targets a caller-supplied registry (keeps tests isolated).
type factory struct {
	reg prometheus.Registerer
}

func promauto(reg prometheus.Registerer) factory {
	return factory{reg: reg}
}

func (f factory) counter(opts prometheus.CounterOpts) prometheus.Counter {
	m := prometheus.NewCounter(opts)
	f.reg.MustRegister(m)
	return m
}

func (f factory) counterVec(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	m := prometheus.NewCounterVec(opts, labels)
	f.reg.MustRegister(m)
	return m
}

func (f factory) histogram(opts prometheus.HistogramOpts) prometheus.Histogram {
	m := prometheus.NewHistogram(opts)
	f.reg.MustRegister(m)
	return m
}

func (f factory) histogramVec(opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	m := prometheus.NewHistogramVec(opts, labels)
	f.reg.MustRegister(m)
	return m
}
