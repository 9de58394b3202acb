package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "formguard"

const resultCache = "results"

// Collector records engine telemetry.
type Collector struct {
	evaluations *prometheus.CounterVec
	errors      *prometheus.CounterVec
	duration    *prometheus.HistogramVec

	hits      *prometheus.CounterVec
	misses    *prometheus.CounterVec
	resets    *prometheus.CounterVec
	evictions *prometheus.CounterVec
}

type options struct {
	namespace string
	subsystem string
	buckets   []float64
}

type Option func(*options)

func WithNamespace(ns string) Option {
	return func(o *options) { o.namespace = ns }
}

func WithSubsystem(s string) Option {
	return func(o *options) { o.subsystem = s }
}

// WithBuckets overrides the duration histogram buckets.
func WithBuckets(b []float64) Option {
	return func(o *options) {
		if len(b) > 0 {
			o.buckets = b
		}
	}
}

// NewCollector creates the metrics and registers them with reg.
// It panics if registration fails, like prometheus.MustRegister.
func NewCollector(reg prometheus.Registerer, opts ...Option) *Collector {
	o := &options{
		namespace: DefaultNamespace,
		buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5},
	}
	for _, opt := range opts {
		opt(o)
	}

	counter := func(name, help string, labels ...string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: o.subsystem,
			Name:      name,
			Help:      help,
		}, labels)
	}

	c := &Collector{
		evaluations: counter("rule_evaluations_total", "Total number of rule evaluations", "rule", "outcome"),
		errors:      counter("rule_errors_total", "Total number of failed rule predicates", "rule"),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Subsystem: o.subsystem,
			Name:      "rule_evaluation_duration_seconds",
			Help:      "Rule evaluation latency, excluding cache hits",
			Buckets:   o.buckets,
		}, []string{"rule"}),
		hits:      counter("cache_hits_total", "Total number of cache hits", "cache"),
		misses:    counter("cache_misses_total", "Total number of cache misses", "cache"),
		resets:    counter("cache_resets_total", "Total number of cache resets", "cache"),
		evictions: counter("cache_evictions_total", "Total number of entries leaving a cache", "cache"),
	}

	reg.MustRegister(
		c.evaluations,
		c.errors,
		c.duration,
		c.hits,
		c.misses,
		c.resets,
		c.evictions,
	)
	return c
}

func (c *Collector) RuleEvaluated(rule string, failed, cached bool, d time.Duration) {
	outcome := "pass"
	if failed {
		outcome = "fail"
	}
	c.evaluations.WithLabelValues(rule, outcome).Inc()

	if cached {
		c.hits.WithLabelValues(resultCache).Inc()
		return
	}
	c.misses.WithLabelValues(resultCache).Inc()
	c.duration.WithLabelValues(rule).Observe(d.Seconds())
}

func (c *Collector) RuleErrored(rule string) {
	c.errors.WithLabelValues(rule).Inc()
}

func (c *Collector) CacheReset(cache string) {
	c.resets.WithLabelValues(cache).Inc()
}

func (c *Collector) CacheEvicted(cache string) {
	c.evictions.WithLabelValues(cache).Inc()
}
