// Package metrics exports engine activity as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gosu"

// Collector implements engine.Observer on a private registry.
type Collector struct {
	registry *prometheus.Registry

	evaluations       *prometheus.CounterVec
	evalDuration      *prometheus.HistogramVec
	bootstraps        *prometheus.CounterVec
	bootstrapDuration *prometheus.HistogramVec
}

// NewCollector creates and registers the engine metrics.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "evaluations_total",
				Help:      "Script evaluations by language and outcome.",
			},
			[]string{"language", "outcome"},
		),
		evalDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "evaluation_duration_seconds",
				Help:      "Time spent parsing and running a script.",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"language"},
		),
		bootstraps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runtime_bootstraps_total",
				Help:      "Runtime bootstraps by language and result.",
			},
			[]string{"language", "result"},
		),
		bootstrapDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "runtime_bootstrap_duration_seconds",
				Help:      "Time spent bootstrapping a runtime.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"language"},
		),
	}

	c.registry.MustRegister(
		c.evaluations,
		c.evalDuration,
		c.bootstraps,
		c.bootstrapDuration,
		collectors.NewGoCollector(),
	)
	return c
}

// ObserveEval records one evaluation.
func (c *Collector) ObserveEval(language, outcome string, d time.Duration) {
	c.evaluations.WithLabelValues(language, outcome).Inc()
	c.evalDuration.WithLabelValues(language).Observe(d.Seconds())
}

// ObserveBootstrap records one runtime bootstrap.
func (c *Collector) ObserveBootstrap(language string, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.bootstraps.WithLabelValues(language, result).Inc()
	c.bootstrapDuration.WithLabelValues(language).Observe(d.Seconds())
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
