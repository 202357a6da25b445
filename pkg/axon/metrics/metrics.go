// Package metrics exports dispatch outcomes as Prometheus metrics. A
// Collector is an axon.Observer, so it is installed with axon.WithObserver.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/toyz/axonbind/pkg/axon"
)

const namespace = "axon"

// Config configures a Collector
type Config struct {
	// Registry receives the collectors. A fresh registry is used when nil.
	Registry *prometheus.Registry
	// Buckets are the dispatch duration histogram buckets in seconds
	Buckets []float64
	// RuntimeCollectors adds the Go runtime and process collectors
	RuntimeCollectors bool
}

// DefaultConfig returns the default metrics config
func DefaultConfig() Config {
	return Config{
		Buckets:           []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		RuntimeCollectors: true,
	}
}

// Collector counts dispatch attempts per handler and outcome and records
// how long resolving and invoking each handler took
type Collector struct {
	registry   *prometheus.Registry
	dispatches *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// New creates a collector and registers its metrics
func New(config Config) (*Collector, error) {
	registry := config.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	buckets := config.Buckets
	if len(buckets) == 0 {
		buckets = DefaultConfig().Buckets
	}

	c := &Collector{
		registry: registry,
		dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dispatch_total",
				Help:      "Total number of handler dispatch attempts by outcome",
			},
			[]string{"controller", "handler", "method", "path", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "dispatch_duration_seconds",
				Help:      "Time spent resolving and invoking a handler in seconds",
				Buckets:   buckets,
			},
			[]string{"controller", "handler", "outcome"},
		),
	}

	cs := []prometheus.Collector{c.dispatches, c.duration}
	if config.RuntimeCollectors {
		cs = append(cs,
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	for _, collector := range cs {
		if err := registry.Register(collector); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Observe implements axon.Observer
func (c *Collector) Observe(event axon.DispatchEvent) {
	outcome := string(event.Outcome)
	c.dispatches.WithLabelValues(event.Controller, event.Handler, string(event.Method), string(event.Path), outcome).Inc()
	c.duration.WithLabelValues(event.Controller, event.Handler, outcome).Observe(event.Duration.Seconds())
}

// Registry returns the registry the collector writes to
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

var _ axon.Observer = (*Collector)(nil)
