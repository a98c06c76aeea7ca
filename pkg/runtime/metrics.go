package runtime

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics aggregates Prometheus metrics for one or more sessions. Attach
// with WithMetrics; a session without metrics records nothing.
type Metrics struct {
	renders        prometheus.Counter
	renderDuration prometheus.Histogram
	effectRuns     prometheus.Counter
	unmounts       prometheus.Counter
	hookPaths      prometheus.Gauge
}

// MetricsConfig customizes metric registration.
type MetricsConfig struct {
	// Registry receives the metrics. Defaults to the global registry.
	Registry prometheus.Registerer

	// ConstLabels are attached to every metric, e.g. a session or app id.
	ConstLabels prometheus.Labels

	// RenderBuckets overrides the render duration histogram buckets,
	// in seconds.
	RenderBuckets []float64
}

// MetricsOption configures NewMetrics.
type MetricsOption func(*MetricsConfig)

// WithRegistry registers the metrics with a specific registry instead of
// the global one.
func WithRegistry(reg prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) { c.Registry = reg }
}

// WithConstLabels attaches labels to every metric.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) { c.ConstLabels = labels }
}

// WithRenderBuckets overrides the render duration histogram buckets.
func WithRenderBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) { c.RenderBuckets = buckets }
}

// NewMetrics registers and returns the runtime metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := MetricsConfig{
		Registry:      prometheus.DefaultRegisterer,
		RenderBuckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	factory := promauto.With(cfg.Registry)

	return &Metrics{
		renders: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   "loom",
			Name:        "renders_total",
			Help:        "Total number of committed render passes.",
			ConstLabels: cfg.ConstLabels,
		}),
		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "loom",
			Name:        "render_duration_seconds",
			Help:        "Duration of render passes.",
			Buckets:     cfg.RenderBuckets,
			ConstLabels: cfg.ConstLabels,
		}),
		effectRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   "loom",
			Name:        "effect_runs_total",
			Help:        "Total number of effect executions.",
			ConstLabels: cfg.ConstLabels,
		}),
		unmounts: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   "loom",
			Name:        "instance_unmounts_total",
			Help:        "Total number of instances unmounted.",
			ConstLabels: cfg.ConstLabels,
		}),
		hookPaths: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   "loom",
			Name:        "hook_paths",
			Help:        "Component paths currently holding hook state.",
			ConstLabels: cfg.ConstLabels,
		}),
	}
}

func (m *Metrics) observeRender(d time.Duration) {
	m.renders.Inc()
	m.renderDuration.Observe(d.Seconds())
}

func (m *Metrics) addEffectRuns(n int) {
	m.effectRuns.Add(float64(n))
}

func (m *Metrics) incUnmounts() {
	m.unmounts.Inc()
}

func (m *Metrics) setHookPaths(n int) {
	m.hookPaths.Set(float64(n))
}
