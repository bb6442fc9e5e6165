package relay

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the relay's Prometheus collectors.
type Metrics struct {
	Registrations  prometheus.Counter
	Lookups        *prometheus.CounterVec
	Pushed         prometheus.Counter
	Fetched        prometheus.Counter
	Acked          prometheus.Counter
	RateLimited    prometheus.Counter
	QueueDepth     prometheus.Gauge
	RequestSeconds *prometheus.HistogramVec
}

// NewMetrics creates and registers the relay collectors with reg. Tests
// pass a fresh registry so servers can be built repeatedly in one process.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Registrations: factory.NewCounter(prometheus.CounterOpts{
			Name: "parley_relay_registrations_total",
			Help: "Directory registrations accepted",
		}),
		Lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "parley_relay_lookups_total",
			Help: "Directory lookups by result",
		}, []string{"result"}),
		Pushed: factory.NewCounter(prometheus.CounterOpts{
			Name: "parley_relay_envelopes_pushed_total",
			Help: "Envelopes queued for delivery",
		}),
		Fetched: factory.NewCounter(prometheus.CounterOpts{
			Name: "parley_relay_envelopes_fetched_total",
			Help: "Envelopes handed to recipients",
		}),
		Acked: factory.NewCounter(prometheus.CounterOpts{
			Name: "parley_relay_envelopes_acked_total",
			Help: "Envelopes removed after acknowledgement",
		}),
		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "parley_relay_rate_limited_total",
			Help: "Requests refused by the per-client limiter",
		}),
		QueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "parley_relay_queue_depth",
			Help: "Envelopes currently queued across all mailboxes",
		}),
		RequestSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "parley_relay_request_duration_seconds",
			Help:    "Request handling time by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}
