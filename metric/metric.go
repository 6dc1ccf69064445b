// Package metric exposes Prometheus instrumentation for the framework's
// hot paths: inbound frame classification, event dispatch and API calls.
// All observe methods are nil-receiver safe so instrumentation stays
// optional.
package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Frame kinds recorded by ObserveFrame.
const (
	FrameReply = "reply"
	FrameEvent = "event"
)

// Metrics holds all framework-level collectors.
type Metrics struct {
	FramesTotal      *prometheus.CounterVec
	EventsDispatched *prometheus.CounterVec
	CallsInFlight    prometheus.Gauge
	CallDuration     prometheus.Histogram
	CallErrors       *prometheus.CounterVec
	Reconnects       prometheus.Counter
}

// New creates the collectors. Call Register to attach them to a registry.
func New() *Metrics {
	return &Metrics{
		FramesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fluxbot",
				Subsystem: "frames",
				Name:      "received_total",
				Help:      "Inbound frames by classification (reply or event)",
			},
			[]string{"kind"},
		),
		EventsDispatched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fluxbot",
				Subsystem: "dispatch",
				Name:      "events_total",
				Help:      "Events handed to the pipeline, by post type",
			},
			[]string{"post_type"},
		),
		CallsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "fluxbot",
				Subsystem: "calls",
				Name:      "in_flight",
				Help:      "API calls currently awaiting a reply",
			},
		),
		CallDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "fluxbot",
				Subsystem: "calls",
				Name:      "duration_seconds",
				Help:      "Round-trip time of API calls",
				Buckets:   prometheus.DefBuckets,
			},
		),
		CallErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fluxbot",
				Subsystem: "calls",
				Name:      "errors_total",
				Help:      "Failed API calls by reason",
			},
			[]string{"reason"},
		),
		Reconnects: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "fluxbot",
				Subsystem: "connection",
				Name:      "reconnects_total",
				Help:      "Reconnection attempts made by the run loop",
			},
		),
	}
}

// Register attaches all collectors to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.FramesTotal,
		m.EventsDispatched,
		m.CallsInFlight,
		m.CallDuration,
		m.CallErrors,
		m.Reconnects,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveFrame counts one classified inbound frame.
func (m *Metrics) ObserveFrame(kind string) {
	if m == nil {
		return
	}
	m.FramesTotal.WithLabelValues(kind).Inc()
}

// ObserveDispatch counts one event handed to the pipeline.
func (m *Metrics) ObserveDispatch(postType string) {
	if m == nil {
		return
	}
	m.EventsDispatched.WithLabelValues(postType).Inc()
}

// CallStarted marks an API call in flight. The returned func records the
// outcome; reason is empty on success.
func (m *Metrics) CallStarted() func(reason string) {
	if m == nil {
		return func(string) {}
	}
	m.CallsInFlight.Inc()
	start := time.Now()
	return func(reason string) {
		m.CallsInFlight.Dec()
		m.CallDuration.Observe(time.Since(start).Seconds())
		if reason != "" {
			m.CallErrors.WithLabelValues(reason).Inc()
		}
	}
}

// ObserveReconnect counts one reconnection attempt.
func (m *Metrics) ObserveReconnect() {
	if m == nil {
		return
	}
	m.Reconnects.Inc()
}
