// Package prometheus exports bridge metrics to Prometheus.
package prometheus

import (
	"errors"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/hepgo"
)

const namespace = "hepgo"

var _ hepgo.MetricsCollector = (*Collector)(nil)

// Collector implements hepgo.MetricsCollector on Prometheus metrics.
type Collector struct {
	handles      *prometheus.CounterVec
	releases     *prometheus.CounterVec
	liveHandles  *prometheus.GaugeVec
	opLatency    *prometheus.HistogramVec
	events       *prometheus.CounterVec
	streamBytes  *prometheus.CounterVec
	streamErrors *prometheus.CounterVec
	violations   *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		handles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handles_created_total",
			Help:      "Handles minted, by entity kind.",
		}, []string{"kind"}),
		releases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handles_released_total",
			Help:      "Handles released, by entity kind.",
		}, []string{"kind"}),
		liveHandles: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "handles_live",
			Help:      "Outstanding handles, by entity kind.",
		}, []string{"kind"}),
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stream_op_duration_seconds",
			Help:      "Latency of event reads and writes.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"op"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_events_total",
			Help:      "Events read or written.",
		}, []string{"op"}),
		streamBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_bytes_total",
			Help:      "Stream bytes consumed or emitted.",
		}, []string{"op"}),
		streamErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_errors_total",
			Help:      "Failed event reads or writes.",
		}, []string{"op"}),
		violations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contract_violations_total",
			Help:      "Calls rejected for null, stale or mistyped handles, bad indices or double closes.",
		}, []string{"op"}),
	}

	for _, m := range []prometheus.Collector{
		c.handles, c.releases, c.liveHandles, c.opLatency,
		c.events, c.streamBytes, c.streamErrors, c.violations,
	} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustNewCollector is like NewCollector but panics on registration failure.
func MustNewCollector(reg prometheus.Registerer) *Collector {
	c, err := NewCollector(reg)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Collector) RecordHandle(kind string) {
	c.handles.WithLabelValues(kind).Inc()
	c.liveHandles.WithLabelValues(kind).Inc()
}

func (c *Collector) RecordRelease(kind string) {
	c.releases.WithLabelValues(kind).Inc()
	c.liveHandles.WithLabelValues(kind).Dec()
}

func (c *Collector) RecordRead(bytes int64, d time.Duration, err error) {
	c.recordStream("read", bytes, d, err)
}

func (c *Collector) RecordWrite(bytes int64, d time.Duration, err error) {
	c.recordStream("write", bytes, d, err)
}

func (c *Collector) RecordViolation(op string, _ error) {
	c.violations.WithLabelValues(op).Inc()
}

func (c *Collector) recordStream(op string, bytes int64, d time.Duration, err error) {
	c.opLatency.WithLabelValues(op).Observe(d.Seconds())
	c.streamBytes.WithLabelValues(op).Add(float64(bytes))
	switch {
	case err == nil:
		c.events.WithLabelValues(op).Inc()
	case !errors.Is(err, io.EOF):
		c.streamErrors.WithLabelValues(op).Inc()
	}
}
