// Package metrics exports Prometheus metrics for a gateway Dispatcher.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bjaus/gateway"
)

const (
	namespace = "gateway"
	subsystem = "dispatch"
)

// Outcome label values for handler_duration_seconds.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Collector holds the dispatch metrics.
type Collector struct {
	events       *prometheus.CounterVec
	handled      *prometheus.HistogramVec
	decodeErrors *prometheus.CounterVec
	unmatched    *prometheus.CounterVec
	parseErrors  prometheus.Counter
}

// New creates a Collector and registers it with reg.
// It panics if the metrics are already registered, like prometheus.MustRegister.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "events_total",
				Help:      "Total number of dispatched gateway events",
			},
			[]string{"kind"},
		),
		handled: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "handler_duration_seconds",
				Help:      "Duration of event handler invocations in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"handler", "outcome"},
		),
		decodeErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "decode_errors_total",
				Help:      "Handlers skipped because the payload did not decode",
			},
			[]string{"kind"},
		),
		unmatched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "unmatched_total",
				Help:      "Events that matched no handler",
			},
			[]string{"kind"},
		),
		parseErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "parse_errors_total",
				Help:      "Frames dropped because they were not valid gateway envelopes",
			},
		),
	}
	reg.MustRegister(c.events, c.handled, c.decodeErrors, c.unmatched, c.parseErrors)
	return c
}

// Attach registers a catch-all handler on r that counts events by kind.
func (c *Collector) Attach(r *gateway.Router) {
	r.RegisterAnyFunc(func(gc *gateway.Context) error {
		c.events.WithLabelValues(gc.Kind().String()).Inc()
		return nil
	})
}

// Options returns dispatcher hooks feeding the remaining metrics.
func (c *Collector) Options() []gateway.Option {
	return []gateway.Option{
		gateway.WithOnSuccess(func(_ *gateway.Context, handler string, d time.Duration) {
			c.handled.WithLabelValues(handler, OutcomeSuccess).Observe(d.Seconds())
		}),
		gateway.WithOnFailure(func(_ *gateway.Context, handler string, _ error, d time.Duration) {
			c.handled.WithLabelValues(handler, OutcomeFailure).Observe(d.Seconds())
		}),
		gateway.WithOnDecodeError(func(gc *gateway.Context, _ string, _ error) {
			c.decodeErrors.WithLabelValues(gc.Kind().String()).Inc()
		}),
		gateway.WithOnUnmatched(func(gc *gateway.Context) {
			c.unmatched.WithLabelValues(gc.Kind().String()).Inc()
		}),
		gateway.WithOnParseError(func(context.Context, []byte, error) {
			c.parseErrors.Inc()
		}),
	}
}
