// Package metrics exports Prometheus metrics for reqrep exchanges through an
// interceptor.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hsiuhsiu/reqrep-go/pkg/reqrep"
)

// StatusOK labels exchanges that returned a reply. Failures are labelled with
// the error kind: validation, connection or transport.
const StatusOK = "ok"

type Collector struct {
	exchanges    *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	requestBytes *prometheus.CounterVec
	replyBytes   *prometheus.CounterVec
}

// New creates a Collector and registers it with reg. A nil reg means
// prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		exchanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reqrep_exchanges_total",
				Help: "Total number of request/reply exchanges.",
			},
			[]string{"driver", "mode", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "reqrep_exchange_duration_seconds",
				Help:    "Duration of request/reply exchanges in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"driver", "mode"},
		),
		requestBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reqrep_request_bytes_total",
				Help: "Bytes sent as requests.",
			},
			[]string{"driver"},
		),
		replyBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reqrep_reply_bytes_total",
				Help: "Bytes received as replies.",
			},
			[]string{"driver"},
		),
	}
	for _, col := range []prometheus.Collector{c.exchanges, c.duration, c.requestBytes, c.replyBytes} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Interceptor records every exchange passing through it.
func (c *Collector) Interceptor() reqrep.Interceptor {
	return func(ctx context.Context, call *reqrep.Call, next reqrep.Invoker) ([]byte, error) {
		start := time.Now()
		reply, err := next(ctx, call)

		mode := call.Mode.String()
		c.duration.WithLabelValues(call.Driver, mode).Observe(time.Since(start).Seconds())
		c.exchanges.WithLabelValues(call.Driver, mode, status(err)).Inc()
		c.requestBytes.WithLabelValues(call.Driver).Add(float64(len(call.Request)))
		if err == nil {
			c.replyBytes.WithLabelValues(call.Driver).Add(float64(len(reply)))
		}
		return reply, err
	}
}

func status(err error) string {
	if err == nil {
		return StatusOK
	}
	var rerr *reqrep.Error
	if errors.As(err, &rerr) {
		return rerr.Kind.String()
	}
	return "error"
}
