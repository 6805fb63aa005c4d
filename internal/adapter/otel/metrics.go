package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "propmate"

// Metrics holds all PropMate metric instruments.
type Metrics struct {
	QueuePolls        metric.Int64Counter
	QueuePollErrors   metric.Int64Counter
	ViewRecomputes    metric.Int64Counter
	ViewCacheHits     metric.Int64Counter
	ViewDuration      metric.Float64Histogram
	UpstreamCalls     metric.Int64Counter
	UpstreamCallFails metric.Int64Counter
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.QueuePolls, err = meter.Int64Counter("propmate.queue.polls",
		metric.WithDescription("Number of queue poll cycles"))
	if err != nil {
		return nil, err
	}

	m.QueuePollErrors, err = meter.Int64Counter("propmate.queue.poll_errors",
		metric.WithDescription("Number of failed queue poll cycles"))
	if err != nil {
		return nil, err
	}

	m.ViewRecomputes, err = meter.Int64Counter("propmate.view.recomputes",
		metric.WithDescription("Number of queue views computed from scratch"))
	if err != nil {
		return nil, err
	}

	m.ViewCacheHits, err = meter.Int64Counter("propmate.view.cache_hits",
		metric.WithDescription("Number of queue views served from the memo cache"))
	if err != nil {
		return nil, err
	}

	m.ViewDuration, err = meter.Float64Histogram("propmate.view.duration_seconds",
		metric.WithDescription("Queue view computation duration in seconds"))
	if err != nil {
		return nil, err
	}

	m.UpstreamCalls, err = meter.Int64Counter("propmate.upstream.calls",
		metric.WithDescription("Number of FixMate API calls"))
	if err != nil {
		return nil, err
	}

	m.UpstreamCallFails, err = meter.Int64Counter("propmate.upstream.call_failures",
		metric.WithDescription("Number of failed FixMate API calls"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
