// Package metrics records request and token-refresh metrics for the
// postcard client. A nil or no-op Recorder is always safe to use.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Recorder receives client observations.
type Recorder interface {
	// RecordRequest records one business request with its outcome and duration.
	RecordRequest(operation, outcome string, duration time.Duration)

	// RecordTokenRefresh records one token-endpoint exchange.
	RecordTokenRefresh(outcome string)
}

// Nop discards everything.
type Nop struct{}

// RecordRequest implements Recorder.
func (Nop) RecordRequest(string, string, time.Duration) {}

// RecordTokenRefresh implements Recorder.
func (Nop) RecordTokenRefresh(string) {}

// Prometheus is a Recorder backed by Prometheus collectors.
type Prometheus struct {
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	tokenRefresh *prometheus.CounterVec
}

// NewPrometheus creates the collectors and registers them with reg.
// Collectors that are already registered (for example by a second client
// sharing the registry) are reused.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "postcard_client_requests_total",
		Help: "Total number of postcard API requests by operation and outcome.",
	}, []string{"operation", "outcome"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "postcard_client_request_duration_seconds",
		Help:    "Duration of postcard API requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	tokenRefresh := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "postcard_client_token_refresh_total",
		Help: "Total number of OAuth2 token exchanges by outcome.",
	}, []string{"outcome"})

	var err error
	if requests, err = register(reg, requests); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if tokenRefresh, err = register(reg, tokenRefresh); err != nil {
		return nil, err
	}

	return &Prometheus{
		requests:     requests,
		duration:     duration,
		tokenRefresh: tokenRefresh,
	}, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordRequest implements Recorder.
func (p *Prometheus) RecordRequest(operation, outcome string, d time.Duration) {
	p.requests.WithLabelValues(operation, outcome).Inc()
	p.duration.WithLabelValues(operation).Observe(d.Seconds())
}

// RecordTokenRefresh implements Recorder.
func (p *Prometheus) RecordTokenRefresh(outcome string) {
	p.tokenRefresh.WithLabelValues(outcome).Inc()
}

// Outcome maps an error to an outcome label.
func Outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}
