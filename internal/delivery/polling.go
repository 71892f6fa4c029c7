package delivery

import (
	"context"
	"math/rand/v2"
	"time"
)

const (
	PollingInitialInterval   = 2 * time.Second
	PollingMaxBackoff        = 30 * time.Second
	PollingBackoffMultiplier = 1.5
	PollingJitterFactor      = 0.3
)

// Config controls a Poller. Zero fields select the package defaults.
type Config struct {
	InitialInterval   time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
	// JitterFactor is the maximum fraction of the interval added as jitter.
	// A negative value disables jitter.
	JitterFactor float64
	// Retryable reports whether a fetch error should be retried after the
	// current interval. If nil, every fetch error ends the wait.
	Retryable func(error) bool
	// OnChange is called with every newly observed state, including the first.
	OnChange func(state string)
}

// StateFetcher returns the current processing state.
type StateFetcher func(ctx context.Context) (string, error)

// Poller waits for a state condition using adaptive backoff.
type Poller struct {
	cfg Config
}

// NewPoller returns a Poller for cfg.
func NewPoller(cfg Config) *Poller {
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = PollingInitialInterval
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = PollingMaxBackoff
	}
	if cfg.MaxBackoff < cfg.InitialInterval {
		cfg.MaxBackoff = cfg.InitialInterval
	}
	if cfg.BackoffMultiplier < 1 {
		cfg.BackoffMultiplier = PollingBackoffMultiplier
	}
	if cfg.JitterFactor == 0 {
		cfg.JitterFactor = PollingJitterFactor
	}
	return &Poller{cfg: cfg}
}

// Wait fetches the state until done reports true and returns that state.
// The first fetch happens immediately.
func (p *Poller) Wait(ctx context.Context, fetch StateFetcher, done func(string) bool) (string, error) {
	var (
		last     string
		seen     bool
		interval = p.cfg.InitialInterval
	)

	for {
		state, err := fetch(ctx)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return last, ctx.Err()
			}
			if p.cfg.Retryable == nil || !p.cfg.Retryable(err) {
				return last, err
			}
		case !seen || state != last:
			seen = true
			last = state
			interval = p.cfg.InitialInterval
			if p.cfg.OnChange != nil {
				p.cfg.OnChange(state)
			}
			if done(state) {
				return state, nil
			}
		default:
			interval = p.nextInterval(interval)
		}

		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case <-time.After(p.waitDuration(interval)):
		}
	}
}

func (p *Poller) nextInterval(cur time.Duration) time.Duration {
	next := time.Duration(float64(cur) * p.cfg.BackoffMultiplier)
	if next > p.cfg.MaxBackoff {
		next = p.cfg.MaxBackoff
	}
	return next
}

func (p *Poller) waitDuration(interval time.Duration) time.Duration {
	if p.cfg.JitterFactor < 0 {
		return interval
	}
	jitter := time.Duration(rand.Float64() * p.cfg.JitterFactor * float64(interval))
	return interval + jitter
}
