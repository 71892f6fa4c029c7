package delivery

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func fastConfig() Config {
	return Config{
		InitialInterval: time.Millisecond,
		MaxBackoff:      4 * time.Millisecond,
		JitterFactor:    -1,
	}
}

// sequence returns a fetcher that yields states in order and then repeats
// the last one.
func sequence(states ...string) (StateFetcher, *atomic.Int32) {
	var calls atomic.Int32
	return func(context.Context) (string, error) {
		i := int(calls.Add(1)) - 1
		if i >= len(states) {
			i = len(states) - 1
		}
		return states[i], nil
	}, &calls
}

func TestNewPoller_Defaults(t *testing.T) {
	p := NewPoller(Config{})

	if p.cfg.InitialInterval != PollingInitialInterval {
		t.Errorf("InitialInterval = %v, want %v", p.cfg.InitialInterval, PollingInitialInterval)
	}
	if p.cfg.MaxBackoff != PollingMaxBackoff {
		t.Errorf("MaxBackoff = %v, want %v", p.cfg.MaxBackoff, PollingMaxBackoff)
	}
	if p.cfg.BackoffMultiplier != PollingBackoffMultiplier {
		t.Errorf("BackoffMultiplier = %v, want %v", p.cfg.BackoffMultiplier, PollingBackoffMultiplier)
	}
	if p.cfg.JitterFactor != PollingJitterFactor {
		t.Errorf("JitterFactor = %v, want %v", p.cfg.JitterFactor, PollingJitterFactor)
	}
}

func TestPoller_Wait_ImmediateMatch(t *testing.T) {
	fetch, calls := sequence("delivered")
	p := NewPoller(fastConfig())

	got, err := p.Wait(context.Background(), fetch, func(s string) bool { return s == "delivered" })
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if got != "delivered" {
		t.Errorf("Wait() = %q, want delivered", got)
	}
	if calls.Load() != 1 {
		t.Errorf("fetch calls = %d, want 1", calls.Load())
	}
}

func TestPoller_Wait_ReportsChanges(t *testing.T) {
	fetch, _ := sequence("created", "created", "approved", "approved", "printed")
	var changes []string
	cfg := fastConfig()
	cfg.OnChange = func(s string) { changes = append(changes, s) }

	got, err := NewPoller(cfg).Wait(context.Background(), fetch, func(s string) bool { return s == "printed" })
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if got != "printed" {
		t.Errorf("Wait() = %q, want printed", got)
	}
	want := []string{"created", "approved", "printed"}
	if len(changes) != len(want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("changes[%d] = %q, want %q", i, changes[i], want[i])
		}
	}
}

func TestPoller_Wait_ContextCancelled(t *testing.T) {
	fetch, _ := sequence("created")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	got, err := NewPoller(fastConfig()).Wait(ctx, fetch, func(string) bool { return false })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Wait() error = %v, want DeadlineExceeded", err)
	}
	if got != "created" {
		t.Errorf("Wait() last state = %q, want created", got)
	}
}

func TestPoller_Wait_ErrorNotRetryable(t *testing.T) {
	boom := errors.New("boom")
	var calls atomic.Int32
	fetch := func(context.Context) (string, error) {
		calls.Add(1)
		return "", boom
	}

	_, err := NewPoller(fastConfig()).Wait(context.Background(), fetch, func(string) bool { return true })
	if !errors.Is(err, boom) {
		t.Fatalf("Wait() error = %v, want boom", err)
	}
	if calls.Load() != 1 {
		t.Errorf("fetch calls = %d, want 1", calls.Load())
	}
}

func TestPoller_Wait_RetryableError(t *testing.T) {
	transient := errors.New("transient")
	var calls atomic.Int32
	fetch := func(context.Context) (string, error) {
		if calls.Add(1) < 3 {
			return "", transient
		}
		return "approved", nil
	}
	cfg := fastConfig()
	cfg.Retryable = func(err error) bool { return errors.Is(err, transient) }

	got, err := NewPoller(cfg).Wait(context.Background(), fetch, func(s string) bool { return s == "approved" })
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if got != "approved" {
		t.Errorf("Wait() = %q, want approved", got)
	}
	if calls.Load() != 3 {
		t.Errorf("fetch calls = %d, want 3", calls.Load())
	}
}

func TestPoller_nextInterval(t *testing.T) {
	p := NewPoller(Config{InitialInterval: 2 * time.Second})

	tests := []struct {
		cur  time.Duration
		want time.Duration
	}{
		{2 * time.Second, 3 * time.Second},
		{10 * time.Second, 15 * time.Second},
		{25 * time.Second, PollingMaxBackoff},
		{PollingMaxBackoff, PollingMaxBackoff},
	}
	for _, tt := range tests {
		if got := p.nextInterval(tt.cur); got != tt.want {
			t.Errorf("nextInterval(%v) = %v, want %v", tt.cur, got, tt.want)
		}
	}
}

func TestPoller_waitDuration(t *testing.T) {
	p := NewPoller(Config{})
	interval := 2 * time.Second

	for range 10 {
		d := p.waitDuration(interval)
		if d < interval {
			t.Errorf("duration %v is less than base interval %v", d, interval)
		}
		maxExpected := time.Duration(float64(interval) * (1 + PollingJitterFactor))
		if d > maxExpected {
			t.Errorf("duration %v exceeds max expected %v", d, maxExpected)
		}
	}

	if d := NewPoller(Config{JitterFactor: -1}).waitDuration(interval); d != interval {
		t.Errorf("waitDuration without jitter = %v, want %v", d, interval)
	}
}
