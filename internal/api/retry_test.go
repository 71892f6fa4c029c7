package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"
)

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()

	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.BaseDelay != 500*time.Millisecond {
		t.Errorf("BaseDelay = %v, want 500ms", cfg.BaseDelay)
	}
	if cfg.MaxDelay != 10*time.Second {
		t.Errorf("MaxDelay = %v, want 10s", cfg.MaxDelay)
	}
}

func TestRetryConfig_ShouldRetry(t *testing.T) {
	cfg := DefaultRetryConfig()

	tests := []struct {
		name       string
		attempt    int
		statusCode int
		want       bool
	}{
		{"service unavailable", 0, http.StatusServiceUnavailable, true},
		{"last retry", 2, http.StatusBadGateway, true},
		{"retries exhausted", 3, http.StatusServiceUnavailable, false},
		{"rate limited", 0, http.StatusTooManyRequests, true},
		{"request timeout", 0, http.StatusRequestTimeout, true},
		{"internal server error", 0, http.StatusInternalServerError, true},
		{"not implemented", 0, http.StatusNotImplemented, true},
		{"http version not supported", 0, http.StatusHTTPVersionNotSupported, true},
		{"nonstandard 5xx", 0, 599, true},
		{"conflict", 0, http.StatusConflict, false},
		{"bad request", 0, http.StatusBadRequest, false},
		{"unauthorized", 0, http.StatusUnauthorized, false},
		{"postcard not found", 0, http.StatusNotFound, false},
		{"ok with embedded errors", 0, http.StatusOK, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.ShouldRetry(tt.attempt, tt.statusCode); got != tt.want {
				t.Errorf("ShouldRetry(%d, %d) = %v, want %v", tt.attempt, tt.statusCode, got, tt.want)
			}
		})
	}
}

func TestRetryConfig_ShouldRetry_Disabled(t *testing.T) {
	cfg := &RetryConfig{MaxRetries: 0, RetryableOn: DefaultRetryOn}
	if cfg.ShouldRetry(0, http.StatusServiceUnavailable) {
		t.Error("ShouldRetry() = true with MaxRetries 0")
	}
	if cfg.ShouldRetryError(0, io.ErrUnexpectedEOF) {
		t.Error("ShouldRetryError() = true with MaxRetries 0")
	}
}

func TestRetryConfig_ShouldRetryError(t *testing.T) {
	cfg := DefaultRetryConfig()

	tests := []struct {
		name    string
		attempt int
		err     error
		want    bool
	}{
		{"connection reset", 0, errors.New("read: connection reset by peer"), true},
		{"unexpected eof", 1, io.ErrUnexpectedEOF, true},
		{"retries exhausted", 3, io.ErrUnexpectedEOF, false},
		{"canceled", 0, context.Canceled, false},
		{"deadline", 0, context.DeadlineExceeded, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.ShouldRetryError(tt.attempt, tt.err); got != tt.want {
				t.Errorf("ShouldRetryError(%d, %v) = %v, want %v", tt.attempt, tt.err, got, tt.want)
			}
		})
	}
}

func TestRetryConfig_Delay(t *testing.T) {
	tests := []struct {
		name       string
		multiplier float64
		want       []time.Duration
	}{
		{"exponential", 2, []time.Duration{500 * time.Millisecond, time.Second, 2 * time.Second, 3 * time.Second}},
		{"fixed", 1, []time.Duration{500 * time.Millisecond, 500 * time.Millisecond, 500 * time.Millisecond, 500 * time.Millisecond}},
		{"zero multiplier is fixed", 0, []time.Duration{500 * time.Millisecond, 500 * time.Millisecond, 500 * time.Millisecond, 500 * time.Millisecond}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &RetryConfig{BaseDelay: 500 * time.Millisecond, MaxDelay: 3 * time.Second, Multiplier: tt.multiplier}
			for attempt, want := range tt.want {
				if got := cfg.Delay(attempt); got != want {
					t.Errorf("Delay(%d) = %v, want %v", attempt, got, want)
				}
			}
		})
	}
}

func TestRetryConfig_Delay_Jitter(t *testing.T) {
	cfg := &RetryConfig{BaseDelay: time.Second, MaxDelay: 30 * time.Second, Multiplier: 2, Jitter: 0.5}

	for range 100 {
		if d := cfg.Delay(0); d < 500*time.Millisecond || d > 1500*time.Millisecond {
			t.Fatalf("Delay(0) = %v, want between 500ms and 1.5s", d)
		}
	}
}

func TestRetryConfig_Wait(t *testing.T) {
	cfg := &RetryConfig{BaseDelay: time.Millisecond, MaxDelay: 50 * time.Millisecond, Multiplier: 1}

	t.Run("retry after extends the delay", func(t *testing.T) {
		start := time.Now()
		if err := cfg.Wait(context.Background(), 0, 20*time.Millisecond); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
		if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
			t.Errorf("Wait() returned after %v, want at least 20ms", elapsed)
		}
	})

	t.Run("retry after is capped", func(t *testing.T) {
		start := time.Now()
		if err := cfg.Wait(context.Background(), 0, time.Hour); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
		if elapsed := time.Since(start); elapsed > time.Second {
			t.Errorf("Wait() took %v, want it capped at MaxDelay", elapsed)
		}
	})

	t.Run("cancellation", func(t *testing.T) {
		slow := &RetryConfig{BaseDelay: 10 * time.Second, Multiplier: 1}
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		start := time.Now()
		if err := slow.Wait(ctx, 0, 0); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Wait() error = %v, want context.DeadlineExceeded", err)
		}
		if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
			t.Errorf("Wait() took %v after cancellation", elapsed)
		}
	})
}

func TestRetryOn_CustomCodes(t *testing.T) {
	codes := []int{http.StatusTeapot}
	cfg := &RetryConfig{MaxRetries: 3, RetryableOn: retryOn(codes)}
	codes[0] = http.StatusInternalServerError

	if !cfg.ShouldRetry(0, http.StatusTeapot) {
		t.Error("ShouldRetry(418) = false, want true")
	}
	if cfg.ShouldRetry(0, http.StatusInternalServerError) {
		t.Error("ShouldRetry(500) = true, want false; codes must be copied")
	}
}

func TestRetryAfter(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		header string
		want   time.Duration
	}{
		{"absent", "", 0},
		{"seconds", "3", 3 * time.Second},
		{"zero", "0", 0},
		{"negative", "-5", 0},
		{"http date", now.Add(90 * time.Second).Format(http.TimeFormat), 90 * time.Second},
		{"past date", now.Add(-time.Minute).Format(http.TimeFormat), 0},
		{"garbage", "soon", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RetryAfter(tt.header, now); got != tt.want {
				t.Errorf("RetryAfter(%q) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}
