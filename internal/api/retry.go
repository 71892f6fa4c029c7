package api

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"net/http"
	"slices"
	"strconv"
	"time"
)

// RetryConfig decides whether and when a business request is sent again.
// Token exchanges are never retried here.
type RetryConfig struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int
	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration
	// MaxDelay caps every delay, including one requested by Retry-After.
	MaxDelay time.Duration
	// Multiplier grows the delay after each retry. 1 keeps it fixed.
	Multiplier float64
	// Jitter is the fraction (0.0 to 1.0) by which a delay may vary.
	Jitter float64
	// RetryableOn reports whether a response status is retried.
	RetryableOn func(statusCode int) bool
}

// DefaultRetryOn reports whether statusCode is retried by default: 408,
// 429 and every 5xx.
func DefaultRetryOn(statusCode int) bool {
	return statusCode >= http.StatusInternalServerError ||
		statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests
}

// DefaultRetryConfig returns DefaultMaxRetries retries starting at
// DefaultRetryDelay and doubling up to 10s.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:  DefaultMaxRetries,
		BaseDelay:   DefaultRetryDelay,
		MaxDelay:    10 * time.Second,
		Multiplier:  2.0,
		Jitter:      0.2,
		RetryableOn: DefaultRetryOn,
	}
}

func retryOn(codes []int) func(int) bool {
	codes = slices.Clone(codes)
	return func(statusCode int) bool {
		return slices.Contains(codes, statusCode)
	}
}

// ShouldRetry reports whether a response with statusCode on the given
// zero-based attempt is retried.
func (r *RetryConfig) ShouldRetry(attempt int, statusCode int) bool {
	if attempt >= r.MaxRetries || r.RetryableOn == nil {
		return false
	}
	return r.RetryableOn(statusCode)
}

// ShouldRetryError reports whether a transport error on the given attempt
// is retried. Cancellation and deadline errors never are.
func (r *RetryConfig) ShouldRetryError(attempt int, err error) bool {
	if attempt >= r.MaxRetries {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// Delay returns the backoff before retry number attempt+1.
func (r *RetryConfig) Delay(attempt int) time.Duration {
	mult := r.Multiplier
	if mult < 1 {
		mult = 1
	}
	delay := float64(r.BaseDelay) * math.Pow(mult, float64(attempt))
	if r.MaxDelay > 0 && delay > float64(r.MaxDelay) {
		delay = float64(r.MaxDelay)
	}

	if r.Jitter > 0 {
		spread := delay * r.Jitter
		delay = delay - spread + rand.Float64()*2*spread
	}
	return time.Duration(delay)
}

// Wait sleeps for the backoff of attempt, or for atLeast when the server
// asked for longer, bounded by MaxDelay. It returns early with the
// context's error.
func (r *RetryConfig) Wait(ctx context.Context, attempt int, atLeast time.Duration) error {
	delay := r.Delay(attempt)
	if atLeast > delay {
		delay = atLeast
		if r.MaxDelay > 0 && delay > r.MaxDelay {
			delay = r.MaxDelay
		}
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RetryAfter parses a Retry-After header given either in seconds or as an
// HTTP date. Absent, malformed or past values yield 0.
func RetryAfter(header string, now time.Time) time.Duration {
	if header == "" {
		return 0
	}
	if secs, err := strconv.Atoi(header); err == nil {
		if secs <= 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(header); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}
