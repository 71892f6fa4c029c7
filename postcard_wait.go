package postcard

import (
	"context"
	"errors"

	"github.com/postcardcloud/postcard-go/internal/delivery"
)

// ErrNoTargetState is returned by WaitForState when no state is given.
var ErrNoTargetState = errors.New("at least one target state is required")

// WaitForState polls the state of a postcard until it is one of the states
// given with WithStates. Polling backs off while the state is unchanged.
// Network failures and rate limiting are retried; other errors end the wait.
//
// Example:
//
//	resp, err := client.WaitForState(ctx, key,
//	    postcard.WithStates("delivered"),
//	    postcard.WithWaitTimeout(time.Hour),
//	)
func (c *Client) WaitForState(ctx context.Context, key CardKey, opts ...WaitOption) (*StateResponse, error) {
	cfg := &waitConfig{
		timeout: defaultWaitTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if len(cfg.states) == 0 {
		return nil, ErrNoTargetState
	}

	waitCtx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	var last *StateResponse
	pollCfg := c.polling
	pollCfg.Retryable = retryableWaitError
	pollCfg.OnChange = func(string) {
		if cfg.onChange != nil && last != nil {
			cfg.onChange(last.State)
		}
	}

	fetch := func(ctx context.Context) (string, error) {
		resp, err := c.State(ctx, key)
		if err != nil {
			return "", err
		}
		last = resp
		return resp.State.State, nil
	}

	if _, err := delivery.NewPoller(pollCfg).Wait(waitCtx, fetch, cfg.Matches); err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return last, &TimeoutError{Operation: "wait for postcard state", Timeout: cfg.timeout}
		}
		return last, err
	}
	return last, nil
}

func retryableWaitError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr) || errors.Is(err, ErrRateLimited)
}
