// Package delivery tracks a postcard through the provider's processing
// states after it has been approved.
//
// The provider offers no push notifications, so [Poller] repeatedly fetches
// the state with adaptive backoff:
//
//   - The interval starts at 2s and grows by 1.5x while the state is unchanged
//   - It is capped at 30s and resets whenever the state changes
//   - Up to 30% random jitter is added to every wait
//
// # Usage
//
//	p := delivery.NewPoller(delivery.Config{})
//	state, err := p.Wait(ctx, fetchState, func(s string) bool {
//	    return s == "delivered"
//	})
//
// Wait returns when done reports true, when fetch returns an error that is
// not retryable, or when ctx is done.
package delivery
