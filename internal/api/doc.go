// Package api provides the authenticated HTTP transport for the postcard
// API. It attaches bearer tokens, encodes JSON and multipart bodies,
// classifies provider responses and retries transient failures.
//
// # Client Creation
//
// Use [NewClient] with a [Config]. A [TokenSource] is required; it supplies
// bearer tokens and is told to drop its token when the API answers 401.
//
// # Response Classification
//
// The provider does not reliably signal failure with the HTTP status alone.
// [Classify] inspects the status, the Content-Type and the body:
//
//   - Token endpoint responses are judged by status only.
//   - HTML responses fail when the status is 400 or above.
//   - JSON responses fail when they carry a non-empty "errors" array, even
//     with status 200. Undecodable JSON falls back to the status.
//   - Anything else fails when the status is 400 or above.
//
// Every failure is returned as a single [*APIError].
//
// # Retries
//
// Business requests are resent after transport errors and after the
// statuses accepted by [DefaultRetryOn] (408, 429 and any 5xx), up to
// 3 times. The delay starts at 500ms and doubles, but a Retry-After header
// on the response takes precedence up to [RetryConfig.MaxDelay].
//
// A 401 is handled outside that loop: the token source is cleared and the
// request is sent exactly once more with a fresh token.
//
// A [Client] may be shared between goroutines.
package api
