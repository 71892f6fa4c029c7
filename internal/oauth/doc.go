// Package oauth acquires and caches OAuth2 client-credentials bearer tokens
// for the postcard API.
//
// A [TokenManager] owns one cached token. On a cache miss or after expiry it
// performs the client-credentials exchange against the token endpoint and
// caches the result for max(expires_in-60, 60) seconds. [TokenManager.Clear]
// evicts the cached token so the next call re-authenticates.
//
// # Caches
//
// The cache is pluggable:
//
//   - [MemoryCache]: process-local, the default.
//   - [RedisCache]: shared between processes through Redis.
//   - [FileCache]: persisted to disk and sealed with a key derived from the
//     client secret, useful for short-lived CLI invocations.
//
// # Thread Safety
//
// [TokenManager] is safe for concurrent use. Concurrent cache misses are
// collapsed into a single token exchange.
package oauth
