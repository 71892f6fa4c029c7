package oauth

import (
	"context"
	"sync"
	"time"
)

// DefaultCacheKey is the key used by shared caches when none is configured.
const DefaultCacheKey = "swiss_post_postcard_api_oauth2_token"

// AccessToken is a bearer credential with its absolute expiry.
type AccessToken struct {
	Value     string    `json:"access_token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Valid reports whether the token is usable at now.
func (t AccessToken) Valid(now time.Time) bool {
	return t.Value != "" && now.Before(t.ExpiresAt)
}

// Cache stores at most one access token.
type Cache interface {
	// Get returns the cached token. ok is false on a miss.
	Get(ctx context.Context) (tok AccessToken, ok bool, err error)

	// Set stores tok for ttl.
	Set(ctx context.Context, tok AccessToken, ttl time.Duration) error

	// Delete evicts the cached token. Deleting a missing token is not an error.
	Delete(ctx context.Context) error
}

// MemoryCache is a process-local Cache.
type MemoryCache struct {
	mu  sync.RWMutex
	tok AccessToken
	set bool
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

// Get implements Cache.
func (c *MemoryCache) Get(_ context.Context) (AccessToken, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tok, c.set, nil
}

// Set implements Cache. Expiry is carried by the token itself.
func (c *MemoryCache) Set(_ context.Context, tok AccessToken, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tok = tok
	c.set = true
	return nil
}

// Delete implements Cache.
func (c *MemoryCache) Delete(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tok = AccessToken{}
	c.set = false
	return nil
}
