package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/postcardcloud/postcard-go/internal/crypto"
)

// FileCache persists the token to a file sealed with a key derived from the
// client secret. A missing, foreign or undecryptable file is a cache miss.
type FileCache struct {
	mu   sync.Mutex
	path string
	key  []byte
	now  func() time.Time
}

// NewFileCache returns a FileCache writing to path.
func NewFileCache(path, clientSecret string) (*FileCache, error) {
	if path == "" {
		return nil, errors.New("token cache path is required")
	}
	key, err := crypto.DeriveKey([]byte(clientSecret), nil, []byte(crypto.TokenCacheContext))
	if err != nil {
		return nil, err
	}
	return &FileCache{path: path, key: key, now: time.Now}, nil
}

// Get implements Cache.
func (c *FileCache) Get(_ context.Context) (AccessToken, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sealed, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return AccessToken{}, false, nil
	}
	if err != nil {
		return AccessToken{}, false, fmt.Errorf("read token cache: %w", err)
	}

	plain, err := crypto.Open(c.key, sealed)
	if err != nil {
		return AccessToken{}, false, nil
	}

	var tok AccessToken
	if err := json.Unmarshal(plain, &tok); err != nil {
		return AccessToken{}, false, nil
	}
	if !tok.Valid(c.now()) {
		return AccessToken{}, false, nil
	}
	return tok, true, nil
}

// Set implements Cache. The file is replaced atomically with mode 0600.
func (c *FileCache) Set(_ context.Context, tok AccessToken, ttl time.Duration) error {
	if expires := c.now().Add(ttl); tok.ExpiresAt.IsZero() || expires.Before(tok.ExpiresAt) {
		tok.ExpiresAt = expires
	}

	plain, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	sealed, err := crypto.Seal(c.key, plain)
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create token cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".token-*")
	if err != nil {
		return fmt.Errorf("create token cache: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod token cache: %w", err)
	}
	if _, err := tmp.Write(sealed); err != nil {
		tmp.Close()
		return fmt.Errorf("write token cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write token cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("replace token cache: %w", err)
	}
	return nil
}

// Delete implements Cache.
func (c *FileCache) Delete(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete token cache: %w", err)
	}
	return nil
}
