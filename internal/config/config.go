// Package config loads client settings for the postcard CLI from a YAML
// file, a .env file and SWISS_POST_POSTCARD_API_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/postcardcloud/postcard-go"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SWISS_POST_POSTCARD_API_"

// Token cache types.
const (
	CacheMemory = "memory"
	CacheFile   = "file"
	CacheRedis  = "redis"
)

// Config holds the client configuration.
type Config struct {
	ClientID        string        `yaml:"client_id"`
	ClientSecret    string        `yaml:"client_secret"`
	BaseURL         string        `yaml:"base_url"`
	TokenURL        string        `yaml:"token_url"`
	AuthURL         string        `yaml:"auth_url"`
	Scope           string        `yaml:"scope"`
	DefaultCampaign string        `yaml:"default_campaign"`
	Timeout         time.Duration `yaml:"timeout"`
	Retries         int           `yaml:"retries"`
	RetryDelay      time.Duration `yaml:"retry_delay"`
	Debug           bool          `yaml:"debug"`

	// RateLimit is the maximum request rate per second. Zero disables it.
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`

	TokenCache TokenCacheConfig `yaml:"token_cache"`
}

// TokenCacheConfig selects where access tokens are kept between runs.
type TokenCacheConfig struct {
	// Type is memory, file or redis.
	Type string `yaml:"type"`
	// Path is the cache file for the file type.
	Path string `yaml:"path"`
	// RedisAddr is host:port for the redis type.
	RedisAddr string `yaml:"redis_addr"`
	// RedisKey overrides the default cache key.
	RedisKey string `yaml:"redis_key"`
}

// Default returns the configuration for the provider's integration
// environment without credentials.
func Default() *Config {
	return &Config{
		BaseURL:    postcard.DefaultBaseURL,
		TokenURL:   postcard.DefaultTokenURL,
		AuthURL:    postcard.DefaultAuthURL,
		Scope:      postcard.DefaultScope,
		Timeout:    30 * time.Second,
		Retries:    3,
		RetryDelay: 500 * time.Millisecond,
		RateBurst:  1,
		TokenCache: TokenCacheConfig{Type: CacheMemory},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// path is not empty), the nearest .env file and the environment, in that
// order of increasing precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	loadDotEnv()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields with the matching environment variables.
// Timeout is in seconds and RETRY_SLEEP in milliseconds.
func (c *Config) applyEnv() {
	c.ClientID = env.GetString(EnvPrefix+"CLIENT_ID", c.ClientID)
	c.ClientSecret = env.GetString(EnvPrefix+"CLIENT_SECRET", c.ClientSecret)
	c.BaseURL = env.GetString(EnvPrefix+"BASE_URL", c.BaseURL)
	c.TokenURL = env.GetString(EnvPrefix+"TOKEN_URL", c.TokenURL)
	c.AuthURL = env.GetString(EnvPrefix+"AUTH_URL", c.AuthURL)
	c.Scope = env.GetString(EnvPrefix+"SCOPE", c.Scope)
	c.DefaultCampaign = env.GetString(EnvPrefix+"DEFAULT_CAMPAIGN", c.DefaultCampaign)

	c.Timeout = time.Duration(env.GetInt(EnvPrefix+"TIMEOUT", int(c.Timeout/time.Second))) * time.Second
	c.Retries = env.GetInt(EnvPrefix+"RETRY_TIMES", c.Retries)
	c.RetryDelay = time.Duration(env.GetInt(EnvPrefix+"RETRY_SLEEP", int(c.RetryDelay/time.Millisecond))) * time.Millisecond
	c.Debug = env.GetBool(EnvPrefix+"DEBUG", c.Debug)

	c.RateLimit = env.GetFloat64(EnvPrefix+"RATE_LIMIT", c.RateLimit)
	c.RateBurst = env.GetInt(EnvPrefix+"RATE_BURST", c.RateBurst)

	c.TokenCache.Type = env.GetString(EnvPrefix+"TOKEN_CACHE", c.TokenCache.Type)
	c.TokenCache.Path = env.GetString(EnvPrefix+"TOKEN_CACHE_PATH", c.TokenCache.Path)
	c.TokenCache.RedisAddr = env.GetString(EnvPrefix+"REDIS_ADDR", c.TokenCache.RedisAddr)
	c.TokenCache.RedisKey = env.GetString(EnvPrefix+"REDIS_KEY", c.TokenCache.RedisKey)
}

// Validate checks settings that cannot be used as given. Credentials are
// not required here; commands that talk to the API check them.
func (c *Config) Validate() error {
	switch c.TokenCache.Type {
	case "", CacheMemory:
	case CacheFile:
		if c.TokenCache.Path == "" {
			return errors.New("token_cache.path is required for the file token cache")
		}
	case CacheRedis:
		if c.TokenCache.RedisAddr == "" {
			return errors.New("token_cache.redis_addr is required for the redis token cache")
		}
	default:
		return fmt.Errorf("unknown token cache type %q", c.TokenCache.Type)
	}
	if c.Timeout < 0 || c.RetryDelay < 0 {
		return errors.New("timeout and retry_delay must not be negative")
	}
	if c.RateLimit < 0 {
		return errors.New("rate_limit must not be negative")
	}
	return nil
}

// HasCredentials reports whether both client ID and secret are set.
func (c *Config) HasCredentials() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// loadDotEnv loads the first .env file found walking up from the working
// directory. Variables already set in the environment win.
func loadDotEnv() {
	dir, err := os.Getwd()
	if err != nil {
		return
	}
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
