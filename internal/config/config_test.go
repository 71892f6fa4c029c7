package config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postcardcloud/postcard-go"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "postcard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults",
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://apiint.post.ch/pcc/", cfg.BaseURL)
				assert.Equal(t, "https://apiint.post.ch/OAuth/token", cfg.TokenURL)
				assert.Equal(t, "https://apiint.post.ch/OAuth/authorization", cfg.AuthURL)
				assert.Equal(t, "PCCAPI", cfg.Scope)
				assert.Equal(t, 30*time.Second, cfg.Timeout)
				assert.Equal(t, 3, cfg.Retries)
				assert.Equal(t, 500*time.Millisecond, cfg.RetryDelay)
				assert.False(t, cfg.Debug)
				assert.Equal(t, CacheMemory, cfg.TokenCache.Type)
				assert.False(t, cfg.HasCredentials())
			},
		},
		{
			name: "yaml file",
			yaml: `
client_id: file-id
client_secret: file-secret
base_url: https://api.post.ch/pcc/
default_campaign: camp-file
timeout: 10s
retries: 5
retry_delay: 250ms
debug: true
rate_limit: 2.5
rate_burst: 4
token_cache:
  type: file
  path: /tmp/postcard-token
`,
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "file-id", cfg.ClientID)
				assert.True(t, cfg.HasCredentials())
				assert.Equal(t, "https://api.post.ch/pcc/", cfg.BaseURL)
				assert.Equal(t, "https://apiint.post.ch/OAuth/token", cfg.TokenURL)
				assert.Equal(t, "camp-file", cfg.DefaultCampaign)
				assert.Equal(t, 10*time.Second, cfg.Timeout)
				assert.Equal(t, 5, cfg.Retries)
				assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)
				assert.True(t, cfg.Debug)
				assert.InDelta(t, 2.5, cfg.RateLimit, 0.001)
				assert.Equal(t, 4, cfg.RateBurst)
				assert.Equal(t, CacheFile, cfg.TokenCache.Type)
				assert.Equal(t, "/tmp/postcard-token", cfg.TokenCache.Path)
			},
		},
		{
			name: "environment overrides file",
			yaml: "client_id: file-id\nretries: 5\n",
			envVars: map[string]string{
				"SWISS_POST_POSTCARD_API_CLIENT_ID":        "env-id",
				"SWISS_POST_POSTCARD_API_CLIENT_SECRET":    "env-secret",
				"SWISS_POST_POSTCARD_API_DEFAULT_CAMPAIGN": "camp-env",
				"SWISS_POST_POSTCARD_API_TIMEOUT":          "45",
				"SWISS_POST_POSTCARD_API_RETRY_TIMES":      "1",
				"SWISS_POST_POSTCARD_API_RETRY_SLEEP":      "100",
				"SWISS_POST_POSTCARD_API_DEBUG":            "true",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "env-id", cfg.ClientID)
				assert.Equal(t, "env-secret", cfg.ClientSecret)
				assert.Equal(t, "camp-env", cfg.DefaultCampaign)
				assert.Equal(t, 45*time.Second, cfg.Timeout)
				assert.Equal(t, 1, cfg.Retries)
				assert.Equal(t, 100*time.Millisecond, cfg.RetryDelay)
				assert.True(t, cfg.Debug)
			},
		},
		{
			name: "redis cache from environment",
			envVars: map[string]string{
				"SWISS_POST_POSTCARD_API_TOKEN_CACHE": "redis",
				"SWISS_POST_POSTCARD_API_REDIS_ADDR":  "localhost:6379",
				"SWISS_POST_POSTCARD_API_REDIS_KEY":   "cards",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, CacheRedis, cfg.TokenCache.Type)
				assert.Equal(t, "localhost:6379", cfg.TokenCache.RedisAddr)
				assert.Equal(t, "cards", cfg.TokenCache.RedisKey)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}
			path := ""
			if tt.yaml != "" {
				path = writeConfig(t, tt.yaml)
			}

			cfg, err := Load(path)
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown field", "client_idd: x\n", "field client_idd not found"},
		{"bad duration", "timeout: soon\n", "parse config"},
		{"unknown cache", "token_cache:\n  type: disk\n", `unknown token cache type "disk"`},
		{"file cache without path", "token_cache:\n  type: file\n", "token_cache.path is required"},
		{"redis cache without addr", "token_cache:\n  type: redis\n", "token_cache.redis_addr is required"},
		{"negative rate", "rate_limit: -1\n", "rate_limit must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadDotEnv(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"),
		[]byte("SWISS_POST_POSTCARD_API_SCOPE=DOTENV\n"), 0o600))

	t.Chdir(nested)
	// Registered so the variable loaded from .env is removed after the test.
	t.Setenv("SWISS_POST_POSTCARD_API_SCOPE", "")
	require.NoError(t, os.Unsetenv("SWISS_POST_POSTCARD_API_SCOPE"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "DOTENV", cfg.Scope)
}

func TestOptions(t *testing.T) {
	t.Run("memory cache", func(t *testing.T) {
		cfg := Default()
		cfg.ClientID, cfg.ClientSecret = "id", "secret"
		cfg.DefaultCampaign = "camp-1"
		cfg.RateLimit = 5

		opts, closeFn, err := cfg.Options(nil)
		require.NoError(t, err)
		defer closeFn()

		client, err := postcard.New(cfg.ClientID, cfg.ClientSecret, opts...)
		require.NoError(t, err)
		assert.Equal(t, "camp-1", client.DefaultCampaign())
		assert.Equal(t, "https://apiint.post.ch/pcc", client.BaseURL())
	})

	t.Run("zero retries", func(t *testing.T) {
		var apiCalls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/OAuth/token" {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_in":3600}`))
				return
			}
			apiCalls.Add(1)
			http.Error(w, "maintenance", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		t.Setenv("SWISS_POST_POSTCARD_API_RETRY_TIMES", "0")
		cfg, err := Load("")
		require.NoError(t, err)
		require.Equal(t, 0, cfg.Retries)
		cfg.ClientID, cfg.ClientSecret = "id", "secret"
		cfg.BaseURL = srv.URL + "/pcc/"
		cfg.TokenURL = srv.URL + "/OAuth/token"

		opts, closeFn, err := cfg.Options(nil)
		require.NoError(t, err)
		defer closeFn()

		client, err := postcard.New(cfg.ClientID, cfg.ClientSecret, opts...)
		require.NoError(t, err)
		_, err = client.State(context.Background(), "card-1")
		require.Error(t, err)
		assert.Equal(t, int32(1), apiCalls.Load())
	})

	t.Run("file cache", func(t *testing.T) {
		cfg := Default()
		cfg.ClientSecret = "secret"
		cfg.TokenCache = TokenCacheConfig{Type: CacheFile, Path: filepath.Join(t.TempDir(), "token")}

		opts, closeFn, err := cfg.Options(nil)
		require.NoError(t, err)
		defer closeFn()
		assert.NotEmpty(t, opts)
	})

	t.Run("redis cache", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := Default()
		cfg.TokenCache = TokenCacheConfig{Type: CacheRedis, RedisAddr: mr.Addr()}

		opts, closeFn, err := cfg.Options(nil)
		require.NoError(t, err)
		assert.NotEmpty(t, opts)
		assert.NoError(t, closeFn())
	})
}
