package postcard

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/postcardcloud/postcard-go/internal/api"
	"github.com/postcardcloud/postcard-go/internal/delivery"
	"github.com/postcardcloud/postcard-go/internal/metrics"
	"github.com/postcardcloud/postcard-go/internal/oauth"
)

// AccessToken is an OAuth2 bearer token with its absolute expiry.
type AccessToken = oauth.AccessToken

// TokenCache stores at most one access token.
type TokenCache = oauth.Cache

// NewMemoryTokenCache returns a process-local token cache.
func NewMemoryTokenCache() TokenCache {
	return oauth.NewMemoryCache()
}

// NewRedisTokenCache returns a token cache shared through Redis. An empty
// key selects swiss_post_postcard_api_oauth2_token.
func NewRedisTokenCache(client redis.UniversalClient, key string) TokenCache {
	return oauth.NewRedisCache(client, key)
}

// NewFileTokenCache returns a token cache persisted at path. The token is
// encrypted with a key derived from clientSecret.
func NewFileTokenCache(path, clientSecret string) (TokenCache, error) {
	c, err := oauth.NewFileCache(path, clientSecret)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Client talks to the postcard API. It is safe for concurrent use.
type Client struct {
	apiClient       *api.Client
	tokens          *oauth.TokenManager
	polling         delivery.Config
	defaultCampaign string
	skipValidation  bool
	logger          *slog.Logger
}

// New creates a client for the given OAuth2 client credentials. No request
// is made until the first operation.
func New(clientID, clientSecret string, opts ...Option) (*Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, ErrMissingCredentials
	}

	cfg := &clientConfig{
		baseURL:  DefaultBaseURL,
		tokenURL: DefaultTokenURL,
		scopes:   []string{DefaultScope},
		timeout:  defaultTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	logger := slog.New(slog.DiscardHandler)
	if cfg.debug {
		logger = cfg.logger
		if logger == nil {
			logger = slog.Default()
		}
	}

	var recorder metrics.Recorder = metrics.Nop{}
	if cfg.registerer != nil {
		p, err := metrics.NewPrometheus(cfg.registerer)
		if err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
		recorder = p
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.timeout}
	}

	tokens, err := oauth.NewTokenManager(oauth.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     cfg.tokenURL,
		Scopes:       cfg.scopes,
		HTTPClient:   httpClient,
		Cache:        cfg.tokenCache,
		Logger:       logger,
		Metrics:      recorder,
	})
	if err != nil {
		return nil, wrapError(err)
	}

	apiClient, err := api.NewClient(api.Config{
		BaseURL:    cfg.baseURL,
		Tokens:     tokens,
		HTTPClient: httpClient,
		MaxRetries: cfg.retries,
		RetryDelay: cfg.retryDelay,
		RetryOn:    cfg.retryOn,
		Limiter:    cfg.limiter,
		Logger:     logger,
		Metrics:    recorder,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		apiClient:       apiClient,
		tokens:          tokens,
		polling:         pollingConfig(cfg),
		defaultCampaign: cfg.defaultCampaign,
		skipValidation:  cfg.skipValidation,
		logger:          logger,
	}, nil
}

func pollingConfig(cfg *clientConfig) delivery.Config {
	return delivery.Config{
		InitialInterval:   cfg.pollingInitialInterval,
		MaxBackoff:        cfg.pollingMaxBackoff,
		BackoffMultiplier: cfg.pollingBackoffMultiplier,
		JitterFactor:      cfg.pollingJitterFactor,
	}
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.apiClient.BaseURL()
}

// DefaultCampaign returns the configured default campaign key, if any.
func (c *Client) DefaultCampaign() string {
	return c.defaultCampaign
}

// Token returns a valid access token, exchanging the client credentials
// if no cached token is usable.
func (c *Client) Token(ctx context.Context) (AccessToken, error) {
	tok, err := c.tokens.Token(ctx)
	return tok, wrapError(err)
}

// ClearToken evicts the cached access token. The next operation
// re-authenticates.
func (c *Client) ClearToken(ctx context.Context) error {
	return c.tokens.Clear(ctx)
}

func (c *Client) campaign(cfg *callConfig) (string, error) {
	if cfg.campaignKey != "" {
		return cfg.campaignKey, nil
	}
	if c.defaultCampaign != "" {
		return c.defaultCampaign, nil
	}
	return "", ErrMissingCampaignKey
}
