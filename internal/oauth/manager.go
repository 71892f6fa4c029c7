package oauth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"

	"github.com/postcardcloud/postcard-go/internal/metrics"
)

const (
	// DefaultScope is the scope requested when none is configured.
	DefaultScope = "PCCAPI"

	// DefaultExpiresIn is assumed when the token response omits expires_in.
	DefaultExpiresIn = 3600 * time.Second

	// ExpiryBuffer is subtracted from expires_in so a token is never used
	// right at its expiry.
	ExpiryBuffer = 60 * time.Second

	// MinTTL is the lower bound for the cache lifetime of a token.
	MinTTL = 60 * time.Second
)

// Config configures a TokenManager.
type Config struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scopes       []string

	// HTTPClient performs the token exchange. Defaults to http.DefaultClient.
	HTTPClient *http.Client
	// Cache stores the token. Defaults to a MemoryCache.
	Cache Cache
	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
	// Logger receives debug events. Defaults to discarding.
	Logger  *slog.Logger
	Metrics metrics.Recorder
}

// TokenManager hands out cached client-credentials access tokens.
type TokenManager struct {
	cc         clientcredentials.Config
	httpClient *http.Client
	cache      Cache
	now        func() time.Time
	logger     *slog.Logger
	metrics    metrics.Recorder

	mu sync.Mutex
	// gen is bumped by Clear so a refresh started before the eviction does
	// not repopulate the cache.
	gen   uint64
	group singleflight.Group
}

// NewTokenManager returns a TokenManager for cfg.
func NewTokenManager(cfg Config) (*TokenManager, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, ErrMissingCredentials
	}
	if cfg.TokenURL == "" {
		return nil, errors.New("token URL is required")
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{DefaultScope}
	}

	m := &TokenManager{
		cc: clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       scopes,
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		httpClient: cfg.HTTPClient,
		cache:      cfg.Cache,
		now:        cfg.Now,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
	}
	if m.httpClient == nil {
		m.httpClient = http.DefaultClient
	}
	if m.cache == nil {
		m.cache = NewMemoryCache()
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.logger == nil {
		m.logger = slog.New(slog.DiscardHandler)
	}
	if m.metrics == nil {
		m.metrics = metrics.Nop{}
	}
	return m, nil
}

// Token returns a valid access token, exchanging credentials on a cache
// miss or after expiry. Concurrent misses share one exchange.
func (m *TokenManager) Token(ctx context.Context) (AccessToken, error) {
	m.mu.Lock()
	tok, ok, err := m.cache.Get(ctx)
	gen := m.gen
	m.mu.Unlock()

	if err != nil {
		m.logger.DebugContext(ctx, "token cache read failed", "error", err)
	}
	if err == nil && ok && tok.Valid(m.now()) {
		return tok, nil
	}

	// The exchange is shared, so one caller's cancellation must not fail
	// the others. The HTTP client timeout still bounds it.
	shared := context.WithoutCancel(ctx)
	ch := m.group.DoChan(strconv.FormatUint(gen, 10), func() (any, error) {
		return m.refresh(shared, gen)
	})

	select {
	case <-ctx.Done():
		return AccessToken{}, &AuthError{Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return AccessToken{}, &AuthError{Err: ctxErr}
			}
			return AccessToken{}, res.Err
		}
		return res.Val.(AccessToken), nil
	}
}

// AccessToken returns the bearer value of Token.
func (m *TokenManager) AccessToken(ctx context.Context) (string, error) {
	tok, err := m.Token(ctx)
	if err != nil {
		return "", err
	}
	return tok.Value, nil
}

// Clear evicts the cached token. The next Token call re-authenticates.
func (m *TokenManager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gen++
	m.logger.DebugContext(ctx, "token cleared")
	return m.cache.Delete(ctx)
}

func (m *TokenManager) refresh(ctx context.Context, gen uint64) (AccessToken, error) {
	start := m.now()
	rec := &lastResponse{base: m.httpClient.Transport}
	hc := *m.httpClient
	hc.Transport = rec
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &hc)

	raw, err := m.cc.Token(ctx)
	if err != nil {
		m.metrics.RecordTokenRefresh(metrics.OutcomeError)
		authErr := toAuthError(err, rec)
		m.logger.DebugContext(ctx, "token exchange failed", "status", authErr.StatusCode, "error", authErr.Err)
		return AccessToken{}, authErr
	}

	ttl := TTL(expiresIn(raw))
	tok := AccessToken{Value: raw.AccessToken, ExpiresAt: start.Add(ttl)}

	m.mu.Lock()
	if m.gen == gen {
		if err := m.cache.Set(ctx, tok, ttl); err != nil {
			m.logger.DebugContext(ctx, "token cache write failed", "error", err)
		}
	}
	m.mu.Unlock()

	m.metrics.RecordTokenRefresh(metrics.OutcomeSuccess)
	m.logger.DebugContext(ctx, "token refreshed", "ttl", ttl)
	return tok, nil
}

// TTL returns the cache lifetime for a token valid for expiresIn:
// max(expiresIn-60s, 60s), with expiresIn defaulting to one hour.
func TTL(expiresIn time.Duration) time.Duration {
	if expiresIn <= 0 {
		expiresIn = DefaultExpiresIn
	}
	return max(expiresIn-ExpiryBuffer, MinTTL)
}

// expiresIn reads expires_in from the token response. The parsed
// oauth2.Token.Expiry is not used because it is computed from the wall
// clock rather than the manager's clock.
func expiresIn(tok *oauth2.Token) time.Duration {
	var secs float64
	switch v := tok.Extra("expires_in").(type) {
	case float64:
		secs = v
	case int:
		secs = float64(v)
	case int64:
		secs = float64(v)
	case json.Number:
		secs, _ = v.Float64()
	case string:
		secs, _ = strconv.ParseFloat(strings.TrimSpace(v), 64)
	}
	if secs <= 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}

// lastResponse records the status and body of the most recent token
// endpoint response so failures without an oauth2.RetrieveError still
// report them.
type lastResponse struct {
	base http.RoundTripper

	mu     sync.Mutex
	status int
	body   []byte
}

func (l *lastResponse) RoundTrip(req *http.Request) (*http.Response, error) {
	base := l.base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	l.mu.Lock()
	l.status, l.body = resp.StatusCode, body
	l.mu.Unlock()
	return resp, nil
}

func (l *lastResponse) get() (int, []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status, l.body
}

func toAuthError(err error, rec *lastResponse) *AuthError {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		ae := &AuthError{Body: strings.TrimSpace(string(re.Body)), Err: err}
		if re.Response != nil {
			ae.StatusCode = re.Response.StatusCode
		}
		return ae
	}
	ae := &AuthError{Err: err}
	if rec != nil {
		if status, body := rec.get(); status != 0 {
			ae.StatusCode = status
			ae.Body = strings.TrimSpace(string(body))
		}
	}
	return ae
}
