package postcard

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/postcardcloud/postcard-go/internal/api"
)

const (
	// DefaultBaseURL is the provider's integration environment.
	DefaultBaseURL = api.DefaultBaseURL
	// DefaultTokenURL is the OAuth2 token endpoint of the integration environment.
	DefaultTokenURL = "https://apiint.post.ch/OAuth/token"
	// DefaultAuthURL is the OAuth2 authorization endpoint of the integration environment.
	DefaultAuthURL = "https://apiint.post.ch/OAuth/authorization"
	// DefaultScope is the OAuth2 scope of the postcard API.
	DefaultScope = "PCCAPI"
)

const (
	defaultTimeout     = api.DefaultTimeout
	defaultWaitTimeout = 10 * time.Minute
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL         string
	tokenURL        string
	scopes          []string
	httpClient      *http.Client
	timeout         time.Duration
	retries         int
	retryDelay      time.Duration
	retryOn         []int
	tokenCache      TokenCache
	defaultCampaign string
	limiter         *rate.Limiter
	logger          *slog.Logger
	debug           bool
	registerer      prometheus.Registerer
	skipValidation  bool

	// State polling configuration
	pollingInitialInterval   time.Duration
	pollingMaxBackoff        time.Duration
	pollingBackoffMultiplier float64
	pollingJitterFactor      float64
}

// callConfig holds per-call configuration.
type callConfig struct {
	skipValidation     bool
	allowLowResolution bool
	fileName           string
	campaignKey        string
}

// waitConfig holds configuration for waiting on a postcard state.
type waitConfig struct {
	states   []string
	timeout  time.Duration
	onChange func(State)
}

// Option configures the client.
type Option func(*clientConfig)

// CallOption configures a single operation.
type CallOption func(*callConfig)

// WaitOption configures state waiting.
type WaitOption func(*waitConfig)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithTokenURL sets the OAuth2 token endpoint.
func WithTokenURL(url string) Option {
	return func(c *clientConfig) {
		c.tokenURL = url
	}
}

// WithScope sets the requested OAuth2 scopes.
// Default: PCCAPI
func WithScope(scopes ...string) Option {
	return func(c *clientConfig) {
		c.scopes = scopes
	}
}

// WithHTTPClient sets a custom HTTP client for API and token requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout. It is ignored when a custom
// HTTP client is set.
// Default: 30 seconds
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithRetries sets the number of retries for API calls. A count of zero
// or less disables retries.
// Default: 3
func WithRetries(count int) Option {
	return func(c *clientConfig) {
		if count <= 0 {
			count = -1
		}
		c.retries = count
	}
}

// WithRetryDelay sets the delay before the first retry. Later retries back
// off exponentially.
// Default: 500 milliseconds
func WithRetryDelay(delay time.Duration) Option {
	return func(c *clientConfig) {
		c.retryDelay = delay
	}
}

// WithRetryOn sets the HTTP status codes that trigger a retry.
// Default: 408, 429 and any 5xx
func WithRetryOn(statusCodes []int) Option {
	return func(c *clientConfig) {
		c.retryOn = statusCodes
	}
}

// WithTokenCache sets where access tokens are cached. Use a shared cache
// such as NewRedisTokenCache to reuse tokens across processes.
// Default: in-memory
func WithTokenCache(cache TokenCache) Option {
	return func(c *clientConfig) {
		c.tokenCache = cache
	}
}

// WithDefaultCampaign sets the campaign used when an operation is not
// given one explicitly.
func WithDefaultCampaign(campaignKey string) Option {
	return func(c *clientConfig) {
		c.defaultCampaign = campaignKey
	}
}

// WithRateLimit throttles outgoing API requests to r per second with the
// given burst.
func WithRateLimit(r float64, burst int) Option {
	return func(c *clientConfig) {
		c.limiter = rate.NewLimiter(rate.Limit(r), burst)
	}
}

// WithLogger sets the logger used in debug mode.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithDebug enables debug logging of requests, classifications and token
// refreshes. Credentials and tokens are never logged.
func WithDebug(debug bool) Option {
	return func(c *clientConfig) {
		c.debug = debug
	}
}

// WithMetrics registers Prometheus collectors for requests and token
// refreshes with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *clientConfig) {
		c.registerer = reg
	}
}

// WithSkipValidation disables local validation for every operation.
func WithSkipValidation() Option {
	return func(c *clientConfig) {
		c.skipValidation = true
	}
}

// WithPollingInitialInterval sets the initial state polling interval.
// Default: 2 seconds
func WithPollingInitialInterval(interval time.Duration) Option {
	return func(c *clientConfig) {
		c.pollingInitialInterval = interval
	}
}

// WithPollingMaxBackoff sets the maximum state polling interval.
// Default: 30 seconds
func WithPollingMaxBackoff(maxBackoff time.Duration) Option {
	return func(c *clientConfig) {
		c.pollingMaxBackoff = maxBackoff
	}
}

// WithPollingBackoffMultiplier sets the factor applied to the polling
// interval while the state is unchanged.
// Default: 1.5
func WithPollingBackoffMultiplier(multiplier float64) Option {
	return func(c *clientConfig) {
		c.pollingBackoffMultiplier = multiplier
	}
}

// WithPollingJitterFactor sets the maximum random jitter as a fraction of
// the polling interval.
// Default: 0.3 (30%)
func WithPollingJitterFactor(factor float64) Option {
	return func(c *clientConfig) {
		c.pollingJitterFactor = factor
	}
}

// SkipValidation disables local validation for one operation.
func SkipValidation() CallOption {
	return func(c *callConfig) {
		c.skipValidation = true
	}
}

// AllowLowResolution uploads an image smaller than the required size. The
// provider accepts such images with a warning. Oversized, missing or
// undecodable files are still rejected.
func AllowLowResolution() CallOption {
	return func(c *callConfig) {
		c.allowLowResolution = true
	}
}

// WithFileName sets the file name sent with an upload.
// Default: the base name of the path
func WithFileName(name string) CallOption {
	return func(c *callConfig) {
		c.fileName = name
	}
}

// WithCampaign sets the campaign for one operation, overriding the default.
func WithCampaign(campaignKey string) CallOption {
	return func(c *callConfig) {
		c.campaignKey = campaignKey
	}
}

// WithStates sets the states that end the wait. Matching is exact.
func WithStates(states ...string) WaitOption {
	return func(c *waitConfig) {
		c.states = states
	}
}

// WithWaitTimeout sets the timeout for waiting.
// Default: 10 minutes
func WithWaitTimeout(timeout time.Duration) WaitOption {
	return func(c *waitConfig) {
		c.timeout = timeout
	}
}

// OnStateChange registers fn to be called with every newly observed state.
func OnStateChange(fn func(State)) WaitOption {
	return func(c *waitConfig) {
		c.onChange = fn
	}
}

func newCallConfig(skip bool, opts []CallOption) *callConfig {
	cfg := &callConfig{skipValidation: skip}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Matches reports whether state ends the wait.
func (w *waitConfig) Matches(state string) bool {
	for _, s := range w.states {
		if s == state {
			return true
		}
	}
	return false
}
