package config

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/postcardcloud/postcard-go"
)

// Options converts c into client options. The returned close function
// releases resources opened for the token cache and must be called when
// the client is no longer used.
func (c *Config) Options(logger *slog.Logger) ([]postcard.Option, func() error, error) {
	opts := []postcard.Option{
		postcard.WithBaseURL(c.BaseURL),
		postcard.WithTokenURL(c.TokenURL),
		postcard.WithTimeout(c.Timeout),
		postcard.WithRetries(c.Retries),
		postcard.WithRetryDelay(c.RetryDelay),
		postcard.WithDebug(c.Debug),
	}
	if c.Scope != "" {
		opts = append(opts, postcard.WithScope(c.Scope))
	}
	if c.DefaultCampaign != "" {
		opts = append(opts, postcard.WithDefaultCampaign(c.DefaultCampaign))
	}
	if c.RateLimit > 0 {
		opts = append(opts, postcard.WithRateLimit(c.RateLimit, max(c.RateBurst, 1)))
	}
	if logger != nil {
		opts = append(opts, postcard.WithLogger(logger))
	}

	closeFn := func() error { return nil }
	switch c.TokenCache.Type {
	case CacheFile:
		cache, err := postcard.NewFileTokenCache(c.TokenCache.Path, c.ClientSecret)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, postcard.WithTokenCache(cache))
	case CacheRedis:
		rdb := redis.NewClient(&redis.Options{Addr: c.TokenCache.RedisAddr})
		opts = append(opts, postcard.WithTokenCache(postcard.NewRedisTokenCache(rdb, c.TokenCache.RedisKey)))
		closeFn = rdb.Close
	}
	return opts, closeFn, nil
}
