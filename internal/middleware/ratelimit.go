package middleware

import (
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	stdlibmw "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

// RateLimit builds per-client-IP rate limiting middleware backed by Redis.
// The rate uses ulule's formatted notation, e.g. "20-S" for 20 requests per
// second.
func RateLimit(redisClient *redis.Client, rate string) (func(http.Handler) http.Handler, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", rate, err)
	}

	store, err := redisstore.NewStore(redisClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis limiter store: %w", err)
	}

	instance := limiter.New(store, parsed)
	mw := stdlibmw.NewMiddleware(instance)
	return mw.Handler, nil
}

// NewRedisClient connects to Redis and verifies the connection is usable
// for rate limiting.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return redis.NewClient(opts), nil
}
