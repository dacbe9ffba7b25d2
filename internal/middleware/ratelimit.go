package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// RateLimit throttles per client IP. rateSpec uses the limiter format, e.g. "20-M".
// An empty rate disables limiting. With a nil client the counters live in process memory.
func RateLimit(rateSpec, routeID string, client *redis.Client) (gin.HandlerFunc, error) {
	if rateSpec == "" {
		return func(c *gin.Context) { c.Next() }, nil
	}

	rate, err := limiter.NewRateFromFormatted(rateSpec)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", rateSpec, err)
	}

	opts := limiter.StoreOptions{
		Prefix:          "rate_limiter:" + routeID,
		MaxRetry:        3,
		CleanUpInterval: limiter.DefaultCleanUpInterval,
	}
	var store limiter.Store
	if client != nil {
		store, err = sredis.NewStoreWithOptions(client, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis store for route %s: %w", routeID, err)
		}
	} else {
		store = memory.NewStoreWithOptions(opts)
	}

	return mgin.NewMiddleware(limiter.New(store, rate)), nil
}
