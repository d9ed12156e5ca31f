package middleware

import (
	"fmt"
	"net/http"
	"time"

	"some-planner/pkg/apperr"
	"some-planner/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitMiddleware allows limit requests per client IP and path within
// window, counted in Redis so every instance shares the budget.
func RateLimitMiddleware(redisClient *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit:%s:%s", c.Request.URL.Path, c.ClientIP())

		ctx := c.Request.Context()
		count, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			response.Status(c, http.StatusInternalServerError, "Rate limit check failed")
			return
		}

		if count == 1 {
			redisClient.Expire(ctx, key, window)
		}

		if count > int64(limit) {
			if ttl, err := redisClient.TTL(ctx, key).Result(); err == nil && ttl > 0 {
				c.Header("Retry-After", fmt.Sprintf("%d", int(ttl.Seconds())))
			}
			response.Fail(c, nil, apperr.TooManyRequests("Too many login attempts, try again later"))
			return
		}

		c.Next()
	}
}
