package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window limiter keyed by client IP. A nil limiter lets
// everything through, and so does an unreachable Redis.
type RateLimiter struct {
	redisClient *redis.Client
}

func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{redisClient: client}
}

func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.redisClient == nil || limit <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", keySuffix, c.ClientIP())

		pipe := rl.redisClient.Pipeline()
		incr := pipe.Incr(c, key)
		ttlCmd := pipe.TTL(c, key)
		if _, err := pipe.Exec(c); err != nil {
			c.Next()
			return
		}
		count, ttl := incr.Val(), ttlCmd.Val()

		// A key without a TTL opens the window, including one whose earlier
		// EXPIRE was lost.
		if ttl < 0 {
			if err := rl.redisClient.Expire(c, key, window).Err(); err != nil {
				rl.redisClient.Del(c, key)
				c.Next()
				return
			}
			ttl = window
		}

		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests",
				"retry_after": fmt.Sprintf("%.0f seconds", ttl.Seconds()),
			})
			return
		}
		c.Next()
	}
}
