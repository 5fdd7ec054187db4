package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/empmonitor/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// Counter increments a key that expires after ttl.
type Counter interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RateLimit allows at most limit requests per client IP per fixed window.
// Buckets are named by scope so routes can be limited independently.
// A nil counter or non-positive limit disables the check; counter errors let
// the request through.
func RateLimit(counter Counter, scope string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if counter == nil || limit <= 0 {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		bucket := time.Now().UnixNano() / int64(window)
		key := fmt.Sprintf("empmon:rate_limit:%s:%s:%d", scope, ip, bucket)

		count, err := counter.Incr(c.Request.Context(), key, window+time.Second)
		if err != nil {
			c.Next()
			return
		}

		if count > int64(limit) {
			retry := window - time.Duration(time.Now().UnixNano()%int64(window))
			c.Header("Retry-After", strconv.Itoa(int(retry.Seconds())+1))
			response.TooManyRequests(c, "too many requests, slow down")
			return
		}

		c.Next()
	}
}
