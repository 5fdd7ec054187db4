package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/empmonitor/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotenceHeader = "X-Idempotence"
	idempotenceTTL    = 60 * time.Second

	idempotencePending = "0"
	idempotenceDone    = "1"
)

// IdempotenceStore is the key-value subset used by Idempotence.
type IdempotenceStore interface {
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Idempotence rejects a repeated X-Idempotence key with 409 for 60 seconds
// after the first successful request. Failed requests release the key.
// Requests without the header pass through.
func Idempotence(store IdempotenceStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil || c.Request.Method == http.MethodGet {
			c.Next()
			return
		}
		token := c.GetHeader(idempotenceHeader)
		if token == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("empmon:idempotence:%s:%s", c.FullPath(), token)

		acquired, err := store.SetNX(ctx, key, idempotencePending, idempotenceTTL)
		if err != nil {
			c.Next()
			return
		}
		if !acquired {
			msg := "duplicate request, identical requests are accepted once per 60 seconds"
			if val, _ := store.Get(ctx, key); val == idempotencePending {
				msg = "duplicate request is still being processed"
			}
			response.Conflict(c, msg)
			return
		}

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			_ = store.Set(ctx, key, idempotenceDone, redis.KeepTTL)
		} else {
			_ = store.Del(ctx, key)
		}
	}
}
