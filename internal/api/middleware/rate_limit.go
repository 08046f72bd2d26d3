package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/mpcbarbosa/SeniorCare/pkg/response"
)

// WindowLimiter counts hits per key inside a sliding window.
// The Redis client satisfies it.
type WindowLimiter interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit allows limit requests per window for each client IP and route.
// Redis is preferred so the limit holds across instances. When store is nil
// or Redis fails, an in-process token bucket per key takes over.
func RateLimit(store WindowLimiter, limit int, window time.Duration) gin.HandlerFunc {
	local := newLocalLimiter(limit, window)

	return func(c *gin.Context) {
		if limit <= 0 || window <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())

		var allowed bool
		if store != nil {
			ok, err := store.CheckRateLimit(c.Request.Context(), key, limit, window)
			if err == nil {
				allowed = ok
			} else {
				allowed = local.allow(key)
			}
		} else {
			allowed = local.allow(key)
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, response.CodeTooManyRequests, "too many requests, try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}

type localLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	every    rate.Limit
	burst    int
}

func newLocalLimiter(limit int, window time.Duration) *localLimiter {
	l := &localLimiter{limiters: make(map[string]*rate.Limiter)}
	if limit > 0 && window > 0 {
		l.every = rate.Every(window / time.Duration(limit))
		l.burst = limit
	}
	return l
}

func (l *localLimiter) allow(key string) bool {
	l.mu.Lock()
	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.every, l.burst)
		l.limiters[key] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}
