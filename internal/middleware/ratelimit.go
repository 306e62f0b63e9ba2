package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// NewLimiter builds a limiter from a formatted rate such as "5-M". A non-nil redis
// client makes the counters shared across instances; otherwise they live in memory.
func NewLimiter(formattedRate string, prefix string, client *redis.Client) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formattedRate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", formattedRate, err)
	}

	var store limiter.Store
	if client != nil {
		store, err = sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: prefix})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis limiter store: %w", err)
		}
	} else {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: prefix})
	}

	return limiter.New(store, rate), nil
}

// RateLimit creates a Gin middleware for rate limiting requests by client IP.
func RateLimit(limiterInstance *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		limitCtx, err := limiterInstance.Get(c.Request.Context(), ip)
		if err != nil {
			GetLoggerFromCtx(c.Request.Context()).Error("Failed to get rate limit context", slog.String("ip", ip), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error during rate limit check"})
			return
		}

		if limitCtx.Reached {
			GetLoggerFromCtx(c.Request.Context()).Warn("Rate limit exceeded", slog.String("ip", ip), slog.Int64("limit", limitCtx.Limit), slog.Int64("remaining_requests", limitCtx.Remaining))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
			return
		}

		c.Next()
	}
}

// AttemptGuard throttles failed attempts per key. Successful attempts are never
// counted and clear the key. A nil guard never blocks.
type AttemptGuard struct {
	limiter *limiter.Limiter
}

// NewAttemptGuard wraps a limiter whose rate is the number of failures allowed per window.
func NewAttemptGuard(l *limiter.Limiter) *AttemptGuard {
	if l == nil {
		return nil
	}
	return &AttemptGuard{limiter: l}
}

// Blocked reports whether key has used up its failures for the current window.
func (g *AttemptGuard) Blocked(ctx context.Context, key string) (bool, error) {
	if g == nil {
		return false, nil
	}
	lctx, err := g.limiter.Peek(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to read attempt counter: %w", err)
	}
	return lctx.Reached || lctx.Remaining <= 0, nil
}

// Fail records one failed attempt for key.
func (g *AttemptGuard) Fail(ctx context.Context, key string) error {
	if g == nil {
		return nil
	}
	if _, err := g.limiter.Get(ctx, key); err != nil {
		return fmt.Errorf("failed to record failed attempt: %w", err)
	}
	return nil
}

// Clear forgets the failures recorded for key.
func (g *AttemptGuard) Clear(ctx context.Context, key string) error {
	if g == nil {
		return nil
	}
	if _, err := g.limiter.Reset(ctx, key); err != nil {
		return fmt.Errorf("failed to clear attempt counter: %w", err)
	}
	return nil
}
