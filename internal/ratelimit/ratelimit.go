package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/lead-capture-service/pkg/util"
)

// Limiter caps requests per key over a fixed window. It runs before
// validation and persistence so abusive traffic is rejected cheaply.
type Limiter struct {
	store  CounterStore
	name   string
	max    int
	window time.Duration
}

// New creates a limiter over the given counter store.
func New(store CounterStore, name string, max int, window time.Duration) *Limiter {
	return &Limiter{store: store, name: name, max: max, window: window}
}

// Allow records an attempt for key and reports whether it is within the
// limit. Both allowed and rejected attempts count against the window.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	count, remaining, err := l.store.Incr(ctx, l.key(key), l.window)
	if err != nil {
		return false, 0, err
	}
	if count > int64(l.max) {
		return false, remaining, nil
	}
	return true, 0, nil
}

func (l *Limiter) key(key string) string {
	return fmt.Sprintf("ratelimit:%s:%s", l.name, key)
}

// Middleware rejects requests over the limit with 429 and a retry hint.
// Counter-store failures fail open: abuse mitigation must not take the
// ingestion path down with it.
func Middleware(limiter *Limiter, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		allowed, retryAfter, err := limiter.Allow(c.Context(), ClientIP(c))
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if !allowed {
			seconds := int(retryAfter.Seconds())
			if seconds < 1 {
				seconds = 1
			}
			c.Set("Retry-After", fmt.Sprintf("%d", seconds))
			return apperrors.NewRateLimited(
				fmt.Sprintf("too many requests, retry in %d seconds", seconds), seconds)
		}
		return c.Next()
	}
}

// ClientIP extracts the caller's network address, preferring proxy headers.
func ClientIP(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	if xri := c.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	return c.IP()
}
