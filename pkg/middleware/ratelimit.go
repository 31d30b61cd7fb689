package middleware

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/Suhaibinator/SHook/pkg/common"
	"github.com/Suhaibinator/SHook/pkg/hook"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// RateLimitStrategy identifies how a rate limit key is derived from the request
type RateLimitStrategy string

const (
	// StrategyIP keys on the client IP stored by ClientIPMiddleware, falling back to remoteAddr
	StrategyIP RateLimitStrategy = "ip"
	// StrategyUser keys on the user stored by Authentication, falling back to IP
	StrategyUser RateLimitStrategy = "user"
	// StrategyQuery keys on a query parameter named by RateLimitConfig.QueryKey
	StrategyQuery RateLimitStrategy = "query"
	// StrategyCustom keys on RateLimitConfig.KeyExtractor
	StrategyCustom RateLimitStrategy = "custom"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Unique identifier for this rate limit bucket
	// If multiple methods share the same BucketName, they share the same rate limit
	BucketName string

	// Maximum number of calls allowed in the time window
	Limit int

	// Time window for the rate limit (e.g., 1 minute, 1 hour)
	Window time.Duration

	// Strategy for identifying clients
	Strategy RateLimitStrategy

	// Query parameter used when Strategy is StrategyQuery
	QueryKey string

	// Custom key extractor function (used when Strategy is StrategyCustom)
	KeyExtractor func(*common.Request) (string, error)
}

// RateLimiter defines the interface for rate limiting algorithms
type RateLimiter interface {
	// Allow checks if a call is allowed based on the key and rate limit config
	// Returns true if the call is allowed, false otherwise
	// Also returns the number of remaining calls and time until reset
	Allow(key string, limit int, window time.Duration) (bool, int, time.Duration)
}

// RateLimitError is returned by the RateLimit callback when a limit is exceeded
type RateLimitError struct {
	Key       string
	Limit     int
	Remaining int
	Reset     time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s: limit %d, retry after %s", e.Key, e.Limit, e.Reset)
}

// window tracks the calls made under one key in the current fixed window
type window struct {
	start time.Time
	count int
}

// windowKey identifies a window. Limit and length are part of the key so
// that configs sharing a bucket key but not a rate keep separate counts.
type windowKey struct {
	key    string
	limit  int
	length time.Duration
}

// UberRateLimiter implements RateLimiter with a fixed-window counter per key.
// Time is read from a ratelimit.Clock, so tests can drive it with a mock clock.
// Allow never blocks: a call over the limit is denied with the time until the
// window resets.
type UberRateLimiter struct {
	clock   ratelimit.Clock
	mu      sync.Mutex
	windows map[windowKey]*window
}

// NewUberRateLimiter creates a new rate limiter on the wall clock
func NewUberRateLimiter() *UberRateLimiter {
	return NewUberRateLimiterWithClock(systemClock{})
}

// NewUberRateLimiterWithClock creates a rate limiter that reads time from clock
func NewUberRateLimiterWithClock(clock ratelimit.Clock) *UberRateLimiter {
	return &UberRateLimiter{
		clock:   clock,
		windows: make(map[windowKey]*window),
	}
}

// Allow checks if a call is allowed based on the key and rate limit config
func (u *UberRateLimiter) Allow(key string, limit int, per time.Duration) (bool, int, time.Duration) {
	// Special case for zero limit and window (treat as 1 per second)
	if limit <= 0 {
		limit = 1
	}
	if per <= 0 {
		per = time.Second
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	now := u.clock.Now()
	id := windowKey{key: key, limit: limit, length: per}
	w, ok := u.windows[id]
	if !ok || now.Sub(w.start) >= per {
		w = &window{start: now}
		u.windows[id] = w
	}

	reset := w.start.Add(per).Sub(now)
	if w.count >= limit {
		return false, 0, reset
	}

	w.count++
	return true, limit - w.count, reset
}

// systemClock is the wall clock
type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// extractRateLimitKey derives the bucket key for req according to config.Strategy
func extractRateLimitKey(req *common.Request, config *RateLimitConfig) (string, error) {
	switch config.Strategy {
	case StrategyUser:
		if user, ok := req.State().Get(UserKey); ok {
			return convertUserToString(user), nil
		}
		return extractIP(req), nil
	case StrategyQuery:
		if key := req.QueryValue(config.QueryKey); key != "" {
			return key, nil
		}
		return extractIP(req), nil
	case StrategyCustom:
		if config.KeyExtractor != nil {
			return config.KeyExtractor(req)
		}
		return extractIP(req), nil
	default:
		return extractIP(req), nil
	}
}

// extractIP returns the client IP stored in ctx.state, or the cleaned remoteAddr
func extractIP(req *common.Request) string {
	if ip := ClientIP(req); ip != "" {
		return ip
	}
	return cleanIP(remoteAddr(req))
}

// convertUserToString renders a user value as a rate limit key
func convertUserToString(user any) string {
	switch v := user.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// RateLimit creates a callback that enforces rate limits. A call over the
// limit fails with *RateLimitError and the decorated method is not run.
func RateLimit[S any](config *RateLimitConfig, limiter RateLimiter, logger *zap.Logger) hook.BeforeFunc[S] {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(ctx context.Context, req *common.Request, caller S) error {
		// Skip rate limiting if config is nil
		if config == nil {
			return nil
		}

		key, err := extractRateLimitKey(req, config)
		if err != nil {
			logger.Error("Failed to extract rate limit key", zap.Error(err))
			return err
		}

		// Combine bucket name and key to create a unique identifier
		bucketKey := config.BucketName + ":" + key

		allowed, remaining, reset := limiter.Allow(bucketKey, config.Limit, config.Window)
		if !allowed {
			logger.Warn("Rate limit exceeded",
				zap.String("key", key),
				zap.Int("limit", config.Limit),
				zap.Int("remaining", remaining),
				zap.Duration("reset", reset),
			)
			return &RateLimitError{Key: key, Limit: config.Limit, Remaining: remaining, Reset: reset}
		}

		return nil
	}
}
