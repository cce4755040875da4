package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
	// Action names what is limited in the 429 message
	Action string
}

// RateLimitStatus is a caller's quota in the current window
type RateLimitStatus struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
}

// RateLimiter is a fixed-window counter per key kept in Redis
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		config: config,
		logger: logger,
		now:    time.Now,
	}
}

// NewRecipeCreationRateLimiter allows 5 recipe creations per user per hour
func NewRecipeCreationRateLimiter(redisClient *redis.Client, logger *zap.Logger) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Hour,
		Limit:     5,
		KeyPrefix: "rate_limit:recipe_creation",
		Action:    "recipe creations",
	}, logger)
}

// NewDraftSubmissionRateLimiter allows 5 wizard submissions per user per hour
func NewDraftSubmissionRateLimiter(redisClient *redis.Client, logger *zap.Logger) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Hour,
		Limit:     5,
		KeyPrefix: "rate_limit:draft_submission",
		Action:    "recipe submissions",
	}, logger)
}

// NewRecipeModificationRateLimiter allows 10 modifications per recipe per user per hour
func NewRecipeModificationRateLimiter(redisClient *redis.Client, logger *zap.Logger) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Hour,
		Limit:     10,
		KeyPrefix: "rate_limit:recipe_modification",
		Action:    "modifications per recipe",
	}, logger)
}

// RateLimitMiddleware limits each authenticated user
func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return rl.middleware(func(c *gin.Context, userID string) string {
		return userID
	})
}

// PerRecipeRateLimitMiddleware limits each user separately for every recipe id
func (rl *RateLimiter) PerRecipeRateLimitMiddleware() gin.HandlerFunc {
	return rl.middleware(func(c *gin.Context, userID string) string {
		return fmt.Sprintf("%s:%s", userID, c.Param("id"))
	})
}

func (rl *RateLimiter) middleware(keyFn func(c *gin.Context, userID string) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			return
		}

		allowed, status, err := rl.IsAllowed(c.Request.Context(), keyFn(c, userID))
		if err != nil {
			// Fail open: a Redis outage must not block writes
			rl.logger.Warn("rate limit check failed", zap.String("prefix", rl.config.KeyPrefix), zap.Error(err))
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(status.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(status.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(status.ResetAt.Unix(), 10))

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":                "rate limit exceeded",
				"message":              fmt.Sprintf("You have exceeded the rate limit of %d %s per %v", rl.config.Limit, rl.config.Action, rl.config.Window),
				"rate_limit_remaining": status.Remaining,
				"rate_limit_reset":     status.ResetAt.Unix(),
				"retry_after":          int(status.ResetAt.Sub(rl.now()).Seconds()),
			})
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) window() (string, time.Time) {
	start := rl.now().Truncate(rl.config.Window)
	return strconv.FormatInt(start.Unix(), 10), start.Add(rl.config.Window)
}

func (rl *RateLimiter) key(subject, window string) string {
	return fmt.Sprintf("%s:%s:%s", rl.config.KeyPrefix, subject, window)
}

// IsAllowed counts a request against subject's quota
func (rl *RateLimiter) IsAllowed(ctx context.Context, subject string) (bool, RateLimitStatus, error) {
	window, reset := rl.window()
	key := rl.key(subject, window)

	pipe := rl.redis.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rl.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, RateLimitStatus{}, err
	}

	count := int(incr.Val())
	return count <= rl.config.Limit, rl.status(count, reset), nil
}

// Remaining reports subject's quota without counting a request
func (rl *RateLimiter) Remaining(ctx context.Context, subject string) (RateLimitStatus, error) {
	window, reset := rl.window()

	count, err := rl.redis.Get(ctx, rl.key(subject, window)).Int()
	if errors.Is(err, redis.Nil) {
		return rl.status(0, reset), nil
	}
	if err != nil {
		return RateLimitStatus{}, err
	}
	return rl.status(count, reset), nil
}

func (rl *RateLimiter) status(count int, reset time.Time) RateLimitStatus {
	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	return RateLimitStatus{Limit: rl.config.Limit, Remaining: remaining, ResetAt: reset}
}
