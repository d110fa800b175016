package middlewares

import (
	"log"
	"net/http"
	"time"

	"civiconnect-be/ratelimit"

	"github.com/gin-gonic/gin"
)

// KeyFunc picks the counter a request is charged to. Returning false rejects
// the request.
type KeyFunc func(c *gin.Context) (string, bool)

// RateLimiter allows limit requests per key inside window.
func RateLimiter(limiter ratelimit.Limiter, limit int64, window time.Duration, key KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		k, ok := key(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rate limit key missing"})
			c.Abort()
			return
		}

		res, err := limiter.Allow(c.Request.Context(), k, limit, window)
		if err != nil {
			log.Printf("Rate limiter error for %s: %v", k, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "rate limiter unavailable"})
			c.Abort()
			return
		}

		if !res.Allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": res.RetryAfter.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// IssueRateLimiter caps issue creation per signed-in user per day. Must run
// after AuthMiddleware.
func IssueRateLimiter(limiter ratelimit.Limiter, queuePrefix string, limit int64) gin.HandlerFunc {
	return RateLimiter(limiter, limit, 24*time.Hour, func(c *gin.Context) (string, bool) {
		userID := c.GetString("user_id")
		if userID == "" {
			return "", false
		}
		return queuePrefix + ":" + userID, true
	})
}

// ChatRateLimiter caps messages per chat session per minute.
func ChatRateLimiter(limiter ratelimit.Limiter, limit int64) gin.HandlerFunc {
	return RateLimiter(limiter, limit, time.Minute, func(c *gin.Context) (string, bool) {
		id := c.Param("id")
		if id == "" {
			return "", false
		}
		return "chat:" + id, true
	})
}
