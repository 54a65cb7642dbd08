package handlers

import (
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hoojinguyen/tech-interview-system-sub000/internal/cache"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/models"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/utils"
)

// RequestIDMiddleware assigns a request ID, honoring one supplied by an
// upstream proxy.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// CORSMiddleware applies the configured origin allowlist. "*" allows
// any origin.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowAll := slices.Contains(allowedOrigins, "*")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if allowAll {
				c.Header("Access-Control-Allow-Origin", "*")
			} else if slices.Contains(allowedOrigins, origin) {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
			}
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// SecurityHeadersMiddleware sets the standard hardening headers.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Next()
	}
}

// RateLimitMiddleware enforces a fixed-window limit per client IP using
// a Redis counter. Cache errors fail open: traffic is never dropped
// because Redis is down.
func RateLimitMiddleware(helper *cache.CacheHelper, maxRequests int, window time.Duration, logger utils.Logger) gin.HandlerFunc {
	// Bucket math works in whole seconds; sub-second windows round up.
	windowSeconds := int64(window / time.Second)
	if windowSeconds < 1 {
		windowSeconds = 1
		window = time.Second
	}

	return func(c *gin.Context) {
		windowStart := time.Now().Unix() / windowSeconds
		key := fmt.Sprintf("%s:%d", c.ClientIP(), windowStart)

		count, err := helper.Increment(c.Request.Context(), key, window)
		if err != nil {
			logger.Warn("rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}

		if count > int64(maxRequests) {
			c.Header("Retry-After", fmt.Sprintf("%d", windowSeconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				models.NewErrorResponse("RATE_LIMITED", "too many requests, slow down", nil))
			return
		}

		c.Next()
	}
}
