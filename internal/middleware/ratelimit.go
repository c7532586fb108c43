package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/appnity/roommate-finder/pkg/logger"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// IPRateLimiter keeps one token bucket per client IP. Buckets idle for three
// minutes are dropped by a background sweep.
type IPRateLimiter struct {
	mu    sync.Mutex
	ips   map[string]*rateLimiterEntry
	r     rate.Limit
	burst int
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPRateLimiter allows r requests per second with the given burst.
func NewIPRateLimiter(r rate.Limit, burst int) *IPRateLimiter {
	rl := &IPRateLimiter{
		ips:   make(map[string]*rateLimiterEntry),
		r:     r,
		burst: burst,
	}
	go rl.cleanup()
	return rl
}

func (rl *IPRateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		rl.mu.Lock()
		for ip, entry := range rl.ips {
			if time.Since(entry.lastSeen) > 3*time.Minute {
				delete(rl.ips, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.ips[ip]
	if !ok {
		entry = &rateLimiterEntry{limiter: rate.NewLimiter(rl.r, rl.burst)}
		rl.ips[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

var (
	// 20 per minute
	AuthLimiter = NewIPRateLimiter(rate.Limit(20.0/60.0), 10)

	// 600 per minute
	GeneralLimiter = NewIPRateLimiter(rate.Limit(10.0), 50)

	// Contact forms accept anonymous senders: 5 per minute
	ContactLimiter = NewIPRateLimiter(rate.Limit(5.0/60.0), 3)

	// 30 per minute
	MessageLimiter = NewIPRateLimiter(rate.Limit(30.0/60.0), 10)

	// 10 per minute
	UploadLimiter = NewIPRateLimiter(rate.Limit(10.0/60.0), 5)
)

func RateLimitMiddleware(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !limiter.GetLimiter(ip).Allow() {
			logger.Warn().
				Str("ip", ip).
				Str("path", c.Request.URL.Path).
				Msg("Rate limit exceeded")

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests, please slow down",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func AuthRateLimit() gin.HandlerFunc { return RateLimitMiddleware(AuthLimiter) }

func GeneralRateLimit() gin.HandlerFunc { return RateLimitMiddleware(GeneralLimiter) }

func ContactRateLimit() gin.HandlerFunc { return RateLimitMiddleware(ContactLimiter) }

func MessageRateLimit() gin.HandlerFunc { return RateLimitMiddleware(MessageLimiter) }

func UploadRateLimit() gin.HandlerFunc { return RateLimitMiddleware(UploadLimiter) }
