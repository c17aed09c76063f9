package middleware

import (
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/mmeshcher/linkedin-collector/internal/models"
)

const (
	RateLimitMessage = "请求过于频繁，请稍后再试"
	maxTrackedIPs    = 10000
)

// RateLimiter limits requests per client IP. Rejected requests still get
// HTTP 200 with a failed Result so the page shows the message inline.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	r        rate.Limit
	b        int
	logger   *zap.Logger
}

func NewRateLimiter(requestsPerSecond float64, burst int, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		r:        rate.Limit(requestsPerSecond),
		b:        burst,
		logger:   logger,
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.limiters[ip]
	if !exists {
		if len(rl.limiters) >= maxTrackedIPs {
			rl.evictIdle()
		}
		limiter = rate.NewLimiter(rl.r, rl.b)
		rl.limiters[ip] = limiter
	}

	return limiter
}

// evictIdle drops limiters that have refilled completely.
func (rl *RateLimiter) evictIdle() {
	for ip, l := range rl.limiters {
		if l.Tokens() >= float64(rl.b) {
			delete(rl.limiters, ip)
		}
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		limiter := rl.getLimiter(ip)

		res := limiter.Reserve()
		if delay := res.Delay(); delay > 0 {
			res.Cancel()
			rl.logger.Warn("Rate limit exceeded", zap.String("ip", ip), zap.String("uri", r.RequestURI))

			retryAfter := int(math.Ceil(delay.Seconds()))
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(models.Result{Success: false, Message: RateLimitMessage}); err != nil {
				rl.logger.Error("Failed to encode response", zap.Error(err))
			}
			return
		}

		next.ServeHTTP(w, r)
	})
}
