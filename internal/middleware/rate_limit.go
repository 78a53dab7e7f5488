package middleware

import (
	"net/http"
	"sync"

	"github.com/Roma1011/EmployeeManagmentSys/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func (cl *clientLimiter) get(key string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if l, ok := cl.limiters[key]; ok {
		return l
	}
	l := rate.NewLimiter(cl.rps, cl.burst)
	cl.limiters[key] = l
	return l
}

// RateLimitByClient membatasi request per client IP.
// rps boleh pecahan (0.1 = satu request tiap 10 detik).
func RateLimitByClient(rps float64, burst int) gin.HandlerFunc {
	cl := &clientLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}

	return func(c *gin.Context) {
		if !cl.get(c.ClientIP()).Allow() {
			response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
