package ratelimit

import (
	"time"
	"tracker/bizerror"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// Limiter allows each client max requests per window, refilled evenly over the window.
// A client limiter is dropped once the client stays idle for a whole window, by then it is full again.
type Limiter struct {
	limiters *cache.Cache
	limit    rate.Limit
	burst    int
}

func NewLimiter(window time.Duration, max int) *Limiter {
	if window <= 0 || max <= 0 {
		return &Limiter{}
	}
	return &Limiter{
		limiters: cache.New(window, window),
		limit:    rate.Every(window / time.Duration(max)),
		burst:    max,
	}
}

func (l *Limiter) Allow(key string) bool {
	if l.limiters == nil {
		return true
	}
	return l.limiterFor(key).Allow()
}

func (l *Limiter) limiterFor(key string) *rate.Limiter {
	if v, found := l.limiters.Get(key); found {
		l.limiters.Set(key, v, cache.DefaultExpiration)
		return v.(*rate.Limiter)
	}
	lim := rate.NewLimiter(l.limit, l.burst)
	if err := l.limiters.Add(key, lim, cache.DefaultExpiration); err != nil {
		// lost the race against another request of the same client
		if v, found := l.limiters.Get(key); found {
			return v.(*rate.Limiter)
		}
	}
	return lim
}

// Middleware rejects requests over the limit of the client IP with ErrTooManyRequests.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			panic(bizerror.ErrTooManyRequests)
		}
		c.Next()
	}
}
