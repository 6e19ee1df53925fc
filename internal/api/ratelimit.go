package api

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v5"
	"golang.org/x/time/rate"
)

const (
	clientIdleTTL    = 10 * time.Minute
	clientSweepEvery = time.Minute
)

type client struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// rateLimiter hands out one token bucket per client IP. Buckets idle longer
// than idle are dropped; by then they would have refilled anyway.
type rateLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	clients   map[string]*client
	clock     func() time.Time
}

func newRateLimiter(perSecond float64, burst int) *rateLimiter {
	if burst < 1 {
		burst = 1
	}
	idle := clientIdleTTL
	if refill := time.Duration(float64(burst) / perSecond * float64(time.Second)); refill > idle {
		idle = refill
	}
	return &rateLimiter{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		idle:    idle,
		clients: make(map[string]*client),
		clock:   time.Now,
	}
}

func (l *rateLimiter) limiter(key string) *rate.Limiter {
	now := l.clock()

	l.mu.Lock()
	defer l.mu.Unlock()
	if now.Sub(l.lastSweep) >= clientSweepEvery {
		for k, c := range l.clients {
			if now.Sub(c.lastSeen) >= l.idle {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}
	c, ok := l.clients[key]
	if !ok {
		c = &client{lim: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	return c.lim
}

func (l *rateLimiter) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// middleware rejects requests once the caller's bucket is empty.
func (l *rateLimiter) middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c *echo.Context) error {
		lim := l.limiter(c.RealIP())
		r := lim.ReserveN(l.clock(), 1)
		if !r.OK() {
			return writeError(c, http.StatusTooManyRequests, "rate_limit_error", "rate limit exceeded", "", "rate_limited")
		}
		if d := r.DelayFrom(l.clock()); d > 0 {
			r.CancelAt(l.clock())
			secs := int(d.Seconds()) + 1
			c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
			return writeError(c, http.StatusTooManyRequests, "rate_limit_error", "rate limit exceeded", "", "rate_limited")
		}
		return next(c)
	}
}
